package main

import (
	"os"

	"github.com/quellbrowser/quell/internal/cli"
)

func main() {
	raiseLimits()
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
