//go:build !linux && !darwin

package app

import (
	"fmt"
	"os"
	"os/exec"
)

// DetachedSpawn starts args as a separate process.
func DetachedSpawn(args []string, dir string) error {
	if len(args) == 0 {
		return fmt.Errorf("spawn: empty argument vector")
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %s: %w", args[0], err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
