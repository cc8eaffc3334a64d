//go:build linux || darwin

package main

import (
	"runtime/debug"

	"golang.org/x/sys/unix"
)

// raiseLimits prepares the process for crash forensics: full-stack
// tracebacks on hard faults and core dumps up to the hard limit.
func raiseLimits() {
	debug.SetTraceback("crash")

	var lim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_CORE, &lim); err != nil {
		return
	}
	if lim.Cur < lim.Max {
		lim.Cur = lim.Max
		_ = unix.Setrlimit(unix.RLIMIT_CORE, &lim)
	}
}
