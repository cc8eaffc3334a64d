//go:build linux || darwin

package app

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// DetachedSpawn starts args as a new session leader so it survives this
// process exiting. The default Dependencies.Spawn.
func DetachedSpawn(args []string, dir string) error {
	if len(args) == 0 {
		return fmt.Errorf("spawn: empty argument vector")
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Env = os.Environ()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %s: %w", args[0], err)
	}
	// Reap the child when it exits so it cannot zombie while we are alive.
	go func() { _ = cmd.Wait() }()
	return nil
}
