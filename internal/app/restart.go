package app

import (
	"fmt"
	"os"
	"strings"
)

// RestartCommand rebuilds the relaunch argument vector: the original program
// and its flag arguments, with the recovered pages appended as positionals.
// Old positional arguments are dropped; the pages replace them. An empty
// vector falls back to the resolved executable, which also covers temp
// binaries from build-and-run invocations.
func RestartCommand(launchVector, pages []string) []string {
	if len(launchVector) == 0 {
		prog, err := os.Executable()
		if err != nil {
			prog = os.Args[0]
		}
		launchVector = []string{prog}
	}
	args := []string{launchVector[0]}
	for _, arg := range launchVector[1:] {
		if strings.HasPrefix(arg, "-") {
			args = append(args, arg)
		}
	}
	return append(args, pages...)
}

// Restart spawns a detached replacement process carrying the given pages.
// It does not shut the current process down; callers decide that.
func (a *App) Restart(pages []string) error {
	if a.deps.Spawn == nil {
		return fmt.Errorf("restart unavailable: no process spawner")
	}
	args := RestartCommand(a.deps.Args.LaunchVector, pages)
	dir, err := os.Getwd()
	if err != nil {
		a.log.Warn().Err(err).Msg("working directory unknown, inheriting")
		dir = ""
	}
	a.log.Info().Strs("args", args).Msg("spawning replacement process")
	if err := a.deps.Spawn(args, dir); err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	return nil
}
