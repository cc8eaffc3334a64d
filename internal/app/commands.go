package app

import (
	"fmt"
	"strings"

	"github.com/quellbrowser/quell/internal/commands"
	"github.com/quellbrowser/quell/internal/download"
	"github.com/quellbrowser/quell/internal/registry"
)

// registerUtilityCommands installs the built-in command set. Each command
// closes over the controller; none of them keep state of their own.
func (a *App) registerUtilityCommands() {
	a.cmdRunner.Register(commands.Command{
		Name: "open", Help: "open a URL in a new tab", MinArgs: 1, MaxArgs: 1,
		Run: func(args []string) error {
			return a.openPage(args[0])
		},
	})
	a.cmdRunner.Register(commands.Command{
		Name: "quit", Help: "shut down gracefully", MaxArgs: 0,
		Run: func([]string) error {
			a.Shutdown(0)
			return nil
		},
	})
	a.cmdRunner.Register(commands.Command{
		Name: "restart", Help: "restart, carrying open pages over", MaxArgs: 0,
		Run: func([]string) error {
			if err := a.Restart(a.win.Tabs().PageURLs()); err != nil {
				return err
			}
			a.Shutdown(0)
			return nil
		},
	})
	a.cmdRunner.Register(commands.Command{
		Name: "search", Help: "search in the current page", MaxArgs: -1,
		Run: func(args []string) error {
			a.search.Search(strings.Join(args, " "))
			return nil
		},
	})
	a.cmdRunner.Register(commands.Command{
		Name: "quickmark-add", Help: "bookmark a URL under a name", MinArgs: 2, MaxArgs: 2,
		Run: func(args []string) error {
			a.marks.Add(args[0], args[1])
			return nil
		},
	})
	a.cmdRunner.Register(commands.Command{
		Name: "quickmark-load", Help: "open a bookmarked URL", MinArgs: 1, MaxArgs: 1,
		Run: func(args []string) error {
			url, err := a.marks.Get(args[0])
			if err != nil {
				return err
			}
			return a.openPage(url)
		},
	})
	a.cmdRunner.Register(commands.Command{
		Name: "registry-dump", Help: "list all registered objects", MaxArgs: 1,
		Run: func(args []string) error {
			if len(args) == 1 {
				for _, line := range a.reg.Dump(registry.Scope(args[0])) {
					a.bridge.Info(line)
				}
				return nil
			}
			a.bridge.Info(a.reg.DumpAll())
			return nil
		},
	})
	a.cmdRunner.Register(commands.Command{
		Name: "eval", Help: "evaluate a script expression", MinArgs: 1, MaxArgs: -1,
		Run: func(args []string) error {
			out, err := a.scripts.Eval(strings.Join(args, " "))
			if err != nil {
				return err
			}
			a.bridge.Info(out)
			return nil
		},
	})
	a.cmdRunner.Register(commands.Command{
		Name: "download-cancel", Help: "cancel the download at an index", MinArgs: 1, MaxArgs: 1,
		Run: func(args []string) error {
			var idx int
			if _, err := fmt.Sscanf(args[0], "%d", &idx); err != nil {
				return fmt.Errorf("not an index: %q", args[0])
			}
			if a.downloads.At(idx) == nil {
				return fmt.Errorf("no download at index %d", idx)
			}
			a.downloads.SetState(idx, download.StateCancelled)
			return nil
		},
	})
}
