package app

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/quellbrowser/quell/internal/session"
	"github.com/quellbrowser/quell/internal/ui/dialog"
)

// Terminate is a panic value carrying a benign termination request out of a
// deeply nested loop task. It is a control signal, not a fault: the handler
// attempts a normal shutdown instead of crash recovery.
type Terminate struct {
	Status int
}

func (t Terminate) String() string {
	return fmt.Sprintf("termination request (status %d)", t.Status)
}

func panicError(name string, v any) error {
	return fmt.Errorf("%s: panic: %v", name, v)
}

// handlePanic is the uncaught-fault hook. Termination requests fall through
// to a direct shutdown attempt; genuine faults produce a crash report,
// best-effort state recovery, and the crash dialog.
func (a *App) handlePanic(v any) int {
	if t, ok := v.(Terminate); ok {
		a.log.Info().Stringer("request", t).Msg("termination request")
		if err := a.runIsolated("terminate shutdown", func() error {
			a.Shutdown(t.Status)
			a.loop.Quit(t.Status)
			return nil
		}); err != nil {
			a.log.Error().Err(err).Msg("shutdown failed, force quitting")
			a.loop.Quit(t.Status)
		}
		return t.Status
	}

	stack := debug.Stack()
	// Diagnostics first, exactly as an unhandled panic would print them.
	fmt.Fprintf(os.Stderr, "panic: %v\n\n%s", v, stack)
	a.log.Error().Interface("panic", v).Msg("unhandled fault")

	// Not a clean quit, whatever happens below.
	a.status.Crash = true

	a.recorder.RecordPanic(v, stack)

	// Best-effort recovery; every piece tolerates half-torn-down state.
	snap := session.Build(a.reg, a.log)

	var objects string
	func() {
		defer func() { _ = recover() }()
		objects = a.reg.DumpAll()
	}()

	// Detach the window-close shutdown trigger so closing windows below
	// cannot re-enter shutdown, then drop the windows.
	func() {
		defer func() { _ = recover() }()
		a.win.Widget().OnCloseRequest(func() bool { return true })
		a.win.Widget().Close()
	}()

	restore := false
	if a.deps.ShowDialog != nil {
		var err error
		restore, err = a.deps.ShowDialog(dialog.CrashReport{
			Fault:   fmt.Sprintf("panic: %v\n\n%s", v, stack),
			Pages:   snap.Pages,
			History: snap.History,
			Objects: objects,
		})
		if err != nil {
			a.log.Warn().Err(err).Msg("crash dialog failed")
		}
	}

	if restore {
		// Relaunch with the recovered pages; graceful shutdown is skipped.
		if err := a.Restart(snap.Pages); err != nil {
			a.log.Error().Err(err).Msg("relaunch failed")
		}
	} else {
		// Minimal forced cleanup.
		func() {
			defer func() { _ = recover() }()
			a.filter.Remove()
			a.bridge.Attach(nil)
		}()
	}

	// The fault was shown above, so the marker has served its purpose.
	// Leaving it would make the replacement process treat this crash as a
	// fresh one and re-surface it at startup.
	a.recorder.Disable()
	return 1
}
