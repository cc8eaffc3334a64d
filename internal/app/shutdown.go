package app

import (
	"context"
)

// Shutdown is stage 1: it latches, so repeated calls cannot run teardown
// twice. While a modal question is active the loop is nested; stage 2 is
// deferred to the next outer iteration instead of tearing the loop down
// from inside the sub-iteration.
func (a *App) Shutdown(status int) {
	if a.shutdownBegun {
		a.log.Debug().Msg("shutdown already in progress")
		return
	}
	a.shutdownBegun = true
	a.log.Info().Int("status", status).Msg("shutdown requested")

	if a.prompter.Active() || a.loop.Nested() {
		a.prompter.Abort()
		a.deferStage2(status)
		return
	}
	a.stage2(status)
}

// deferStage2 schedules stage 2 for the next outer loop iteration. Nested
// sub-iterations drain the same task queue, so the posted callback re-posts
// itself until it lands outside every RunNested frame.
func (a *App) deferStage2(status int) {
	a.loop.Post(func() {
		if a.loop.Nested() {
			a.deferStage2(status)
			return
		}
		a.stage2(status)
	})
}

// stage2 is the actual teardown. Every persistence step runs isolated: one
// failure is logged and the rest still run, so a broken disk never blocks
// process exit.
func (a *App) stage2(status int) {
	if a.stage2Ran {
		return
	}
	a.stage2Ran = true
	ctx := context.Background()

	a.filter.Remove()

	a.win.Tabs().CloseAll()
	a.status.Tabs = true

	persist := []struct {
		name string
		fn   func() error
	}{
		{"config", func() error {
			if !a.cfg.Get().General.AutoSaveConfig {
				return nil
			}
			return a.cfg.Save()
		}},
		{"key bindings", a.cfg.SaveBindings},
		{"window geometry", func() error { return a.win.SaveGeometry(ctx) }},
		{"bookmarks", func() error { return a.marks.Save(ctx) }},
		{"command history", func() error { return a.history.Save(ctx) }},
		{"cookies", func() error { return a.jar.Flush(ctx) }},
	}
	for _, step := range persist {
		if err := a.runIsolated(step.name, step.fn); err != nil {
			a.log.Error().Err(err).Str("step", step.name).Msg("persistence failed, continuing")
		}
	}

	a.recorder.Disable()
	if a.stopKeepalive != nil {
		a.stopKeepalive()
	}
	a.bridge.Attach(nil)

	if err := a.runIsolated("state store", a.store.Close); err != nil {
		a.log.Error().Err(err).Msg("state store close failed")
	}

	a.reg.ClearAll()
	a.status.Crash = false
	a.status.Main = true

	// Never exit synchronously from inside a signal handler or a nested
	// loop; the quit lands on the next iteration.
	a.loop.Post(func() { a.loop.Quit(status) })
	a.log.Info().Int("status", status).Msg("shutdown complete")
}

// runIsolated runs one teardown step, converting a panic into an error so a
// single broken subsystem cannot stop the remaining steps.
func (a *App) runIsolated(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(name, r)
		}
	}()
	return fn()
}

// ForcedExit skips all persistence and quits the loop. Second-signal path.
func (a *App) ForcedExit(status int) {
	a.log.Warn().Int("status", status).Msg("forced exit, skipping persistence")
	a.recorder.Disable()
	a.loop.Quit(status)
}
