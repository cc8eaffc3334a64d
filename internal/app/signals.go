package app

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// signalLevel tracks the escalation stage across deliveries:
// 0 none yet, 1 graceful shutdown scheduled, 2 forced exit scheduled,
// 3+ immediate termination.
type signalState struct {
	level atomic.Int32
}

// installSignalHandlers remaps interrupt and terminate to the escalating
// handler. The handler goroutine only bumps a counter and posts a loop
// callback; all real work happens on the loop.
func (a *App) installSignalHandlers() {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	var st signalState
	go func() {
		for sig := range ch {
			a.handleSignal(&st, sig)
		}
	}()
}

func (a *App) handleSignal(st *signalState, sig os.Signal) {
	status := 128 + int(sig.(syscall.Signal))
	switch st.level.Add(1) {
	case 1:
		a.log.Info().Str("signal", sig.String()).Msg("graceful shutdown scheduled")
		a.loop.Post(func() { a.Shutdown(status) })
	case 2:
		a.log.Warn().Str("signal", sig.String()).Msg("forced exit scheduled")
		a.loop.Post(func() { a.ForcedExit(status) })
	default:
		// Third delivery: the loop may be wedged, bypass it entirely.
		a.deps.Exit(status)
	}
}
