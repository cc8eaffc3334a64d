//go:build linux || darwin

package crash

import (
	"errors"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// markOwned takes a non-blocking exclusive flock on the live marker handle
// so a later instance can tell "held by a live process" from "leftover".
func (r *Recorder) markOwned() {
	if r.file == nil {
		return
	}
	if err := unix.Flock(int(r.file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		r.log.Debug().Err(err).Msg("could not lock crash marker")
	}
}

// markerHeldElsewhere probes whether another live process holds the marker.
func (r *Recorder) markerHeldElsewhere() bool {
	f, err := os.OpenFile(r.path, os.O_RDWR, markerFilePerm)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	err = unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
		return false
	}
	return errors.Is(err, unix.EWOULDBLOCK)
}

// registerDumpSignal wires SIGUSR1 to an immediate diagnostic dump. The
// returned function unregisters it.
func (r *Recorder) registerDumpSignal() func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGUSR1)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ch:
				r.DumpNow()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
