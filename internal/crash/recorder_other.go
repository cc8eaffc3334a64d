//go:build !linux && !darwin

package crash

// markOwned is a no-op where flock is unavailable.
func (r *Recorder) markOwned() {}

// markerHeldElsewhere cannot be determined without flock.
func (r *Recorder) markerHeldElsewhere() bool { return false }

// registerDumpSignal is a no-op where SIGUSR1 does not exist.
func (r *Recorder) registerDumpSignal() func() {
	return func() {}
}
