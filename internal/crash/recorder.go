// Package crash implements the persistent crash marker and fault capture.
//
// A marker file in the user data directory records whether the previous run
// exited cleanly. Absent means clean; non-empty means an unprocessed fault
// from a previous run; present-but-empty means another live instance most
// likely owns fault capture, so this one degrades to none.
package crash

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/quellbrowser/quell/internal/logging"
	"github.com/rs/zerolog"
)

const (
	// MarkerName is the marker file name inside the data directory.
	MarkerName = "crash.log"

	markerDirPerm  = 0o755
	markerFilePerm = 0o644

	dumpBufferSize = 1 << 20
)

// State is the recorder's position in its lifecycle.
type State int

const (
	// Uninitialized means Init has not run yet.
	Uninitialized State = iota
	// CleanReady means fault capture is armed against a fresh marker.
	CleanReady
	// StaleIgnore means an empty marker exists that this process does not
	// own; fault capture is disabled for this run.
	StaleIgnore
	// Recovering means a prior fault was found; its content is available
	// through PriorFault until the caller surfaces it.
	Recovering
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case CleanReady:
		return "clean-ready"
	case StaleIgnore:
		return "stale-ignore"
	case Recovering:
		return "recovering"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Recorder owns the marker file and the runtime fault-output routing.
// The file handle is guarded because the diagnostic-signal goroutine writes
// dumps while the loop goroutine may be tearing the recorder down.
type Recorder struct {
	log        zerolog.Logger
	path       string
	mu         sync.Mutex
	file       *os.File
	state      State
	priorFault string
	stopSignal func()
}

// NewRecorder creates a recorder for the marker file under dataDir. Call
// Init to run the startup state machine.
func NewRecorder(ctx context.Context, dataDir string) *Recorder {
	log := logging.FromContext(ctx)
	return &Recorder{
		log:  log.With().Str("component", "crash-recorder").Logger(),
		path: filepath.Join(dataDir, MarkerName),
	}
}

// Init inspects the marker left by the previous run and arms fault capture
// where possible. It is not an error for capture to end up disabled; that
// is the StaleIgnore degradation.
func (r *Recorder) Init() error {
	data, err := os.ReadFile(r.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Clean previous exit; start a fresh marker.
		if err := r.arm(); err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("read crash marker: %w", err)
	case len(data) > 0:
		// Unprocessed fault from a previous run.
		r.priorFault = RedactSensitive(string(data))
		r.state = Recovering
		if rmErr := os.Remove(r.path); rmErr != nil {
			r.log.Warn().Err(rmErr).Str("path", r.path).
				Msg("could not remove crash marker; fault capture disabled")
			return nil
		}
		if err := r.arm(); err != nil {
			return err
		}
		r.state = Recovering
	default:
		// Empty marker: another instance probably holds it. Leave the
		// file alone and run without persistent fault capture.
		r.state = StaleIgnore
		r.log.Warn().Str("path", r.path).
			Bool("held_by_live_process", r.markerHeldElsewhere()).
			Msg("empty crash marker detected; either another instance is " +
				"running (ignore this) or the file is a leftover (delete it)")
	}
	return nil
}

// arm creates the marker, routes runtime fatal output to it, and registers
// the auxiliary diagnostic signal where the platform has one.
func (r *Recorder) arm() error {
	if err := os.MkdirAll(filepath.Dir(r.path), markerDirPerm); err != nil {
		return fmt.Errorf("create marker directory: %w", err)
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, markerFilePerm)
	if err != nil {
		return fmt.Errorf("create crash marker: %w", err)
	}
	if err := debug.SetCrashOutput(f, debug.CrashOptions{}); err != nil {
		_ = f.Close()
		return fmt.Errorf("route crash output: %w", err)
	}
	r.file = f
	r.markOwned()
	r.stopSignal = r.registerDumpSignal()
	if r.state == Uninitialized {
		r.state = CleanReady
	}
	return nil
}

// State returns the recorder's current state.
func (r *Recorder) State() State {
	return r.state
}

// PriorFault returns the redacted diagnostic text recovered from the
// previous run, or "" when there was none.
func (r *Recorder) PriorFault() string {
	return r.priorFault
}

// Enabled reports whether fault capture is armed.
func (r *Recorder) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file != nil
}

// AckRecovered transitions Recovering to CleanReady once the prior fault
// has been surfaced to the user.
func (r *Recorder) AckRecovered() {
	if r.state == Recovering {
		if r.file != nil {
			r.state = CleanReady
		} else {
			r.state = StaleIgnore
		}
	}
}

// DumpNow appends a full goroutine dump to the marker file. Wired to the
// auxiliary diagnostic signal; also callable from the debug console.
func (r *Recorder) DumpNow() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		r.log.Warn().Msg("diagnostic dump requested but fault capture is disabled")
		return
	}
	buf := make([]byte, dumpBufferSize)
	n := runtime.Stack(buf, true)
	if _, err := r.file.Write(buf[:n]); err != nil {
		r.log.Error().Err(err).Msg("failed to write diagnostic dump")
		return
	}
	_ = r.file.Sync()
	r.log.Info().Int("bytes", n).Msg("diagnostic dump written to crash marker")
}

// RecordPanic writes a recovered panic with its stack to the marker so it
// survives into the next run even if the crash dialog itself fails.
func (r *Recorder) RecordPanic(value any, stack []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return
	}
	fmt.Fprintf(r.file, "panic: %v\n\n%s\n", value, stack)
	_ = r.file.Sync()
}

// Disable detaches fault capture and deletes the marker. Part of graceful
// shutdown; a failing delete is logged, never fatal, because nothing may
// prevent process exit at that point. Safe to call in any state.
func (r *Recorder) Disable() {
	if r.stopSignal != nil {
		r.stopSignal()
		r.stopSignal = nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return
	}
	if err := debug.SetCrashOutput(nil, debug.CrashOptions{}); err != nil {
		r.log.Warn().Err(err).Msg("failed to restore crash output")
	}
	if err := r.file.Close(); err != nil {
		r.log.Debug().Err(err).Msg("crash marker close failed")
	}
	r.file = nil
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.log.Warn().Err(err).Str("path", r.path).Msg("could not remove crash marker")
	}
	r.state = Uninitialized
}
