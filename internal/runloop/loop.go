// Package runloop implements the single-threaded cooperative dispatch loop
// that drives the application shell.
//
// All deferred work (shutdown stage 2, forced exit, restart) is posted as a
// zero-delay callback and executed on the next loop iteration, never inline.
// Posting is safe from any goroutine; execution happens only on the goroutine
// that called Run.
package runloop

import (
	"sync"
	"sync/atomic"
	"time"
)

const defaultQueueSize = 1024

// Loop is a single-threaded run loop. Tasks are executed in post order.
type Loop struct {
	tasks chan func()

	quitOnce sync.Once
	quit     chan struct{}
	status   atomic.Int32

	// nesting is only touched from the loop goroutine.
	nesting int
}

// New creates a loop with a bounded task queue.
func New() *Loop {
	return &Loop{
		tasks: make(chan func(), defaultQueueSize),
		quit:  make(chan struct{}),
	}
}

// Post enqueues fn for execution on the next loop iteration. It never
// executes fn inline. Post is safe to call from signal-handling goroutines;
// it performs a channel send and nothing else.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	select {
	case l.tasks <- fn:
	case <-l.quit:
		// Loop is exiting; the task would never run anyway.
	}
}

// Quit makes Run return with the given status once the current task
// finishes. Later calls keep the first status.
func (l *Loop) Quit(status int) {
	l.quitOnce.Do(func() {
		l.status.Store(int32(status))
		close(l.quit)
	})
}

// Run dispatches tasks until Quit is called and returns the quit status.
// It must be called exactly once, from the goroutine that owns the loop.
func (l *Loop) Run() int {
	for {
		select {
		case <-l.quit:
			return int(l.status.Load())
		case fn := <-l.tasks:
			fn()
		}
	}
}

// RunNested runs a modal sub-iteration of the same loop: it keeps
// dispatching tasks until done reports true or the loop quits. Used by the
// question prompter; shutdown logic consults Nested to avoid tearing the
// outer loop down from inside a sub-iteration.
func (l *Loop) RunNested(done func() bool) {
	l.nesting++
	defer func() { l.nesting-- }()

	for !done() {
		select {
		case <-l.quit:
			return
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Nested reports whether the caller is currently inside RunNested. Only
// meaningful on the loop goroutine.
func (l *Loop) Nested() bool {
	return l.nesting > 0
}

// Tick posts a no-op callback every interval until the returned stop
// function is called. It keeps the loop iterating so out-of-band requests
// (signal handoffs) are picked up promptly even when the UI is idle.
func (l *Loop) Tick(interval time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	stopped := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-ticker.C:
				l.Post(func() {})
			case <-stopped:
				return
			case <-l.quit:
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(stopped)
		})
	}
}
