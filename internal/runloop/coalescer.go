package runloop

import "sync"

// Coalescer merges bursts of same-key loop tasks: many Post calls for one
// key between two loop iterations run the latest callback once.
type Coalescer struct {
	mu      sync.Mutex
	queued  map[string]func()
	loop    *Loop
	stopped bool
}

// NewCoalescer creates a coalescer that schedules onto loop.
func NewCoalescer(loop *Loop) *Coalescer {
	if loop == nil {
		panic("runloop.NewCoalescer: loop cannot be nil")
	}
	return &Coalescer{
		queued: make(map[string]func()),
		loop:   loop,
	}
}

// Post schedules fn under key. If a task for key is already pending, fn
// replaces its callback and no additional loop iteration is consumed.
func (c *Coalescer) Post(key string, fn func()) {
	if key == "" || fn == nil {
		return
	}

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	_, pending := c.queued[key]
	c.queued[key] = fn
	c.mu.Unlock()

	if pending {
		return
	}

	c.loop.Post(func() {
		c.mu.Lock()
		fn := c.queued[key]
		delete(c.queued, key)
		stopped := c.stopped
		c.mu.Unlock()

		if fn != nil && !stopped {
			fn()
		}
	})
}

// Stop drops pending tasks and rejects new ones.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	c.stopped = true
	clear(c.queued)
	c.mu.Unlock()
}
