package input

import (
	"sync"

	"github.com/rs/zerolog"
)

// KeyEvent is a decoded key press.
type KeyEvent struct {
	Rune rune
	Name string // symbolic name for non-printing keys ("Escape", "Return", ...)
	Ctrl bool
	Alt  bool
}

// Handler consumes key events for one mode. Returning true swallows the
// event; false lets it fall through to the widget under focus.
type Handler interface {
	HandleKey(ev KeyEvent) bool
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ev KeyEvent) bool

// HandleKey implements Handler.
func (f HandlerFunc) HandleKey(ev KeyEvent) bool { return f(ev) }

// Filter routes key events to the handler registered for the current mode.
// It is installed on each window and removed during shutdown so late events
// cannot reach half-torn-down handlers.
type Filter struct {
	mu       sync.Mutex
	modes    *Manager
	handlers map[Mode]Handler
	removed  bool
	log      zerolog.Logger
}

// NewFilter creates a filter bound to the mode manager.
func NewFilter(modes *Manager, log zerolog.Logger) *Filter {
	return &Filter{
		modes:    modes,
		handlers: make(map[Mode]Handler),
		log:      log.With().Str("component", "event-filter").Logger(),
	}
}

// SetHandler registers the handler for a mode, replacing any previous one.
func (f *Filter) SetHandler(mode Mode, h Handler) {
	f.mu.Lock()
	f.handlers[mode] = h
	f.mu.Unlock()
}

// Filter dispatches one event. After Remove it reports false for everything.
func (f *Filter) Filter(ev KeyEvent) bool {
	f.mu.Lock()
	if f.removed {
		f.mu.Unlock()
		return false
	}
	h := f.handlers[f.modes.Mode()]
	f.mu.Unlock()

	if h == nil {
		return false
	}
	return h.HandleKey(ev)
}

// Remove detaches the filter. Idempotent; part of shutdown stage 2.
func (f *Filter) Remove() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removed {
		return
	}
	f.removed = true
	f.log.Debug().Msg("event filter removed")
}
