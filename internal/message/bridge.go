// Package message decouples subsystems from the statusbar and prompt
// widgets: anything can emit errors, infos, and questions without knowing
// what displays them.
package message

import (
	"sync"

	"github.com/rs/zerolog"
)

// Display receives user-facing messages. The statusbar implements this.
type Display interface {
	DispError(text string)
	DispInfo(text string)
}

// Bridge fans user-facing messages out to the attached display. Messages
// emitted before a display is attached only go to the log.
type Bridge struct {
	mu      sync.Mutex
	display Display
	log     zerolog.Logger
}

// NewBridge creates a bridge.
func NewBridge(log zerolog.Logger) *Bridge {
	return &Bridge{
		log: log.With().Str("component", "message-bridge").Logger(),
	}
}

// Attach sets the display that renders messages.
func (b *Bridge) Attach(d Display) {
	b.mu.Lock()
	b.display = d
	b.mu.Unlock()
}

// Error surfaces an error message to the user.
func (b *Bridge) Error(text string) {
	b.log.Error().Msg(text)
	b.mu.Lock()
	d := b.display
	b.mu.Unlock()
	if d != nil {
		d.DispError(text)
	}
}

// Info surfaces an informational message to the user.
func (b *Bridge) Info(text string) {
	b.log.Info().Msg(text)
	b.mu.Lock()
	d := b.display
	b.mu.Unlock()
	if d != nil {
		d.DispInfo(text)
	}
}
