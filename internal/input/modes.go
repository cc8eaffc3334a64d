// Package input implements the modal key handling layer: a mode manager
// plus a composed event filter that routes key events to per-mode handlers.
package input

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Mode is an input mode. Key events are interpreted differently per mode.
type Mode int

const (
	// ModeNormal is the default navigation mode.
	ModeNormal Mode = iota
	// ModeInsert passes keys through to the focused page element.
	ModeInsert
	// ModeCommand routes keys to the command line.
	ModeCommand
	// ModePrompt routes keys to an active yes/no question.
	ModePrompt
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeCommand:
		return "command"
	case ModePrompt:
		return "prompt"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Manager tracks the current input mode and notifies subscribers on change.
type Manager struct {
	mu        sync.Mutex
	mode      Mode
	listeners []func(old, new Mode)
	log       zerolog.Logger
}

// NewManager creates a manager starting in normal mode.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		mode: ModeNormal,
		log:  log.With().Str("component", "mode-manager").Logger(),
	}
}

// Mode returns the current mode.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Enter switches to mode and notifies listeners. Entering the current mode
// is a no-op.
func (m *Manager) Enter(mode Mode) {
	m.mu.Lock()
	old := m.mode
	if old == mode {
		m.mu.Unlock()
		return
	}
	m.mode = mode
	listeners := make([]func(old, new Mode), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	m.log.Debug().Stringer("from", old).Stringer("to", mode).Msg("mode change")
	for _, fn := range listeners {
		fn(old, mode)
	}
}

// OnChange registers a mode-change listener.
func (m *Manager) OnChange(fn func(old, new Mode)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}
