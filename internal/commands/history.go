package commands

import (
	"context"
	"sync"
	"time"

	"github.com/quellbrowser/quell/internal/state"
)

// DefaultHistorySize bounds the in-memory command history ring.
const DefaultHistorySize = 100

// History is a bounded ring of entered commands, seeded from and saved to
// the state database.
type History struct {
	mu      sync.Mutex
	entries []string
	max     int
	unsaved []string
	repo    *state.HistoryRepo
}

// NewHistory loads up to max recent commands from the repository.
func NewHistory(ctx context.Context, repo *state.HistoryRepo, max int) (*History, error) {
	if max <= 0 {
		max = DefaultHistorySize
	}
	recent, err := repo.Recent(ctx, max)
	if err != nil {
		return nil, err
	}
	return &History{entries: recent, max: max, repo: repo}, nil
}

// Append records one entered command. Consecutive duplicates are collapsed.
func (h *History) Append(command string) {
	if command == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.entries); n > 0 && h.entries[n-1] == command {
		return
	}
	h.entries = append(h.entries, command)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
	h.unsaved = append(h.unsaved, command)
}

// Entries returns the history oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Save persists commands appended since the last save.
func (h *History) Save(ctx context.Context) error {
	h.mu.Lock()
	pending := h.unsaved
	h.unsaved = nil
	h.mu.Unlock()

	now := time.Now()
	for i, cmd := range pending {
		if err := h.repo.Append(ctx, cmd, now); err != nil {
			// Keep what we could not write for the next attempt.
			h.mu.Lock()
			h.unsaved = append(pending[i:], h.unsaved...)
			h.mu.Unlock()
			return err
		}
	}
	return nil
}
