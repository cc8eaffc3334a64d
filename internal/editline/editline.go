// Package editline holds the shared line-edit state used to recall the last
// deleted text across command prompts and form fields.
package editline

import "sync"

// Bridge stores the most recently deleted text so a later yank can recall
// it. One instance is shared by all windows.
type Bridge struct {
	mu      sync.Mutex
	deleted string
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Remember stores text that was just deleted. Empty deletions are ignored so
// they do not clobber the recall buffer.
func (b *Bridge) Remember(text string) {
	if text == "" {
		return
	}
	b.mu.Lock()
	b.deleted = text
	b.mu.Unlock()
}

// Recall returns the last deleted text, or "" if nothing was deleted yet.
func (b *Bridge) Recall() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deleted
}
