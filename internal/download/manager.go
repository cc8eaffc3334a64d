// Package download holds the download collection and its list adapter.
//
// The manager owns the authoritative item list; the transfer logic itself
// lives behind it and is out of scope here. The adapter in model.go exposes
// the list to a view as an observable indexed sequence.
package download

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State is a download's lifecycle state.
type State int

const (
	StateRunning State = iota
	StateDone
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Item is one download.
type Item struct {
	ID       string
	URL      string
	Filename string
	State    State
	Received int64
	Total    int64
}

// DisplayText is the one-line representation shown in the download view.
func (it *Item) DisplayText() string {
	switch it.State {
	case StateRunning:
		if it.Total > 0 {
			return fmt.Sprintf("%s [%d%%]", it.Filename, it.Received*100/it.Total)
		}
		return fmt.Sprintf("%s [%d bytes]", it.Filename, it.Received)
	default:
		return fmt.Sprintf("%s [%s]", it.Filename, it.State)
	}
}

// Observer receives two-phase mutation notifications from the manager. Add
// and remove are announced before the mutation and confirmed after it, so an
// attached view can translate them into range updates.
type Observer interface {
	AboutToAdd(index int)
	Added(index int)
	AboutToRemove(index int)
	Removed(index int)
	DataChanged(index int)
}

// Manager owns the download list. Single observer: the list adapter.
type Manager struct {
	mu       sync.Mutex
	items    []*Item
	observer Observer
	log      zerolog.Logger
}

// NewManager creates an empty manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		log: log.With().Str("component", "download-manager").Logger(),
	}
}

// SetObserver attaches the adapter. Pass nil to detach.
func (m *Manager) SetObserver(o Observer) {
	m.mu.Lock()
	m.observer = o
	m.mu.Unlock()
}

// Len returns the number of downloads.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// At returns the item at index, or nil when out of range.
func (m *Manager) At(index int) *Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.items) {
		return nil
	}
	return m.items[index]
}

// Add appends a new download and returns it.
func (m *Manager) Add(url, filename string) *Item {
	it := &Item{
		ID:       uuid.NewString(),
		URL:      url,
		Filename: filename,
		State:    StateRunning,
		Total:    -1,
	}
	m.InsertAt(m.Len(), it)
	return it
}

// InsertAt inserts an item at index, clamping out-of-range indices.
func (m *Manager) InsertAt(index int, it *Item) {
	m.mu.Lock()
	if index < 0 {
		index = 0
	}
	if index > len(m.items) {
		index = len(m.items)
	}
	o := m.observer
	m.mu.Unlock()

	if o != nil {
		o.AboutToAdd(index)
	}
	m.mu.Lock()
	m.items = append(m.items, nil)
	copy(m.items[index+1:], m.items[index:])
	m.items[index] = it
	m.mu.Unlock()
	if o != nil {
		o.Added(index)
	}
	m.log.Debug().Str("url", it.URL).Int("index", index).Msg("download added")
}

// RemoveAt removes the item at index. Out-of-range indices are a no-op.
func (m *Manager) RemoveAt(index int) {
	m.mu.Lock()
	if index < 0 || index >= len(m.items) {
		m.mu.Unlock()
		return
	}
	o := m.observer
	m.mu.Unlock()

	if o != nil {
		o.AboutToRemove(index)
	}
	m.mu.Lock()
	m.items = append(m.items[:index], m.items[index+1:]...)
	m.mu.Unlock()
	if o != nil {
		o.Removed(index)
	}
}

// SetProgress updates an item's byte counters and notifies the view.
func (m *Manager) SetProgress(index int, received, total int64) {
	m.mu.Lock()
	if index < 0 || index >= len(m.items) {
		m.mu.Unlock()
		return
	}
	m.items[index].Received = received
	m.items[index].Total = total
	o := m.observer
	m.mu.Unlock()

	if o != nil {
		o.DataChanged(index)
	}
}

// SetState marks an item finished, failed or cancelled and notifies the view.
func (m *Manager) SetState(index int, s State) {
	m.mu.Lock()
	if index < 0 || index >= len(m.items) {
		m.mu.Unlock()
		return
	}
	m.items[index].State = s
	o := m.observer
	m.mu.Unlock()

	if o != nil {
		o.DataChanged(index)
	}
}

// URLs returns the download URLs, in list order.
func (m *Manager) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.items))
	for i, it := range m.items {
		out[i] = it.URL
	}
	return out
}
