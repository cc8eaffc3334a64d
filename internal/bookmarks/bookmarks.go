// Package bookmarks implements the named quickmark store.
package bookmarks

import (
	"context"
	"fmt"
	"sync"

	"github.com/quellbrowser/quell/internal/state"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a quickmark name is unknown.
var ErrNotFound = fmt.Errorf("bookmarks: no such quickmark")

// Store keeps quickmarks in memory and writes them through to the state
// database on save.
type Store struct {
	mu    sync.Mutex
	marks map[string]string
	repo  *state.BookmarkRepo
	log   zerolog.Logger
}

// NewStore loads quickmarks from the repository.
func NewStore(ctx context.Context, repo *state.BookmarkRepo, log zerolog.Logger) (*Store, error) {
	all, err := repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load quickmarks: %w", err)
	}
	marks := make(map[string]string, len(all))
	for _, b := range all {
		marks[b.Name] = b.URL
	}
	return &Store{
		marks: marks,
		repo:  repo,
		log:   log.With().Str("component", "bookmarks").Logger(),
	}, nil
}

// Add sets or replaces a quickmark.
func (s *Store) Add(name, url string) {
	s.mu.Lock()
	s.marks[name] = url
	s.mu.Unlock()
	s.log.Debug().Str("name", name).Msg("quickmark added")
}

// Remove deletes a quickmark; unknown names return ErrNotFound.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.marks[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(s.marks, name)
	return nil
}

// Get resolves a quickmark name to its URL.
func (s *Store) Get(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url, ok := s.marks[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return url, nil
}

// Len returns the number of quickmarks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.marks)
}

// Save writes the current quickmarks through to the database. Entries
// removed in memory are removed from the database too.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	snapshot := make(map[string]string, len(s.marks))
	for k, v := range s.marks {
		snapshot[k] = v
	}
	s.mu.Unlock()

	stored, err := s.repo.All(ctx)
	if err != nil {
		return fmt.Errorf("save quickmarks: %w", err)
	}
	for _, b := range stored {
		if _, ok := snapshot[b.Name]; !ok {
			if err := s.repo.Remove(ctx, b.Name); err != nil {
				return fmt.Errorf("save quickmarks: %w", err)
			}
		}
	}
	for name, url := range snapshot {
		if err := s.repo.Put(ctx, state.Bookmark{Name: name, URL: url}); err != nil {
			return fmt.Errorf("save quickmarks: %w", err)
		}
	}
	return nil
}
