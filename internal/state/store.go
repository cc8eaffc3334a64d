// Package state implements the on-disk state store: a small sqlite database
// holding the key-value state section (window geometry and friends),
// bookmarks, cookies, and command history.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quellbrowser/quell/internal/logging"
	"github.com/rs/zerolog"

	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver (pure Go)
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite WASM binary
)

const dbDirPerm = 0o750

// ErrNoValue is returned when a state key has never been set.
var ErrNoValue = errors.New("state: no value")

const schema = `
CREATE TABLE IF NOT EXISTS state (
	section TEXT NOT NULL,
	key     TEXT NOT NULL,
	value   TEXT NOT NULL,
	PRIMARY KEY (section, key)
);
CREATE TABLE IF NOT EXISTS bookmarks (
	name TEXT PRIMARY KEY,
	url  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS cookies (
	host    TEXT NOT NULL,
	name    TEXT NOT NULL,
	value   TEXT NOT NULL,
	expires INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (host, name)
);
CREATE TABLE IF NOT EXISTS command_history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	command    TEXT NOT NULL,
	entered_at INTEGER NOT NULL
);
`

// Store wraps the state database.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (creating if needed) the state database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	log := logging.FromContext(ctx)
	if path == "" {
		return nil, fmt.Errorf("state database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), dbDirPerm); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to state database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply state schema: %w", err)
	}

	return &Store{
		db:  db,
		log: log.With().Str("component", "state-store").Logger(),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under (section, key) or ErrNoValue.
func (s *Store) Get(ctx context.Context, section, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM state WHERE section = ? AND key = ?`,
		section, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoValue
	}
	if err != nil {
		return "", fmt.Errorf("read state %s/%s: %w", section, key, err)
	}
	return value, nil
}

// Set upserts the value stored under (section, key).
func (s *Store) Set(ctx context.Context, section, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO state (section, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (section, key) DO UPDATE SET value = excluded.value`,
		section, key, value)
	if err != nil {
		return fmt.Errorf("write state %s/%s: %w", section, key, err)
	}
	return nil
}

// Bookmarks returns the bookmark repository.
func (s *Store) Bookmarks() *BookmarkRepo {
	return &BookmarkRepo{db: s.db}
}

// Cookies returns the cookie repository.
func (s *Store) Cookies() *CookieRepo {
	return &CookieRepo{db: s.db}
}

// CommandHistory returns the command history repository.
func (s *Store) CommandHistory() *HistoryRepo {
	return &HistoryRepo{db: s.db}
}
