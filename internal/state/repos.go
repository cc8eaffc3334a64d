package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Bookmark is a named page address.
type Bookmark struct {
	Name string
	URL  string
}

// BookmarkRepo persists bookmarks.
type BookmarkRepo struct {
	db *sql.DB
}

// Put inserts or replaces a bookmark.
func (r *BookmarkRepo) Put(ctx context.Context, b Bookmark) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks (name, url) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET url = excluded.url`,
		b.Name, b.URL)
	if err != nil {
		return fmt.Errorf("save bookmark %q: %w", b.Name, err)
	}
	return nil
}

// Remove deletes a bookmark by name. Missing names are not an error.
func (r *BookmarkRepo) Remove(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("remove bookmark %q: %w", name, err)
	}
	return nil
}

// All returns all bookmarks ordered by name.
func (r *BookmarkRepo) All(ctx context.Context) ([]Bookmark, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, url FROM bookmarks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.Name, &b.URL); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Cookie is one persisted cookie.
type Cookie struct {
	Host    string
	Name    string
	Value   string
	Expires time.Time
}

// CookieRepo persists cookies.
type CookieRepo struct {
	db *sql.DB
}

// Upsert inserts or replaces a cookie.
func (r *CookieRepo) Upsert(ctx context.Context, c Cookie) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cookies (host, name, value, expires) VALUES (?, ?, ?, ?)
		 ON CONFLICT (host, name) DO UPDATE
		 SET value = excluded.value, expires = excluded.expires`,
		c.Host, c.Name, c.Value, c.Expires.Unix())
	if err != nil {
		return fmt.Errorf("save cookie %s/%s: %w", c.Host, c.Name, err)
	}
	return nil
}

// All returns every persisted cookie.
func (r *CookieRepo) All(ctx context.Context) ([]Cookie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT host, name, value, expires FROM cookies ORDER BY host, name`)
	if err != nil {
		return nil, fmt.Errorf("list cookies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Cookie
	for rows.Next() {
		var c Cookie
		var expires int64
		if err := rows.Scan(&c.Host, &c.Name, &c.Value, &expires); err != nil {
			return nil, err
		}
		c.Expires = time.Unix(expires, 0)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Clear removes all cookies.
func (r *CookieRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cookies`); err != nil {
		return fmt.Errorf("clear cookies: %w", err)
	}
	return nil
}

// HistoryRepo persists entered commands across runs.
type HistoryRepo struct {
	db *sql.DB
}

// Append records one entered command.
func (r *HistoryRepo) Append(ctx context.Context, command string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO command_history (command, entered_at) VALUES (?, ?)`,
		command, at.Unix())
	if err != nil {
		return fmt.Errorf("append command history: %w", err)
	}
	return nil
}

// Recent returns up to limit most recent commands, oldest first.
func (r *HistoryRepo) Recent(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT command FROM (
			SELECT id, command FROM command_history ORDER BY id DESC LIMIT ?
		 ) ORDER BY id ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("read command history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var cmd string
		if err := rows.Scan(&cmd); err != nil {
			return nil, err
		}
		out = append(out, cmd)
	}
	return out, rows.Err()
}
