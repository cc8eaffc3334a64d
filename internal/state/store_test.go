package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/quellbrowser/quell/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := logging.WithContext(context.Background(), zerolog.Nop())
	store, err := Open(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_KeyValue(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "geometry", "mainwindow")
	assert.ErrorIs(t, err, ErrNoValue)

	require.NoError(t, store.Set(ctx, "geometry", "mainwindow", "AAAA"))
	got, err := store.Get(ctx, "geometry", "mainwindow")
	require.NoError(t, err)
	assert.Equal(t, "AAAA", got)

	// Upsert replaces.
	require.NoError(t, store.Set(ctx, "geometry", "mainwindow", "BBBB"))
	got, err = store.Get(ctx, "geometry", "mainwindow")
	require.NoError(t, err)
	assert.Equal(t, "BBBB", got)
}

func TestBookmarkRepo(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	repo := store.Bookmarks()

	require.NoError(t, repo.Put(ctx, Bookmark{Name: "b", URL: "https://b.example"}))
	require.NoError(t, repo.Put(ctx, Bookmark{Name: "a", URL: "https://a.example"}))
	require.NoError(t, repo.Put(ctx, Bookmark{Name: "a", URL: "https://a2.example"}))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "https://a2.example", all[0].URL)

	require.NoError(t, repo.Remove(ctx, "a"))
	require.NoError(t, repo.Remove(ctx, "never-existed"))
	all, err = repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCookieRepo(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	repo := store.Cookies()

	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, repo.Upsert(ctx, Cookie{
		Host: "example.com", Name: "sid", Value: "1", Expires: expires,
	}))
	require.NoError(t, repo.Upsert(ctx, Cookie{
		Host: "example.com", Name: "sid", Value: "2", Expires: expires,
	}))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "2", all[0].Value)
	assert.Equal(t, expires.Unix(), all[0].Expires.Unix())

	require.NoError(t, repo.Clear(ctx))
	all, err = repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHistoryRepo(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	repo := store.CommandHistory()

	now := time.Now()
	for _, cmd := range []string{"open a", "open b", "quit"} {
		require.NoError(t, repo.Append(ctx, cmd, now))
	}

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"open b", "quit"}, recent)
}
