package bookmarks

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/quellbrowser/quell/internal/logging"
	"github.com/quellbrowser/quell/internal/state"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRepo(t *testing.T) *state.BookmarkRepo {
	t.Helper()
	ctx := logging.WithContext(context.Background(), zerolog.Nop())
	store, err := state.Open(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.Bookmarks()
}

func TestStore_AddGetRemove(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(ctx, openTestRepo(t), zerolog.Nop())
	require.NoError(t, err)

	s.Add("docs", "https://go.dev/doc")
	url, err := s.Get("docs")
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev/doc", url)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Remove("docs"))
	assert.ErrorIs(t, s.Remove("docs"), ErrNotFound)
}

func TestStore_SaveRoundTripWithDeletes(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	s, err := NewStore(ctx, repo, zerolog.Nop())
	require.NoError(t, err)
	s.Add("a", "https://a.example")
	s.Add("b", "https://b.example")
	require.NoError(t, s.Save(ctx))

	s2, err := NewStore(ctx, repo, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, s2.Len())

	require.NoError(t, s2.Remove("a"))
	require.NoError(t, s2.Save(ctx))

	s3, err := NewStore(ctx, repo, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, s3.Len())
	_, err = s3.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}
