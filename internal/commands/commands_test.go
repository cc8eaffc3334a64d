package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/quellbrowser/quell/internal/logging"
	"github.com/quellbrowser/quell/internal/message"
	"github.com/quellbrowser/quell/internal/state"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorSink struct{ errors []string }

func (s *errorSink) DispError(text string) { s.errors = append(s.errors, text) }
func (s *errorSink) DispInfo(string)       {}

func newTestRunner(t *testing.T) (*Runner, *errorSink) {
	t.Helper()
	bridge := message.NewBridge(zerolog.Nop())
	sink := &errorSink{}
	bridge.Attach(sink)
	return NewRunner(bridge, zerolog.Nop()), sink
}

func TestRunner_DispatchAndArgChecks(t *testing.T) {
	r, _ := newTestRunner(t)
	var got []string
	r.Register(Command{
		Name: "open", MinArgs: 1, MaxArgs: 1,
		Run: func(args []string) error { got = args; return nil },
	})

	require.NoError(t, r.Run(":open https://example.com"))
	assert.Equal(t, []string{"https://example.com"}, got)

	// Leading colon is optional; whitespace is tolerated.
	require.NoError(t, r.Run("  open x  "))

	assert.Error(t, r.Run(":open"))
	assert.Error(t, r.Run(":open a b"))
	assert.Error(t, r.Run(":nosuch"))
	assert.Error(t, r.Run(":"))
}

func TestRunner_RunSafelyRoutesToBridge(t *testing.T) {
	r, sink := newTestRunner(t)
	r.RunSafely(":nosuch")
	require.Len(t, sink.errors, 1)
	assert.Contains(t, sink.errors[0], "nosuch")
}

func TestRunner_CommandErrorPropagates(t *testing.T) {
	r, _ := newTestRunner(t)
	r.Register(Command{
		Name: "boom", MaxArgs: -1,
		Run: func([]string) error { return fmt.Errorf("exploded") },
	})
	assert.EqualError(t, r.Run("boom"), "exploded")
}

type fakeSearcher struct {
	term    string
	cleared bool
	calls   int
}

func (f *fakeSearcher) FindText(text string, _ bool) int {
	f.term = text
	f.calls++
	return 3
}
func (f *fakeSearcher) ClearSearch() { f.cleared = true }

func TestSearchRunner(t *testing.T) {
	fs := &fakeSearcher{}
	r := NewSearchRunner(fs, func() bool { return true }, zerolog.Nop())

	assert.Equal(t, 3, r.Search("needle"))
	assert.Equal(t, "needle", r.LastTerm())
	assert.Equal(t, 3, r.Repeat())
	assert.Equal(t, 2, fs.calls)

	assert.Equal(t, 0, r.Search("  "))
	assert.True(t, fs.cleared)
	assert.Equal(t, 0, r.Repeat(), "no repeat after clear")
}

func openHistoryRepo(t *testing.T) *state.HistoryRepo {
	t.Helper()
	ctx := logging.WithContext(context.Background(), zerolog.Nop())
	store, err := state.Open(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.CommandHistory()
}

func TestHistory_BoundedAndDeduped(t *testing.T) {
	ctx := context.Background()
	h, err := NewHistory(ctx, openHistoryRepo(t), 3)
	require.NoError(t, err)

	h.Append("a")
	h.Append("a") // consecutive duplicate collapsed
	h.Append("b")
	h.Append("c")
	h.Append("d")

	assert.Equal(t, []string{"b", "c", "d"}, h.Entries())
}

func TestHistory_SaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openHistoryRepo(t)

	h, err := NewHistory(ctx, repo, 10)
	require.NoError(t, err)
	h.Append("open a")
	h.Append("quit")
	require.NoError(t, h.Save(ctx))
	require.NoError(t, h.Save(ctx), "second save writes nothing new")

	h2, err := NewHistory(ctx, repo, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"open a", "quit"}, h2.Entries())
}
