package registry

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	return New(zerolog.Nop())
}

func TestRegistry_RegisterGet(t *testing.T) {
	reg := newTestRegistry()

	obj := &struct{ name string }{"downloads"}
	require.NoError(t, reg.Register(ScopeGlobal, KeyDownloadManager, obj))

	got, err := reg.Get(ScopeGlobal, KeyDownloadManager)
	require.NoError(t, err)
	assert.Same(t, obj, got)
}

func TestRegistry_GetMissing(t *testing.T) {
	reg := newTestRegistry()

	_, err := reg.Get(ScopeGlobal, "nothing")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, ScopeGlobal, notFound.Scope)
	assert.Equal(t, "nothing", notFound.Key)

	_, ok := reg.Lookup(ScopeGlobal, "nothing")
	assert.False(t, ok)
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	reg := newTestRegistry()

	require.NoError(t, reg.Register(ScopeGlobal, "thing", 1))
	require.NoError(t, reg.Register(ScopeGlobal, "thing", 2))

	got, err := reg.Get(ScopeGlobal, "thing")
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestRegistry_UniqueRejectsDuplicate(t *testing.T) {
	reg := newTestRegistry()

	require.NoError(t, reg.Register(ScopeGlobal, "thing", 1, Unique()))
	err := reg.Register(ScopeGlobal, "thing", 2, Unique())

	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "thing", dup.Key)

	// The original entry survives.
	got, err := reg.Get(ScopeGlobal, "thing")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestRegistry_ClearScope(t *testing.T) {
	reg := newTestRegistry()
	scope := WindowScope("w1")

	require.NoError(t, reg.Register(scope, "a", 1))
	require.NoError(t, reg.Register(scope, "b", 2))
	require.NoError(t, reg.Register(ScopeGlobal, "c", 3))

	reg.Clear(scope)

	for _, key := range []string{"a", "b"} {
		_, err := reg.Get(scope, key)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound, "key %q should be gone", key)
	}

	// Other scopes are untouched.
	_, err := reg.Get(ScopeGlobal, "c")
	assert.NoError(t, err)

	// Clearing again, and clearing a scope that never existed, is fine.
	reg.Clear(scope)
	reg.Clear(WindowScope("never"))
}

func TestRegistry_ClearAll(t *testing.T) {
	reg := newTestRegistry()
	require.NoError(t, reg.Register(ScopeGlobal, "a", 1))
	require.NoError(t, reg.Register(WindowScope("w1"), "b", 2))

	reg.ClearAll()

	_, err := reg.Get(ScopeGlobal, "a")
	assert.Error(t, err)
	_, err = reg.Get(WindowScope("w1"), "b")
	assert.Error(t, err)
}

type panickyStringer struct{}

func (panickyStringer) String() string { panic("no repr for you") }

func TestRegistry_DumpSurvivesPanickyStringer(t *testing.T) {
	reg := newTestRegistry()
	require.NoError(t, reg.Register(ScopeGlobal, "bad", panickyStringer{}))
	require.NoError(t, reg.Register(ScopeGlobal, "good", "fine"))

	lines := reg.Dump(ScopeGlobal)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "unrepresentable")
	assert.Equal(t, "good: fine", lines[1])
}

func TestRegistry_DumpAll(t *testing.T) {
	reg := newTestRegistry()
	require.NoError(t, reg.Register(ScopeGlobal, "a", 1))
	require.NoError(t, reg.Register(WindowScope("w1"), "b", 2))

	out := reg.DumpAll()
	assert.Contains(t, out, "global object registry - 1 objects:")
	assert.Contains(t, out, "window:w1 object registry - 1 objects:")
	assert.Contains(t, out, "    a: 1")
}

func TestRegistry_As(t *testing.T) {
	reg := newTestRegistry()
	require.NoError(t, reg.Register(ScopeGlobal, "n", 42))

	n, err := As[int](reg, ScopeGlobal, "n")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = As[string](reg, ScopeGlobal, "n")
	assert.Error(t, err)

	_, err = As[int](reg, ScopeGlobal, "missing")
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
