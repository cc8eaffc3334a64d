package console

import (
	"testing"

	"github.com/quellbrowser/quell/internal/registry"
	"github.com/quellbrowser/quell/internal/userscripts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_Builtins(t *testing.T) {
	reg := registry.New(zerolog.Nop())
	require.NoError(t, reg.Register(registry.ScopeGlobal, "thing", 42))
	c := New(reg, nil, zerolog.Nop())

	assert.Contains(t, c.Eval("!registry"), "thing")
	assert.Contains(t, c.Eval("!registry global"), "thing")
	assert.Contains(t, c.Eval("!bogus"), "unknown console command")
	assert.Equal(t, "", c.Eval("   "))
}

func TestConsole_Eval(t *testing.T) {
	reg := registry.New(zerolog.Nop())

	noEngine := New(reg, nil, zerolog.Nop())
	assert.Equal(t, "script engine unavailable", noEngine.Eval("1+1"))

	runner, err := userscripts.NewRunner(t.TempDir(), userscripts.Host{}, zerolog.Nop())
	require.NoError(t, err)
	c := New(reg, runner, zerolog.Nop())

	assert.Equal(t, "2", c.Eval("1+1"))
	assert.Contains(t, c.Eval("nope("), "error:")
}
