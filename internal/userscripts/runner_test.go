package userscripts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600))
}

func TestRunner_InitLoadsInOrderAndSkipsBroken(t *testing.T) {
	dir := t.TempDir()
	var notes []string
	r, err := NewRunner(dir, Host{
		Notify: func(text string) { notes = append(notes, text) },
	}, zerolog.Nop())
	require.NoError(t, err)

	writeScript(t, dir, "20-second.js", `quell.notify("second")`)
	writeScript(t, dir, "10-first.js", `quell.notify("first")`)
	writeScript(t, dir, "15-broken.js", `this is not javascript`)
	writeScript(t, dir, "notes.txt", `ignored`)

	require.NoError(t, r.Init())
	assert.Equal(t, []string{"first", "second"}, notes)
	assert.Equal(t, []string{"10-first.js", "20-second.js"}, r.Loaded())
}

func TestRunner_InitMissingDirIsFine(t *testing.T) {
	r, err := NewRunner(filepath.Join(t.TempDir(), "nope"), Host{}, zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, r.Init())
}

func TestRunner_Eval(t *testing.T) {
	r, err := NewRunner(t.TempDir(), Host{}, zerolog.Nop())
	require.NoError(t, err)

	out, err := r.Eval("6 * 7")
	require.NoError(t, err)
	assert.Equal(t, "42", out)

	out, err = r.Eval("var x = 1;")
	require.NoError(t, err)
	assert.Equal(t, "undefined", out)

	_, err = r.Eval("throw new Error('boom')")
	assert.Error(t, err)
}

func TestRunner_HostOpen(t *testing.T) {
	var opened string
	r, err := NewRunner(t.TempDir(), Host{
		Open: func(u string) { opened = u },
	}, zerolog.Nop())
	require.NoError(t, err)

	_, err = r.Eval(`quell.open("https://example.com")`)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", opened)
}
