package config

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := Config{
		UI:         UIConfig{ConfirmQuit: "never"},
		Completion: CompletionConfig{Height: "50%"},
	}

	t.Run("valid", func(t *testing.T) {
		cfg := valid
		assert.NoError(t, Validate(&cfg))
	})

	t.Run("bad confirm_quit", func(t *testing.T) {
		cfg := valid
		cfg.UI.ConfirmQuit = "sometimes"
		assert.ErrorContains(t, Validate(&cfg), "confirm_quit")
	})

	t.Run("empty completion height", func(t *testing.T) {
		cfg := valid
		cfg.Completion.Height = ""
		assert.ErrorContains(t, Validate(&cfg), "completion.height")
	})

	t.Run("negative cache size", func(t *testing.T) {
		cfg := valid
		cfg.Network.CacheSizeMB = -1
		assert.ErrorContains(t, Validate(&cfg), "cache_size_mb")
	})
}

func TestManager_LoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	m, err := NewManager(zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	require.NotNil(t, cfg)
	assert.Equal(t, "never", cfg.UI.ConfirmQuit)
	assert.Equal(t, "50%", cfg.Completion.Height)
	assert.False(t, cfg.Completion.Shrink)
	assert.True(t, cfg.General.AutoSaveConfig)
	assert.NotEmpty(t, cfg.General.StartPages)
}

func TestManager_LoadFromFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, err := GetConfigDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(dir+"/config.toml", []byte(
		"[completion]\nheight = \"300\"\nshrink = true\n\n[ui]\nconfirm_quit = \"always\"\n",
	), 0o644))

	m, err := NewManager(zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "300", cfg.Completion.Height)
	assert.True(t, cfg.Completion.Shrink)
	assert.Equal(t, "always", cfg.UI.ConfirmQuit)
	// Untouched keys fall back to defaults.
	assert.Equal(t, "system", cfg.Network.Proxy)
}

func TestManager_Bindings(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	m, err := NewManager(zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Load())

	_, ok := m.Binding("gg")
	assert.False(t, ok)

	m.SetBinding("gg", "scroll-top")
	action, ok := m.Binding("gg")
	assert.True(t, ok)
	assert.Equal(t, "scroll-top", action)

	require.NoError(t, m.SaveBindings())
}

func TestGenerateSchemaFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	require.NoError(t, EnsureDirectories())

	path, err := GenerateSchemaFile()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Quell Configuration")
	assert.Contains(t, string(data), "completion")
}
