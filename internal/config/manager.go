package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, saving, and change
// callbacks. Callbacks fire on viper's watch goroutine; consumers that need
// loop affinity must re-post themselves.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	viper     *viper.Viper
	bindings  *viper.Viper
	callbacks []func(*Config)
	watching  bool
	log       zerolog.Logger
}

// NewManager creates a configuration manager rooted at the user config dir.
func NewManager(log zerolog.Logger) (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("QUELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	b := viper.New()
	b.SetConfigName("bindings")
	b.SetConfigType("toml")
	b.AddConfigPath(configDir)

	return &Manager{
		viper:    v,
		bindings: b,
		log:      log.With().Str("component", "config").Logger(),
	}, nil
}

// Load reads configuration from file and environment. A missing file is not
// an error; defaults apply and the file is created on the next Save.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
		m.log.Debug().Msg("no config file found, using defaults")
	}

	var cfg Config
	if err := m.viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	m.config = &cfg

	if err := m.bindings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			m.log.Warn().Err(err).Msg("failed to read key bindings")
		}
	}
	return nil
}

func (m *Manager) setDefaults() {
	m.viper.SetDefault("general.start_pages", []string{"https://start.duckduckgo.com"})
	m.viper.SetDefault("general.auto_save_config", true)
	m.viper.SetDefault("ui.confirm_quit", "never")
	m.viper.SetDefault("completion.height", "50%")
	m.viper.SetDefault("completion.shrink", false)
	m.viper.SetDefault("search.ignore_case", true)
	m.viper.SetDefault("network.proxy", "system")
	m.viper.SetDefault("network.cache_size_mb", 50)
	m.viper.SetDefault("network.cookies_store", true)
	m.viper.SetDefault("logging.level", "info")
	m.viper.SetDefault("logging.format", "console")
}

// Get returns the current configuration snapshot.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// OnChange registers a callback invoked after every successful reload.
func (m *Manager) OnChange(cb func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}

// Watch starts watching the config file and reloads on external changes.
func (m *Manager) Watch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watching {
		return
	}
	m.watching = true

	m.viper.OnConfigChange(func(e fsnotify.Event) {
		m.log.Debug().Str("op", e.Op.String()).Str("file", e.Name).
			Msg("config change detected")
		if err := m.reload(); err != nil {
			m.log.Warn().Err(err).Msg("failed to reload config")
			return
		}
		m.notify()
	})
	m.viper.WatchConfig()
}

// Reload re-reads the config file and fires change callbacks, the same path
// the file watcher takes. Useful when the watcher cannot be relied on, e.g.
// network filesystems.
func (m *Manager) Reload() error {
	m.mu.Lock()
	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			m.mu.Unlock()
			return fmt.Errorf("read config: %w", err)
		}
	}
	m.mu.Unlock()

	if err := m.reload(); err != nil {
		return err
	}
	m.notify()
	return nil
}

func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cfg Config
	if err := m.viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return err
	}
	m.config = &cfg
	return nil
}

func (m *Manager) notify() {
	m.mu.RLock()
	cfg := m.config
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.RUnlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

// Save persists the current configuration to disk.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if err := m.viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SaveBindings persists the key-binding configuration to disk.
func (m *Manager) SaveBindings() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	path := filepath.Join(configDir, "bindings.toml")
	if err := m.bindings.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write bindings: %w", err)
	}
	return nil
}

// Binding returns the action bound to a key sequence, if any.
func (m *Manager) Binding(keys string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.bindings.IsSet(keys) {
		return "", false
	}
	return m.bindings.GetString(keys), true
}

// SetBinding binds a key sequence to an action.
func (m *Manager) SetBinding(keys, action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings.Set(keys, action)
}
