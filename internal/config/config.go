// Package config holds the viper-backed configuration store.
package config

import "fmt"

// Config is the root configuration structure.
type Config struct {
	General    GeneralConfig    `mapstructure:"general" json:"general"`
	UI         UIConfig         `mapstructure:"ui" json:"ui"`
	Completion CompletionConfig `mapstructure:"completion" json:"completion"`
	Search     SearchConfig     `mapstructure:"search" json:"search"`
	Network    NetworkConfig    `mapstructure:"network" json:"network"`
	Logging    LoggingConfig    `mapstructure:"logging" json:"logging"`
}

// GeneralConfig holds behavior that doesn't belong anywhere else.
type GeneralConfig struct {
	StartPages     []string `mapstructure:"start_pages" json:"start_pages"`
	AutoSaveConfig bool     `mapstructure:"auto_save_config" json:"auto_save_config"`
}

// UIConfig holds window-level settings.
type UIConfig struct {
	// ConfirmQuit is one of "never", "multiple-tabs", "always".
	ConfirmQuit string `mapstructure:"confirm_quit" json:"confirm_quit"`
}

// CompletionConfig controls the completion overlay panel.
type CompletionConfig struct {
	// Height is an absolute pixel count ("300") or a percentage of the
	// window height ("50%").
	Height string `mapstructure:"height" json:"height"`
	Shrink bool   `mapstructure:"shrink" json:"shrink"`
}

// SearchConfig controls the search runner.
type SearchConfig struct {
	IgnoreCase bool `mapstructure:"ignore_case" json:"ignore_case"`
}

// NetworkConfig holds proxy and cache settings.
type NetworkConfig struct {
	// Proxy is "system", "none", or a proxy URL.
	Proxy        string `mapstructure:"proxy" json:"proxy"`
	CacheSizeMB  int    `mapstructure:"cache_size_mb" json:"cache_size_mb"`
	CookiesStore bool   `mapstructure:"cookies_store" json:"cookies_store"`
}

// LoggingConfig mirrors internal/logging.Config in file-friendly strings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// Validate rejects values the rest of the shell cannot work with.
func Validate(cfg *Config) error {
	switch cfg.UI.ConfirmQuit {
	case "never", "multiple-tabs", "always":
	default:
		return fmt.Errorf("ui.confirm_quit: invalid value %q", cfg.UI.ConfirmQuit)
	}
	if cfg.Completion.Height == "" {
		return fmt.Errorf("completion.height: must not be empty")
	}
	if cfg.Network.CacheSizeMB < 0 {
		return fmt.Errorf("network.cache_size_mb: must not be negative")
	}
	return nil
}
