package web

import (
	"sync"

	"github.com/quellbrowser/quell/internal/config"
	"github.com/rs/zerolog"
)

// Settings is the page-level settings bridge. Views read it when they are
// created; config reloads push updates through Apply.
type Settings struct {
	mu         sync.RWMutex
	ignoreCase bool
	proxy      ProxyFunc
	log        zerolog.Logger
}

// NewSettings builds the bridge from the loaded config.
func NewSettings(cfg *config.Config, log zerolog.Logger) (*Settings, error) {
	s := &Settings{
		log: log.With().Str("component", "web-settings").Logger(),
	}
	if err := s.Apply(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply re-reads the settings-relevant config values. Called on startup and
// on every config reload.
func (s *Settings) Apply(cfg *config.Config) error {
	proxy, err := ResolveProxy(cfg.Network.Proxy)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ignoreCase = cfg.Search.IgnoreCase
	s.proxy = proxy
	s.mu.Unlock()
	s.log.Debug().Str("proxy", cfg.Network.Proxy).Msg("settings applied")
	return nil
}

// SearchIgnoreCase reports whether in-page search is case-insensitive.
func (s *Settings) SearchIgnoreCase() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ignoreCase
}

// Proxy returns the active proxy function.
func (s *Settings) Proxy() ProxyFunc {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.proxy
}
