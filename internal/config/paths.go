package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName = "quell"
	dirPerm    = 0o755
)

// GetConfigDir returns the per-user configuration directory.
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// GetDataDir returns the per-user data directory. The crash marker and the
// state database live here.
func GetDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", appDirName), nil
}

// GetCacheDir returns the per-user cache directory.
func GetCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// EnsureDirectories creates the config, data, and cache directories.
func EnsureDirectories() error {
	for _, get := range []func() (string, error){GetConfigDir, GetDataDir, GetCacheDir} {
		dir, err := get()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
