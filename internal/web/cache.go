package web

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const cacheDirPerm = 0o750

// DiskCache manages the on-disk page cache directory.
type DiskCache struct {
	dir     string
	limitMB int
	log     zerolog.Logger
}

// NewDiskCache creates the cache directory under root. A limit of 0 disables
// the cache (the directory is still created so later enables need no
// migration).
func NewDiskCache(root string, limitMB int, log zerolog.Logger) (*DiskCache, error) {
	dir := filepath.Join(root, "webcache")
	if err := os.MkdirAll(dir, cacheDirPerm); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &DiskCache{
		dir:     dir,
		limitMB: limitMB,
		log:     log.With().Str("component", "disk-cache").Logger(),
	}, nil
}

// Dir returns the cache directory path.
func (c *DiskCache) Dir() string { return c.dir }

// Enabled reports whether caching is on.
func (c *DiskCache) Enabled() bool { return c.limitMB > 0 }

// LimitBytes returns the configured size limit.
func (c *DiskCache) LimitBytes() int64 { return int64(c.limitMB) * 1024 * 1024 }

// Clear removes all cached entries, keeping the directory itself.
func (c *DiskCache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("read cache directory: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("clear cache entry %s: %w", e.Name(), err)
		}
	}
	c.log.Info().Int("entries", len(entries)).Msg("cache cleared")
	return nil
}
