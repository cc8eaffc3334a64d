// Package session builds point-in-time snapshots of the browsing state for
// crash recovery and restart. Snapshots are built on demand, never
// continuously persisted.
package session

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/quellbrowser/quell/internal/commands"
	"github.com/quellbrowser/quell/internal/registry"
	"github.com/quellbrowser/quell/internal/state"
	"github.com/rs/zerolog"
)

// PageLister reports the currently open page addresses. The tabbed view
// implements this.
type PageLister interface {
	PageURLs() []string
}

// Snapshot captures what a relaunched process needs to pick up where this
// one left off.
type Snapshot struct {
	ID       string
	Pages    []string
	Geometry string
	History  []string
}

// Build assembles a snapshot from whatever is still reachable through the
// registry. Every part is best-effort: a missing or broken subsystem yields
// an empty field, never an error, since this runs during crash handling.
func Build(reg *registry.Registry, log zerolog.Logger) Snapshot {
	snap := Snapshot{ID: uuid.NewString()}

	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().Interface("panic", r).Msg("page recovery failed")
			}
		}()
		lister, err := registry.As[PageLister](reg, registry.ScopeGlobal, registry.KeyTabbedView)
		if err != nil {
			return
		}
		for _, raw := range lister.PageURLs() {
			snap.Pages = append(snap.Pages, StripCredentials(raw))
		}
	}()

	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().Interface("panic", r).Msg("history recovery failed")
			}
		}()
		hist, err := registry.As[*commands.History](reg, registry.ScopeGlobal, registry.KeyCommandHistory)
		if err != nil {
			return
		}
		snap.History = hist.Entries()
	}()

	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().Interface("panic", r).Msg("geometry recovery failed")
			}
		}()
		store, err := registry.As[*state.Store](reg, registry.ScopeGlobal, registry.KeyStateStore)
		if err != nil {
			return
		}
		blob, err := store.Get(context.Background(), "geometry", "mainwindow")
		if err != nil {
			return
		}
		snap.Geometry = blob
	}()

	return snap
}

// StripCredentials removes any userinfo from a page address. Unparseable
// addresses are returned unchanged.
func StripCredentials(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = nil
	return u.String()
}
