package commands

import (
	"strings"

	"github.com/rs/zerolog"
)

// Searcher performs an in-page search on the active view.
type Searcher interface {
	FindText(text string, ignoreCase bool) (matches int)
	ClearSearch()
}

// SearchRunner drives in-page search, remembering the last term so n/N style
// repeats work.
type SearchRunner struct {
	searcher   Searcher
	ignoreCase func() bool
	lastTerm   string
	log        zerolog.Logger
}

// NewSearchRunner creates a runner. ignoreCase is consulted per search so
// config reloads take effect immediately.
func NewSearchRunner(s Searcher, ignoreCase func() bool, log zerolog.Logger) *SearchRunner {
	return &SearchRunner{
		searcher:   s,
		ignoreCase: ignoreCase,
		log:        log.With().Str("component", "search-runner").Logger(),
	}
}

// Search starts a new search. An empty term clears the current one.
func (r *SearchRunner) Search(term string) int {
	if strings.TrimSpace(term) == "" {
		r.lastTerm = ""
		r.searcher.ClearSearch()
		return 0
	}
	r.lastTerm = term
	n := r.searcher.FindText(term, r.ignoreCase())
	r.log.Debug().Str("term", term).Int("matches", n).Msg("search")
	return n
}

// Repeat re-runs the last search, returning 0 when there is none.
func (r *SearchRunner) Repeat() int {
	if r.lastTerm == "" {
		return 0
	}
	return r.searcher.FindText(r.lastTerm, r.ignoreCase())
}

// LastTerm returns the active search term.
func (r *SearchRunner) LastTerm() string { return r.lastTerm }
