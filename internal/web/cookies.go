package web

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/quellbrowser/quell/internal/state"
	"github.com/rs/zerolog"
)

// Jar is an in-memory cookie jar backed by the state store. Cookies live in
// memory during the session; Flush persists the non-session ones so they
// survive a restart.
type Jar struct {
	mu      sync.Mutex
	cookies map[string]map[string]*http.Cookie // host -> name -> cookie
	persist bool
	repo    *state.CookieRepo
	log     zerolog.Logger
}

// NewJar loads persisted cookies from the repository. With persist false the
// jar stays memory-only and Flush is a no-op.
func NewJar(ctx context.Context, repo *state.CookieRepo, persist bool, log zerolog.Logger) (*Jar, error) {
	j := &Jar{
		cookies: make(map[string]map[string]*http.Cookie),
		persist: persist,
		repo:    repo,
		log:     log.With().Str("component", "cookie-jar").Logger(),
	}
	if !persist {
		return j, nil
	}

	stored, err := repo.All(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, c := range stored {
		if !c.Expires.After(now) {
			continue
		}
		j.set(c.Host, &http.Cookie{Name: c.Name, Value: c.Value, Expires: c.Expires})
	}
	j.log.Debug().Int("loaded", len(stored)).Msg("cookie jar ready")
	return j, nil
}

func (j *Jar) set(host string, c *http.Cookie) {
	byName := j.cookies[host]
	if byName == nil {
		byName = make(map[string]*http.Cookie)
		j.cookies[host] = byName
	}
	byName[c.Name] = c
}

// SetCookies implements http.CookieJar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, c := range cookies {
		if c.MaxAge < 0 {
			delete(j.cookies[u.Hostname()], c.Name)
			continue
		}
		j.set(u.Hostname(), c)
	}
}

// Cookies implements http.CookieJar. Expired cookies are dropped lazily.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	var out []*http.Cookie
	for name, c := range j.cookies[u.Hostname()] {
		if !c.Expires.IsZero() && !c.Expires.After(now) {
			delete(j.cookies[u.Hostname()], name)
			continue
		}
		out = append(out, c)
	}
	return out
}

// Flush persists all non-session cookies. Session cookies (no expiry) are
// deliberately not written.
func (j *Jar) Flush(ctx context.Context) error {
	if !j.persist {
		return nil
	}
	j.mu.Lock()
	var toSave []state.Cookie
	for host, byName := range j.cookies {
		for _, c := range byName {
			if c.Expires.IsZero() {
				continue
			}
			toSave = append(toSave, state.Cookie{
				Host: host, Name: c.Name, Value: c.Value, Expires: c.Expires,
			})
		}
	}
	j.mu.Unlock()

	for _, c := range toSave {
		if err := j.repo.Upsert(ctx, c); err != nil {
			return err
		}
	}
	j.log.Debug().Int("saved", len(toSave)).Msg("cookies flushed")
	return nil
}
