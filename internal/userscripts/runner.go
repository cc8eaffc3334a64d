// Package userscripts loads and runs user-provided JavaScript against a
// small host API. Scripts run in an embedded engine, not in page content.
package userscripts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/grafana/sobek"
	"github.com/rs/zerolog"
)

// Host is the API surface exposed to scripts under the `quell` global.
type Host struct {
	// Log writes a line to the application log.
	Log func(text string)
	// Notify shows an info message in the statusbar.
	Notify func(text string)
	// Open loads a URL in the current view.
	Open func(url string)
}

// Runner owns the script engine. All evaluation goes through a mutex since
// the engine is not safe for concurrent use.
type Runner struct {
	mu     sync.Mutex
	vm     *sobek.Runtime
	dir    string
	loaded []string
	log    zerolog.Logger
}

// NewRunner creates a runner that loads scripts from dir.
func NewRunner(dir string, host Host, log zerolog.Logger) (*Runner, error) {
	vm := sobek.New()
	vm.SetFieldNameMapper(sobek.UncapFieldNameMapper())

	api := vm.NewObject()
	if host.Log != nil {
		if err := api.Set("log", host.Log); err != nil {
			return nil, fmt.Errorf("bind host api: %w", err)
		}
	}
	if host.Notify != nil {
		if err := api.Set("notify", host.Notify); err != nil {
			return nil, fmt.Errorf("bind host api: %w", err)
		}
	}
	if host.Open != nil {
		if err := api.Set("open", host.Open); err != nil {
			return nil, fmt.Errorf("bind host api: %w", err)
		}
	}
	if err := vm.Set("quell", api); err != nil {
		return nil, fmt.Errorf("bind host api: %w", err)
	}

	return &Runner{
		vm:  vm,
		dir: dir,
		log: log.With().Str("component", "user-scripts").Logger(),
	}, nil
}

// Init loads every *.js file from the script directory in name order.
// A script that fails to parse or throws is logged and skipped; one broken
// script must not block startup or the other scripts.
func (r *Runner) Init() error {
	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read scripts directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".js") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		src, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			r.log.Warn().Err(err).Str("script", name).Msg("script unreadable, skipped")
			continue
		}
		if _, err := r.eval(name, string(src)); err != nil {
			r.log.Warn().Err(err).Str("script", name).Msg("script failed, skipped")
			continue
		}
		r.loaded = append(r.loaded, name)
		r.log.Debug().Str("script", name).Msg("script loaded")
	}
	return nil
}

// Loaded returns the names of successfully loaded scripts.
func (r *Runner) Loaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.loaded))
	copy(out, r.loaded)
	return out
}

// Eval runs a source snippet (the :eval command and the debug console) and
// returns the result rendered as a string.
func (r *Runner) Eval(src string) (string, error) {
	v, err := r.eval("<eval>", src)
	if err != nil {
		return "", err
	}
	if v == nil || sobek.IsUndefined(v) {
		return "undefined", nil
	}
	return v.String(), nil
}

func (r *Runner) eval(name, src string) (sobek.Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prog, err := sobek.Compile(name, src, true)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	v, err := r.vm.RunProgram(prog)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}
	return v, nil
}
