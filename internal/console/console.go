// Package console implements the debug console: an interactive surface for
// inspecting the registry and evaluating script snippets at runtime.
package console

import (
	"strings"

	"github.com/quellbrowser/quell/internal/registry"
	"github.com/quellbrowser/quell/internal/userscripts"
	"github.com/rs/zerolog"
)

// Console evaluates debug input and renders results as text.
type Console struct {
	reg    *registry.Registry
	runner *userscripts.Runner
	log    zerolog.Logger
}

// New creates a console. runner may be nil; script evaluation is then
// reported as unavailable.
func New(reg *registry.Registry, runner *userscripts.Runner, log zerolog.Logger) *Console {
	return &Console{
		reg:    reg,
		runner: runner,
		log:    log.With().Str("component", "debug-console").Logger(),
	}
}

// Eval processes one console line. Lines starting with "!" are console
// builtins; everything else goes to the script engine.
func (c *Console) Eval(line string) string {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return ""
	case line == "!registry":
		return c.reg.DumpAll()
	case strings.HasPrefix(line, "!registry "):
		scope := registry.Scope(strings.TrimPrefix(line, "!registry "))
		return strings.Join(c.reg.Dump(scope), "\n")
	case strings.HasPrefix(line, "!"):
		return "unknown console command: " + line
	}

	if c.runner == nil {
		return "script engine unavailable"
	}
	out, err := c.runner.Eval(line)
	if err != nil {
		return "error: " + err.Error()
	}
	return out
}
