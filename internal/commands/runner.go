// Package commands implements the ex-style command layer: parsing, dispatch,
// search, and persistent command history.
package commands

import (
	"fmt"
	"strings"

	"github.com/quellbrowser/quell/internal/message"
	"github.com/rs/zerolog"
)

// Command is one registered command.
type Command struct {
	Name    string
	Help    string
	MinArgs int
	MaxArgs int // -1 means unlimited
	Run     func(args []string) error
}

// Runner parses and dispatches ":name arg..." command lines.
type Runner struct {
	commands map[string]Command
	bridge   *message.Bridge
	log      zerolog.Logger
}

// NewRunner creates an empty runner.
func NewRunner(bridge *message.Bridge, log zerolog.Logger) *Runner {
	return &Runner{
		commands: make(map[string]Command),
		bridge:   bridge,
		log:      log.With().Str("component", "command-runner").Logger(),
	}
}

// Register adds a command. Re-registering a name replaces it.
func (r *Runner) Register(cmd Command) {
	r.commands[cmd.Name] = cmd
}

// Names returns the registered command names, unordered.
func (r *Runner) Names() []string {
	out := make([]string, 0, len(r.commands))
	for name := range r.commands {
		out = append(out, name)
	}
	return out
}

// Run parses and executes one command line. The leading colon is optional.
func (r *Runner) Run(line string) error {
	line = strings.TrimPrefix(strings.TrimSpace(line), ":")
	if line == "" {
		return fmt.Errorf("empty command")
	}

	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	if len(args) < cmd.MinArgs {
		return fmt.Errorf("%s: needs at least %d argument(s)", name, cmd.MinArgs)
	}
	if cmd.MaxArgs >= 0 && len(args) > cmd.MaxArgs {
		return fmt.Errorf("%s: takes at most %d argument(s)", name, cmd.MaxArgs)
	}

	r.log.Debug().Str("command", name).Strs("args", args).Msg("running command")
	return cmd.Run(args)
}

// RunSafely executes a command line and routes any error to the message
// bridge instead of returning it. Used for startup arguments and key
// bindings, where there is no caller to hand the error to.
func (r *Runner) RunSafely(line string) {
	if err := r.Run(line); err != nil {
		r.bridge.Error(err.Error())
	}
}
