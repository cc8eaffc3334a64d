// Package app is the lifecycle controller: it initializes every subsystem in
// dependency order, registers them in the object registry, runs the
// single-threaded loop, and orchestrates staged shutdown, signal escalation,
// restart and panic recovery.
package app

import (
	"os"

	"github.com/quellbrowser/quell/internal/bookmarks"
	"github.com/quellbrowser/quell/internal/commands"
	"github.com/quellbrowser/quell/internal/config"
	"github.com/quellbrowser/quell/internal/console"
	"github.com/quellbrowser/quell/internal/crash"
	"github.com/quellbrowser/quell/internal/download"
	"github.com/quellbrowser/quell/internal/editline"
	"github.com/quellbrowser/quell/internal/input"
	"github.com/quellbrowser/quell/internal/message"
	"github.com/quellbrowser/quell/internal/registry"
	"github.com/quellbrowser/quell/internal/runloop"
	"github.com/quellbrowser/quell/internal/state"
	"github.com/quellbrowser/quell/internal/ui"
	"github.com/quellbrowser/quell/internal/ui/dialog"
	"github.com/quellbrowser/quell/internal/ui/window"
	"github.com/quellbrowser/quell/internal/userscripts"
	"github.com/quellbrowser/quell/internal/web"
	"github.com/rs/zerolog"
)

// QuitStatus records which shutdown phases completed. Crash starts true and
// is only cleared once stage 2 ran to its end, so an early exit is always
// detectable.
type QuitStatus struct {
	Crash bool
	Tabs  bool
	Main  bool
}

// Args is the processed command line.
type Args struct {
	// LaunchVector is the raw process argument vector, used to rebuild the
	// relaunch command.
	LaunchVector []string
	// Positional holds URLs and ":command" arguments in order.
	Positional []string
	// NoWindow suppresses showing the main window.
	NoWindow bool
	// Debug raises the log level.
	Debug bool
}

// Dependencies are the external collaborators the controller cannot build
// itself. Tests substitute all of them.
type Dependencies struct {
	Toolkit ui.Toolkit
	// ShowDialog presents the crash dialog and reports whether the user
	// chose to restore the session.
	ShowDialog func(dialog.CrashReport) (bool, error)
	// Spawn starts a detached process for restart.
	Spawn func(args []string, dir string) error
	// Exit terminates the process immediately. Only the third signal and
	// nothing else goes through it.
	Exit func(code int)

	Args Args
	Log  zerolog.Logger
}

// App owns every subsystem for the lifetime of the process.
type App struct {
	deps Dependencies
	log  zerolog.Logger

	loop *runloop.Loop
	reg  *registry.Registry

	cfg       *config.Manager
	store     *state.Store
	recorder  *crash.Recorder
	bridge    *message.Bridge
	prompter  *message.Prompter
	editline  *editline.Bridge
	modes     *input.Manager
	filter    *input.Filter
	settings  *web.Settings
	jar       *web.Jar
	cache     *web.DiskCache
	marks     *bookmarks.Store
	scripts   *userscripts.Runner
	cmdRunner *commands.Runner
	search    *commands.SearchRunner
	history   *commands.History
	downloads *download.Manager
	dlModel   *download.ListModel
	win       *window.MainWindow
	console   *console.Console

	status        QuitStatus
	shutdownBegun bool
	stage2Ran     bool
	stopKeepalive func()
}

// New creates an uninitialized controller. Bootstrap does the actual work.
func New(deps Dependencies) *App {
	if deps.Exit == nil {
		deps.Exit = os.Exit
	}
	return &App{
		deps:   deps,
		log:    deps.Log.With().Str("component", "app").Logger(),
		loop:   runloop.New(),
		reg:    registry.New(deps.Log),
		status: QuitStatus{Crash: true},
	}
}

// Loop exposes the run loop for wiring and tests.
func (a *App) Loop() *runloop.Loop { return a.loop }

// Registry exposes the object registry.
func (a *App) Registry() *registry.Registry { return a.reg }

// Window returns the main window, nil before Bootstrap.
func (a *App) Window() *window.MainWindow { return a.win }

// Status returns the quit-status flags.
func (a *App) Status() QuitStatus { return a.status }

// Run drives the loop until shutdown completes. Panics escaping any loop
// task are routed through the crash handler.
func (a *App) Run() (status int) {
	defer func() {
		if v := recover(); v != nil {
			status = a.handlePanic(v)
		}
	}()
	return a.loop.Run()
}
