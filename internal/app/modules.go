package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

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
	"github.com/quellbrowser/quell/internal/state"
	"github.com/quellbrowser/quell/internal/ui/dialog"
	"github.com/quellbrowser/quell/internal/ui/window"
	"github.com/quellbrowser/quell/internal/userscripts"
	"github.com/quellbrowser/quell/internal/web"
	"golang.org/x/sync/errgroup"
)

const keepaliveInterval = 500 * time.Millisecond

// Bootstrap initializes every module in dependency order, registering each
// into the registry. Any failure aborts startup; partial state is left for
// the caller to discard with the process.
func (a *App) Bootstrap(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"registry", a.initRegistry},
		{"message bridge", a.initMessageBridge},
		{"editline bridge", a.initEditline},
		{"config", a.initConfig},
		{"storage", a.initStorage},
		{"crash recorder", a.initCrashRecorder},
		{"mode manager", a.initModeManager},
		{"web settings", a.initWebSettings},
		{"bookmarks", a.initBookmarks},
		{"user scripts", a.initUserScripts},
		{"cookie jar", a.initCookieJar},
		{"command runner", a.initCommandRunner},
		{"search runner", a.initSearchRunner},
		{"command history", a.initCommandHistory},
		{"download manager", a.initDownloads},
		{"main window", a.initMainWindow},
		{"debug console", a.initConsole},
		{"event filter", a.initEventFilter},
		{"wiring", a.wire},
	}
	for _, step := range steps {
		a.log.Debug().Str("step", step.name).Msg("init")
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("init %s: %w", step.name, err)
		}
	}

	a.modes.Enter(input.ModeNormal)
	a.processArgs(ctx)

	if !a.deps.Args.NoWindow {
		a.win.Show()
	}

	// Keep the loop iterating while idle so signal handoffs are picked up
	// promptly.
	a.stopKeepalive = a.loop.Tick(keepaliveInterval)
	if err := a.reg.Register(registry.ScopeGlobal, registry.KeyKeepaliveTimer, a.stopKeepalive); err != nil {
		return err
	}
	a.installSignalHandlers()

	a.log.Info().Msg("startup complete")
	return nil
}

func (a *App) initRegistry(context.Context) error {
	if err := a.reg.Register(registry.ScopeGlobal, registry.KeyApp, a); err != nil {
		return err
	}
	return a.reg.Register(registry.ScopeGlobal, registry.KeyArgs, a.deps.Args)
}

func (a *App) initMessageBridge(context.Context) error {
	a.bridge = message.NewBridge(a.deps.Log)
	a.prompter = message.NewPrompter(a.loop, a.deps.Log)
	if err := a.reg.Register(registry.ScopeGlobal, registry.KeyMessageBridge, a.bridge); err != nil {
		return err
	}
	return a.reg.Register(registry.ScopeGlobal, registry.KeyPrompter, a.prompter)
}

func (a *App) initEditline(context.Context) error {
	a.editline = editline.NewBridge()
	return a.reg.Register(registry.ScopeGlobal, registry.KeyEditlineBridge, a.editline)
}

func (a *App) initConfig(context.Context) error {
	mgr, err := config.NewManager(a.deps.Log)
	if err != nil {
		return err
	}
	if err := mgr.Load(); err != nil {
		return err
	}
	a.cfg = mgr
	mgr.Watch()
	return a.reg.Register(registry.ScopeGlobal, registry.KeyConfig, mgr)
}

// initStorage opens the independent on-disk pieces in parallel: the state
// database, the page cache, and the config schema file for editors.
func (a *App) initStorage(ctx context.Context) error {
	dataDir, err := config.GetDataDir()
	if err != nil {
		return err
	}
	cacheDir, err := config.GetCacheDir()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		store, err := state.Open(gctx, filepath.Join(dataDir, "state.db"))
		if err != nil {
			return err
		}
		a.store = store
		return nil
	})
	g.Go(func() error {
		cache, err := web.NewDiskCache(cacheDir, a.cfg.Get().Network.CacheSizeMB, a.deps.Log)
		if err != nil {
			return err
		}
		a.cache = cache
		return nil
	})
	g.Go(func() error {
		if _, err := config.GenerateSchemaFile(); err != nil {
			a.log.Warn().Err(err).Msg("config schema not written")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := a.reg.Register(registry.ScopeGlobal, registry.KeyStateStore, a.store); err != nil {
		return err
	}
	return a.reg.Register(registry.ScopeGlobal, registry.KeyDiskCache, a.cache)
}

func (a *App) initCrashRecorder(ctx context.Context) error {
	dataDir, err := config.GetDataDir()
	if err != nil {
		return err
	}
	a.recorder = crash.NewRecorder(ctx, dataDir)
	if err := a.recorder.Init(); err != nil {
		return err
	}

	if a.recorder.State() == crash.Recovering {
		a.surfacePriorFault()
		a.recorder.AckRecovered()
	}
	return a.reg.Register(registry.ScopeGlobal, registry.KeyCrashRecorder, a.recorder)
}

// surfacePriorFault shows the previous run's fault before anything else
// starts. The dialog failing (no tty) must not block startup.
func (a *App) surfacePriorFault() {
	if a.deps.ShowDialog == nil {
		a.log.Warn().Msg("previous crash detected, no dialog available")
		return
	}
	if _, err := a.deps.ShowDialog(dialog.CrashReport{Fault: a.recorder.PriorFault()}); err != nil {
		a.log.Warn().Err(err).Msg("crash dialog failed")
	}
}

func (a *App) initModeManager(context.Context) error {
	a.modes = input.NewManager(a.deps.Log)
	return a.reg.Register(registry.ScopeGlobal, registry.KeyModeManager, a.modes)
}

func (a *App) initWebSettings(context.Context) error {
	settings, err := web.NewSettings(a.cfg.Get(), a.deps.Log)
	if err != nil {
		return err
	}
	a.settings = settings
	if err := a.reg.Register(registry.ScopeGlobal, registry.KeyWebSettings, settings); err != nil {
		return err
	}
	return a.reg.Register(registry.ScopeGlobal, registry.KeyProxy, settings.Proxy())
}

func (a *App) initBookmarks(ctx context.Context) error {
	marks, err := bookmarks.NewStore(ctx, a.store.Bookmarks(), a.deps.Log)
	if err != nil {
		return err
	}
	a.marks = marks
	return a.reg.Register(registry.ScopeGlobal, registry.KeyBookmarks, marks)
}

func (a *App) initUserScripts(context.Context) error {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	runner, err := userscripts.NewRunner(filepath.Join(configDir, "scripts"), userscripts.Host{
		Log:    func(text string) { a.log.Info().Str("source", "script").Msg(text) },
		Notify: a.bridge.Info,
		Open:   func(url string) { a.win.Tabs().Open(url) },
	}, a.deps.Log)
	if err != nil {
		return err
	}
	if err := runner.Init(); err != nil {
		return err
	}
	a.scripts = runner
	return a.reg.Register(registry.ScopeGlobal, registry.KeyUserScripts, runner)
}

func (a *App) initCookieJar(ctx context.Context) error {
	jar, err := web.NewJar(ctx, a.store.Cookies(), a.cfg.Get().Network.CookiesStore, a.deps.Log)
	if err != nil {
		return err
	}
	a.jar = jar
	return a.reg.Register(registry.ScopeGlobal, registry.KeyCookieJar, jar)
}

func (a *App) initCommandRunner(context.Context) error {
	a.cmdRunner = commands.NewRunner(a.bridge, a.deps.Log)
	a.registerUtilityCommands()
	return a.reg.Register(registry.ScopeGlobal, registry.KeyCommandRunner, a.cmdRunner)
}

func (a *App) initSearchRunner(context.Context) error {
	a.search = commands.NewSearchRunner(noopSearcher{}, a.settings.SearchIgnoreCase, a.deps.Log)
	return a.reg.Register(registry.ScopeGlobal, registry.KeySearchRunner, a.search)
}

func (a *App) initCommandHistory(ctx context.Context) error {
	hist, err := commands.NewHistory(ctx, a.store.CommandHistory(), commands.DefaultHistorySize)
	if err != nil {
		return err
	}
	a.history = hist
	return a.reg.Register(registry.ScopeGlobal, registry.KeyCommandHistory, hist)
}

func (a *App) initDownloads(context.Context) error {
	a.downloads = download.NewManager(a.deps.Log)
	if err := a.reg.Register(registry.ScopeGlobal, registry.KeyDownloadManager, a.downloads); err != nil {
		return err
	}
	a.dlModel = download.NewListModel(a.reg, a.deps.Log)
	return nil
}

func (a *App) initMainWindow(ctx context.Context) error {
	a.win = window.New(a.deps.Toolkit, a.cfg, a.store, a.prompter, a.dlModel.Text, a.deps.Log)
	a.win.RestoreGeometry(ctx)
	if err := a.reg.Register(registry.ScopeGlobal, registry.KeyMainWindow, a.win); err != nil {
		return err
	}
	return a.reg.Register(registry.ScopeGlobal, registry.KeyTabbedView, a.win.Tabs())
}

func (a *App) initConsole(context.Context) error {
	a.console = console.New(a.reg, a.scripts, a.deps.Log)
	return a.reg.Register(registry.ScopeGlobal, registry.KeyDebugConsole, a.console)
}

func (a *App) initEventFilter(context.Context) error {
	a.filter = input.NewFilter(a.modes, a.deps.Log)
	return nil
}

// noopSearcher stands in until a page widget provides real text search.
type noopSearcher struct{}

func (noopSearcher) FindText(string, bool) int { return 0 }
func (noopSearcher) ClearSearch()              {}
