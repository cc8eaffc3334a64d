package window

import (
	"context"
	"errors"
	"fmt"

	"github.com/quellbrowser/quell/internal/config"
	"github.com/quellbrowser/quell/internal/message"
	"github.com/quellbrowser/quell/internal/state"
	"github.com/quellbrowser/quell/internal/ui"
	"github.com/rs/zerolog"
)

const (
	geometrySection = "geometry"
	geometryKey     = "mainwindow"

	completionRowSpan = 20
)

// MainWindow composes the sub-views in fixed vertical order: tabbed page
// area, completion overlay, download strip, statusbar.
type MainWindow struct {
	win      ui.Window
	tabs     *TabbedView
	compl    *CompletionView
	status   *StatusBar
	dls      *DownloadView
	complNow ui.Rect

	cfg      *config.Manager
	store    *state.Store
	prompter *message.Prompter
	log      zerolog.Logger
}

// New builds the main window on the given toolkit. downloadsText reads a
// download row's display text; the download view attaches to it.
func New(tk ui.Toolkit, cfg *config.Manager, store *state.Store, prompter *message.Prompter,
	downloadsText func(row int) (string, bool), log zerolog.Logger) *MainWindow {

	w := &MainWindow{
		win:      tk.NewWindow("quell"),
		tabs:     NewTabbedView(),
		compl:    NewCompletionView(completionRowSpan),
		status:   NewStatusBar(),
		dls:      NewDownloadView(downloadsText),
		cfg:      cfg,
		store:    store,
		prompter: prompter,
		log:      log.With().Str("component", "main-window").Logger(),
	}

	w.win.OnResize(func(ui.Rect) { w.relayoutCompletion() })
	w.win.OnCloseRequest(w.ConfirmClose)
	cfg.OnChange(func(*config.Config) { w.relayoutCompletion() })
	return w
}

// Tabs returns the tabbed page view.
func (w *MainWindow) Tabs() *TabbedView { return w.tabs }

// StatusBar returns the statusbar, the message bridge's display.
func (w *MainWindow) StatusBar() *StatusBar { return w.status }

// Completion returns the completion overlay.
func (w *MainWindow) Completion() *CompletionView { return w.compl }

// Downloads returns the download strip.
func (w *MainWindow) Downloads() *DownloadView { return w.dls }

// Widget returns the underlying toolkit window.
func (w *MainWindow) Widget() ui.Window { return w.win }

// Show makes the window visible.
func (w *MainWindow) Show() { w.win.Show() }

// RestoreGeometry applies the persisted geometry. Any failure (no stored
// value, malformed blob) falls back to the default rectangle; the cause is
// logged, never surfaced to the user.
func (w *MainWindow) RestoreGeometry(ctx context.Context) {
	blob, err := w.store.Get(ctx, geometrySection, geometryKey)
	if err != nil {
		if !errors.Is(err, state.ErrNoValue) {
			w.log.Warn().Err(err).Msg("geometry unreadable, using defaults")
		}
		w.win.SetGeometry(DefaultGeometry)
		return
	}
	geom, err := DecodeGeometry(blob)
	if err != nil {
		w.log.Warn().Err(err).Msg("geometry malformed, using defaults")
		w.win.SetGeometry(DefaultGeometry)
		return
	}
	w.win.SetGeometry(geom)
}

// SaveGeometry persists the current geometry.
func (w *MainWindow) SaveGeometry(ctx context.Context) error {
	blob := EncodeGeometry(w.win.Geometry())
	if err := w.store.Set(ctx, geometrySection, geometryKey, blob); err != nil {
		return fmt.Errorf("save geometry: %w", err)
	}
	return nil
}

// CompletionGeometry returns the overlay rectangle from the last relayout.
func (w *MainWindow) CompletionGeometry() ui.Rect { return w.complNow }

func (w *MainWindow) relayoutCompletion() {
	cfg := w.cfg.Get()
	rect, err := CompletionGeometry(w.win.Geometry(),
		cfg.Completion.Height, cfg.Completion.Shrink, w.compl.ContentHeight())
	if err != nil {
		w.log.Warn().Err(err).Msg("completion geometry not recomputed")
		return
	}
	w.complNow = rect
}

// ConfirmClose evaluates the close-confirmation policy against the current
// tab count. It returns false when the user declines. The question defaults
// to yes: an aborted or unpresentable prompt lets the close proceed.
func (w *MainWindow) ConfirmClose() bool {
	policy := w.cfg.Get().UI.ConfirmQuit
	ask := false
	switch policy {
	case "always":
		ask = true
	case "multiple-tabs":
		ask = w.tabs.Count() > 1
	}
	if !ask {
		return true
	}
	n := w.tabs.Count()
	noun := "tabs"
	if n == 1 {
		noun = "tab"
	}
	return w.prompter.Ask(message.Question{
		Text:    fmt.Sprintf("Close %d %s and quit?", n, noun),
		Default: true,
	})
}
