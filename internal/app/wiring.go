package app

import (
	"context"

	"github.com/quellbrowser/quell/internal/config"
	"github.com/quellbrowser/quell/internal/input"
	"github.com/quellbrowser/quell/internal/message"
	"github.com/quellbrowser/quell/internal/runloop"
)

// wire connects producers to consumers. Every cross-component binding lives
// in this one table; nothing is discovered dynamically.
func (a *App) wire(context.Context) error {
	// Statusbar renders bridge messages.
	a.bridge.Attach(a.win.StatusBar())

	// Download list: manager -> model -> view.
	a.dlModel.Attach(a.win.Downloads())

	// Config reloads re-apply the web settings. Callbacks arrive on the
	// watcher goroutine, so hop back onto the loop; editors tend to fire
	// several file events per save, so bursts coalesce into one apply.
	reloads := runloop.NewCoalescer(a.loop)
	a.cfg.OnChange(func(cfg *config.Config) {
		reloads.Post("config-reload", func() {
			if err := a.settings.Apply(cfg); err != nil {
				a.bridge.Error("config reload: " + err.Error())
			}
		})
	})

	// Questions render in the statusbar and are answered in prompt mode.
	a.prompter.SetPresenter(func(q message.Question) {
		a.win.StatusBar().DispInfo(q.Text + " [y/n]")
		a.modes.Enter(input.ModePrompt)
	})
	a.filter.SetHandler(input.ModePrompt, input.HandlerFunc(func(ev input.KeyEvent) bool {
		switch ev.Rune {
		case 'y', 'Y':
			a.prompter.Answer(true)
		case 'n', 'N':
			a.prompter.Answer(false)
		default:
			if ev.Name != "Escape" {
				return true
			}
			a.prompter.Answer(false)
		}
		a.modes.Enter(input.ModeNormal)
		return true
	}))

	// Closing the last window shuts the application down; the close-request
	// handler already ran the confirmation policy.
	a.win.Widget().OnCloseRequest(func() bool {
		if !a.win.ConfirmClose() {
			return false
		}
		a.Shutdown(0)
		return true
	})
	return nil
}
