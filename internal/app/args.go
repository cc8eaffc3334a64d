package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// processArgs handles the positional command-line arguments: ":command"
// arguments run through the command runner, everything else opens as a page.
// A malformed argument produces an inline error message, never a failed
// startup. With no page arguments the configured start pages open instead.
func (a *App) processArgs(context.Context) {
	opened := 0
	for _, arg := range a.deps.Args.Positional {
		if strings.HasPrefix(arg, ":") {
			a.history.Append(strings.TrimPrefix(arg, ":"))
			a.cmdRunner.RunSafely(arg)
			continue
		}
		if err := a.openPage(arg); err != nil {
			a.bridge.Error(err.Error())
			continue
		}
		opened++
	}

	if opened == 0 && a.win.Tabs().Count() == 0 {
		for _, page := range a.cfg.Get().General.StartPages {
			if err := a.openPage(page); err != nil {
				a.bridge.Error(err.Error())
			}
		}
	}
}

// openPage validates and opens one page address. Bare hostnames get an
// https scheme.
func (a *App) openPage(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %v", raw, err)
	}
	switch u.Scheme {
	case "http", "https", "file", "about":
	case "":
		if u.Host == "" && !strings.Contains(raw, ".") {
			return fmt.Errorf("invalid URL %q", raw)
		}
		raw = "https://" + raw
	default:
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	a.win.Tabs().Open(raw)
	return nil
}
