// Package dialog implements the terminal crash dialog shown after a fault
// or an unhandled panic. The browser window may already be gone at that
// point, so the dialog runs on the terminal instead of the toolkit.
package dialog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CrashReport is everything the dialog can show the user.
type CrashReport struct {
	Fault   string   // raw diagnostic text from the marker file or panic
	Pages   []string // recovered open-page addresses
	History []string // recent commands
	Objects string   // registry dump
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	promptStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

type model struct {
	report   CrashReport
	viewport viewport.Model
	ready    bool
	restore  bool
	decided  bool
}

func newModel(report CrashReport) model {
	return model{report: report}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y", "enter":
			m.restore = true
			m.decided = true
			return m, tea.Quit
		case "n", "N", "q", "ctrl+c", "esc":
			m.restore = false
			m.decided = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.viewport.SetContent(m.reportText())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) reportText() string {
	var b strings.Builder
	b.WriteString(m.report.Fault)
	if len(m.report.Pages) > 0 {
		b.WriteString("\n\nOpen pages:\n")
		for _, p := range m.report.Pages {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}
	if len(m.report.History) > 0 {
		b.WriteString("\nRecent commands:\n")
		for _, c := range m.report.History {
			fmt.Fprintf(&b, "  :%s\n", c)
		}
	}
	if m.report.Objects != "" {
		b.WriteString("\nLive objects:\n")
		b.WriteString(m.report.Objects)
	}
	return b.String()
}

func (m model) View() string {
	if !m.ready {
		return "loading crash report..."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("quell crashed in the previous session"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render(
		fmt.Sprintf("Restore %d page(s) in a new process? [y/n] ", len(m.report.Pages))))
	b.WriteString(dimStyle.Render("(scroll with arrows/pgup/pgdn)"))
	return b.String()
}

// Show runs the dialog and reports whether the user chose to restore the
// recovered session. Errors from the terminal (no tty during crash handling
// is plausible) decline restore.
func Show(report CrashReport) (restore bool, err error) {
	p := tea.NewProgram(newModel(report), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("crash dialog: %w", err)
	}
	m, ok := final.(model)
	if !ok || !m.decided {
		return false, nil
	}
	return m.restore, nil
}
