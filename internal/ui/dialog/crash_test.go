package dialog

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() CrashReport {
	return CrashReport{
		Fault:   "goroutine 1 [running]:\nmain.main()",
		Pages:   []string{"https://a.example", "https://b.example"},
		History: []string{"open a", "quit"},
		Objects: "global/config = <config>",
	}
}

func sized(m model) model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(model)
}

func TestCrashDialog_AcceptAndDecline(t *testing.T) {
	cases := []struct {
		key     string
		restore bool
	}{
		{"y", true},
		{"enter", true},
		{"n", false},
		{"esc", false},
	}
	for _, tc := range cases {
		m := sized(newModel(testReport()))
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.key)})
		if tc.key == "enter" {
			updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		}
		if tc.key == "esc" {
			updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		}
		final := updated.(model)
		assert.True(t, final.decided, "key %q", tc.key)
		assert.Equal(t, tc.restore, final.restore, "key %q", tc.key)
		require.NotNil(t, cmd, "key %q should quit", tc.key)
	}
}

func TestCrashDialog_ViewContainsReport(t *testing.T) {
	m := sized(newModel(testReport()))
	view := m.View()
	assert.Contains(t, view, "crashed")
	assert.Contains(t, view, "Restore 2 page(s)")

	content := m.reportText()
	assert.Contains(t, content, "https://a.example")
	assert.Contains(t, content, ":quit")
	assert.Contains(t, content, "global/config")
	assert.Contains(t, content, "goroutine 1")
}

func TestCrashDialog_ScrollKeysDoNotDecide(t *testing.T) {
	m := sized(newModel(testReport()))
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.False(t, updated.(model).decided)
}
