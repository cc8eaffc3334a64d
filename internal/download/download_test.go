package download

import (
	"fmt"
	"testing"

	"github.com/quellbrowser/quell/internal/registry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventLog records view notifications with the model's row count observed at
// notification time, so the will/did ordering around mutations is checkable.
type eventLog struct {
	model  *ListModel
	events []string
}

func (e *eventLog) note(kind string, first, last int) {
	e.events = append(e.events,
		fmt.Sprintf("%s(%d,%d) rows=%d", kind, first, last, e.model.RowCount()))
}

func (e *eventLog) WillInsertRows(first, last int) { e.note("willInsert", first, last) }
func (e *eventLog) DidInsertRows(first, last int)  { e.note("didInsert", first, last) }
func (e *eventLog) WillRemoveRows(first, last int) { e.note("willRemove", first, last) }
func (e *eventLog) DidRemoveRows(first, last int)  { e.note("didRemove", first, last) }
func (e *eventLog) RowChanged(row int)             { e.note("rowChanged", row, row) }

func newTestModel(t *testing.T) (*Manager, *ListModel, *eventLog) {
	t.Helper()
	reg := registry.New(zerolog.Nop())
	mgr := NewManager(zerolog.Nop())
	require.NoError(t, reg.Register(registry.ScopeGlobal, registry.KeyDownloadManager, mgr))

	model := NewListModel(reg, zerolog.Nop())
	ev := &eventLog{model: model}
	model.Attach(ev)
	return mgr, model, ev
}

func TestListModel_ZeroRowsWithoutManager(t *testing.T) {
	reg := registry.New(zerolog.Nop())
	model := NewListModel(reg, zerolog.Nop())

	assert.Equal(t, 0, model.RowCount())
	_, ok := model.Text(0)
	assert.False(t, ok)
}

func TestListModel_InsertAndRemoveRoundTrip(t *testing.T) {
	mgr, model, ev := newTestModel(t)

	for _, name := range []string{"a", "b", "c"} {
		mgr.Add("https://example.com/"+name, name)
	}
	require.Equal(t, 3, model.RowCount())

	ev.events = nil
	mgr.InsertAt(1, &Item{Filename: "d", State: StateDone})

	assert.Equal(t, 4, model.RowCount())
	text, ok := model.Text(1)
	require.True(t, ok)
	assert.Equal(t, "d [done]", text)
	// The insert is announced before and confirmed after the mutation.
	assert.Equal(t, []string{
		"willInsert(1,1) rows=3",
		"didInsert(1,1) rows=4",
	}, ev.events)

	ev.events = nil
	mgr.RemoveAt(0)

	assert.Equal(t, 3, model.RowCount())
	text, ok = model.Text(0)
	require.True(t, ok)
	assert.Equal(t, "d [done]", text)
	assert.Equal(t, []string{
		"willRemove(0,0) rows=4",
		"didRemove(0,0) rows=3",
	}, ev.events)
}

func TestListModel_IndexValidation(t *testing.T) {
	mgr, model, _ := newTestModel(t)
	mgr.Add("https://example.com/a", "a")

	_, ok := model.Text(-1)
	assert.False(t, ok)
	_, ok = model.Text(1)
	assert.False(t, ok)
	_, ok = model.Text(0)
	assert.True(t, ok)
}

func TestManager_ProgressAndStateNotify(t *testing.T) {
	mgr, model, ev := newTestModel(t)
	mgr.Add("https://example.com/f.iso", "f.iso")

	ev.events = nil
	mgr.SetProgress(0, 50, 200)
	mgr.SetState(0, StateFailed)

	assert.Equal(t, []string{
		"rowChanged(0,0) rows=1",
		"rowChanged(0,0) rows=1",
	}, ev.events)

	text, ok := model.Text(0)
	require.True(t, ok)
	assert.Equal(t, "f.iso [failed]", text)

	// Out-of-range updates are silent no-ops.
	ev.events = nil
	mgr.SetProgress(5, 1, 1)
	mgr.SetState(-1, StateDone)
	mgr.RemoveAt(9)
	assert.Empty(t, ev.events)
}

func TestItem_DisplayText(t *testing.T) {
	it := &Item{Filename: "f.iso", State: StateRunning, Received: 512, Total: 1024}
	assert.Equal(t, "f.iso [50%]", it.DisplayText())

	it.Total = -1
	assert.Equal(t, "f.iso [512 bytes]", it.DisplayText())

	it.State = StateCancelled
	assert.Equal(t, "f.iso [cancelled]", it.DisplayText())
}

func TestManager_URLs(t *testing.T) {
	mgr, _, _ := newTestModel(t)
	mgr.Add("https://x", "x")
	mgr.Add("https://y", "y")
	assert.Equal(t, []string{"https://x", "https://y"}, mgr.URLs())
}
