package download

import (
	"github.com/quellbrowser/quell/internal/registry"
	"github.com/rs/zerolog"
)

// ViewObserver receives range notifications from the list model. Inserts and
// removes arrive as will/did pairs bracketing the mutation.
type ViewObserver interface {
	WillInsertRows(first, last int)
	DidInsertRows(first, last int)
	WillRemoveRows(first, last int)
	DidRemoveRows(first, last int)
	RowChanged(row int)
}

// ListModel exposes the download manager as a read-only indexed sequence.
// It holds no data of its own: every read goes through the registry to the
// manager, so the model can be built before the manager exists and simply
// reports zero rows until it is registered.
type ListModel struct {
	reg  *registry.Registry
	view ViewObserver
	log  zerolog.Logger
}

// NewListModel creates a model reading through reg.
func NewListModel(reg *registry.Registry, log zerolog.Logger) *ListModel {
	return &ListModel{
		reg: reg,
		log: log.With().Str("component", "download-model").Logger(),
	}
}

// Attach subscribes the model to the manager's mutations and the view to the
// model. Call once the manager is registered.
func (m *ListModel) Attach(view ViewObserver) {
	m.view = view
	if mgr := m.manager(); mgr != nil {
		mgr.SetObserver(m)
	}
}

func (m *ListModel) manager() *Manager {
	mgr, err := registry.As[*Manager](m.reg, registry.ScopeGlobal, registry.KeyDownloadManager)
	if err != nil {
		return nil
	}
	return mgr
}

// RowCount returns the number of rows, zero while the manager is not yet
// registered.
func (m *ListModel) RowCount() int {
	mgr := m.manager()
	if mgr == nil {
		return 0
	}
	return mgr.Len()
}

// Text returns the display text for a row. Invalid rows report ok=false.
func (m *ListModel) Text(row int) (text string, ok bool) {
	mgr := m.manager()
	if mgr == nil {
		return "", false
	}
	it := mgr.At(row)
	if it == nil {
		return "", false
	}
	return it.DisplayText(), true
}

// AboutToAdd implements Observer.
func (m *ListModel) AboutToAdd(index int) {
	if m.view != nil {
		m.view.WillInsertRows(index, index)
	}
}

// Added implements Observer.
func (m *ListModel) Added(index int) {
	if m.view != nil {
		m.view.DidInsertRows(index, index)
	}
}

// AboutToRemove implements Observer.
func (m *ListModel) AboutToRemove(index int) {
	if m.view != nil {
		m.view.WillRemoveRows(index, index)
	}
}

// Removed implements Observer.
func (m *ListModel) Removed(index int) {
	if m.view != nil {
		m.view.DidRemoveRows(index, index)
	}
}

// DataChanged implements Observer.
func (m *ListModel) DataChanged(index int) {
	if m.view != nil {
		m.view.RowChanged(index)
	}
}
