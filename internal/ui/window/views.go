package window

import (
	"fmt"
	"sync"
)

// Page is one open page in the tabbed view.
type Page struct {
	URL   string
	Title string
}

// TabbedView holds the open pages. The rendering widget behind each page is
// out of scope; the view tracks identity and order.
type TabbedView struct {
	mu      sync.Mutex
	pages   []Page
	current int
}

// NewTabbedView creates an empty view.
func NewTabbedView() *TabbedView {
	return &TabbedView{current: -1}
}

// Open appends a page and makes it current.
func (v *TabbedView) Open(url string) {
	v.mu.Lock()
	v.pages = append(v.pages, Page{URL: url})
	v.current = len(v.pages) - 1
	v.mu.Unlock()
}

// Count returns the number of open pages.
func (v *TabbedView) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.pages)
}

// PageURLs returns the open page addresses in tab order.
func (v *TabbedView) PageURLs() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, len(v.pages))
	for i, p := range v.pages {
		out[i] = p.URL
	}
	return out
}

// CloseAll discards every page. Part of shutdown stage 2.
func (v *TabbedView) CloseAll() {
	v.mu.Lock()
	v.pages = nil
	v.current = -1
	v.mu.Unlock()
}

// CompletionView is the completion overlay. Only its content measurement
// matters to the shell; rendering is out of scope.
type CompletionView struct {
	mu      sync.Mutex
	rows    int
	rowSpan int
}

// NewCompletionView creates a view with the given per-row height.
func NewCompletionView(rowSpan int) *CompletionView {
	return &CompletionView{rowSpan: rowSpan}
}

// SetRowCount records how many completion rows are visible.
func (v *CompletionView) SetRowCount(n int) {
	v.mu.Lock()
	v.rows = n
	v.mu.Unlock()
}

// ContentHeight returns the pixel height needed to show all rows.
func (v *CompletionView) ContentHeight() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rows * v.rowSpan
}

// StatusBar renders one-line messages. It implements message.Display.
type StatusBar struct {
	mu   sync.Mutex
	text string
}

// NewStatusBar creates an empty statusbar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// DispError implements message.Display.
func (s *StatusBar) DispError(text string) {
	s.mu.Lock()
	s.text = "error: " + text
	s.mu.Unlock()
}

// DispInfo implements message.Display.
func (s *StatusBar) DispInfo(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Text returns the currently displayed message.
func (s *StatusBar) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// DownloadView renders the download list. It implements the list model's
// view-observer interface, maintaining its row texts strictly from the
// will/did notification pairs.
type DownloadView struct {
	mu      sync.Mutex
	rows    []string
	text    func(row int) (string, bool)
	pending int // index bracketed by a will/did pair
}

// NewDownloadView creates a view reading row text through the model.
func NewDownloadView(text func(row int) (string, bool)) *DownloadView {
	return &DownloadView{text: text, pending: -1}
}

// Rows returns the rendered lines.
func (v *DownloadView) Rows() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, len(v.rows))
	copy(out, v.rows)
	return out
}

// WillInsertRows implements download.ViewObserver.
func (v *DownloadView) WillInsertRows(first, _ int) {
	v.mu.Lock()
	v.pending = first
	v.mu.Unlock()
}

// DidInsertRows implements download.ViewObserver.
func (v *DownloadView) DidInsertRows(first, last int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pending != first {
		return
	}
	v.pending = -1
	for row := first; row <= last; row++ {
		line, ok := v.text(row)
		if !ok {
			line = fmt.Sprintf("<missing row %d>", row)
		}
		v.rows = append(v.rows, "")
		copy(v.rows[row+1:], v.rows[row:])
		v.rows[row] = line
	}
}

// WillRemoveRows implements download.ViewObserver.
func (v *DownloadView) WillRemoveRows(first, _ int) {
	v.mu.Lock()
	v.pending = first
	v.mu.Unlock()
}

// DidRemoveRows implements download.ViewObserver.
func (v *DownloadView) DidRemoveRows(first, last int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pending != first {
		return
	}
	v.pending = -1
	if first < 0 || first >= len(v.rows) {
		return
	}
	end := last + 1
	if end > len(v.rows) {
		end = len(v.rows)
	}
	v.rows = append(v.rows[:first], v.rows[end:]...)
}

// RowChanged implements download.ViewObserver.
func (v *DownloadView) RowChanged(row int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if row < 0 || row >= len(v.rows) {
		return
	}
	if line, ok := v.text(row); ok {
		v.rows[row] = line
	}
}
