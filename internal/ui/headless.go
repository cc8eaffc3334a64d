package ui

// Headless is a toolkit backend with no display, used by tests and by the
// crash-handling path when the real backend is already torn down.
type Headless struct {
	Windows []*HeadlessWindow
}

// NewHeadless creates a headless toolkit.
func NewHeadless() *Headless {
	return &Headless{}
}

// NewWindow implements Toolkit.
func (h *Headless) NewWindow(title string) Window {
	w := &HeadlessWindow{Title: title}
	h.Windows = append(h.Windows, w)
	return w
}

// HeadlessWindow records state changes instead of rendering them.
type HeadlessWindow struct {
	Title   string
	visible bool
	closed  bool
	geom    Rect

	onResize []func(Rect)
	onClose  func() bool
}

func (w *HeadlessWindow) Show()         { w.visible = true }
func (w *HeadlessWindow) Hide()         { w.visible = false }
func (w *HeadlessWindow) Visible() bool { return w.visible && !w.closed }

// Close implements Window.
func (w *HeadlessWindow) Close() {
	w.closed = true
	w.visible = false
}

// Closed reports whether Close was called.
func (w *HeadlessWindow) Closed() bool { return w.closed }

// Geometry implements Window.
func (w *HeadlessWindow) Geometry() Rect { return w.geom }

// SetGeometry implements Window and fires resize callbacks.
func (w *HeadlessWindow) SetGeometry(r Rect) {
	w.geom = r
	for _, fn := range w.onResize {
		fn(r)
	}
}

// OnResize implements Window.
func (w *HeadlessWindow) OnResize(fn func(Rect)) {
	w.onResize = append(w.onResize, fn)
}

// OnCloseRequest implements Window.
func (w *HeadlessWindow) OnCloseRequest(fn func() bool) {
	w.onClose = fn
}

// RequestClose simulates the user closing the window and reports whether
// the close went through.
func (w *HeadlessWindow) RequestClose() bool {
	if w.onClose != nil && !w.onClose() {
		return false
	}
	w.Close()
	return true
}
