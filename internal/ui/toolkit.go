// Package ui defines the thin seam between the application shell and the
// rendering toolkit. The shell only ever talks to these interfaces; the
// real widget backend and the headless test backend both implement them.
package ui

// Rect is a window or overlay rectangle in pixels.
type Rect struct {
	X, Y, W, H int
}

// Window is a top-level window.
type Window interface {
	Show()
	Hide()
	// Close destroys the window without consulting the close handler.
	Close()
	Visible() bool

	Geometry() Rect
	SetGeometry(Rect)

	// OnResize registers a callback invoked after every geometry change.
	OnResize(func(Rect))
	// OnCloseRequest registers the handler consulted when the user asks to
	// close the window. Returning false cancels the close.
	OnCloseRequest(func() bool)
}

// Toolkit creates windows and owns the native display connection.
type Toolkit interface {
	NewWindow(title string) Window
}
