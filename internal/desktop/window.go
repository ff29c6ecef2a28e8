package desktop

import (
	"slices"

	"github.com/Gaurav-Gosain/tuidock/internal/dock"
)

// Window is a top-level desktop window.
type Window struct {
	ID string
	// Frame windows draw a border; the top row is the title bar.
	Frame bool
	// Overlay windows float above everything and never take input or focus.
	Overlay bool

	d                 *Desktop
	title             string
	x, y              int
	width, height     int
	z                 int
	positioned        bool
	visible           bool
	fill              bool
	maximized         bool
	closed            bool
	preMaximizeX      int
	preMaximizeY      int
	preMaximizeWidth  int
	preMaximizeHeight int

	handlers    map[int]dock.WindowHandler
	nextHandler int
}

func (w *Window) Title() string { return w.title }

func (w *Window) SetTitle(title string) { w.title = title }

func (w *Window) Position() dock.Point { return dock.Point{X: w.x, Y: w.y} }

func (w *Window) SetPosition(p dock.Point) {
	w.x, w.y = p.X, p.Y
	w.positioned = true
}

func (w *Window) IsPositioned() bool { return w.positioned }

func (w *Window) Size() dock.Size { return dock.Size{W: w.width, H: w.height} }

func (w *Window) SetSize(s dock.Size) {
	w.width, w.height = max(s.W, 1), max(s.H, 1)
}

func (w *Window) Bounds() dock.Rect {
	return dock.Rect{X: w.x, Y: w.y, W: w.width, H: w.height}
}

// ClientBounds excludes the frame.
func (w *Window) ClientBounds() dock.Rect {
	if w.Frame {
		return w.Bounds().Inset(1)
	}
	return w.Bounds()
}

// TitleBar is the top frame row, empty for frameless windows.
func (w *Window) TitleBar() dock.Rect {
	if !w.Frame {
		return dock.Rect{}
	}
	return dock.Rect{X: w.x, Y: w.y, W: w.width, H: 1}
}

// Show makes the window visible and raises it. A window that was never
// positioned is centered on the desktop.
func (w *Window) Show() {
	if w.closed {
		return
	}
	if !w.positioned {
		w.SetPosition(dock.Point{X: (w.d.Width - w.width) / 2, Y: (w.d.Height - w.height) / 2})
	}
	if !w.visible {
		w.visible = true
		w.d.raise(w)
	}
}

func (w *Window) Hide() {
	w.visible = false
	if w.d.focused == w {
		w.d.focused = nil
		w.emitLostFocus()
		w.d.focusTopmost()
	}
}

func (w *Window) IsVisible() bool { return w.visible }

func (w *Window) Focus() { w.d.FocusWindow(w) }

func (w *Window) IsFocused() bool { return w.d.focused == w }

// Z is the position of the window in the stack, 0 at the bottom.
func (w *Window) Z() int {
	for i, o := range w.d.Windows() {
		if o == w {
			return i
		}
	}
	return -1
}

func (w *Window) layer() int {
	switch {
	case w.fill:
		return 0
	case w.Overlay:
		return 2
	}
	return 1
}

func (w *Window) IsMaximized() bool { return w.maximized }

// Maximize covers the desktop, remembering the current bounds.
func (w *Window) Maximize() {
	if w.maximized {
		return
	}
	w.preMaximizeX, w.preMaximizeY = w.x, w.y
	w.preMaximizeWidth, w.preMaximizeHeight = w.width, w.height
	w.x, w.y, w.width, w.height = 0, 0, w.d.Width, w.d.Height
	w.maximized = true
	w.positioned = true
}

// Restore returns a maximized window to its previous bounds.
func (w *Window) Restore() {
	if !w.maximized {
		return
	}
	w.x, w.y = w.preMaximizeX, w.preMaximizeY
	w.width, w.height = w.preMaximizeWidth, w.preMaximizeHeight
	w.maximized = false
}

// Close removes the window from the desktop. Closing twice is a no-op.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.visible = false
	w.d.remove(w)
	for _, h := range w.snapshot() {
		if h.OnClosed != nil {
			h.OnClosed()
		}
	}
	w.handlers = nil
	w.d.log.Debug("closed window", "id", w.ID, "title", w.title)
}

func (w *Window) IsClosed() bool { return w.closed }

func (w *Window) StartTrackingMouse() { w.d.tracking = w }

func (w *Window) EndTrackingMouse() {
	if w.d.tracking == w {
		w.d.tracking = nil
	}
}

// Subscribe registers h; handlers run in subscription order.
func (w *Window) Subscribe(h dock.WindowHandler) func() {
	if w.handlers == nil {
		return func() {}
	}
	id := w.nextHandler
	w.nextHandler++
	w.handlers[id] = h
	return func() { delete(w.handlers, id) }
}

func (w *Window) snapshot() []dock.WindowHandler {
	ids := make([]int, 0, len(w.handlers))
	for id := range w.handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]dock.WindowHandler, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.handlers[id])
	}
	return out
}

func (w *Window) emitMouse(ev dock.MouseEvent) bool {
	for _, h := range w.snapshot() {
		if h.OnMouse != nil && h.OnMouse(ev) {
			return true
		}
	}
	return false
}

func (w *Window) emitLostFocus() {
	for _, h := range w.snapshot() {
		if h.OnLostFocus != nil {
			h.OnLostFocus()
		}
	}
}

var _ dock.HostWindow = (*Window)(nil)
