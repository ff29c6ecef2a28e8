// Package desktop is a headless window system: top-level windows with
// position, size, stacking, focus and mouse routing. It is the platform the
// dock engine runs on, both in the terminal front-end and in tests.
package desktop

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/google/uuid"
)

// ErrInvalidSize is returned when a window would cover no cells.
var ErrInvalidSize = errors.New("desktop: window size must be positive")

// Desktop owns every top-level window.
type Desktop struct {
	Width  int
	Height int

	windows    []*Window
	focused    *Window
	tracking   *Window
	pressed    *Window
	mouse      dock.Point
	appFocused bool
	z          int

	blurSubs map[int]func()
	nextSub  int

	log *log.Logger
}

// New creates an empty desktop of the given size.
func New(width, height int) *Desktop {
	return &Desktop{
		Width:      max(width, 1),
		Height:     max(height, 1),
		appFocused: true,
		blurSubs:   make(map[int]func()),
		log:        log.New(io.Discard),
	}
}

// SetLogger replaces the discard logger.
func (d *Desktop) SetLogger(l *log.Logger) {
	if l != nil {
		d.log = l
	}
}

// Bounds is the whole desktop.
func (d *Desktop) Bounds() dock.Rect { return dock.Rect{W: d.Width, H: d.Height} }

// CreateWindow opens a hidden top-level window.
func (d *Desktop) CreateWindow(opts dock.WindowOptions) (dock.HostWindow, error) {
	w, err := d.newWindow(opts)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (d *Desktop) newWindow(opts dock.WindowOptions) (*Window, error) {
	if opts.Size.W <= 0 || opts.Size.H <= 0 {
		return nil, fmt.Errorf("create %q (%dx%d): %w", opts.Title, opts.Size.W, opts.Size.H, ErrInvalidSize)
	}
	w := &Window{
		ID:         uuid.NewString(),
		d:          d,
		title:      opts.Title,
		x:          opts.Position.X,
		y:          opts.Position.Y,
		width:      opts.Size.W,
		height:     opts.Size.H,
		positioned: opts.Positioned,
		Frame:      opts.Frame,
		Overlay:    opts.Overlay,
		handlers:   make(map[int]dock.WindowHandler),
	}
	d.windows = append(d.windows, w)
	d.log.Debug("created window", "id", w.ID, "title", w.title, "overlay", w.Overlay)
	return w, nil
}

// NewMainWindow opens a frameless window that always covers the desktop.
func (d *Desktop) NewMainWindow(title string) *Window {
	w, _ := d.newWindow(dock.WindowOptions{
		Title:      title,
		Size:       dock.Size{W: d.Width, H: d.Height},
		Positioned: true,
	})
	w.fill = true
	w.Show()
	d.FocusWindow(w)
	return w
}

// MousePosition returns the position of the last dispatched mouse event.
func (d *Desktop) MousePosition() dock.Point { return d.mouse }

// SetMousePosition moves the cursor without sending an event.
func (d *Desktop) SetMousePosition(p dock.Point) { d.mouse = p }

func (d *Desktop) IsAppFocused() bool { return d.appFocused }

// OnAppBlur registers fn to run when the application loses focus.
func (d *Desktop) OnAppBlur(fn func()) func() {
	id := d.nextSub
	d.nextSub++
	d.blurSubs[id] = fn
	return func() { delete(d.blurSubs, id) }
}

// SetAppFocused records application focus; losing it notifies subscribers.
func (d *Desktop) SetAppFocused(focused bool) {
	was := d.appFocused
	d.appFocused = focused
	if !was || focused {
		return
	}
	ids := make([]int, 0, len(d.blurSubs))
	for id := range d.blurSubs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := d.blurSubs[id]; ok {
			fn()
		}
	}
}

// Resize changes the desktop size. Main and maximized windows follow it.
func (d *Desktop) Resize(width, height int) {
	d.Width, d.Height = max(width, 1), max(height, 1)
	for _, w := range d.windows {
		if w.fill || w.maximized {
			w.x, w.y, w.width, w.height = 0, 0, d.Width, d.Height
		}
	}
	d.log.Debug("resized desktop", "width", d.Width, "height", d.Height)
}

// Windows returns the open windows from bottom to top. Main windows stay
// below every other window and overlays above.
func (d *Desktop) Windows() []*Window {
	out := slices.Clone(d.windows)
	slices.SortStableFunc(out, func(a, b *Window) int {
		if c := cmp.Compare(a.layer(), b.layer()); c != 0 {
			return c
		}
		return cmp.Compare(a.z, b.z)
	})
	return out
}

// WindowAt returns the topmost visible window containing p. Overlays are
// never hit.
func (d *Desktop) WindowAt(p dock.Point) *Window {
	stack := d.Windows()
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		if w.visible && !w.Overlay && w.Bounds().Contains(p) {
			return w
		}
	}
	return nil
}

// Focused returns the focused window, nil when none is.
func (d *Desktop) Focused() *Window { return d.focused }

// FocusWindow focuses and raises w. The previously focused window is told it
// lost focus.
func (d *Desktop) FocusWindow(w *Window) {
	if w == nil || w.Overlay || w.closed {
		return
	}
	d.raise(w)
	if d.focused == w {
		return
	}
	prev := d.focused
	d.focused = w
	if prev != nil {
		prev.emitLostFocus()
	}
}

func (d *Desktop) raise(w *Window) {
	d.z++
	w.z = d.z
}

// Tracking returns the window capturing the mouse.
func (d *Desktop) Tracking() *Window { return d.tracking }

// DispatchMouse delivers ev to the window tracking the mouse, else the window
// that received the last press, else the window under the cursor. A press
// focuses its window. It reports whether a handler consumed the event.
func (d *Desktop) DispatchMouse(ev dock.MouseEvent) bool {
	d.mouse = ev.Pos
	target := d.tracking
	if target == nil {
		target = d.pressed
	}
	if target == nil {
		target = d.WindowAt(ev.Pos)
	}
	switch ev.Action {
	case dock.MouseDown:
		if d.pressed == nil {
			d.pressed = target
		}
		if d.tracking == nil {
			d.FocusWindow(target)
		}
	case dock.MouseUp:
		defer func() { d.pressed = nil }()
	}
	if target == nil {
		return false
	}
	return target.emitMouse(ev)
}

func (d *Desktop) remove(w *Window) {
	d.windows = slices.DeleteFunc(d.windows, func(o *Window) bool { return o == w })
	if d.tracking == w {
		d.tracking = nil
	}
	if d.pressed == w {
		d.pressed = nil
	}
	if d.focused == w {
		d.focused = nil
		d.focusTopmost()
	}
}

func (d *Desktop) focusTopmost() {
	stack := d.Windows()
	for i := len(stack) - 1; i >= 0; i-- {
		if w := stack[i]; w.visible && !w.Overlay {
			d.FocusWindow(w)
			return
		}
	}
}

var _ dock.Platform = (*Desktop)(nil)
