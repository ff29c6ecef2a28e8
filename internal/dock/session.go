package dock

import (
	"fmt"
	"math"
)

// DragPhase is the state of the drag session controller.
type DragPhase uint8

const (
	DragIdle DragPhase = iota
	DragDragging
	DragCommitting
)

func (p DragPhase) String() string {
	switch p {
	case DragDragging:
		return "dragging"
	case DragCommitting:
		return "committing"
	}
	return "idle"
}

// Session owns the deferred command queue and the window drag state
// machine. At most one drag runs at a time.
type Session struct {
	m     *Master
	queue []func()
	phase DragPhase
	drag  *dragState
	hints []*Hint

	releases int
}

type dragState struct {
	moved       *Panel
	window      HostWindow
	offset      Point
	offsetValid bool
	target      *Panel
	state       DockState
	area        Rect
	regions     [hintCount]Rect
	unsubs      []func()
	done        bool
}

func newSession(m *Master) *Session {
	return &Session{m: m}
}

// Defer queues fn for the next tick.
func (s *Session) Defer(fn func()) { s.queue = append(s.queue, fn) }

// Pending returns the number of queued commands.
func (s *Session) Pending() int { return len(s.queue) }

// flush runs the queue as it was when the tick started; commands queued by
// those commands wait for the following tick.
func (s *Session) flush() {
	q := s.queue
	s.queue = nil
	for _, fn := range q {
		fn()
	}
}

// Phase returns where the session is between drag start and commit.
func (s *Session) Phase() DragPhase { return s.phase }

// IsDragging reports whether a drag is running or waiting to commit.
func (s *Session) IsDragging() bool { return s.phase != DragIdle }

// Moved returns the floating panel being dragged.
func (s *Session) Moved() *Panel {
	if s.drag == nil {
		return nil
	}
	return s.drag.moved
}

// Target returns the panel under the cursor, nil when there is none.
func (s *Session) Target() *Panel {
	if s.drag == nil {
		return nil
	}
	return s.drag.target
}

// State returns the resolved drop direction.
func (s *Session) State() DockState {
	if s.drag == nil {
		return DockUnknown
	}
	return s.drag.state
}

// Hints returns the pooled hint overlays.
func (s *Session) Hints() []*Hint { return s.hints }

// StartWindowDrag begins moving the floating panel f with the mouse.
func (s *Session) StartWindowDrag(f *Panel) error {
	if s.phase != DragIdle {
		return ErrDragActive
	}
	if !f.Alive() {
		return ErrPanelGone
	}
	if f.kind != FloatPanel {
		return fmt.Errorf("drag %s: %w", f, ErrInvalidState)
	}
	m := s.m
	hw := f.host
	mouse := m.platform.MousePosition()
	if hw.IsMaximized() {
		b := hw.Bounds()
		rx := float64(mouse.X-b.X) / float64(max(b.W, 1))
		ry := float64(mouse.Y-b.Y) / float64(max(b.H, 1))
		hw.Restore()
		size := hw.Size()
		hw.SetPosition(Point{
			X: mouse.X - int(math.Round(rx*float64(size.W))),
			Y: mouse.Y - int(math.Round(ry*float64(size.H))),
		})
	}
	d := &dragState{moved: f, window: hw, state: Float}
	if hw.IsPositioned() {
		d.offset = mouse.Sub(hw.Position())
		d.offsetValid = true
	}
	s.ensureHints()
	m.capture, m.menu = NoID, nil
	hw.Show()
	hw.Focus()
	hw.StartTrackingMouse()
	d.unsubs = append(d.unsubs,
		hw.Subscribe(WindowHandler{
			OnMouse:     s.onMouse,
			OnLostFocus: func() { s.end(true) },
			OnClosed:    func() { s.end(true) },
		}),
		m.platform.OnAppBlur(func() { s.end(true) }),
	)
	s.drag = d
	s.phase = DragDragging
	m.log.Debug("drag started", "panel", f.id, "offset", d.offset, "offsetValid", d.offsetValid)
	s.update(mouse)
	return nil
}

func (s *Session) onMouse(ev MouseEvent) bool {
	d := s.drag
	if d == nil || d.done {
		return false
	}
	switch ev.Action {
	case MouseMove:
		s.moveTo(ev.Pos)
	case MouseUp:
		s.moveTo(ev.Pos)
		s.end(false)
	}
	return true
}

func (s *Session) moveTo(pt Point) {
	d := s.drag
	if !d.offsetValid {
		d.offset = pt.Sub(d.window.Position())
		d.offsetValid = true
	}
	d.window.SetPosition(pt.Sub(d.offset))
	s.update(pt)
}

// update re-resolves the drop target and direction for the cursor at pt.
func (s *Session) update(pt Point) {
	d := s.drag
	m := s.m
	target := m.HitTest(pt, d.moved)
	if target != d.target {
		d.target = target
		for _, h := range s.hints {
			h.owner = target
			h.active = false
			h.host.Hide()
		}
	}
	d.state = Float
	if target == nil {
		return
	}
	d.area = target.DockAreaBounds()
	d.regions = hintRegions(d.area, m.opts.HintSize, m.opts.HintMargin)
	// A moved panel holding a split gets no hints and can only float.
	show := len(d.moved.children) == 0
	if show {
		for slot := HintUp; slot < hintCount; slot++ {
			if d.regions[slot].Contains(pt) {
				d.state = slot.State()
			}
		}
	}
	s.layoutHints(d, show)
}

// end finishes the drag exactly once. Input subscriptions, mouse tracking and
// hints are released right away; the tree changes on the next tick.
func (s *Session) end(forceFloat bool) {
	d := s.drag
	if d == nil || d.done {
		return
	}
	d.done = true
	if forceFloat {
		d.state = Float
	}
	s.release(d)
	s.phase = DragCommitting
	s.Defer(func() {
		s.commit(d)
		s.drag = nil
		s.phase = DragIdle
	})
}

// Abort ends a running drag, leaving the moved window floating where it is.
func (s *Session) Abort() { s.end(true) }

func (s *Session) release(d *dragState) {
	for _, unsub := range d.unsubs {
		unsub()
	}
	d.unsubs = nil
	d.window.EndTrackingMouse()
	s.hideHints()
	s.releases++
}

// cancel drops the running drag and every queued command without committing.
func (s *Session) cancel() {
	if d := s.drag; d != nil && !d.done {
		d.done = true
		s.release(d)
	}
	s.drag = nil
	s.phase = DragIdle
	s.queue = nil
}

func (s *Session) commit(d *dragState) {
	m := s.m
	if !d.moved.Alive() {
		return
	}
	if d.state == Float || !d.target.Alive() {
		if d.offsetValid {
			d.window.SetPosition(m.platform.MousePosition().Sub(d.offset))
		}
		d.window.Show()
		m.log.Debug("drag ended floating", "panel", d.moved.id, "pos", d.window.Position())
		return
	}
	selected := d.moved.SelectedTab()
	tabs := d.moved.AllTabs()
	if len(tabs) == 0 {
		return
	}
	first := tabs[0]
	if err := first.Show(d.state, d.target, true, 0); err != nil {
		m.log.Error("dock dragged window", "window", first.title, "state", d.state, "err", err)
		return
	}
	dest := first.Host()
	for _, w := range tabs[1:] {
		if err := w.Show(DockFill, dest, false, 0); err != nil {
			m.log.Error("dock dragged window", "window", w.title, "err", err)
		}
	}
	if selected != nil && selected.Host() == dest {
		dest.SelectTab(selected, true)
	}
	m.log.Debug("drag committed", "target", d.target.id, "state", d.state, "windows", len(tabs))
}
