package dock

import (
	"errors"
	"fmt"
	"slices"

	"charm.land/log/v2"
	"github.com/google/uuid"
)

// Master is the docking workspace: the root panel of the main window, the
// registry of every window and of every floating panel, and the drag session.
type Master struct {
	opts     Options
	log      *log.Logger
	platform Platform
	t        tree

	root    *Panel
	windows []*Window
	floats  []*Panel
	session *Session

	capture ID
	hover   ID
	menu    *Menu

	onSelected []func(p *Panel, prev, next *Window)
	onClosed   []func(w *Window)
}

// NewMaster creates a workspace whose docked tree fills host.
func NewMaster(platform Platform, host HostWindow, opts Options) *Master {
	opts = opts.withDefaults()
	m := &Master{
		opts:     opts,
		log:      opts.Logger,
		platform: platform,
		capture:  NoID,
		hover:    NoID,
	}
	m.session = newSession(m)
	m.root = m.newPanel(MasterPanel, NoID)
	m.attachHost(m.root, host)
	return m
}

func (m *Master) attachHost(p *Panel, hw HostWindow) {
	p.host = hw
	p.unsubscribe = hw.Subscribe(WindowHandler{
		OnMouse:  func(ev MouseEvent) bool { return m.handleMouse(p, ev) },
		OnClosed: func() { m.onHostClosed(p) },
	})
}

// Options returns the effective options.
func (m *Master) Options() Options { return m.opts }

// SetOptions replaces the tunables. Logger and Measure keep their value when
// the new options leave them unset.
func (m *Master) SetOptions(opts Options) {
	if opts.Logger == nil {
		opts.Logger = m.opts.Logger
	}
	if opts.Measure == nil {
		opts.Measure = m.opts.Measure
	}
	m.opts = opts.withDefaults()
	m.log = m.opts.Logger
	for _, w := range m.windows {
		w.titleWidth = -1
	}
}

// Logger returns the engine logger.
func (m *Master) Logger() *log.Logger { return m.log }

// Platform returns the window system the workspace runs on.
func (m *Master) Platform() Platform { return m.platform }

// Root returns the root panel of the docked tree.
func (m *Master) Root() *Panel { return m.root }

// Session returns the drag session controller.
func (m *Master) Session() *Session { return m.session }

// Floats returns the floating panels, oldest first.
func (m *Master) Floats() []*Panel { return slices.Clone(m.floats) }

// Roots returns the master root followed by every floating root.
func (m *Master) Roots() []*Panel {
	return append([]*Panel{m.root}, m.floats...)
}

// RootFor returns the root panel shown in hw, nil when hw is not a dock host.
func (m *Master) RootFor(hw HostWindow) *Panel {
	for _, r := range m.Roots() {
		if r.host == hw {
			return r
		}
	}
	return nil
}

// Windows returns every registered window in creation order.
func (m *Master) Windows() []*Window { return slices.Clone(m.windows) }

// HiddenWindows returns the registered windows that are not docked anywhere.
func (m *Master) HiddenWindows() []*Window {
	var out []*Window
	for _, w := range m.windows {
		if w.host == NoID {
			out = append(out, w)
		}
	}
	return out
}

// FindWindow looks a window up by id, then by title.
func (m *Master) FindWindow(key string) *Window {
	for _, w := range m.windows {
		if w.id == key {
			return w
		}
	}
	for _, w := range m.windows {
		if w.title == key {
			return w
		}
	}
	return nil
}

// WindowOption customizes NewWindow.
type WindowOption func(*Window)

// WithHideOnClose keeps the window registered when it is closed.
func WithHideOnClose() WindowOption {
	return func(w *Window) { w.HideOnClose = true }
}

// WithID overrides the generated identifier.
func WithID(id string) WindowOption {
	return func(w *Window) { w.id = id }
}

// NewWindow registers a hidden window showing content.
func (m *Master) NewWindow(title string, content Content, opts ...WindowOption) *Window {
	w := &Window{
		id:         uuid.NewString(),
		m:          m,
		title:      title,
		titleWidth: -1,
		host:       NoID,
		content:    content,
	}
	for _, opt := range opts {
		opt(w)
	}
	m.windows = append(m.windows, w)
	m.log.Debug("registered window", "window", title, "id", w.id)
	return w
}

func (m *Master) unregister(w *Window) {
	m.windows = slices.DeleteFunc(m.windows, func(o *Window) bool { return o == w })
}

// OnSelectedChanged registers fn to run whenever a panel's selected tab changes.
func (m *Master) OnSelectedChanged(fn func(p *Panel, prev, next *Window)) {
	m.onSelected = append(m.onSelected, fn)
}

// OnWindowClosed registers fn to run when a window is destroyed.
func (m *Master) OnWindowClosed(fn func(w *Window)) {
	m.onClosed = append(m.onClosed, fn)
}

func (m *Master) notifySelected(p *Panel, prev, next *Window) {
	for _, fn := range m.onSelected {
		fn(p, prev, next)
	}
}

func (m *Master) notifyClosed(w *Window) {
	for _, fn := range m.onClosed {
		fn(w)
	}
}

func (m *Master) panel(id ID) *Panel {
	if e := m.t.get(id); e != nil && e.kind == KindPanel {
		return e.panel
	}
	return nil
}

func (m *Master) splitter(id ID) *Splitter {
	if e := m.t.get(id); e != nil && e.kind == KindSplitter {
		return e.split
	}
	return nil
}

// Arrange lays every root out inside its host's client area.
func (m *Master) Arrange() {
	for _, r := range m.Roots() {
		if r.host != nil {
			m.arrange(r.id, r.host.ClientBounds())
		}
	}
}

func (m *Master) arrange(id ID, r Rect) {
	e := m.t.get(id)
	if e == nil {
		return
	}
	e.bounds = r
	switch e.kind {
	case KindPanel:
		m.arrange(e.panel.content, r)
	case KindSplitter:
		a, bar, b := e.split.divide(r, m.opts.SplitterSize)
		e.split.bar = bar
		m.arrange(e.split.first, a)
		m.arrange(e.split.second, b)
	}
}

// HitTest finds the panel under the screen point pt across every visible
// floating window except excluded and the docked tree. The candidate in the
// focused host wins, then the candidate in the topmost host.
func (m *Master) HitTest(pt Point, excluded *Panel) *Panel {
	m.Arrange()
	var best *Panel
	var bestHost HostWindow
	for _, r := range m.Roots() {
		if r == excluded || r.host == nil || !r.host.IsVisible() {
			continue
		}
		if !r.host.ClientBounds().Contains(pt) {
			continue
		}
		hit := r.hitTest(pt)
		if hit == nil {
			continue
		}
		switch {
		case best == nil:
		case r.host.IsFocused() && !bestHost.IsFocused():
		case bestHost.IsFocused():
			continue
		case r.host.Z() <= bestHost.Z():
			continue
		}
		best, bestHost = hit, r.host
	}
	return best
}

// Tick runs the commands deferred by input handlers since the last tick.
func (m *Master) Tick() {
	m.session.flush()
}

// Defer queues fn for the next Tick.
func (m *Master) Defer(fn func()) { m.session.Defer(fn) }

// freeRegion releases id and everything below it in the control tree. Tabs
// found on the way lose their host; callers re-home them.
func (m *Master) freeRegion(id ID) {
	e := m.t.get(id)
	if e == nil {
		return
	}
	switch e.kind {
	case KindPanel:
		p := e.panel
		m.freeRegion(p.content)
		for _, w := range p.tabs {
			if w.host == p.id {
				w.host = NoID
			}
		}
		p.tabs, p.children, p.selected = nil, nil, nil
		p.content, p.proxy = NoID, NoID
	case KindSplitter:
		m.freeRegion(e.split.first)
		m.freeRegion(e.split.second)
	}
	if m.capture == id {
		m.capture = NoID
	}
	if m.hover == id {
		m.hover = NoID
	}
	m.t.free(id)
}

func (m *Master) newFloat(pos Point, size Size) (*Panel, error) {
	hw, err := m.platform.CreateWindow(WindowOptions{
		Position:   pos,
		Size:       size,
		Positioned: true,
		Frame:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("create floating window: %w", err)
	}
	p := m.newPanel(FloatPanel, NoID)
	m.attachHost(p, hw)
	p.ensureProxy()
	m.floats = append(m.floats, p)
	m.log.Debug("created floating panel", "panel", p.id, "pos", pos, "size", size)
	return p, nil
}

func (m *Master) closeFloat(p *Panel) {
	if !p.Alive() || p.kind != FloatPanel {
		return
	}
	m.floats = slices.DeleteFunc(m.floats, func(f *Panel) bool { return f == p })
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	for _, w := range p.AllTabs() {
		w.visible = false
	}
	hw := p.host
	m.freeRegion(p.id)
	if hw != nil {
		hw.Close()
	}
	m.log.Debug("closed floating panel", "panel", p.id)
}

// onHostClosed closes every tab of a floating window whose host went away.
// Hide-on-close tabs stay registered, the rest are destroyed.
func (m *Master) onHostClosed(p *Panel) {
	if p.kind != FloatPanel || !p.Alive() {
		return
	}
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	for _, w := range p.AllTabs() {
		if err := w.Close(); err != nil {
			m.log.Warn("close tab of closed window", "window", w.title, "err", err)
		}
	}
	m.closeFloat(p)
}

// ResetLayout closes every floating window, empties the docked tree and
// destroys every registered window.
func (m *Master) ResetLayout() {
	m.session.cancel()
	m.menu = nil
	for _, f := range m.Floats() {
		m.closeFloat(f)
	}
	root := m.root
	m.freeRegion(root.content)
	for _, w := range root.tabs {
		w.host = NoID
	}
	root.tabs, root.children, root.selected = nil, nil, nil
	root.content, root.proxy = NoID, NoID
	for _, w := range m.windows {
		w.host = NoID
		w.visible = false
		w.destroyed = true
	}
	n := len(m.windows)
	m.windows = nil
	m.capture, m.hover = NoID, NoID
	m.log.Debug("reset layout", "windows", n)
}

// Reachable returns every window docked in any tree, master first.
func (m *Master) Reachable() []*Window {
	var out []*Window
	for _, r := range m.Roots() {
		out = append(out, r.AllTabs()...)
	}
	return out
}

// Validate checks the structural invariants of every tree and the registry.
func (m *Master) Validate() error {
	var errs []error
	seen := make(map[*Window]bool)
	for _, r := range m.Roots() {
		if !r.Alive() {
			errs = append(errs, fmt.Errorf("root %s is gone", r))
			continue
		}
		if r.kind == FloatPanel && len(r.AllTabs()) == 0 {
			errs = append(errs, fmt.Errorf("floating %s has no windows", r))
		}
		r.Walk(func(p *Panel) bool {
			if p.kind == ChildPanel && len(p.tabs) == 0 && len(p.children) == 0 {
				errs = append(errs, fmt.Errorf("empty leaf %s", p))
			}
			if p.selected != nil && !p.ContainsTab(p.selected) {
				errs = append(errs, fmt.Errorf("%s selects foreign window %q", p, p.selected.title))
			}
			for _, w := range p.tabs {
				if seen[w] {
					errs = append(errs, fmt.Errorf("window %q docked twice", w.title))
				}
				seen[w] = true
				if w.host != p.id {
					errs = append(errs, fmt.Errorf("window %q in %s points at panel %d", w.title, p, w.host))
				}
				if !slices.Contains(m.windows, w) {
					errs = append(errs, fmt.Errorf("window %q in %s is not registered", w.title, p))
				}
			}
			return true
		})
	}
	for _, w := range m.windows {
		if w.host != NoID && !seen[w] {
			errs = append(errs, fmt.Errorf("window %q is orphaned", w.title))
		}
	}
	return errors.Join(errs...)
}
