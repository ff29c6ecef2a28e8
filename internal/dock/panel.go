package dock

import (
	"fmt"
	"slices"
)

// PanelKind distinguishes tree roots from nested panels.
type PanelKind uint8

const (
	ChildPanel PanelKind = iota
	MasterPanel
	FloatPanel
)

func (k PanelKind) String() string {
	switch k {
	case MasterPanel:
		return "master"
	case FloatPanel:
		return "float"
	}
	return "child"
}

// Panel is a node of a dock tree. It owns an ordered tab list, a selected tab,
// child panels and, once it has shown a tab, a tab-strip proxy. Child panels
// live inside splitters that wrap the proxy, so the proxy always keeps the
// region the children leave over.
type Panel struct {
	id          ID
	m           *Master
	kind        PanelKind
	parentPanel ID
	children    []ID
	tabs        []*Window
	selected    *Window
	content     ID
	proxy       ID

	// roots only
	host        HostWindow
	unsubscribe func()
}

func (m *Master) newPanel(kind PanelKind, parent ID) *Panel {
	p := &Panel{m: m, kind: kind, parentPanel: parent, content: NoID, proxy: NoID}
	p.id = m.t.add(&entity{kind: KindPanel, parent: NoID, panel: p})
	return p
}

// ID returns the arena handle.
func (p *Panel) ID() ID { return p.id }

// Kind reports whether p is the master root, a float root or a nested panel.
func (p *Panel) Kind() PanelKind { return p.kind }

// Alive reports whether the panel is still part of a tree.
func (p *Panel) Alive() bool {
	if p == nil {
		return false
	}
	e := p.m.t.get(p.id)
	return e != nil && e.panel == p
}

// Master returns the owning master panel registry.
func (p *Panel) Master() *Master { return p.m }

// IsMaster reports whether p is the root of the docked tree.
func (p *Panel) IsMaster() bool { return p.kind == MasterPanel }

// IsFloating reports whether p is the root of a floating window.
func (p *Panel) IsFloating() bool { return p.kind == FloatPanel }

// ParentPanel returns the containing panel, nil for roots.
func (p *Panel) ParentPanel() *Panel { return p.m.panel(p.parentPanel) }

// Root walks up to the tree root.
func (p *Panel) Root() *Panel {
	q := p
	for {
		up := q.ParentPanel()
		if up == nil {
			return q
		}
		q = up
	}
}

// Host returns the top-level window showing this panel's tree.
func (p *Panel) Host() HostWindow { return p.Root().host }

// ChildPanels returns the nested panels in creation order.
func (p *Panel) ChildPanels() []*Panel {
	out := make([]*Panel, 0, len(p.children))
	for _, id := range p.children {
		if c := p.m.panel(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ChildPanelsCount returns the number of nested panels.
func (p *Panel) ChildPanelsCount() int { return len(p.children) }

// Tabs returns a copy of the tab list.
func (p *Panel) Tabs() []*Window { return slices.Clone(p.tabs) }

// TabsCount returns the number of tabs.
func (p *Panel) TabsCount() int { return len(p.tabs) }

// GetTab returns the tab at i or nil.
func (p *Panel) GetTab(i int) *Window {
	if i < 0 || i >= len(p.tabs) {
		return nil
	}
	return p.tabs[i]
}

// TabIndex returns the position of w, or -1.
func (p *Panel) TabIndex(w *Window) int { return slices.Index(p.tabs, w) }

// ContainsTab reports whether w is one of p's tabs.
func (p *Panel) ContainsTab(w *Window) bool { return p.TabIndex(w) >= 0 }

// SelectedTab returns the visible tab, nil if there is none.
func (p *Panel) SelectedTab() *Window { return p.selected }

// SelectedTabIndex returns the index of the selected tab, or -1.
func (p *Panel) SelectedTabIndex() int { return p.TabIndex(p.selected) }

// Bounds returns the region assigned to p by the last Arrange.
func (p *Panel) Bounds() Rect {
	if e := p.m.t.get(p.id); e != nil {
		return e.bounds
	}
	return Rect{}
}

// DockAreaBounds returns the area drop hints are laid out in: the proxy's
// region when there is one, the whole panel otherwise.
func (p *Panel) DockAreaBounds() Rect {
	if e := p.m.t.get(p.proxy); e != nil {
		return e.bounds
	}
	return p.Bounds()
}

// Proxy returns the tab strip, nil until the first tab is docked.
func (p *Panel) Proxy() *Proxy {
	if e := p.m.t.get(p.proxy); e != nil {
		return e.proxy
	}
	return nil
}

// Walk visits p and its descendants in depth-first order until fn returns false.
func (p *Panel) Walk(fn func(*Panel) bool) bool {
	if !fn(p) {
		return false
	}
	for _, c := range p.ChildPanels() {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// AllTabs returns the tabs of p and its descendants in depth-first order.
func (p *Panel) AllTabs() []*Window {
	var out []*Window
	p.Walk(func(q *Panel) bool {
		out = append(out, q.tabs...)
		return true
	})
	return out
}

// SelectTab makes w the visible tab. Selecting the already selected tab
// only refocuses the host when autoFocus is set.
func (p *Panel) SelectTab(w *Window, autoFocus bool) {
	if w != nil && !p.ContainsTab(w) {
		return
	}
	if p.selected == w {
		if autoFocus && w != nil {
			p.focusHost()
		}
		return
	}
	prev := p.selected
	p.selected = w
	if root := p.Root(); root.kind == FloatPanel && root.host != nil && w != nil {
		root.host.SetTitle(w.title)
	}
	if autoFocus {
		p.focusHost()
	}
	p.m.notifySelected(p, prev, w)
}

// SelectTabIndex selects the tab at i.
func (p *Panel) SelectTabIndex(i int, autoFocus bool) {
	if w := p.GetTab(i); w != nil {
		p.SelectTab(w, autoFocus)
	}
}

func (p *Panel) focusHost() {
	if hw := p.Host(); hw != nil && !hw.IsFocused() {
		hw.Focus()
	}
}

// MoveTab moves w to index, clamped to the tab list.
func (p *Panel) MoveTab(w *Window, index int) {
	i := p.TabIndex(w)
	if i < 0 {
		return
	}
	index = clampInt(index, 0, len(p.tabs)-1)
	if i == index {
		return
	}
	p.tabs = slices.Delete(p.tabs, i, i+1)
	p.tabs = slices.Insert(p.tabs, index, w)
}

// DockWindow docks w into p. DockFill adds a tab; the four directions create
// a child panel in a new splitter around the proxy at splitterValue (or the
// default ratio) and dock w there.
func (p *Panel) DockWindow(state DockState, w *Window, autoSelect bool, splitterValue float64) error {
	if !p.Alive() {
		return ErrPanelGone
	}
	if w == nil || w.destroyed {
		return ErrWindowGone
	}
	if w.host != NoID {
		return fmt.Errorf("dock %q into panel %d: %w", w.title, p.id, ErrAlreadyDocked)
	}
	switch {
	case state == DockFill:
		p.addTab(w, autoSelect)
		return nil
	case state.IsSplit():
		child, err := p.CreateChildPanel(state, splitterValue)
		if err != nil {
			return err
		}
		child.addTab(w, autoSelect)
		return nil
	}
	return fmt.Errorf("dock %q as %s: %w", w.title, state, ErrInvalidState)
}

func (p *Panel) addTab(w *Window, autoSelect bool) {
	p.ensureProxy()
	p.tabs = append(p.tabs, w)
	w.host = p.id
	w.visible = true
	p.m.log.Debug("docked window", "window", w.title, "panel", p.id, "tabs", len(p.tabs))
	if autoSelect || p.selected == nil {
		p.SelectTab(w, autoSelect)
	}
}

func (p *Panel) ensureProxy() ID {
	if p.m.t.get(p.proxy) != nil {
		return p.proxy
	}
	x := &Proxy{panel: p}
	x.id = p.m.t.add(&entity{kind: KindProxy, parent: p.id, proxy: x})
	p.proxy = x.id
	if p.content == NoID {
		p.content = x.id
	}
	return x.id
}

// CreateChildPanel adds an empty child panel on the given side of p's proxy.
// The stored ratio always describes the first pane, so Right and Bottom keep
// 1-splitterValue.
func (p *Panel) CreateChildPanel(state DockState, splitterValue float64) (*Panel, error) {
	if !p.Alive() {
		return nil, ErrPanelGone
	}
	if !state.IsSplit() {
		return nil, fmt.Errorf("create child panel at %s: %w", state, ErrInvalidState)
	}
	m := p.m
	v := m.opts.ratio(splitterValue)
	proxy := p.ensureProxy()
	slot := m.t.get(proxy).parent

	child := m.newPanel(ChildPanel, p.id)
	sp := &Splitter{Orientation: state.Orientation(), owner: p.id}
	sp.id = m.t.add(&entity{kind: KindSplitter, parent: NoID, split: sp})
	if state == DockRight || state == DockBottom {
		sp.first, sp.second, sp.ratio = proxy, child.id, 1-v
	} else {
		sp.first, sp.second, sp.ratio = child.id, proxy, v
	}
	m.t.replaceChild(slot, proxy, sp.id)
	m.t.get(proxy).parent = sp.id
	m.t.get(child.id).parent = sp.id
	p.children = append(p.children, child.id)
	m.log.Debug("split panel", "panel", p.id, "state", state, "ratio", v, "child", child.id)
	return child, nil
}

// UndockWindow removes w from the tab list. Undocking a window that is not a
// tab of p is a programmer error and returns ErrNotDocked.
func (p *Panel) UndockWindow(w *Window) error {
	if !p.Alive() {
		return ErrPanelGone
	}
	i := p.TabIndex(w)
	if i < 0 {
		title := "<nil>"
		if w != nil {
			title = w.title
		}
		return fmt.Errorf("undock %q from panel %d: %w", title, p.id, ErrNotDocked)
	}
	if p.selected == w {
		var next *Window
		switch {
		case i+1 < len(p.tabs):
			next = p.tabs[i+1]
		case i > 0:
			next = p.tabs[i-1]
		}
		p.SelectTab(next, false)
	}
	p.tabs = slices.Delete(p.tabs, i, i+1)
	w.host = NoID
	p.m.log.Debug("undocked window", "window", w.title, "panel", p.id, "tabs", len(p.tabs))
	if len(p.tabs) == 0 {
		p.onLastTabRemoved()
	}
	return nil
}

func (p *Panel) onLastTabRemoved() {
	switch {
	case len(p.children) > 0:
		p.hoistChildTabs()
	case p.kind == ChildPanel:
		p.collapse()
	case p.kind == FloatPanel:
		p.m.closeFloat(p)
	}
}

// hoistChildTabs moves every tab of the descendants into p and drops the
// child regions. The first descendant with a selection keeps it.
func (p *Panel) hoistChildTabs() {
	m := p.m
	var moved []*Window
	var keep *Window
	for _, c := range p.ChildPanels() {
		c.Walk(func(q *Panel) bool {
			if keep == nil && q.selected != nil {
				keep = q.selected
			}
			moved = append(moved, q.tabs...)
			return true
		})
	}
	proxy := p.ensureProxy()
	if p.content != proxy {
		pe := m.t.get(proxy)
		m.t.replaceChild(pe.parent, proxy, NoID)
		m.freeRegion(p.content)
		p.content = proxy
		pe.parent = p.id
	}
	p.children = nil
	for _, w := range moved {
		p.tabs = append(p.tabs, w)
		w.host = p.id
	}
	if keep == nil && len(p.tabs) > 0 {
		keep = p.tabs[0]
	}
	m.log.Debug("hoisted child tabs", "panel", p.id, "tabs", len(p.tabs))
	p.SelectTab(keep, false)
}

// collapse removes an empty leaf child: its splitter goes away and the
// sibling pane takes the whole slot.
func (p *Panel) collapse() {
	m := p.m
	e := m.t.get(p.id)
	sp := m.splitter(e.parent)
	if sp == nil {
		return
	}
	sibling := sp.other(p.id)
	grand := m.t.get(sp.id).parent
	m.t.replaceChild(grand, sp.id, sibling)
	m.t.free(sp.id)
	if parent := p.ParentPanel(); parent != nil {
		parent.children = slices.DeleteFunc(parent.children, func(id ID) bool { return id == p.id })
	}
	m.freeRegion(p.id)
	m.log.Debug("collapsed panel", "panel", p.id, "splitter", sp.id)
}

// HitTest returns the deepest panel of p's subtree under pt, preferring the
// smallest matching child, or nil when pt is outside p.
func (p *Panel) HitTest(pt Point) *Panel {
	p.m.Arrange()
	return p.hitTest(pt)
}

func (p *Panel) hitTest(pt Point) *Panel {
	if !p.Bounds().Contains(pt) {
		return nil
	}
	var best *Panel
	for _, c := range p.ChildPanels() {
		if hit := c.hitTest(pt); hit != nil {
			if best == nil || hit.Bounds().Area() < best.Bounds().Area() {
				best = hit
			}
		}
	}
	if best != nil {
		return best
	}
	return p
}

// TryGetDockState reports how p sits inside its parent splitter. The ratio is
// the value DockWindow was given, so the pair can recreate the split.
func (p *Panel) TryGetDockState() (DockState, float64, bool) {
	e := p.m.t.get(p.id)
	if e == nil {
		return DockUnknown, 0, false
	}
	sp := p.m.splitter(e.parent)
	if sp == nil {
		return DockFill, 0, false
	}
	first := sp.first == p.id
	switch {
	case sp.Orientation == Horizontal && first:
		return DockLeft, sp.ratio, true
	case sp.Orientation == Horizontal:
		return DockRight, 1 - sp.ratio, true
	case first:
		return DockTop, sp.ratio, true
	}
	return DockBottom, 1 - sp.ratio, true
}

// Splitter returns the splitter p sits in, nil for roots.
func (p *Panel) Splitter() *Splitter {
	if e := p.m.t.get(p.id); e != nil {
		return p.m.splitter(e.parent)
	}
	return nil
}

func (p *Panel) String() string {
	return fmt.Sprintf("%s#%d", p.kind, p.id)
}

// Resize moves p's splitter bar so p gains delta cells, negative to shrink.
// Both panes keep MinPaneSize cells when the region allows it. Roots have no
// splitter and report false.
func (p *Panel) Resize(delta int) bool {
	sp := p.Splitter()
	if sp == nil || delta == 0 {
		return false
	}
	p.m.Arrange()
	region := p.m.t.get(sp.id).bounds
	if sp.first != p.id {
		delta = -delta
	}
	at := sp.bar.Location().Add(Point{delta, delta})
	before := sp.ratio
	sp.dragTo(region, at, p.m.opts.MinPaneSize)
	if sp.ratio == before {
		return false
	}
	p.m.Arrange()
	return true
}
