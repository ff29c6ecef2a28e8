package dock

// TabRect is the layout of one tab in a proxy header.
type TabRect struct {
	Window *Window
	Rect   Rect
	Close  Rect
}

// Proxy is the tab strip of a panel: a header row of tabs above the selected
// window's content.
type Proxy struct {
	id    ID
	panel *Panel

	pressed        *Window
	pressedOnClose bool
	dragQueued     bool

	hover      *Window
	hoverClose bool
}

func (x *Proxy) ID() ID { return x.id }

func (x *Proxy) Panel() *Panel { return x.panel }

// Bounds returns the region assigned by the last Arrange.
func (x *Proxy) Bounds() Rect {
	if e := x.panel.m.t.get(x.id); e != nil {
		return e.bounds
	}
	return Rect{}
}

// HeaderRect is the tab row.
func (x *Proxy) HeaderRect() Rect {
	b := x.Bounds()
	b.H = min(b.H, x.panel.m.opts.HeaderHeight)
	return b
}

// ContentRect is the area below the tab row.
func (x *Proxy) ContentRect() Rect {
	b := x.Bounds()
	h := min(b.H, x.panel.m.opts.HeaderHeight)
	return Rect{b.X, b.Y + h, b.W, b.H - h}
}

// IsSingleFloatingWindow reports whether the header shows a single tab of a
// floating window across its whole width.
func (x *Proxy) IsSingleFloatingWindow() bool {
	p := x.panel
	return p.kind == FloatPanel && len(p.children) == 0 && len(p.tabs) == 1
}

// TabRects lays the tabs out left to right from their measured titles.
func (x *Proxy) TabRects() []TabRect {
	header := x.HeaderRect()
	tabs := x.panel.tabs
	if x.IsSingleFloatingWindow() {
		return []TabRect{{Window: tabs[0], Rect: header, Close: x.closeRect(header)}}
	}
	opts := x.panel.m.opts
	out := make([]TabRect, 0, len(tabs))
	left := header.X
	for _, w := range tabs {
		width := 2*opts.TabPadding + w.TitleWidth() + 1 + opts.CloseButtonWidth
		r := Rect{left, header.Y, width, header.H}
		out = append(out, TabRect{Window: w, Rect: r, Close: x.closeRect(r)})
		left += width
	}
	return out
}

func (x *Proxy) closeRect(tab Rect) Rect {
	opts := x.panel.m.opts
	return Rect{tab.Right() - opts.TabPadding - opts.CloseButtonWidth, tab.Y, opts.CloseButtonWidth, tab.H}
}

// GetTabAtPos returns the tab under p and whether p is over its close button.
func (x *Proxy) GetTabAtPos(p Point) (*Window, bool) {
	if !x.HeaderRect().Contains(p) {
		return nil, false
	}
	for _, tr := range x.TabRects() {
		if tr.Rect.Contains(p) {
			return tr.Window, tr.Close.Contains(p)
		}
	}
	return nil, false
}

func (x *Proxy) onMouseDown(ev MouseEvent) bool {
	w, overClose := x.GetTabAtPos(ev.Pos)
	if w == nil {
		return false
	}
	switch ev.Button {
	case ButtonLeft:
		x.pressed, x.pressedOnClose, x.dragQueued = w, overClose, false
		if !overClose {
			x.panel.SelectTab(w, true)
		}
		return true
	case ButtonRight:
		x.panel.m.OpenMenu(x.ContextMenu(w), ev.Pos)
		return true
	}
	return false
}

func (x *Proxy) onMouseUp(ev MouseEvent) {
	pressed, onClose := x.pressed, x.pressedOnClose
	x.pressed, x.pressedOnClose = nil, false
	if pressed == nil || !onClose || ev.Button != ButtonLeft {
		return
	}
	if w, overClose := x.GetTabAtPos(ev.Pos); overClose && w == pressed {
		if err := w.Close(); err != nil {
			x.panel.m.log.Error("close tab", "window", w.title, "err", err)
		}
	}
}

func (x *Proxy) onMouseMove(ev MouseEvent) {
	x.onHover(ev.Pos)
	w := x.pressed
	if w == nil || x.pressedOnClose || x.dragQueued {
		return
	}
	if !x.HeaderRect().Contains(ev.Pos) {
		x.queueDrag(w)
		return
	}
	if x.IsSingleFloatingWindow() {
		return
	}
	i := x.panel.TabIndex(w)
	if i < 0 {
		return
	}
	rects := x.TabRects()
	r := rects[i].Rect
	switch {
	case ev.Pos.X < r.X && i > 0:
		x.panel.MoveTab(w, i-1)
	case ev.Pos.X >= r.Right() && i < len(rects)-1:
		x.panel.MoveTab(w, i+1)
	}
}

func (x *Proxy) onHover(p Point) {
	x.hover, x.hoverClose = x.GetTabAtPos(p)
}

func (x *Proxy) onMouseLeave() {
	x.hover, x.hoverClose = nil, false
}

// Hovered returns the tab under the cursor and whether its close button is hot.
func (x *Proxy) Hovered() (*Window, bool) { return x.hover, x.hoverClose }

// queueDrag starts the tab drag on the next tick, outside the input handler.
func (x *Proxy) queueDrag(w *Window) {
	x.dragQueued = true
	x.pressed = nil
	x.panel.m.Defer(func() { x.startDrag(w) })
}

func (x *Proxy) startDrag(w *Window) {
	p := x.panel
	m := p.m
	if m.capture == x.id {
		m.capture = NoID
	}
	x.dragQueued = false
	if !p.Alive() || w.Host() != p || m.session.phase != DragIdle {
		return
	}
	if x.IsSingleFloatingWindow() {
		if err := m.session.StartWindowDrag(p); err != nil {
			m.log.Error("start window drag", "panel", p.id, "err", err)
		}
		return
	}
	size := m.opts.FloatSize
	pos := m.platform.MousePosition().Sub(Point{X: min(size.W/2, m.opts.TabPadding+w.TitleWidth()/2+1)})
	f, err := w.ShowFloating(pos, size)
	if err != nil {
		m.log.Error("float tab", "window", w.title, "err", err)
		return
	}
	if err := m.session.StartWindowDrag(f); err != nil {
		m.log.Error("start window drag", "panel", f.id, "err", err)
	}
}

// ContextMenu builds the tab menu for w.
func (x *Proxy) ContextMenu(w *Window) *Menu {
	p := x.panel
	m := p.m
	closeAll := func(tabs []*Window) {
		for _, t := range tabs {
			if err := t.Close(); err != nil {
				m.log.Error("close tab", "window", t.title, "err", err)
			}
		}
	}
	items := []MenuItem{
		{Label: "Close", Action: func() { closeAll([]*Window{w}) }},
		{Label: "Close All", Action: func() { closeAll(p.Tabs()) }},
		{Label: "Close All But This", Action: func() {
			var others []*Window
			for _, t := range p.Tabs() {
				if t != w {
					others = append(others, t)
				}
			}
			closeAll(others)
		}},
	}
	if i := p.TabIndex(w); i >= 0 && i < len(p.tabs)-1 {
		items = append(items, MenuItem{Label: "Close All To The Right", Action: func() {
			if j := p.TabIndex(w); j >= 0 {
				closeAll(p.Tabs()[j+1:])
			}
		}})
	}
	if root := p.Root(); root.kind == FloatPanel {
		if root.host.IsMaximized() {
			items = append(items, MenuItem{Label: "Restore", Action: func() { root.host.Restore() }})
		} else {
			items = append(items, MenuItem{Label: "Maximize", Action: func() { root.host.Maximize() }})
		}
	} else {
		items = append(items, MenuItem{Label: "Undock", Action: func() {
			if _, err := w.ShowFloating(m.platform.MousePosition(), m.opts.FloatSize); err != nil {
				m.log.Error("undock tab", "window", w.title, "err", err)
			}
		}})
	}
	return &Menu{Items: items}
}

func (x *Proxy) draw(s Surface) {
	header := x.HeaderRect()
	if header.Empty() {
		return
	}
	opts := x.panel.m.opts
	s.Fill(header, ' ', RoleHeader)
	for _, tr := range x.TabRects() {
		r := tr.Rect.Intersect(header)
		if r.Empty() {
			break
		}
		role := RoleTab
		switch tr.Window {
		case x.panel.selected:
			role = RoleTabSelected
		case x.hover:
			role = RoleTabHover
		}
		s.Fill(r, ' ', role)
		textX := tr.Rect.X + opts.TabPadding
		s.Text(Point{textX, tr.Rect.Y}, tr.Window.Title(), min(tr.Close.X-1, header.Right())-textX, role)
		if c := tr.Close.Intersect(header); !c.Empty() {
			closeRole := role
			if tr.Window == x.hover && x.hoverClose {
				closeRole = RoleClose
			}
			s.Text(c.Location(), "×", c.W, closeRole)
		}
	}
	if sel := x.panel.selected; sel != nil {
		if d, ok := sel.content.(Drawer); ok {
			if c := x.ContentRect(); !c.Empty() {
				d.Draw(s, c)
			}
		}
	}
}
