package dock

// handleMouse routes an event delivered to the host of root. The drag session
// subscribes to the dragged host itself, so while it runs the tree ignores
// input.
func (m *Master) handleMouse(root *Panel, ev MouseEvent) bool {
	if m.session.phase != DragIdle {
		return false
	}
	if m.menu != nil {
		return m.handleMenuMouse(ev)
	}
	if m.capture != NoID {
		return m.routeCaptured(ev)
	}
	m.Arrange()
	switch ev.Action {
	case MouseDown:
		if root.kind == FloatPanel && ev.Button == ButtonLeft && root.host.TitleBar().Contains(ev.Pos) {
			if err := m.session.StartWindowDrag(root); err != nil {
				m.log.Error("start window drag", "panel", root.id, "err", err)
			}
			return true
		}
		id := m.entityAt(root.id, ev.Pos)
		e := m.t.get(id)
		if e == nil {
			return false
		}
		switch e.kind {
		case KindProxy:
			if e.proxy.onMouseDown(ev) {
				if m.menu == nil && ev.Button == ButtonLeft {
					m.capture = id
				}
				return true
			}
		case KindSplitter:
			if ev.Button == ButtonLeft {
				m.capture = id
				return true
			}
		}
	case MouseMove:
		m.setHover(m.entityAt(root.id, ev.Pos), ev.Pos)
	}
	return false
}

func (m *Master) routeCaptured(ev MouseEvent) bool {
	id := m.capture
	e := m.t.get(id)
	if e == nil {
		m.capture = NoID
		return false
	}
	switch e.kind {
	case KindProxy:
		switch ev.Action {
		case MouseMove:
			e.proxy.onMouseMove(ev)
		case MouseUp:
			m.capture = NoID
			e.proxy.onMouseUp(ev)
		}
	case KindSplitter:
		switch ev.Action {
		case MouseMove:
			e.split.dragTo(e.bounds, ev.Pos, m.opts.MinPaneSize)
		case MouseUp:
			m.capture = NoID
		}
	}
	return true
}

func (m *Master) setHover(id ID, p Point) {
	if id != m.hover {
		if old := m.t.get(m.hover); old != nil && old.kind == KindProxy {
			old.proxy.onMouseLeave()
		}
		m.hover = NoID
	}
	if e := m.t.get(id); e != nil && e.kind == KindProxy {
		m.hover = id
		e.proxy.onHover(p)
	}
}

// entityAt returns the deepest proxy or splitter bar of id's region under pt.
func (m *Master) entityAt(id ID, pt Point) ID {
	e := m.t.get(id)
	if e == nil || !e.bounds.Contains(pt) {
		return NoID
	}
	switch e.kind {
	case KindPanel:
		return m.entityAt(e.panel.content, pt)
	case KindSplitter:
		if e.split.bar.Contains(pt) {
			return id
		}
		if hit := m.entityAt(e.split.first, pt); hit != NoID {
			return hit
		}
		return m.entityAt(e.split.second, pt)
	}
	return id
}

// Captured returns the entity kind holding the mouse, zero when none does.
func (m *Master) Captured() Kind {
	if e := m.t.get(m.capture); e != nil {
		return e.kind
	}
	return 0
}
