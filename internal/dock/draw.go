package dock

// Role names what a drawn cell represents; surfaces map roles to colors.
type Role uint8

const (
	RoleBackground Role = iota
	RoleContent
	RoleHeader
	RoleTab
	RoleTabSelected
	RoleTabHover
	RoleClose
	RoleSplitter
	RoleFrame
	RoleFrameFocused
	RoleHint
	RoleHintActive
	RoleMenu
	RoleMenuSelected
)

// Surface is the immediate-mode draw target.
type Surface interface {
	// Fill paints r with ch.
	Fill(r Rect, ch rune, role Role)
	// Text writes s starting at p, clipped to maxW cells.
	Text(p Point, s string, maxW int, role Role)
	// Frame draws a border around r with title centered on the top row.
	Frame(r Rect, title string, role Role)
}

// Drawer is implemented by window contents that render themselves.
type Drawer interface {
	Draw(s Surface, r Rect)
}

// DrawHost renders everything owned by hw. It reports false when hw belongs
// to neither a dock root nor a hint overlay.
func (m *Master) DrawHost(hw HostWindow, s Surface) bool {
	if h := m.session.hintFor(hw); h != nil {
		h.draw(s)
		return true
	}
	root := m.RootFor(hw)
	if root == nil {
		return false
	}
	m.Arrange()
	if root.kind == FloatPanel {
		role := RoleFrame
		if hw.IsFocused() {
			role = RoleFrameFocused
		}
		s.Frame(hw.Bounds(), hw.Title(), role)
	}
	s.Fill(hw.ClientBounds(), ' ', RoleBackground)
	m.drawEntity(root.id, s)
	return true
}

// DrawMenu renders the open context menu, if any.
func (m *Master) DrawMenu(s Surface) {
	if m.menu != nil {
		m.menu.draw(s)
	}
}

func (m *Master) drawEntity(id ID, s Surface) {
	e := m.t.get(id)
	if e == nil {
		return
	}
	switch e.kind {
	case KindPanel:
		m.drawEntity(e.panel.content, s)
	case KindSplitter:
		if !e.split.bar.Empty() {
			ch := '│'
			if e.split.Orientation == Vertical {
				ch = '─'
			}
			s.Fill(e.split.bar, ch, RoleSplitter)
		}
		m.drawEntity(e.split.first, s)
		m.drawEntity(e.split.second, s)
	case KindProxy:
		e.proxy.draw(s)
	}
}
