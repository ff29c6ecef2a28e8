package dock

// MenuItem is an entry of a context menu. Actions run on the next Tick.
type MenuItem struct {
	Label  string
	Action func()
}

// Menu is a popup list of items anchored at a desktop point.
type Menu struct {
	Items []MenuItem

	pos      Point
	width    int
	selected int
	pressed  bool
}

// Bounds returns the popup rectangle.
func (mn *Menu) Bounds() Rect {
	return Rect{mn.pos.X, mn.pos.Y, mn.width, len(mn.Items)}
}

// Selected returns the highlighted row, -1 when none.
func (mn *Menu) Selected() int { return mn.selected }

// ItemAt returns the row under p.
func (mn *Menu) ItemAt(p Point) (int, bool) {
	if !mn.Bounds().Contains(p) {
		return -1, false
	}
	return p.Y - mn.pos.Y, true
}

// Find returns the item labelled label.
func (mn *Menu) Find(label string) (MenuItem, bool) {
	for _, it := range mn.Items {
		if it.Label == label {
			return it, true
		}
	}
	return MenuItem{}, false
}

// Labels returns the item labels in order.
func (mn *Menu) Labels() []string {
	out := make([]string, len(mn.Items))
	for i, it := range mn.Items {
		out[i] = it.Label
	}
	return out
}

func (mn *Menu) draw(s Surface) {
	b := mn.Bounds()
	for i, it := range mn.Items {
		role := RoleMenu
		if i == mn.selected {
			role = RoleMenuSelected
		}
		row := Rect{b.X, b.Y + i, b.W, 1}
		s.Fill(row, ' ', role)
		s.Text(Point{b.X + 1, b.Y + i}, it.Label, b.W-2, role)
	}
}

// OpenMenu shows mn at p, replacing any open menu.
func (m *Master) OpenMenu(mn *Menu, p Point) {
	w := 0
	for _, it := range mn.Items {
		w = max(w, m.opts.Measure(it.Label))
	}
	mn.pos, mn.width, mn.selected, mn.pressed = p, w+2, -1, false
	m.menu = mn
}

// Menu returns the open menu, nil when none is open.
func (m *Master) Menu() *Menu { return m.menu }

// CloseMenu dismisses the open menu.
func (m *Master) CloseMenu() { m.menu = nil }

// ActivateMenuItem closes the open menu and queues the item labelled label.
// It reports false when no menu is open or no item matches.
func (m *Master) ActivateMenuItem(label string) bool {
	if m.menu == nil {
		return false
	}
	it, ok := m.menu.Find(label)
	if !ok {
		return false
	}
	m.menu = nil
	if it.Action != nil {
		m.Defer(it.Action)
	}
	return true
}

func (m *Master) handleMenuMouse(ev MouseEvent) bool {
	mn := m.menu
	i, inside := mn.ItemAt(ev.Pos)
	switch ev.Action {
	case MouseMove:
		mn.selected = i
	case MouseDown:
		if !inside {
			m.menu = nil
			return true
		}
		mn.pressed = true
		mn.selected = i
	case MouseUp:
		if !inside || !mn.pressed {
			return true
		}
		it := mn.Items[i]
		m.menu = nil
		if it.Action != nil {
			m.Defer(it.Action)
		}
	}
	return true
}
