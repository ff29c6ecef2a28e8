package dock

import "math"

// HintSlot names one of the five drop hint overlays.
type HintSlot uint8

const (
	HintUp HintSlot = iota
	HintDown
	HintLeft
	HintRight
	HintCenter
	hintCount
)

func (h HintSlot) String() string {
	return [...]string{"up", "down", "left", "right", "center"}[h]
}

// State returns the dock direction the slot stands for.
func (h HintSlot) State() DockState {
	return [...]DockState{DockTop, DockBottom, DockLeft, DockRight, DockFill}[h]
}

var hintGlyphs = [...]string{"▲", "▼", "◀", "▶", "■"}

// Hint is a pooled overlay marking where a dragged window would go.
type Hint struct {
	slot   HintSlot
	host   HostWindow
	owner  *Panel
	active bool
}

// Slot returns the direction the hint stands for.
func (h *Hint) Slot() HintSlot { return h.slot }

// Owner returns the panel the hint currently belongs to.
func (h *Hint) Owner() *Panel { return h.owner }

// IsActive reports whether the cursor is over the hint, which then previews
// the area the dropped window would take.
func (h *Hint) IsActive() bool { return h.active }

// IsVisible reports whether the hint is shown for the current drop target.
func (h *Hint) IsVisible() bool { return h.host.IsVisible() }

// Bounds is where the hint is drawn, grown to the preview area while active.
func (h *Hint) Bounds() Rect { return h.host.Bounds() }

func (h *Hint) draw(s Surface) {
	if !h.host.IsVisible() {
		return
	}
	b := h.host.Bounds()
	role := RoleHint
	if h.active {
		role = RoleHintActive
	}
	s.Fill(b, ' ', role)
	c := b.Center()
	s.Text(c, hintGlyphs[h.slot], 1, role)
}

func (s *Session) ensureHints() {
	if len(s.hints) > 0 {
		return
	}
	for slot := HintUp; slot < hintCount; slot++ {
		hw, err := s.m.platform.CreateWindow(WindowOptions{
			Title:      "hint " + slot.String(),
			Size:       s.m.opts.HintSize,
			Positioned: true,
			Overlay:    true,
		})
		if err != nil {
			s.m.log.Warn("create hint window", "slot", slot, "err", err)
			continue
		}
		hw.Hide()
		s.hints = append(s.hints, &Hint{slot: slot, host: hw})
	}
}

func (s *Session) hintFor(hw HostWindow) *Hint {
	for _, h := range s.hints {
		if h.host == hw {
			return h
		}
	}
	return nil
}

func (s *Session) hideHints() {
	for _, h := range s.hints {
		h.active = false
		h.owner = nil
		h.host.Hide()
	}
}

func (s *Session) layoutHints(d *dragState, show bool) {
	for _, h := range s.hints {
		if !show {
			h.active = false
			h.host.Hide()
			continue
		}
		r := d.regions[h.slot]
		h.active = d.state == h.slot.State()
		if h.active {
			r = previewRect(d.area, d.state, s.m.opts.DefaultSplitRatio)
		}
		h.host.SetPosition(r.Location())
		h.host.SetSize(r.Size())
		h.host.Show()
	}
}

// hintRegions places the edge hints at margin from each border of area and
// the center hint in its middle.
func hintRegions(area Rect, size Size, margin int) [hintCount]Rect {
	cx := area.X + (area.W-size.W)/2
	cy := area.Y + (area.H-size.H)/2
	return [hintCount]Rect{
		HintUp:     {cx, area.Y + margin, size.W, size.H},
		HintDown:   {cx, area.Bottom() - margin - size.H, size.W, size.H},
		HintLeft:   {area.X + margin, cy, size.W, size.H},
		HintRight:  {area.Right() - margin - size.W, cy, size.W, size.H},
		HintCenter: {cx, cy, size.W, size.H},
	}
}

// previewRect is the part of area a window docked with state would occupy.
func previewRect(area Rect, state DockState, ratio float64) Rect {
	w := int(math.Round(float64(area.W) * ratio))
	h := int(math.Round(float64(area.H) * ratio))
	switch state {
	case DockLeft:
		return Rect{area.X, area.Y, w, area.H}
	case DockRight:
		return Rect{area.Right() - w, area.Y, w, area.H}
	case DockTop:
		return Rect{area.X, area.Y, area.W, h}
	case DockBottom:
		return Rect{area.X, area.Bottom() - h, area.W, h}
	}
	return area
}
