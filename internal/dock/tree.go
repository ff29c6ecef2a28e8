package dock

import "math"

// ID is a stable handle into the control-tree arena. Handles are never reused.
type ID int32

// NoID is the absent handle.
const NoID ID = -1

// Kind tags the entities that make up a docking region.
type Kind uint8

const (
	KindPanel Kind = iota + 1
	KindSplitter
	KindProxy
)

func (k Kind) String() string {
	switch k {
	case KindPanel:
		return "panel"
	case KindSplitter:
		return "splitter"
	case KindProxy:
		return "proxy"
	}
	return "unknown"
}

// entity is one arena record. Exactly one of panel, split and proxy is set,
// matching kind. parent is the containing entity in the control tree: a
// splitter or the panel whose region this entity fills.
type entity struct {
	kind   Kind
	parent ID
	bounds Rect
	panel  *Panel
	split  *Splitter
	proxy  *Proxy
}

type tree struct {
	ents []*entity
}

func (t *tree) add(e *entity) ID {
	t.ents = append(t.ents, e)
	return ID(len(t.ents) - 1)
}

func (t *tree) get(id ID) *entity {
	if id < 0 || int(id) >= len(t.ents) {
		return nil
	}
	return t.ents[id]
}

func (t *tree) free(id ID) {
	if t.get(id) != nil {
		t.ents[id] = nil
	}
}

// live counts allocated entities of kind k.
func (t *tree) live(k Kind) int {
	n := 0
	for _, e := range t.ents {
		if e != nil && e.kind == k {
			n++
		}
	}
	return n
}

// replaceChild puts repl into the slot parent keeps for old.
func (t *tree) replaceChild(parent, old, repl ID) {
	e := t.get(parent)
	if e == nil {
		return
	}
	switch e.kind {
	case KindPanel:
		if e.panel.content == old {
			e.panel.content = repl
		}
	case KindSplitter:
		if e.split.first == old {
			e.split.first = repl
		} else if e.split.second == old {
			e.split.second = repl
		}
	}
	if r := t.get(repl); r != nil {
		r.parent = parent
	}
}

// Splitter is a two-pane divider inside a panel region. ratio is always the
// share of the first pane.
type Splitter struct {
	id          ID
	owner       ID
	Orientation Orientation
	ratio       float64
	first       ID
	second      ID
	bar         Rect
}

// ID returns the arena handle.
func (s *Splitter) ID() ID { return s.id }

// Ratio returns the share of the first pane.
func (s *Splitter) Ratio() float64 { return s.ratio }

// Bar returns the divider rectangle computed by the last Arrange.
func (s *Splitter) Bar() Rect { return s.bar }

func (s *Splitter) other(id ID) ID {
	if s.first == id {
		return s.second
	}
	return s.first
}

// divide splits r into the first pane, the bar and the second pane.
func (s *Splitter) divide(r Rect, thickness int) (a, bar, b Rect) {
	if s.Orientation == Horizontal {
		thickness = min(thickness, r.W)
		total := r.W - thickness
		w1 := clampInt(int(math.Round(float64(total)*s.ratio)), 0, total)
		a = Rect{r.X, r.Y, w1, r.H}
		bar = Rect{r.X + w1, r.Y, thickness, r.H}
		b = Rect{r.X + w1 + thickness, r.Y, total - w1, r.H}
		return a, bar, b
	}
	thickness = min(thickness, r.H)
	total := r.H - thickness
	h1 := clampInt(int(math.Round(float64(total)*s.ratio)), 0, total)
	a = Rect{r.X, r.Y, r.W, h1}
	bar = Rect{r.X, r.Y + h1, r.W, thickness}
	b = Rect{r.X, r.Y + h1 + thickness, r.W, total - h1}
	return a, bar, b
}

// dragTo moves the bar so the first pane ends at p, keeping both panes at
// least minPane cells when the region allows it.
func (s *Splitter) dragTo(region Rect, p Point, minPane int) {
	total, at := region.W-s.bar.W, p.X-region.X
	if s.Orientation == Vertical {
		total, at = region.H-s.bar.H, p.Y-region.Y
	}
	if total <= 0 {
		return
	}
	lo, hi := minPane, total-minPane
	if lo > hi {
		lo, hi = 0, total
	}
	s.ratio = float64(clampInt(at, lo, hi)) / float64(total)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
