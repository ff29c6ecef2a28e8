package dock

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{2, 3}, true},
		{Point{5, 4}, true},
		{Point{6, 4}, false},
		{Point{5, 5}, false},
		{Point{1, 3}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("%v.Contains(%v) = %v, want %v", r, tt.p, got, tt.want)
		}
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, Rect{5, 5, 5, 5}},
		{"inside", Rect{0, 0, 10, 10}, Rect{2, 2, 3, 3}, Rect{2, 2, 3, 3}},
		{"touching edges", Rect{0, 0, 5, 5}, Rect{5, 0, 5, 5}, Rect{}},
		{"apart", Rect{0, 0, 2, 2}, Rect{8, 8, 2, 2}, Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect() = %v, want %v", got, tt.want)
			}
		})
	}
}

// =============================================================================
// Splitter geometry
// =============================================================================

func TestSplitterDivide(t *testing.T) {
	tests := []struct {
		name        string
		orientation Orientation
		ratio       float64
		region      Rect
		wantA       Rect
		wantBar     Rect
		wantB       Rect
	}{
		{
			name:        "horizontal quarter",
			orientation: Horizontal,
			ratio:       0.25,
			region:      Rect{0, 0, 81, 10},
			wantA:       Rect{0, 0, 20, 10},
			wantBar:     Rect{20, 0, 1, 10},
			wantB:       Rect{21, 0, 60, 10},
		},
		{
			name:        "vertical three quarters",
			orientation: Vertical,
			ratio:       0.75,
			region:      Rect{5, 2, 10, 21},
			wantA:       Rect{5, 2, 10, 15},
			wantBar:     Rect{5, 17, 10, 1},
			wantB:       Rect{5, 18, 10, 5},
		},
		{
			name:        "too small for the bar",
			orientation: Horizontal,
			ratio:       0.5,
			region:      Rect{0, 0, 0, 4},
			wantA:       Rect{0, 0, 0, 4},
			wantBar:     Rect{0, 0, 0, 4},
			wantB:       Rect{0, 0, 0, 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Splitter{Orientation: tt.orientation, ratio: tt.ratio}
			a, bar, b := s.divide(tt.region, 1)
			if a != tt.wantA || bar != tt.wantBar || b != tt.wantB {
				t.Errorf("divide() = %v %v %v, want %v %v %v", a, bar, b, tt.wantA, tt.wantBar, tt.wantB)
			}
		})
	}
}

func TestSplitterDragTo(t *testing.T) {
	s := &Splitter{Orientation: Vertical, ratio: 0.5}
	region := Rect{0, 0, 10, 21}
	_, s.bar, _ = s.divide(region, 1)

	s.dragTo(region, Point{0, 5}, 2)
	if s.ratio != 0.25 {
		t.Errorf("ratio = %v, want 0.25", s.ratio)
	}
	s.dragTo(region, Point{0, 40}, 2)
	if s.ratio != 0.9 {
		t.Errorf("ratio = %v, want 0.9", s.ratio)
	}
}

// =============================================================================
// Hints
// =============================================================================

func TestHintRegions(t *testing.T) {
	got := hintRegions(Rect{10, 0, 40, 20}, Size{6, 3}, 1)
	want := [hintCount]Rect{
		HintUp:     {27, 1, 6, 3},
		HintDown:   {27, 16, 6, 3},
		HintLeft:   {11, 8, 6, 3},
		HintRight:  {43, 8, 6, 3},
		HintCenter: {27, 8, 6, 3},
	}
	for slot := HintUp; slot < hintCount; slot++ {
		if got[slot] != want[slot] {
			t.Errorf("%s region = %v, want %v", slot, got[slot], want[slot])
		}
	}
}

func TestPreviewRect(t *testing.T) {
	area := Rect{0, 0, 40, 20}
	tests := []struct {
		state DockState
		want  Rect
	}{
		{DockLeft, Rect{0, 0, 10, 20}},
		{DockRight, Rect{30, 0, 10, 20}},
		{DockTop, Rect{0, 0, 40, 5}},
		{DockBottom, Rect{0, 15, 40, 5}},
		{DockFill, area},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := previewRect(area, tt.state, 0.25); got != tt.want {
				t.Errorf("previewRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHintSlotState(t *testing.T) {
	tests := map[HintSlot]DockState{
		HintUp:     DockTop,
		HintDown:   DockBottom,
		HintLeft:   DockLeft,
		HintRight:  DockRight,
		HintCenter: DockFill,
	}
	for slot, want := range tests {
		if got := slot.State(); got != want {
			t.Errorf("%s.State() = %v, want %v", slot, got, want)
		}
	}
}

// =============================================================================
// DockState
// =============================================================================

func TestParseDockState(t *testing.T) {
	tests := []struct {
		input   string
		want    DockState
		wantErr bool
	}{
		{"DockLeft", DockLeft, false},
		{"left", DockLeft, false},
		{"  Fill ", DockFill, false},
		{"center", DockFill, false},
		{"up", DockTop, false},
		{"dockbottom", DockBottom, false},
		{"Float", Float, false},
		{"hide", Hidden, false},
		{"sideways", DockUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDockState(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDockState(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDockState(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDockStateTextRoundTrip(t *testing.T) {
	for s := DockUnknown; s <= Hidden; s++ {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", s, err)
		}
		var back DockState
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != s {
			t.Errorf("round trip of %v = %v", s, back)
		}
	}
}
