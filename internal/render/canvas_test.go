package render

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/desktop"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
)

func rows(c *Canvas) []string {
	lines := strings.Split(c.String(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func TestCanvasText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		maxW  int
		ascii bool
		want  string
	}{
		{"fits", "Scene", 10, false, "Scene"},
		{"truncated", "Console", 4, false, "Con…"},
		{"truncated ascii", "Console", 4, true, "Con~"},
		{"wide runes", "日本", 4, false, "日本"},
		{"ascii glyphs", "×▲", 4, true, "x^"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 1)
			c.ASCII = tt.ascii
			c.Text(dock.Point{}, tt.text, tt.maxW, dock.RoleContent)
			if got := rows(c)[0]; got != tt.want {
				t.Errorf("row = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanvasWideRuneCells(t *testing.T) {
	c := NewCanvas(4, 1)
	c.Text(dock.Point{}, "日", 4, dock.RoleContent)
	if c.At(0, 0).Rune != '日' || c.At(1, 0).Rune != 0 {
		t.Errorf("cells = %v %v, want rune and continuation", c.At(0, 0), c.At(1, 0))
	}
}

func TestCanvasFrame(t *testing.T) {
	c := NewCanvas(10, 3)
	c.Frame(dock.Rect{W: 10, H: 3}, "Tool", dock.RoleFrame)
	want := []string{
		"╭─ Tool ─╮",
		"│        │",
		"╰────────╯",
	}
	got := rows(c)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCanvasFillClips(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Fill(dock.Rect{X: 2, Y: 1, W: 10, H: 10}, '#', dock.RoleHint)
	want := []string{"", "  ##"}
	got := rows(c)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
	if c.At(3, 1).Role != dock.RoleHint {
		t.Errorf("role = %v, want RoleHint", c.At(3, 1).Role)
	}
}

func TestRenderGroupsRoles(t *testing.T) {
	c := NewCanvas(4, 1)
	c.Fill(dock.Rect{W: 2, H: 1}, 'a', dock.RoleTab)
	c.Fill(dock.Rect{X: 2, W: 2, H: 1}, 'b', dock.RoleTabSelected)

	calls := map[dock.Role]int{}
	out := c.Render(func(r dock.Role) lipgloss.Style {
		calls[r]++
		return lipgloss.NewStyle()
	})
	if out != "aabb" {
		t.Errorf("Render() = %q, want %q", out, "aabb")
	}
	if calls[dock.RoleTab] != 1 || calls[dock.RoleTabSelected] != 1 {
		t.Errorf("style lookups = %v, want one per role", calls)
	}
}

func TestDrawWorkspace(t *testing.T) {
	d := desktop.New(20, 5)
	main := d.NewMainWindow("main")
	m := dock.NewMaster(d, main, dock.Options{
		DefaultSplitRatio: 0.25,
		HeaderHeight:      1,
		TabPadding:        1,
		CloseButtonWidth:  1,
		SplitterSize:      1,
		Measure:           Measure,
	})
	for _, title := range []string{"A", "B"} {
		w := m.NewWindow(title, nil)
		if err := w.Show(dock.DockFill, nil, true, 0); err != nil {
			t.Fatalf("Show(%s): %v", title, err)
		}
	}

	c := NewCanvas(20, 5)
	DrawWorkspace(c, d, m)

	if got, want := rows(c)[0], " A ×  B ×"; got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	if c.At(6, 0).Role != dock.RoleTabSelected {
		t.Errorf("selected tab role = %v", c.At(6, 0).Role)
	}
	if c.At(1, 0).Role != dock.RoleTab {
		t.Errorf("tab role = %v", c.At(1, 0).Role)
	}
}

func TestHideSplitters(t *testing.T) {
	d := desktop.New(20, 4)
	main := d.NewMainWindow("main")
	m := dock.NewMaster(d, main, dock.DefaultOptions())
	for _, state := range []dock.DockState{dock.DockFill, dock.DockLeft} {
		if err := m.NewWindow(state.String(), nil).Show(state, nil, true, 0); err != nil {
			t.Fatalf("Show(%s): %v", state, err)
		}
	}
	m.Arrange()
	bar := m.Root().ChildPanels()[0].Splitter().Bar()

	tests := []struct {
		name string
		hide bool
		want rune
	}{
		{"shown", false, '│'},
		{"hidden", true, ' '},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(20, 4)
			c.HideSplitters = tt.hide
			DrawWorkspace(c, d, m)
			if got := c.At(bar.X, bar.Y+2).Rune; got != tt.want {
				t.Errorf("bar rune = %q, want %q", got, tt.want)
			}
		})
	}
}
