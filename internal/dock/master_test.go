package dock_test

import (
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryMatchesReachable(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "Scene", dock.DockFill, root)
	tool := ws.open(t, "Tool", dock.DockLeft, root)
	ws.open(t, "Log", dock.DockBottom, tool.Host())
	ws.float(t, "Float", dock.Point{X: 30, Y: 5}, dock.Size{W: 20, H: 8})

	assert.ElementsMatch(t, ws.m.Windows(), ws.m.Reachable())
	require.NoError(t, ws.m.Validate())

	require.NoError(t, tool.Close())
	assert.ElementsMatch(t, ws.m.Windows(), ws.m.Reachable())
	require.NoError(t, ws.m.Validate())
}

func TestMasterHitTestAcrossWindows(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "Scene", dock.DockFill, root)
	_, f1 := ws.float(t, "One", dock.Point{X: 10, Y: 5}, dock.Size{W: 30, H: 10})
	_, f2 := ws.float(t, "Two", dock.Point{X: 20, Y: 5}, dock.Size{W: 30, H: 10})
	overlap := dock.Point{X: 25, Y: 8}

	tests := []struct {
		name     string
		focus    func()
		pt       dock.Point
		excluded *dock.Panel
		want     *dock.Panel
	}{
		{"focused float wins", func() { f1.Host().Focus() }, overlap, nil, f1},
		{"focused docked tree wins", func() { ws.main.Focus() }, overlap, nil, root},
		{"topmost float wins when the focused one is excluded", func() { f2.Host().Focus() }, overlap, f2, f1},
		{"float under the cursor beats the main window", func() { f1.Host().Focus() }, dock.Point{X: 45, Y: 8}, nil, f2},
		{"z order breaks ties", func() { f1.Host().Focus() }, overlap, f1, f2},
		{"docked tree outside floats", func() {}, dock.Point{X: 70, Y: 20}, nil, root},
		{"outside everything", func() {}, dock.Point{X: 90, Y: 30}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.focus()
			if got := ws.m.HitTest(tt.pt, tt.excluded); got != tt.want {
				t.Errorf("HitTest(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestFloatTitleFollowsSelection(t *testing.T) {
	ws := newWorkspace(t)
	one, f := ws.float(t, "One", dock.Point{X: 10, Y: 5}, dock.Size{W: 30, H: 10})
	assert.Equal(t, "One", f.Host().Title())

	two := ws.open(t, "Two", dock.DockFill, f)
	assert.Equal(t, "Two", f.Host().Title())

	one.Select()
	assert.Equal(t, "One", f.Host().Title())
	one.SetTitle("Renamed")
	assert.Equal(t, "Renamed", f.Host().Title())
	assert.Equal(t, 7, one.TitleWidth())

	require.NoError(t, two.Close())
	require.NoError(t, one.Close())
	assert.Empty(t, ws.m.Floats(), "the floating window closes with its last tab")
	assert.True(t, hostOf(t, f).IsClosed())
}

func TestShowMovesBetweenPanels(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "Scene", dock.DockFill, root)
	tool := ws.open(t, "Tool", dock.DockLeft, root)

	require.NoError(t, tool.Show(dock.DockRight, root, true, 0.3))

	require.Equal(t, 1, root.ChildPanelsCount())
	state, ratio, ok := tool.Host().TryGetDockState()
	require.True(t, ok)
	assert.Equal(t, dock.DockRight, state)
	assert.InDelta(t, 0.3, ratio, 1e-9)
	require.NoError(t, ws.m.Validate())
}

func TestShowRelativeToOwnLonePanelFallsBackToRoot(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "Scene", dock.DockFill, root)
	tool := ws.open(t, "Tool", dock.DockLeft, root)

	require.NoError(t, tool.Show(dock.DockTop, tool.Host(), true, 0))

	state, _, ok := tool.Host().TryGetDockState()
	require.True(t, ok)
	assert.Equal(t, dock.DockTop, state)
	assert.Equal(t, root, tool.Host().ParentPanel())
	require.NoError(t, ws.m.Validate())
}

func TestFindWindow(t *testing.T) {
	ws := newWorkspace(t)
	w := ws.m.NewWindow("Console", nil, dock.WithID("console-1"))

	assert.Equal(t, w, ws.m.FindWindow("console-1"))
	assert.Equal(t, w, ws.m.FindWindow("Console"))
	assert.Nil(t, ws.m.FindWindow("missing"))
	assert.Equal(t, []*dock.Window{w}, ws.m.HiddenWindows())
}

func TestResetLayout(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	a := ws.open(t, "Scene", dock.DockFill, root)
	ws.open(t, "Tool", dock.DockLeft, root)
	_, f := ws.float(t, "Float", dock.Point{X: 30, Y: 5}, dock.Size{W: 20, H: 8})

	ws.m.ResetLayout()

	assert.Empty(t, ws.m.Windows())
	assert.Empty(t, ws.m.Floats())
	assert.Equal(t, 0, root.TabsCount())
	assert.Equal(t, 0, root.ChildPanelsCount())
	assert.True(t, a.IsDestroyed())
	assert.True(t, hostOf(t, f).IsClosed())
	assert.Equal(t, 0, ws.m.LiveEntities(dock.KindSplitter))
	assert.Equal(t, 1, ws.m.LiveEntities(dock.KindPanel))

	ws.open(t, "Again", dock.DockFill, root)
	require.NoError(t, ws.m.Validate())
}

func TestClosingFloatHostClosesTabs(t *testing.T) {
	ws := newWorkspace(t)
	plain, f := ws.float(t, "Plain", dock.Point{X: 30, Y: 5}, dock.Size{W: 30, H: 10})
	kept := ws.m.NewWindow("Kept", nil, dock.WithHideOnClose())
	require.NoError(t, kept.Show(dock.DockRight, f, true, 0))

	var closed []string
	ws.m.OnWindowClosed(func(w *dock.Window) { closed = append(closed, w.Title()) })

	hostOf(t, f).Close()

	assert.Empty(t, ws.m.Floats())
	assert.False(t, f.Alive())
	assert.True(t, plain.IsDestroyed())
	assert.Nil(t, ws.m.FindWindow("Plain"))
	assert.Equal(t, []string{"Plain"}, closed)

	assert.False(t, kept.IsDestroyed())
	assert.False(t, kept.IsVisible())
	assert.Nil(t, kept.Host())
	assert.Equal(t, kept, ws.m.FindWindow("Kept"))
	assert.Equal(t, []*dock.Window{kept}, ws.m.HiddenWindows())
	require.NoError(t, ws.m.Validate())
}

func TestResetLayoutFiresNoCloseEvents(t *testing.T) {
	ws := newWorkspace(t)
	ws.open(t, "Scene", dock.DockFill, nil)
	ws.float(t, "Float", dock.Point{X: 30, Y: 5}, dock.Size{W: 20, H: 8})

	closed := 0
	ws.m.OnWindowClosed(func(w *dock.Window) { closed++ })
	ws.m.ResetLayout()

	assert.Zero(t, closed)
	assert.Empty(t, ws.m.Floats())
}

func TestDump(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "Scene", dock.DockFill, root)
	ws.open(t, "Game", dock.DockFill, root)
	root.SelectTabIndex(0, false)
	ws.open(t, "Tool", dock.DockLeft, root)
	ws.float(t, "Props", dock.Point{X: 30, Y: 5}, dock.Size{W: 20, H: 8})
	ws.m.NewWindow("Hidden", nil)

	var b strings.Builder
	require.NoError(t, ws.m.Dump(&b))

	want := strings.Join([]string{
		"master [Scene* Game]",
		"  DockLeft 0.25 [Tool*]",
		"float (30,5 20x8) [Props*]",
		"hidden [Hidden]",
		"",
	}, "\n")
	assert.Equal(t, want, b.String())
}

func TestDeferredQueueRunsOnTick(t *testing.T) {
	ws := newWorkspace(t)
	var order []int
	ws.m.Defer(func() {
		order = append(order, 1)
		ws.m.Defer(func() { order = append(order, 3) })
	})
	ws.m.Defer(func() { order = append(order, 2) })

	ws.m.Tick()
	assert.Equal(t, []int{1, 2}, order)
	ws.m.Tick()
	assert.Equal(t, []int{1, 2, 3}, order)
}
