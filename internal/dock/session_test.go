package dock_test

import (
	"errors"
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/desktop"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The docked root fills the 80x24 desktop, so its hint regions are:
//   up (37,1) down (37,20) left (1,10) right (73,10) center (37,10), all 6x3.

var (
	centerHint = dock.Point{X: 39, Y: 11}
	leftHint   = dock.Point{X: 2, Y: 11}
	noHint     = dock.Point{X: 20, Y: 16}
)

// grabTitleBar presses the title bar of a floating panel 5 cells from its
// left edge, starting a window drag.
func grabTitleBar(t *testing.T, ws *workspace, f *dock.Panel) dock.Point {
	t.Helper()
	b := f.Host().Bounds()
	p := dock.Point{X: b.X + 5, Y: b.Y}
	require.True(t, ws.press(p))
	require.Equal(t, dock.DragDragging, ws.m.Session().Phase())
	return p
}

func TestDragFloatOverCenterDocksAsTab(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "Scene", dock.DockFill, root)
	_, f := ws.float(t, "Tool", dock.Point{X: 50, Y: 2}, dock.Size{W: 20, H: 8})
	host := hostOf(t, f)

	grabTitleBar(t, ws, f)
	ws.move(centerHint)

	s := ws.m.Session()
	assert.Equal(t, root, s.Target())
	assert.Equal(t, dock.DockFill, s.State())
	assert.Equal(t, dock.Point{X: 34, Y: 11}, host.Position(), "window follows the cursor")
	hints := s.Hints()
	require.Len(t, hints, 5)
	for _, h := range hints {
		assert.True(t, h.IsVisible(), "hint %s", h.Slot())
		assert.Equal(t, h.Slot() == dock.HintCenter, h.IsActive(), "hint %s", h.Slot())
	}

	ws.release(centerHint)
	assert.Equal(t, dock.DragCommitting, s.Phase())
	assert.Equal(t, []string{"Scene"}, titles(root.Tabs()), "commit waits for the tick")
	ws.m.Tick()

	assert.Equal(t, dock.DragIdle, s.Phase())
	assert.Equal(t, []string{"Scene", "Tool"}, titles(root.Tabs()))
	assert.Equal(t, 0, root.ChildPanelsCount())
	assert.True(t, host.IsClosed())
	assert.Empty(t, ws.m.Floats())
	for _, h := range hints {
		assert.False(t, h.IsVisible())
	}
	require.NoError(t, ws.m.Validate())
}

func TestDragFloatOverLeftEdgeSplits(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "Scene", dock.DockFill, root)
	tool, f := ws.float(t, "Tool", dock.Point{X: 50, Y: 2}, dock.Size{W: 20, H: 8})

	grabTitleBar(t, ws, f)
	ws.move(leftHint)
	assert.Equal(t, dock.DockLeft, ws.m.Session().State())
	for _, h := range ws.m.Session().Hints() {
		if h.Slot() == dock.HintLeft {
			assert.Equal(t, dock.Rect{X: 0, Y: 0, W: 20, H: 24}, h.Bounds(), "active hint previews the new pane")
		}
	}
	ws.release(leftHint)
	ws.m.Tick()

	require.Equal(t, 1, root.ChildPanelsCount())
	child := root.ChildPanels()[0]
	assert.Equal(t, child, tool.Host())
	state, ratio, ok := child.TryGetDockState()
	require.True(t, ok)
	assert.Equal(t, dock.DockLeft, state)
	assert.InDelta(t, 0.25, ratio, 1e-9)
	sp := child.Splitter()
	assert.Equal(t, dock.Horizontal, sp.Orientation)
	assert.InDelta(t, 0.25, sp.Ratio(), 1e-9)
	assert.Equal(t, []string{"Scene"}, titles(root.Tabs()))
	require.NoError(t, ws.m.Validate())
}

func TestDragReleasedAwayFromHintsStaysFloating(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "Scene", dock.DockFill, root)
	tool, f := ws.float(t, "Tool", dock.Point{X: 50, Y: 2}, dock.Size{W: 20, H: 8})

	grabTitleBar(t, ws, f)
	ws.move(noHint)
	assert.Equal(t, dock.Float, ws.m.Session().State())
	ws.release(noHint)
	ws.m.Tick()

	assert.True(t, tool.IsFloating())
	assert.Equal(t, dock.Point{X: 15, Y: 16}, f.Host().Position())
	assert.True(t, f.Host().IsVisible())
	assert.Equal(t, 1, ws.m.Session().Releases())
}

func TestDragFocusLossCommitsAsFloat(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "Scene", dock.DockFill, root)
	tool, f := ws.float(t, "Tool", dock.Point{X: 50, Y: 2}, dock.Size{W: 20, H: 8})

	grabTitleBar(t, ws, f)
	ws.move(centerHint)
	ws.d.SetAppFocused(false)
	assert.Equal(t, dock.DragCommitting, ws.m.Session().Phase())
	assert.Nil(t, ws.d.Tracking())

	ws.release(centerHint)
	ws.m.Tick()

	assert.True(t, tool.IsFloating())
	assert.Equal(t, []string{"Scene"}, titles(root.Tabs()))
	assert.Equal(t, 1, ws.m.Session().Releases(), "cleanup runs once")
	require.NoError(t, ws.m.Validate())
}

func TestSecondDragIsRejected(t *testing.T) {
	ws := newWorkspace(t)
	_, f := ws.float(t, "Tool", dock.Point{X: 50, Y: 2}, dock.Size{W: 20, H: 8})
	_, g := ws.float(t, "Other", dock.Point{X: 5, Y: 2}, dock.Size{W: 20, H: 8})

	grabTitleBar(t, ws, f)
	err := ws.m.Session().StartWindowDrag(g)
	assert.True(t, errors.Is(err, dock.ErrDragActive), "got %v", err)
	assert.Equal(t, f, ws.m.Session().Moved())
}

func TestDragDockedPanelIsInvalid(t *testing.T) {
	ws := newWorkspace(t)
	err := ws.m.Session().StartWindowDrag(ws.m.Root())
	assert.True(t, errors.Is(err, dock.ErrInvalidState), "got %v", err)
}

func TestDragSubLayoutOnlyFloats(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "Scene", dock.DockFill, root)
	x, f := ws.float(t, "X", dock.Point{X: 40, Y: 2}, dock.Size{W: 30, H: 10})
	ws.open(t, "Y", dock.DockRight, f)
	ws.open(t, "Z", dock.DockFill, f)
	f.SelectTab(x, false)
	host := hostOf(t, f)

	grabTitleBar(t, ws, f)
	ws.move(centerHint)
	s := ws.m.Session()
	assert.Equal(t, root, s.Target())
	assert.Equal(t, dock.Float, s.State(), "hidden hints do not resolve a drop")
	for _, h := range s.Hints() {
		assert.False(t, h.IsVisible(), "hints are hidden for a panel with children")
	}
	ws.move(leftHint)
	assert.Equal(t, dock.Float, s.State())
	ws.release(centerHint)
	ws.m.Tick()

	assert.Equal(t, []string{"Scene"}, titles(root.Tabs()))
	assert.False(t, host.IsClosed())
	assert.Equal(t, dock.Point{X: 34, Y: 11}, host.Position())
	assert.Equal(t, []string{"X", "Z"}, titles(f.Tabs()))
	assert.Equal(t, 1, f.ChildPanelsCount())
	require.NoError(t, ws.m.Validate())
}

func TestDragTabGroupKeepsOrderAndSelection(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "Scene", dock.DockFill, root)
	_, f := ws.float(t, "A", dock.Point{X: 50, Y: 2}, dock.Size{W: 20, H: 8})
	b := ws.open(t, "B", dock.DockFill, f)
	ws.open(t, "C", dock.DockFill, f)
	f.SelectTab(b, false)
	host := hostOf(t, f)

	grabTitleBar(t, ws, f)
	ws.move(centerHint)
	assert.Equal(t, dock.DockFill, ws.m.Session().State())
	ws.release(centerHint)
	ws.m.Tick()

	assert.Equal(t, []string{"Scene", "A", "B", "C"}, titles(root.Tabs()))
	assert.Equal(t, b, root.SelectedTab())
	assert.True(t, host.IsClosed())
	assert.Empty(t, ws.m.Floats())
	require.NoError(t, ws.m.Validate())
}

func TestDragMaximizedRestoresUnderCursor(t *testing.T) {
	ws := newWorkspace(t)
	_, f := ws.float(t, "Tool", dock.Point{X: 10, Y: 5}, dock.Size{W: 20, H: 8})
	f.Host().Maximize()

	require.True(t, ws.press(dock.Point{X: 40, Y: 0}))

	hw := f.Host()
	assert.False(t, hw.IsMaximized())
	assert.Equal(t, dock.Size{W: 20, H: 8}, hw.Size())
	assert.Equal(t, dock.Point{X: 30, Y: 0}, hw.Position())
}

func TestDragTabOutOfHeader(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "A", dock.DockFill, root)
	b := ws.open(t, "B", dock.DockFill, root)

	ws.press(dock.Point{X: 6, Y: 0})
	ws.move(dock.Point{X: 6, Y: 5})
	assert.Equal(t, 1, ws.m.Session().Pending(), "drag starts on the next tick")
	assert.True(t, b.IsDocked())
	ws.m.Tick()

	s := ws.m.Session()
	require.Equal(t, dock.DragDragging, s.Phase())
	assert.True(t, b.IsFloating())
	assert.Equal(t, b.Host(), s.Moved())
	assert.Equal(t, []string{"A"}, titles(root.Tabs()))

	ws.move(leftHint)
	ws.release(leftHint)
	ws.m.Tick()

	assert.True(t, b.IsDocked())
	state, _, ok := b.Host().TryGetDockState()
	require.True(t, ok)
	assert.Equal(t, dock.DockLeft, state)
	assert.Empty(t, ws.m.Floats())
	require.NoError(t, ws.m.Validate())
}

func TestDragLoneFloatingTabMovesWindow(t *testing.T) {
	ws := newWorkspace(t)
	tool, f := ws.float(t, "Tool", dock.Point{X: 10, Y: 4}, dock.Size{W: 30, H: 10})

	ws.press(dock.Point{X: 15, Y: 5})
	ws.move(dock.Point{X: 15, Y: 8})
	ws.m.Tick()

	s := ws.m.Session()
	require.Equal(t, dock.DragDragging, s.Phase())
	assert.Equal(t, f, s.Moved(), "the existing window is dragged")
	assert.Equal(t, f, tool.Host())
	assert.Len(t, ws.m.Floats(), 1)
}

func TestResetLayoutCancelsDrag(t *testing.T) {
	ws := newWorkspace(t)
	_, f := ws.float(t, "Tool", dock.Point{X: 50, Y: 2}, dock.Size{W: 20, H: 8})
	grabTitleBar(t, ws, f)

	ws.m.ResetLayout()

	assert.Equal(t, dock.DragIdle, ws.m.Session().Phase())
	assert.Equal(t, 0, ws.m.Session().Pending())
	assert.Nil(t, ws.d.Tracking())
	assert.Empty(t, ws.m.Floats())
	assert.Empty(t, ws.m.Windows())
	require.NoError(t, ws.m.Validate())
}

func TestAbortLeavesWindowFloating(t *testing.T) {
	ws := newWorkspace(t)
	root := ws.m.Root()
	ws.open(t, "Scene", dock.DockFill, root)
	tool, f := ws.float(t, "Tool", dock.Point{X: 50, Y: 2}, dock.Size{W: 20, H: 8})

	grabTitleBar(t, ws, f)
	ws.move(centerHint)
	ws.m.Session().Abort()
	assert.Equal(t, dock.DragCommitting, ws.m.Session().Phase())
	ws.m.Tick()

	assert.True(t, tool.IsFloating())
	assert.Equal(t, []string{"Scene"}, titles(root.Tabs()))
	ws.m.Session().Abort()
	assert.Equal(t, dock.DragIdle, ws.m.Session().Phase(), "abort without a drag is a no-op")
}

// lazyPlatform hands out floating windows that report no position until the
// engine places them, like a platform that positions windows on first show.
type lazyPlatform struct{ *desktop.Desktop }

func (p lazyPlatform) CreateWindow(opts dock.WindowOptions) (dock.HostWindow, error) {
	if !opts.Frame {
		return p.Desktop.CreateWindow(opts)
	}
	opts.Positioned = false
	hw, err := p.Desktop.CreateWindow(opts)
	if err != nil {
		return nil, err
	}
	return &lazyWindow{HostWindow: hw}, nil
}

type lazyWindow struct {
	dock.HostWindow
	placed bool
}

func (w *lazyWindow) SetPosition(p dock.Point) {
	w.placed = true
	w.HostWindow.SetPosition(p)
}

func (w *lazyWindow) IsPositioned() bool { return w.placed }

func TestDragOffsetOfUnplacedWindowComesFromFirstMove(t *testing.T) {
	d := desktop.New(80, 24)
	main := d.NewMainWindow("main")
	ws := &workspace{d: d, main: main, m: dock.NewMaster(lazyPlatform{d}, main, dock.DefaultOptions())}
	ws.open(t, "Scene", dock.DockFill, nil)
	tool, f := ws.float(t, "Tool", dock.Point{X: 50, Y: 2}, dock.Size{W: 20, H: 8})
	hw := f.Host()
	require.False(t, hw.IsPositioned())
	require.Equal(t, dock.Point{X: 30, Y: 8}, hw.Position(), "shown centered")

	require.True(t, ws.press(dock.Point{X: 35, Y: 8}))
	require.Equal(t, dock.DragDragging, ws.m.Session().Phase())

	ws.move(dock.Point{X: 40, Y: 14})
	assert.Equal(t, dock.Point{X: 30, Y: 8}, hw.Position(), "first move only measures the offset")
	assert.True(t, hw.IsPositioned())
	ws.move(dock.Point{X: 45, Y: 15})
	assert.Equal(t, dock.Point{X: 35, Y: 9}, hw.Position())

	ws.release(noHint)
	ws.m.Tick()
	assert.True(t, tool.IsFloating())
	assert.Equal(t, dock.Point{X: 10, Y: 10}, hw.Position())
	assert.Equal(t, dock.DragIdle, ws.m.Session().Phase())
}
