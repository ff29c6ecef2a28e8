package dock_test

import (
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/desktop"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/stretchr/testify/require"
)

type workspace struct {
	d    *desktop.Desktop
	main *desktop.Window
	m    *dock.Master
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	d := desktop.New(80, 24)
	main := d.NewMainWindow("main")
	m := dock.NewMaster(d, main, dock.DefaultOptions())
	return &workspace{d: d, main: main, m: m}
}

// open registers a window and docks it as a tab of target (root when nil).
func (ws *workspace) open(t *testing.T, title string, state dock.DockState, target *dock.Panel) *dock.Window {
	t.Helper()
	w := ws.m.NewWindow(title, nil)
	require.NoError(t, w.Show(state, target, true, 0))
	return w
}

func (ws *workspace) float(t *testing.T, title string, pos dock.Point, size dock.Size) (*dock.Window, *dock.Panel) {
	t.Helper()
	w := ws.m.NewWindow(title, nil)
	f, err := w.ShowFloating(pos, size)
	require.NoError(t, err)
	return w, f
}

func (ws *workspace) press(p dock.Point) bool {
	return ws.d.DispatchMouse(dock.MouseEvent{Action: dock.MouseDown, Button: dock.ButtonLeft, Pos: p})
}

func (ws *workspace) move(p dock.Point) bool {
	return ws.d.DispatchMouse(dock.MouseEvent{Action: dock.MouseMove, Button: dock.ButtonLeft, Pos: p})
}

func (ws *workspace) release(p dock.Point) bool {
	return ws.d.DispatchMouse(dock.MouseEvent{Action: dock.MouseUp, Button: dock.ButtonLeft, Pos: p})
}

func (ws *workspace) rightClick(p dock.Point) {
	ws.d.DispatchMouse(dock.MouseEvent{Action: dock.MouseDown, Button: dock.ButtonRight, Pos: p})
	ws.d.DispatchMouse(dock.MouseEvent{Action: dock.MouseUp, Button: dock.ButtonRight, Pos: p})
}

func titles(ws []*dock.Window) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Title()
	}
	return out
}

func hostOf(t *testing.T, p *dock.Panel) *desktop.Window {
	t.Helper()
	hw, ok := p.Host().(*desktop.Window)
	require.True(t, ok)
	return hw
}
