package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/Gaurav-Gosain/tuidock/internal/tape"
)

// scriptInterval paces live script playback.
const scriptInterval = 50 * time.Millisecond

func scriptTick() tea.Cmd {
	return tea.Tick(scriptInterval, func(t time.Time) tea.Msg {
		return tape.ScriptTickMsg(t)
	})
}

// Update handles terminal events. Every message ends with an engine tick so
// deferred dock operations run before the next frame.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)

	case tea.MouseClickMsg:
		m.handleMouse(dock.MouseDown, msg.Mouse())

	case tea.MouseReleaseMsg:
		m.handleMouse(dock.MouseUp, msg.Mouse())

	case tea.MouseMotionMsg:
		m.handleMouse(dock.MouseMove, msg.Mouse())

	case tea.FocusMsg:
		m.setAppFocused(true)

	case tea.BlurMsg:
		m.setAppFocused(false)

	case ConfigReloadMsg:
		m.reloadConfig(msg)

	case tape.ScriptTickMsg:
		cmd = m.stepScript(time.Time(msg))
	}
	m.Master.Tick()
	return m, cmd
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	dh := max(height-1, 1)
	m.Desktop.Resize(width, dh)
	m.canvas.Resize(width, dh)
	m.Master.Arrange()
	if m.recorder != nil {
		m.recorder.RecordResize(width, dh)
	}
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	action := m.keys.GetAction(msg.String())
	if m.showHelp && action != "quit" {
		m.showHelp = false
		return nil
	}
	if action == "" {
		return nil
	}
	return m.Do(action)
}

func (m *Model) handleMouse(action dock.MouseAction, mouse tea.Mouse) {
	if m.showHelp {
		if action == dock.MouseDown {
			m.showHelp = false
		}
		return
	}
	ev := dock.MouseEvent{
		Action: action,
		Button: buttonFrom(mouse.Button),
		Pos:    dock.Point{X: mouse.X, Y: mouse.Y},
	}
	m.Desktop.DispatchMouse(ev)
	if action == dock.MouseDown && ev.Button == dock.ButtonLeft {
		m.activateTabAt(ev.Pos)
	}
	if m.recorder != nil {
		m.recorder.RecordMouse(ev)
	}
}

// activateTabAt makes a pressed tab the target of keyboard actions even when
// it was already selected.
func (m *Model) activateTabAt(pt dock.Point) {
	p := m.Master.HitTest(pt, nil)
	if p == nil || p.Proxy() == nil {
		return
	}
	if w, onClose := p.Proxy().GetTabAtPos(pt); w != nil && !onClose {
		m.active = w
	}
}

func buttonFrom(b tea.MouseButton) dock.MouseButton {
	switch b {
	case tea.MouseLeft:
		return dock.ButtonLeft
	case tea.MouseMiddle:
		return dock.ButtonMiddle
	case tea.MouseRight:
		return dock.ButtonRight
	}
	return dock.ButtonNone
}

func (m *Model) setAppFocused(focused bool) {
	m.Desktop.SetAppFocused(focused)
	if m.recorder != nil {
		m.recorder.RecordAppFocus(focused)
	}
}

func (m *Model) reloadConfig(msg ConfigReloadMsg) {
	if msg.Config == nil {
		m.log.Error("reload config", "err", msg.Err)
		m.flash("config not reloaded: %v", msg.Err)
		return
	}
	m.applyConfig(msg.Config)
	m.Master.Arrange()
	if msg.Err != nil {
		m.log.Warn("config reloaded with defaults", "err", msg.Err)
		m.flash("config reloaded: %v", msg.Err)
		return
	}
	m.log.Debug("config reloaded")
	m.flash("config reloaded")
}

// stepScript runs the next command of the live script. Sleep pauses
// playback instead of blocking the program.
func (m *Model) stepScript(now time.Time) tea.Cmd {
	p := m.player
	if p == nil || p.Done() || m.scriptErr != nil {
		return nil
	}
	if p.Paused() || now.Before(m.sleepUntil) {
		return scriptTick()
	}
	cmd := p.Next()
	p.Advance()
	if cmd.Type == tape.CommandType_Sleep {
		m.sleepUntil = now.Add(cmd.Delay)
		return scriptTick()
	}
	if err := m.runner.Exec(context.Background(), cmd); err != nil {
		m.scriptErr = &tape.ScriptError{Line: cmd.Line, Column: cmd.Column, Command: string(cmd.Type), Err: err}
		m.log.Error("script", "err", m.scriptErr)
		m.flash("script stopped: %v", m.scriptErr)
		return nil
	}
	if p.Done() {
		m.flash("script finished")
		return nil
	}
	return scriptTick()
}

// FilterMouseMotion drops motion events while the help screen covers the
// workspace.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	if m, ok := model.(*Model); ok && m.showHelp {
		return nil
	}
	return msg
}
