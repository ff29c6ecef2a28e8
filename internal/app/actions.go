package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/tape"
)

var dockActions = map[string]string{
	"dock_left":   "Left",
	"dock_right":  "Right",
	"dock_top":    "Top",
	"dock_bottom": "Bottom",
	"dock_center": "Fill",
}

// Do performs a keybinding action. Actions with a script equivalent run
// through the script runner so recordings replay them.
func (m *Model) Do(action string) tea.Cmd {
	switch action {
	case "toggle_help":
		m.showHelp = !m.showHelp
		return nil
	case "toggle_playback":
		return m.togglePlayback()
	case "cancel":
		m.cancel()
		return nil
	case "quit":
		if err := m.Cleanup(); err != nil {
			m.log.Error("cleanup", "err", err)
		}
		return tea.Quit
	case "new_window":
		m.report(action, m.newWindow())
		return nil
	case "save_layout":
		m.report(action, m.run(tape.NewCommand(tape.CommandType_Save)))
		return nil
	case "reload_layout":
		m.report(action, m.run(tape.NewCommand(tape.CommandType_Load)))
		return nil
	case "reset_layout":
		err := m.run(tape.NewCommand(tape.CommandType_Reset))
		if err == nil {
			err = m.seed()
		}
		m.report(action, err)
		return nil
	}

	w := m.activeWindow()
	if w == nil {
		m.flash("no window")
		return nil
	}
	title := w.Title()
	var err error
	switch action {
	case "close_tab":
		err = m.run(tape.NewTypedCommand(tape.CommandType_Close, "s", title))
	case "next_tab", "prev_tab":
		h := w.Host()
		n := h.TabsCount()
		step := 1
		if action == "prev_tab" {
			step = n - 1
		}
		next := h.GetTab((h.TabIndex(w) + step) % n)
		err = m.run(tape.NewTypedCommand(tape.CommandType_Select, "s", next.Title()))
	case "float_tab":
		err = m.run(tape.NewTypedCommand(tape.CommandType_Float, "s", title))
	case "dock_left", "dock_right", "dock_top", "dock_bottom", "dock_center":
		err = m.run(tape.NewTypedCommand(tape.CommandType_Dock, "sw", title, dockActions[action]))
	case "grow_panel", "shrink_panel":
		delta := m.cfg.Docking.ResizeStep
		if action == "shrink_panel" {
			delta = -delta
		}
		if !w.Host().Resize(delta) {
			m.flash("%s cannot be resized", title)
			return nil
		}
	case "toggle_max":
		root := w.Host().Root()
		if !root.IsFloating() {
			m.flash("%s is not floating", title)
			return nil
		}
		if hw := root.Host(); hw.IsMaximized() {
			hw.Restore()
		} else {
			hw.Maximize()
		}
		m.Master.Arrange()
	default:
		err = fmt.Errorf("unknown action %q", action)
	}
	m.report(action, err)
	return nil
}

func (m *Model) report(action string, err error) {
	if err != nil {
		m.log.Error("action failed", "action", action, "err", err)
		m.flash("%s: %v", action, err)
		return
	}
	m.log.Debug("action", "name", action)
	m.flash("%s", ActionLabel(action))
}

// newWindow opens a note as a tab next to the active window.
func (m *Model) newWindow() error {
	var title string
	for {
		m.notes++
		title = fmt.Sprintf("Note %d", m.notes)
		if m.Master.FindWindow(title) == nil {
			break
		}
	}
	if w := m.activeWindow(); w != nil {
		return m.run(tape.NewTypedCommand(tape.CommandType_Open, "sws", title, "Fill", w.Title()))
	}
	return m.run(tape.NewTypedCommand(tape.CommandType_Open, "s", title))
}

func (m *Model) cancel() {
	switch {
	case m.Master.Menu() != nil:
		m.Master.CloseMenu()
	case m.Master.Session().IsDragging():
		m.Master.Session().Abort()
	default:
		m.showHelp = false
	}
}

func (m *Model) togglePlayback() tea.Cmd {
	p := m.player
	if p == nil || p.Done() || m.scriptErr != nil {
		m.flash("no script playing")
		return nil
	}
	if p.TogglePause() {
		m.flash("script paused")
	} else {
		m.flash("script resumed")
	}
	return nil
}
