package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/render"
	"github.com/Gaurav-Gosain/tuidock/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// View returns the rendered workspace.
func (m *Model) View() tea.View {
	var view tea.View
	view.SetContent(m.Render())
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

// Render draws the workspace above the status line, or the help screen.
func (m *Model) Render() string {
	if m.showHelp {
		return m.renderHelp(m.width, m.height)
	}
	render.DrawWorkspace(m.canvas, m.Desktop, m.Master)
	return m.canvas.Render(theme.Style) + "\n" + m.statusLine()
}

// StatusText is the unstyled status line: drag state and active tab on the
// left, messages, playback and recording on the right.
func (m *Model) StatusText() (left, right string) {
	s := m.Master.Session()
	var l strings.Builder
	fmt.Fprintf(&l, " tuidock │ drag: %s", s.Phase())
	if s.IsDragging() {
		fmt.Fprintf(&l, " → %s", s.State())
	}
	if w := m.activeWindow(); w != nil {
		fmt.Fprintf(&l, " │ %s", w.Title())
	}

	var r []string
	if m.status != "" {
		r = append(r, m.status)
	}
	if p := m.player; p != nil && m.scriptErr == nil {
		ran, total := p.Position()
		mark := "▶"
		if p.Paused() {
			mark = "⏸"
		}
		r = append(r, fmt.Sprintf("%s %d/%d", mark, ran, total))
	}
	if m.recorder != nil && m.recorder.IsRecording() {
		r = append(r, "● REC")
	}
	return l.String(), strings.Join(r, " │ ") + " "
}

func (m *Model) statusLine() string {
	left, right := m.StatusText()
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	line := left + strings.Repeat(" ", max(gap, 1)) + right
	line = ansi.Truncate(line, m.width, "…")
	return lipgloss.NewStyle().
		Width(m.width).
		Background(theme.StatusBg()).
		Foreground(theme.StatusFg()).
		Render(line)
}
