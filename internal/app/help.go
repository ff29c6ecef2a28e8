package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/theme"
)

// ActionLabel returns the description of an action, or its name in words.
func ActionLabel(action string) string {
	if desc, ok := config.ActionDescriptions[action]; ok {
		return desc
	}
	parts := strings.Split(action, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// renderHelp draws every keybinding section as a table, centered in the
// terminal.
func (m *Model) renderHelp(width, height int) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.StatusAccent()).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground())

	var blocks []string
	for _, section := range config.GetKeybindings(m.keys) {
		rows := make([][]string, 0, len(section.Bindings))
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.BorderUnfocused())).
			Headers("Keys", "Action").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				return cellStyle
			})
		blocks = append(blocks, titleStyle.Render(section.Title)+"\n"+t.Render())
	}

	columns := []string{
		lipgloss.JoinVertical(lipgloss.Left, blocks[:len(blocks)/2]...),
		lipgloss.JoinVertical(lipgloss.Left, blocks[len(blocks)/2:]...),
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, columns[0], "  ", columns[1])
	footer := lipgloss.NewStyle().
		Foreground(theme.BorderUnfocused()).
		Italic(true).
		Render("Press any key to close")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderFocused()).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Center, content, "", footer))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
