// Package render draws the docking workspace into a cell grid and turns the
// grid into styled terminal rows.
package render

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/desktop"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/charmbracelet/x/ansi"
)

// Measure returns the display width of s in terminal cells.
func Measure(s string) int { return ansi.StringWidth(s) }

// Cell is one grid position. Rune 0 marks the second half of a wide rune.
type Cell struct {
	Rune rune
	Role dock.Role
}

// Canvas is a cell grid implementing dock.Surface.
type Canvas struct {
	Width  int
	Height int
	// ASCII replaces box drawing and symbol glyphs with plain characters.
	ASCII bool
	// HideSplitters draws splitter bars as blank cells.
	HideSplitters bool

	cells []Cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the grid and clears it.
func (c *Canvas) Resize(width, height int) {
	c.Width, c.Height = max(width, 0), max(height, 0)
	c.cells = make([]Cell, c.Width*c.Height)
	c.Clear()
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' ', Role: dock.RoleBackground}
	}
}

// At returns the cell at (x, y), a blank cell outside the grid.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return Cell{Rune: ' '}
	}
	return c.cells[y*c.Width+x]
}

func (c *Canvas) set(x, y int, r rune, role dock.Role) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	if c.HideSplitters && role == dock.RoleSplitter {
		r, role = ' ', dock.RoleBackground
	}
	c.cells[y*c.Width+x] = Cell{Rune: r, Role: role}
}

// Fill paints r with ch.
func (c *Canvas) Fill(r dock.Rect, ch rune, role dock.Role) {
	r = r.Intersect(dock.Rect{W: c.Width, H: c.Height})
	ch = c.glyph(ch)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.set(x, y, ch, role)
		}
	}
}

// Text writes s from p, clipped to maxW cells.
func (c *Canvas) Text(p dock.Point, s string, maxW int, role dock.Role) {
	if maxW <= 0 {
		return
	}
	if Measure(s) > maxW {
		s = ansi.Truncate(s, maxW, c.ellipsis())
	}
	x := p.X
	for _, r := range s {
		r = c.glyph(r)
		w := Measure(string(r))
		if w == 0 {
			continue
		}
		c.set(x, p.Y, r, role)
		if w == 2 {
			c.set(x+1, p.Y, 0, role)
		}
		x += w
	}
}

// Frame draws a rounded border around r with title centered on the top row.
func (c *Canvas) Frame(r dock.Rect, title string, role dock.Role) {
	if r.W < 2 || r.H < 2 {
		return
	}
	h, v := '─', '│'
	tl, tr, bl, br := '╭', '╮', '╰', '╯'
	if c.ASCII {
		h, v = '-', '|'
		tl, tr, bl, br = '+', '+', '+', '+'
	}
	for x := r.X + 1; x < r.Right()-1; x++ {
		c.set(x, r.Y, h, role)
		c.set(x, r.Bottom()-1, h, role)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		c.set(r.X, y, v, role)
		c.set(r.Right()-1, y, v, role)
	}
	c.set(r.X, r.Y, tl, role)
	c.set(r.Right()-1, r.Y, tr, role)
	c.set(r.X, r.Bottom()-1, bl, role)
	c.set(r.Right()-1, r.Bottom()-1, br, role)

	room := r.W - 6
	if title == "" || room < 1 {
		return
	}
	label := " " + ansi.Truncate(title, room, c.ellipsis()) + " "
	x := r.X + (r.W-Measure(label))/2
	c.Text(dock.Point{X: x, Y: r.Y}, label, room+2, role)
}

func (c *Canvas) ellipsis() string {
	if c.ASCII {
		return "~"
	}
	return "…"
}

var asciiGlyphs = map[rune]rune{
	'│': '|', '─': '-', '×': 'x', '▲': '^', '▼': 'v', '◀': '<', '▶': '>', '■': '#',
}

func (c *Canvas) glyph(r rune) rune {
	if !c.ASCII {
		return r
	}
	if g, ok := asciiGlyphs[r]; ok {
		return g
	}
	return r
}

// String returns the plain text of the grid, one line per row.
func (c *Canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.Width; x++ {
			if r := c.At(x, y).Rune; r != 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// Render styles runs of equal roles with style and joins the rows.
func (c *Canvas) Render(style func(dock.Role) lipgloss.Style) string {
	styles := make(map[dock.Role]lipgloss.Style)
	get := func(role dock.Role) lipgloss.Style {
		s, ok := styles[role]
		if !ok {
			s = style(role)
			styles[role] = s
		}
		return s
	}
	rows := make([]string, c.Height)
	var run strings.Builder
	for y := 0; y < c.Height; y++ {
		var row strings.Builder
		role := c.At(0, y).Role
		run.Reset()
		flush := func() {
			if run.Len() > 0 {
				row.WriteString(get(role).Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < c.Width; x++ {
			cell := c.At(x, y)
			if cell.Rune == 0 {
				continue
			}
			if cell.Role != role {
				flush()
				role = cell.Role
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}

// DrawWorkspace paints every visible desktop window bottom to top, then the
// open context menu.
func DrawWorkspace(c *Canvas, d *desktop.Desktop, m *dock.Master) {
	c.Clear()
	for _, w := range d.Windows() {
		if !w.IsVisible() {
			continue
		}
		if !m.DrawHost(w, c) {
			c.Frame(w.Bounds(), w.Title(), dock.RoleFrame)
		}
	}
	m.DrawMenu(c)
}
