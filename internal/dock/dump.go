package dock

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of every tree: one line per panel with its
// dock state, ratio and tabs, the selected tab marked with '*'.
func (m *Master) Dump(w io.Writer) error {
	var b strings.Builder
	for _, r := range m.Roots() {
		dumpPanel(&b, r, 0)
	}
	if hidden := m.HiddenWindows(); len(hidden) > 0 {
		titles := make([]string, len(hidden))
		for i, h := range hidden {
			titles[i] = h.title
		}
		fmt.Fprintf(&b, "hidden [%s]\n", strings.Join(titles, " "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func dumpPanel(b *strings.Builder, p *Panel, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	switch p.kind {
	case MasterPanel:
		b.WriteString("master")
	case FloatPanel:
		hb := p.host.Bounds()
		fmt.Fprintf(b, "float (%d,%d %dx%d)", hb.X, hb.Y, hb.W, hb.H)
	default:
		state, ratio, _ := p.TryGetDockState()
		fmt.Fprintf(b, "%s %.2f", state, ratio)
	}
	b.WriteString(" [")
	for i, w := range p.tabs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w.title)
		if w == p.selected {
			b.WriteByte('*')
		}
	}
	b.WriteString("]\n")
	for _, c := range p.ChildPanels() {
		dumpPanel(b, c, depth+1)
	}
}
