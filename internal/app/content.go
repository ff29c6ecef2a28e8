package app

import (
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
)

// Content type names stored in layout files.
const (
	NoteType      = "note"
	InspectorType = "inspector"
)

// Note is a window showing a few lines of text. The text is saved with the
// layout.
type Note struct {
	Text string
}

func (n *Note) TypeName() string { return NoteType }

func (n *Note) Draw(s dock.Surface, r dock.Rect) {
	for i, line := range strings.Split(n.Text, "\n") {
		if i >= r.H {
			break
		}
		s.Text(dock.Point{X: r.X + 1, Y: r.Y + i}, line, r.W-2, dock.RoleContent)
	}
}

func (n *Note) OnLayoutSerialize(w dock.LayoutWriter) { w.Set("text", n.Text) }

func (n *Note) OnLayoutDeserialize(r dock.LayoutReader) {
	if t, ok := r.Get("text"); ok {
		n.Text = t
	}
}

func (n *Note) OnLayoutDeserializeDefault() {
	if n.Text == "" {
		n.Text = "(empty note)"
	}
}

// Inspector shows live workspace state: the drag session and every root.
type Inspector struct {
	m *dock.Master
}

func (i *Inspector) TypeName() string { return InspectorType }

func (i *Inspector) Draw(s dock.Surface, r dock.Rect) {
	var lines []string
	sess := i.m.Session()
	lines = append(lines, fmt.Sprintf("drag: %s", sess.Phase()))
	if sess.IsDragging() {
		lines = append(lines, fmt.Sprintf("dock: %s", sess.State()))
	}
	lines = append(lines,
		fmt.Sprintf("windows: %d", len(i.m.Windows())),
		fmt.Sprintf("floats: %d", len(i.m.Floats())),
		fmt.Sprintf("hidden: %d", len(i.m.HiddenWindows())),
		"",
	)
	for _, root := range i.m.Roots() {
		root.Walk(func(p *dock.Panel) bool {
			state, ratio, ok := p.TryGetDockState()
			label := p.Kind().String()
			if ok {
				label = fmt.Sprintf("%s %.2f", state, ratio)
			}
			lines = append(lines, fmt.Sprintf("%s (%d)", label, p.TabsCount()))
			return true
		})
	}
	for y, line := range lines {
		if y >= r.H {
			break
		}
		s.Text(dock.Point{X: r.X + 1, Y: r.Y + y}, line, r.W-2, dock.RoleContent)
	}
}

// Factory creates window contents for restored layouts and scripts. Windows
// opened by title alone get an inspector when the title starts with
// "Inspector" and a note otherwise.
func Factory(m *dock.Master) layout.Factory {
	return func(w layout.WindowDoc) (dock.Content, error) {
		kind := w.Type
		if kind == "" {
			kind = NoteType
			if strings.HasPrefix(w.Title, "Inspector") {
				kind = InspectorType
			}
		}
		switch kind {
		case NoteType:
			if w.Title == "Welcome" {
				return &Note{Text: welcomeText}, nil
			}
			return &Note{Text: w.Title}, nil
		case InspectorType:
			return &Inspector{m: m}, nil
		}
		return nil, fmt.Errorf("unknown window type %q", w.Type)
	}
}

// defaultWorkspace recreates the starting layout.
const defaultWorkspace = `
Open "Welcome"
Open "Inspector" Right 0.3
Open "Notes" Bottom "Welcome" 0.3
`

const welcomeText = `Drag a tab off the header to float it.
Drag a floating title bar over the hints to dock it.
Drag splitters to resize. Press ? for keys.`
