// Package layout saves and restores the arrangement of a docking workspace
// as a TOML document.
package layout

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// Version is the document format written by Capture.
const Version = 1

var (
	// ErrUnsupportedVersion is returned for documents newer than Version.
	ErrUnsupportedVersion = errors.New("layout: unsupported document version")
	// ErrInvalidDocument is returned when a document cannot describe a tree.
	ErrInvalidDocument = errors.New("layout: invalid document")
)

// Document is the saved arrangement of every tree of a workspace.
type Document struct {
	Version int         `toml:"version"`
	Master  PanelDoc    `toml:"master"`
	Floats  []FloatDoc  `toml:"float,omitempty"`
	Hidden  []WindowDoc `toml:"hidden,omitempty"`
}

// FloatDoc is a floating window and its tree.
type FloatDoc struct {
	X         int      `toml:"x"`
	Y         int      `toml:"y"`
	Width     int      `toml:"width"`
	Height    int      `toml:"height"`
	Maximized bool     `toml:"maximized,omitempty"`
	Panel     PanelDoc `toml:"panel"`
}

// PanelDoc is one panel: how it sits in its parent, its tabs and children in
// creation order.
type PanelDoc struct {
	DockState     dock.DockState `toml:"dock_state,omitempty"`
	SplitterValue float64        `toml:"splitter_value"`
	SelectedTab   int            `toml:"selected_tab"`
	Windows       []WindowDoc    `toml:"window,omitempty"`
	Panels        []PanelDoc     `toml:"panel,omitempty"`
}

// WindowDoc is one tab.
type WindowDoc struct {
	Type  string `toml:"type"`
	Title string `toml:"title"`
	ID    string `toml:"id,omitempty"`
	Index int    `toml:"index"`
	Data  Data   `toml:"data,omitempty"`
}

// Data is the custom key/value data of a window.
type Data map[string]string

func (d Data) Set(key, value string) { d[key] = value }

func (d Data) Get(key string) (string, bool) {
	v, ok := d[key]
	return v, ok
}

func (d Data) Keys() []string { return slices.Sorted(maps.Keys(d)) }

// Factory creates the content of a restored window. A nil Factory restores
// windows without content.
type Factory func(w WindowDoc) (dock.Content, error)

// DefaultPath returns the layout file under the XDG state directory.
func DefaultPath() (string, error) {
	return xdg.StateFile("tuidock/layout.toml")
}

// Capture describes the current arrangement of m.
func Capture(m *dock.Master) *Document {
	doc := &Document{Version: Version, Master: capturePanel(m.Root())}
	for _, f := range m.Floats() {
		hw := f.Host()
		b := hw.Bounds()
		doc.Floats = append(doc.Floats, FloatDoc{
			X:         b.X,
			Y:         b.Y,
			Width:     b.W,
			Height:    b.H,
			Maximized: hw.IsMaximized(),
			Panel:     capturePanel(f),
		})
	}
	for i, w := range m.HiddenWindows() {
		doc.Hidden = append(doc.Hidden, captureWindow(w, i))
	}
	return doc
}

func capturePanel(p *dock.Panel) PanelDoc {
	pd := PanelDoc{SelectedTab: p.SelectedTabIndex()}
	if state, ratio, ok := p.TryGetDockState(); ok {
		pd.DockState, pd.SplitterValue = state, ratio
	}
	for i, w := range p.Tabs() {
		pd.Windows = append(pd.Windows, captureWindow(w, i))
	}
	for _, c := range p.ChildPanels() {
		pd.Panels = append(pd.Panels, capturePanel(c))
	}
	return pd
}

func captureWindow(w *dock.Window, index int) WindowDoc {
	wd := WindowDoc{Type: typeName(w.Content()), Title: w.Title(), ID: w.ID(), Index: index}
	if s, ok := w.Content().(dock.LayoutSerializer); ok {
		data := Data{}
		s.OnLayoutSerialize(data)
		if len(data) > 0 {
			wd.Data = data
		}
	}
	return wd
}

func typeName(c dock.Content) string {
	if c == nil {
		return ""
	}
	return c.TypeName()
}

// Apply replaces the arrangement of m with doc. Every existing window is
// destroyed; restored windows get their content from factory. Panels without
// windows are skipped.
func Apply(m *dock.Master, doc *Document, factory Factory) error {
	if doc.Version > Version {
		return fmt.Errorf("version %d: %w", doc.Version, ErrUnsupportedVersion)
	}
	m.ResetLayout()
	a := &applier{m: m, factory: factory}
	if err := a.panel(m.Root(), doc.Master); err != nil {
		return err
	}
	for i, fd := range doc.Floats {
		if err := a.float(fd); err != nil {
			return fmt.Errorf("float %d: %w", i, err)
		}
	}
	for _, wd := range sortedWindows(doc.Hidden) {
		if _, err := a.window(wd); err != nil {
			return err
		}
	}
	m.Arrange()
	m.Logger().Debug("applied layout", "windows", len(m.Windows()), "floats", len(m.Floats()))
	return nil
}

type applier struct {
	m       *dock.Master
	factory Factory
}

func (a *applier) window(wd WindowDoc) (*dock.Window, error) {
	var content dock.Content
	if a.factory != nil {
		c, err := a.factory(wd)
		if err != nil {
			return nil, fmt.Errorf("create %q (%s): %w", wd.Title, wd.Type, err)
		}
		content = c
	}
	var opts []dock.WindowOption
	if wd.ID != "" {
		opts = append(opts, dock.WithID(wd.ID))
	}
	w := a.m.NewWindow(wd.Title, content, opts...)
	if d, ok := content.(dock.LayoutDeserializer); ok {
		if len(wd.Data) > 0 {
			d.OnLayoutDeserialize(wd.Data)
		} else {
			d.OnLayoutDeserializeDefault()
		}
	}
	return w, nil
}

func (a *applier) panel(p *dock.Panel, pd PanelDoc) error {
	for _, wd := range sortedWindows(pd.Windows) {
		w, err := a.window(wd)
		if err != nil {
			return err
		}
		if err := p.DockWindow(dock.DockFill, w, false, 0); err != nil {
			return err
		}
	}
	if err := a.children(p, pd); err != nil {
		return err
	}
	p.SelectTabIndex(pd.SelectedTab, false)
	return nil
}

func (a *applier) children(p *dock.Panel, pd PanelDoc) error {
	for _, cd := range pd.Panels {
		if !cd.DockState.IsSplit() {
			return fmt.Errorf("child panel docked as %s: %w", cd.DockState, ErrInvalidDocument)
		}
		if countWindows(cd) == 0 {
			continue
		}
		child, err := p.CreateChildPanel(cd.DockState, cd.SplitterValue)
		if err != nil {
			return err
		}
		if err := a.panel(child, cd); err != nil {
			return err
		}
	}
	return nil
}

func (a *applier) float(fd FloatDoc) error {
	ws := sortedWindows(fd.Panel.Windows)
	if len(ws) == 0 {
		return nil
	}
	first, err := a.window(ws[0])
	if err != nil {
		return err
	}
	f, err := first.ShowFloating(dock.Point{X: fd.X, Y: fd.Y}, dock.Size{W: fd.Width, H: fd.Height})
	if err != nil {
		return err
	}
	rest := fd.Panel
	rest.Windows = ws[1:]
	if err := a.panel(f, rest); err != nil {
		return err
	}
	if fd.Maximized {
		f.Host().Maximize()
	}
	return nil
}

func sortedWindows(ws []WindowDoc) []WindowDoc {
	out := slices.Clone(ws)
	slices.SortStableFunc(out, func(a, b WindowDoc) int { return cmp.Compare(a.Index, b.Index) })
	return out
}

func countWindows(pd PanelDoc) int {
	n := len(pd.Windows)
	for _, c := range pd.Panels {
		n += countWindows(c)
	}
	return n
}

// Encode writes doc as TOML.
func Encode(w io.Writer, doc *Document) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Decode reads a TOML document.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if doc.Version == 0 {
		doc.Version = Version
	}
	return &doc, nil
}

// Save writes doc to path, creating its directory.
func Save(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

// Load reads the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
