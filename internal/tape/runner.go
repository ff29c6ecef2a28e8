package tape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/desktop"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
)

var (
	// ErrParse is returned when a script has syntax errors.
	ErrParse = errors.New("script parse error")
	// ErrExpectation is returned when an Expect command fails.
	ErrExpectation = errors.New("expectation failed")
	// ErrNoWindow is returned when a command names an unknown window.
	ErrNoWindow = errors.New("no such window")
)

// ScriptError locates a failed command in its script.
type ScriptError struct {
	Line    int
	Column  int
	Command string
	Err     error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d:%d: %s: %v", e.Line, e.Column, e.Command, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// Runner executes dock scripts headlessly against a virtual desktop.
type Runner struct {
	Desktop *desktop.Desktop
	Main    *desktop.Window
	Master  *dock.Master

	// Factory creates window content for Open and Load. Nil opens empty windows.
	Factory layout.Factory
	// LayoutPath is used by Save and Load without a path. When empty those
	// commands keep the layout in memory.
	LayoutPath string
	// Out receives Dump output.
	Out io.Writer
	// Realtime makes Sleep actually wait.
	Realtime bool
	// Strict validates the model after every command.
	Strict bool

	log   *log.Logger
	saved *layout.Document
}

// NewRunner creates a w×h desktop with a main window and a master.
func NewRunner(w, h int, opts dock.Options) *Runner {
	d := desktop.New(w, h)
	if opts.Logger != nil {
		d.SetLogger(opts.Logger)
	}
	main := d.NewMainWindow("main")
	return Attach(d, main, dock.NewMaster(d, main, opts))
}

// Attach creates a runner driving an existing workspace.
func Attach(d *desktop.Desktop, main *desktop.Window, m *dock.Master) *Runner {
	return &Runner{
		Desktop: d,
		Main:    main,
		Master:  m,
		Out:     io.Discard,
		Strict:  true,
		log:     m.Logger(),
	}
}

// RunScript parses and runs src.
func (r *Runner) RunScript(ctx context.Context, src string) error {
	cmds, errs := ParseFile(src)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrParse, strings.Join(errs, "; "))
	}
	return r.Run(ctx, cmds)
}

// Run executes cmds in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, cmds []Command) error {
	p := NewPlayer(cmds)
	for !p.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd := p.Next()
		if err := r.Exec(ctx, cmd); err != nil {
			return &ScriptError{Line: cmd.Line, Column: cmd.Column, Command: string(cmd.Type), Err: err}
		}
		p.Advance()
	}
	return nil
}

// Exec runs one command.
func (r *Runner) Exec(ctx context.Context, cmd *Command) error {
	r.log.Debug("script", "line", cmd.Line, "command", cmd.String())
	if err := r.exec(ctx, cmd); err != nil {
		return err
	}
	if r.Strict {
		if err := r.Master.Validate(); err != nil {
			return fmt.Errorf("model invalid after command: %w", err)
		}
	}
	return nil
}

func (r *Runner) exec(ctx context.Context, cmd *Command) error {
	m := r.Master
	switch cmd.Type {
	case CommandType_Open:
		return r.open(cmd)

	case CommandType_Dock:
		w, err := r.window(cmd.Arg(0, ""))
		if err != nil {
			return err
		}
		return r.show(w, cmd, 1)

	case CommandType_Undock:
		w, err := r.window(cmd.Arg(0, ""))
		if err != nil {
			return err
		}
		return w.Hide()

	case CommandType_Float:
		w, err := r.window(cmd.Arg(0, ""))
		if err != nil {
			return err
		}
		if len(cmd.Args) < 5 {
			return w.Show(dock.Float, nil, true, 0)
		}
		rect, err := r.rect(cmd, 1)
		if err != nil {
			return err
		}
		_, err = w.ShowFloating(rect.Location(), rect.Size())
		return err

	case CommandType_Select:
		w, err := r.window(cmd.Arg(0, ""))
		if err != nil {
			return err
		}
		if !w.IsDocked() {
			return fmt.Errorf("window %q is hidden", w.Title())
		}
		w.Select()
		return nil

	case CommandType_Close:
		w, err := r.window(cmd.Arg(0, ""))
		if err != nil {
			return err
		}
		return w.Close()

	case CommandType_Rename:
		w, err := r.window(cmd.Arg(0, ""))
		if err != nil {
			return err
		}
		w.SetTitle(cmd.Arg(1, ""))
		return nil

	case CommandType_MouseDown, CommandType_MouseMove, CommandType_MouseUp:
		p, err := r.point(cmd, 0)
		if err != nil {
			return err
		}
		button, err := parseButton(cmd.Arg(2, "Left"))
		if err != nil {
			return err
		}
		action := map[CommandType]dock.MouseAction{
			CommandType_MouseDown: dock.MouseDown,
			CommandType_MouseMove: dock.MouseMove,
			CommandType_MouseUp:   dock.MouseUp,
		}[cmd.Type]
		r.Desktop.DispatchMouse(dock.MouseEvent{Action: action, Button: button, Pos: p})
		m.Tick()
		return nil

	case CommandType_Drag:
		return r.drag(cmd)

	case CommandType_Tick:
		n, err := r.optionalInt(cmd, 0, 1)
		if err != nil {
			return err
		}
		for range n {
			m.Tick()
		}
		return nil

	case CommandType_Blur:
		r.Desktop.SetAppFocused(false)
		m.Tick()
		return nil

	case CommandType_Focus:
		if len(cmd.Args) == 0 {
			r.Desktop.SetAppFocused(true)
			return nil
		}
		w, err := r.window(cmd.Args[0])
		if err != nil {
			return err
		}
		w.Focus()
		return nil

	case CommandType_Resize:
		width, err := cmd.Int(0)
		if err != nil {
			return err
		}
		height, err := cmd.Int(1)
		if err != nil {
			return err
		}
		if width <= 0 || height <= 0 {
			return fmt.Errorf("invalid size %dx%d", width, height)
		}
		r.Desktop.Resize(width, height)
		m.Arrange()
		return nil

	case CommandType_Save:
		doc := layout.Capture(m)
		path := cmd.Arg(0, r.LayoutPath)
		if path == "" {
			r.saved = doc
			return nil
		}
		return layout.Save(path, doc)

	case CommandType_Load:
		doc := r.saved
		if path := cmd.Arg(0, r.LayoutPath); path != "" {
			var err error
			if doc, err = layout.Load(path); err != nil {
				return err
			}
		}
		if doc == nil {
			return errors.New("no saved layout")
		}
		return layout.Apply(m, doc, r.Factory)

	case CommandType_Reset:
		m.ResetLayout()
		return nil

	case CommandType_Expect:
		return r.expect(cmd)

	case CommandType_ExpectTabs:
		w, err := r.window(cmd.Arg(0, ""))
		if err != nil {
			return err
		}
		h := w.Host()
		if h == nil {
			return fmt.Errorf("%w: window %q is not docked", ErrExpectation, w.Title())
		}
		var got []string
		for _, t := range h.Tabs() {
			got = append(got, t.Title())
		}
		if want := cmd.Args[1:]; !slices.Equal(got, want) {
			return fmt.Errorf("%w: tabs %q, want %q", ErrExpectation, got, want)
		}
		return nil

	case CommandType_ExpectState:
		return r.expectState(cmd)

	case CommandType_ExpectCount:
		return r.expectCount(cmd)

	case CommandType_ExpectDrag:
		s := m.Session()
		if got, want := s.Phase().String(), strings.ToLower(cmd.Args[0]); got != want {
			return fmt.Errorf("%w: drag phase %s, want %s", ErrExpectation, got, want)
		}
		if len(cmd.Args) > 1 {
			want, err := dock.ParseDockState(cmd.Args[1])
			if err != nil {
				return err
			}
			if s.State() != want {
				return fmt.Errorf("%w: drag direction %s, want %s", ErrExpectation, s.State(), want)
			}
		}
		return nil

	case CommandType_ExpectDump:
		var buf bytes.Buffer
		if err := m.Dump(&buf); err != nil {
			return err
		}
		got, want := strings.TrimSpace(buf.String()), strings.TrimSpace(cmd.Args[0])
		if got != want {
			return fmt.Errorf("%w: dump\n%s\nwant\n%s", ErrExpectation, got, want)
		}
		return nil

	case CommandType_Sleep:
		if !r.Realtime || cmd.Delay <= 0 {
			return nil
		}
		t := time.NewTimer(cmd.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}

	case CommandType_Dump:
		return m.Dump(r.Out)
	}
	return fmt.Errorf("unsupported command %s", cmd.Type)
}

// open registers a window, reusing a hidden one with the same title.
func (r *Runner) open(cmd *Command) error {
	title := cmd.Args[0]
	w := r.Master.FindWindow(title)
	switch {
	case w != nil && w.IsDocked():
		return fmt.Errorf("window %q is already open", title)
	case w == nil:
		var content dock.Content
		if r.Factory != nil {
			c, err := r.Factory(layout.WindowDoc{Title: title})
			if err != nil {
				return err
			}
			content = c
		}
		w = r.Master.NewWindow(title, content)
	}
	return r.show(w, cmd, 1)
}

// show docks w using the optional [state] [target] [ratio] arguments from i.
func (r *Runner) show(w *dock.Window, cmd *Command, i int) error {
	state := dock.DockFill
	var target *dock.Panel
	ratio := 0.0
	for _, a := range cmd.Args[i:] {
		switch k := cmd.kindAt(i); k {
		case 'w':
			s, err := dock.ParseDockState(a)
			if err != nil {
				return err
			}
			state = s
		case 's':
			o, err := r.window(a)
			if err != nil {
				return err
			}
			if target = o.Host(); target == nil {
				return fmt.Errorf("window %q is not docked", a)
			}
		case 'n':
			v, err := cmd.Float(i, 0)
			if err != nil {
				return err
			}
			ratio = v
		}
		i++
	}
	return w.Show(state, target, true, ratio)
}

// kindAt returns the parsed kind of argument i, guessing for assembled commands.
func (c *Command) kindAt(i int) byte {
	if len(c.kinds) == len(c.Args) {
		return c.kinds[i]
	}
	if !c.quoted(i) {
		return 'n'
	}
	if _, err := dock.ParseDockState(c.Args[i]); err == nil {
		return 'w'
	}
	return 's'
}

func (r *Runner) drag(cmd *Command) error {
	from, err := r.point(cmd, 0)
	if err != nil {
		return err
	}
	to, err := r.point(cmd, 2)
	if err != nil {
		return err
	}
	steps, err := r.optionalInt(cmd, 4, 4)
	if err != nil {
		return err
	}
	steps = max(steps, 1)

	d, m := r.Desktop, r.Master
	d.DispatchMouse(dock.MouseEvent{Action: dock.MouseDown, Button: dock.ButtonLeft, Pos: from})
	m.Tick()
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := dock.Point{
			X: from.X + int(math.Round(float64(to.X-from.X)*t)),
			Y: from.Y + int(math.Round(float64(to.Y-from.Y)*t)),
		}
		d.DispatchMouse(dock.MouseEvent{Action: dock.MouseMove, Button: dock.ButtonLeft, Pos: p})
		m.Tick()
	}
	d.DispatchMouse(dock.MouseEvent{Action: dock.MouseUp, Button: dock.ButtonLeft, Pos: to})
	m.Tick()
	return nil
}

func (r *Runner) expect(cmd *Command) error {
	title, pred := cmd.Args[0], strings.ToLower(cmd.Args[1])
	w := r.Master.FindWindow(title)
	if w == nil {
		if pred == "destroyed" || pred == "missing" {
			return nil
		}
		return fmt.Errorf("%w %q", ErrNoWindow, title)
	}
	var ok bool
	switch pred {
	case "docked":
		ok = w.IsDocked()
	case "floating":
		ok = w.IsFloating()
	case "hidden":
		ok = !w.IsDocked()
	case "selected":
		ok = w.IsSelected()
	case "visible":
		ok = w.IsVisible()
	case "destroyed", "missing":
		ok = w.IsDestroyed()
	case "focused":
		h := w.Host()
		ok = h != nil && w.IsSelected() && h.Host().IsFocused()
	default:
		return fmt.Errorf("unknown predicate %q", cmd.Args[1])
	}
	if !ok {
		return fmt.Errorf("%w: window %q is not %s", ErrExpectation, title, pred)
	}
	return nil
}

func (r *Runner) expectState(cmd *Command) error {
	w, err := r.window(cmd.Args[0])
	if err != nil {
		return err
	}
	want, err := dock.ParseDockState(cmd.Args[1])
	if err != nil {
		return err
	}
	h := w.Host()
	if h == nil {
		return fmt.Errorf("%w: window %q is not docked", ErrExpectation, w.Title())
	}
	got, ratio, ok := h.TryGetDockState()
	if got != want {
		return fmt.Errorf("%w: %q docked %s, want %s", ErrExpectation, w.Title(), got, want)
	}
	if len(cmd.Args) > 2 {
		wantRatio, err := cmd.Float(2, 0)
		if err != nil {
			return err
		}
		if !ok || math.Abs(ratio-wantRatio) > 1e-6 {
			return fmt.Errorf("%w: %q splitter %v, want %v", ErrExpectation, w.Title(), ratio, wantRatio)
		}
	}
	return nil
}

func (r *Runner) expectCount(cmd *Command) error {
	want, err := cmd.Int(1)
	if err != nil {
		return err
	}
	m := r.Master
	var got int
	switch strings.ToLower(cmd.Args[0]) {
	case "windows":
		got = len(m.Windows())
	case "floats":
		got = len(m.Floats())
	case "hidden":
		got = len(m.HiddenWindows())
	case "panels":
		for _, root := range m.Roots() {
			root.Walk(func(*dock.Panel) bool { got++; return true })
		}
	default:
		return fmt.Errorf("unknown count %q", cmd.Args[0])
	}
	if got != want {
		return fmt.Errorf("%w: %s = %d, want %d", ErrExpectation, cmd.Args[0], got, want)
	}
	return nil
}

func (r *Runner) window(title string) (*dock.Window, error) {
	if w := r.Master.FindWindow(title); w != nil {
		return w, nil
	}
	return nil, fmt.Errorf("%w %q", ErrNoWindow, title)
}

func (r *Runner) point(cmd *Command, i int) (dock.Point, error) {
	x, err := cmd.Int(i)
	if err != nil {
		return dock.Point{}, err
	}
	y, err := cmd.Int(i + 1)
	if err != nil {
		return dock.Point{}, err
	}
	return dock.Point{X: x, Y: y}, nil
}

func (r *Runner) rect(cmd *Command, i int) (dock.Rect, error) {
	p, err := r.point(cmd, i)
	if err != nil {
		return dock.Rect{}, err
	}
	s, err := r.point(cmd, i+2)
	if err != nil {
		return dock.Rect{}, err
	}
	return dock.Rect{X: p.X, Y: p.Y, W: s.X, H: s.Y}, nil
}

func (r *Runner) optionalInt(cmd *Command, i, def int) (int, error) {
	if i >= len(cmd.Args) {
		return def, nil
	}
	return cmd.Int(i)
}

func parseButton(s string) (dock.MouseButton, error) {
	switch strings.ToLower(s) {
	case "left":
		return dock.ButtonLeft, nil
	case "middle":
		return dock.ButtonMiddle, nil
	case "right":
		return dock.ButtonRight, nil
	}
	return dock.ButtonNone, fmt.Errorf("unknown mouse button %q", s)
}
