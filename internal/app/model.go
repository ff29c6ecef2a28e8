// Package app is the terminal front-end: a bubbletea model driving the dock
// engine on a virtual desktop the size of the terminal.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/desktop"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/render"
	"github.com/Gaurav-Gosain/tuidock/internal/tape"
	"github.com/Gaurav-Gosain/tuidock/internal/theme"
)

// Options configures a Model.
type Options struct {
	Config *config.Config
	Logger *log.Logger
	// Theme overrides the configured theme when set.
	Theme string
	// LayoutPath is loaded at startup and saved on quit with auto-save. Empty
	// keeps layouts in memory.
	LayoutPath string
	// Script is replayed live once the program starts.
	Script []tape.Command
	// RecordPath receives a script of the session on quit.
	RecordPath string
	// Width and Height size the workspace until the terminal reports its size.
	Width, Height int
}

// ConfigReloadMsg carries a configuration re-read after the file changed.
type ConfigReloadMsg struct {
	Config *config.Config
	Err    error
}

// Model is the bubbletea model of the workspace.
type Model struct {
	Desktop *desktop.Desktop
	Main    *desktop.Window
	Master  *dock.Master

	cfg        *config.Config
	keys       *config.KeybindRegistry
	log        *log.Logger
	theme      string
	canvas     *render.Canvas
	runner     *tape.Runner
	layoutPath string

	width, height int
	showHelp      bool
	status        string
	active        *dock.Window
	notes         int

	player     *tape.Player
	sleepUntil time.Time
	scriptErr  error

	recorder   *tape.Recorder
	recordPath string

	closed bool
}

// New builds the workspace, restoring the saved layout when there is one.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}
	dh := max(height-1, 1)

	d := desktop.New(width, dh)
	d.SetLogger(logger)
	main := d.NewMainWindow("tuidock")
	master := dock.NewMaster(d, main, cfg.DockOptions(render.Measure, logger))

	runner := tape.Attach(d, main, master)
	runner.Factory = Factory(master)
	runner.LayoutPath = opts.LayoutPath
	runner.Strict = false

	m := &Model{
		Desktop:    d,
		Main:       main,
		Master:     master,
		log:        logger,
		theme:      opts.Theme,
		canvas:     render.NewCanvas(width, dh),
		runner:     runner,
		layoutPath: opts.LayoutPath,
		width:      width,
		height:     height,
	}
	m.applyConfig(cfg)
	master.OnSelectedChanged(func(_ *dock.Panel, _, next *dock.Window) {
		if next != nil {
			m.active = next
		}
	})

	if err := m.restore(); err != nil {
		logger.Warn("restore layout", "path", opts.LayoutPath, "err", err)
		m.flash("layout not restored: %v", err)
		if err := m.seed(); err != nil {
			return nil, err
		}
	}

	if len(opts.Script) > 0 {
		m.player = tape.NewPlayer(opts.Script)
	}
	if opts.RecordPath != "" {
		if err := m.startRecording(opts.RecordPath); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// restore applies the saved layout, or seeds the default workspace when no
// layout was saved yet.
func (m *Model) restore() error {
	if m.layoutPath == "" {
		return m.seed()
	}
	doc, err := layout.Load(m.layoutPath)
	if errors.Is(err, os.ErrNotExist) {
		return m.seed()
	}
	if err != nil {
		return err
	}
	return layout.Apply(m.Master, doc, m.runner.Factory)
}

// seed opens the default workspace.
func (m *Model) seed() error {
	cmds, errs := tape.ParseFile(defaultWorkspace)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", tape.ErrParse, strings.Join(errs, "; "))
	}
	return m.run(cmds...)
}

func (m *Model) startRecording(path string) error {
	snapshot := strings.TrimSuffix(path, filepath.Ext(path)) + ".layout.toml"
	if err := layout.Save(snapshot, layout.Capture(m.Master)); err != nil {
		return fmt.Errorf("save recording layout: %w", err)
	}
	m.recorder = tape.NewRecorder()
	m.recordPath = path
	m.recorder.Start(
		tape.NewTypedCommand(tape.CommandType_Resize, "nn", fmt.Sprint(m.Desktop.Width), fmt.Sprint(m.Desktop.Height)),
		tape.NewTypedCommand(tape.CommandType_Load, "s", snapshot),
	)
	return nil
}

// run executes cmds through the script runner and records them.
func (m *Model) run(cmds ...tape.Command) error {
	for i := range cmds {
		if err := m.runner.Exec(context.Background(), &cmds[i]); err != nil {
			return err
		}
		if m.recorder != nil {
			m.recorder.RecordCommand(cmds[i])
		}
	}
	return nil
}

func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.keys = config.NewKeybindRegistry(cfg)
	if m.Master != nil {
		m.Master.SetOptions(cfg.DockOptions(render.Measure, m.log))
	}
	m.canvas.ASCII = cfg.Appearance.ASCIIOnly
	m.canvas.HideSplitters = !cfg.Appearance.ShowSplitters
	name := m.theme
	if name == "" {
		name = cfg.Appearance.Theme
	}
	if err := theme.Initialize(name); err != nil {
		m.log.Warn("theme", "name", name, "err", err)
	}
	theme.SetHintOpacity(cfg.Appearance.HintOpacity)
}

// Config returns the configuration in effect.
func (m *Model) Config() *config.Config { return m.cfg }

// Status returns the last status message.
func (m *Model) Status() string { return m.status }

// ShowingHelp reports whether the help screen is open.
func (m *Model) ShowingHelp() bool { return m.showHelp }

func (m *Model) flash(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
}

// activeWindow is the tab keyboard actions apply to: the last selected one,
// else the selection of the focused root.
func (m *Model) activeWindow() *dock.Window {
	if w := m.active; w != nil && !w.IsDestroyed() && w.Host() != nil {
		return w
	}
	if hw := m.Desktop.Focused(); hw != nil {
		if root := m.Master.RootFor(hw); root != nil {
			if w := selectedIn(root); w != nil {
				return w
			}
		}
	}
	for _, root := range m.Master.Roots() {
		if w := selectedIn(root); w != nil {
			return w
		}
	}
	return nil
}

func selectedIn(root *dock.Panel) *dock.Window {
	var found *dock.Window
	root.Walk(func(p *dock.Panel) bool {
		if w := p.SelectedTab(); w != nil {
			found = w
			return false
		}
		return true
	})
	return found
}

// Cleanup saves the layout when auto-save is on and writes the recording.
// It runs once; later calls return nil.
func (m *Model) Cleanup() error {
	if m.closed {
		return nil
	}
	m.closed = true
	var errs []error
	if m.cfg.Layout.AutoSave && m.layoutPath != "" {
		if err := layout.Save(m.layoutPath, layout.Capture(m.Master)); err != nil {
			errs = append(errs, fmt.Errorf("save layout: %w", err))
		} else {
			m.log.Info("layout saved", "path", m.layoutPath)
		}
	}
	if m.recorder != nil {
		m.recorder.Stop()
		if err := m.recorder.WriteToFile(m.recordPath, "tuidock recording"); err != nil {
			errs = append(errs, fmt.Errorf("write recording: %w", err))
		} else {
			m.log.Info("recording saved", "path", m.recordPath, "commands", m.recorder.CommandCount())
		}
	}
	return errors.Join(errs...)
}

// Init starts script playback when a script was given.
func (m *Model) Init() tea.Cmd {
	if m.player != nil {
		return scriptTick()
	}
	return nil
}
