package dock

// Content is what a window displays. TypeName tags it in saved layouts.
type Content interface {
	TypeName() string
}

// LayoutWriter collects a window's custom layout data.
type LayoutWriter interface {
	Set(key, value string)
}

// LayoutReader exposes a window's saved layout data.
type LayoutReader interface {
	Get(key string) (string, bool)
	Keys() []string
}

// LayoutSerializer is implemented by contents that save custom data.
type LayoutSerializer interface {
	OnLayoutSerialize(w LayoutWriter)
}

// LayoutDeserializer is implemented by contents that restore custom data.
// OnLayoutDeserializeDefault runs when the saved entry carries no data.
type LayoutDeserializer interface {
	OnLayoutDeserialize(r LayoutReader)
	OnLayoutDeserializeDefault()
}

// Window is a dockable tool window. A visible window is a tab of exactly one
// panel.
type Window struct {
	id         string
	m          *Master
	title      string
	titleWidth int
	visible    bool
	host       ID
	content    Content
	destroyed  bool

	// HideOnClose makes Close hide the window instead of destroying it.
	HideOnClose bool
}

func (w *Window) ID() string { return w.id }

func (w *Window) Title() string { return w.title }

// SetTitle renames the window and invalidates its measured width.
func (w *Window) SetTitle(title string) {
	if w.title == title {
		return
	}
	w.title = title
	w.titleWidth = -1
	if h := w.Host(); h != nil && h.selected == w {
		if root := h.Root(); root.kind == FloatPanel && root.host != nil {
			root.host.SetTitle(title)
		}
	}
}

// TitleWidth returns the display width of the title, measured once per title.
func (w *Window) TitleWidth() int {
	if w.titleWidth < 0 {
		w.titleWidth = w.m.opts.Measure(w.title)
	}
	return w.titleWidth
}

func (w *Window) Content() Content { return w.content }

// SetContent replaces the displayed content.
func (w *Window) SetContent(c Content) { w.content = c }

// Master returns the owning workspace.
func (w *Window) Master() *Master { return w.m }

func (w *Window) IsVisible() bool { return w.visible }

func (w *Window) IsDestroyed() bool { return w.destroyed }

// Host returns the panel listing w as a tab, nil when hidden.
func (w *Window) Host() *Panel { return w.m.panel(w.host) }

// IsDocked reports whether w lives in the main window's tree.
func (w *Window) IsDocked() bool {
	h := w.Host()
	return h != nil && h.Root().kind == MasterPanel
}

// IsFloating reports whether w lives in a floating window.
func (w *Window) IsFloating() bool {
	h := w.Host()
	return h != nil && h.Root().kind == FloatPanel
}

// IsSelected reports whether w is the selected tab of its panel.
func (w *Window) IsSelected() bool {
	h := w.Host()
	return h != nil && h.selected == w
}

// Select makes w the visible tab of its panel and focuses the host window.
func (w *Window) Select() {
	if h := w.Host(); h != nil {
		h.SelectTab(w, true)
	}
}

// Focus selects w and raises its host window.
func (w *Window) Focus() {
	h := w.Host()
	if h == nil {
		return
	}
	h.SelectTab(w, true)
	if hw := h.Host(); hw != nil {
		hw.Show()
		hw.Focus()
	}
}

func (w *Window) undock() error {
	if h := w.Host(); h != nil {
		return h.UndockWindow(w)
	}
	return nil
}

// Show docks w relative to target, the master root when target is nil.
// Float opens a floating window at the cursor and Hidden hides w. A window
// already docked elsewhere is moved.
func (w *Window) Show(state DockState, target *Panel, autoSelect bool, splitterValue float64) error {
	if w.destroyed {
		return ErrWindowGone
	}
	switch state {
	case Float:
		_, err := w.ShowFloating(w.m.platform.MousePosition(), w.m.opts.FloatSize)
		return err
	case Hidden:
		return w.Hide()
	}
	if target == nil {
		target = w.m.root
	}
	if !target.Alive() {
		return ErrPanelGone
	}
	if state == DockFill && w.Host() == target {
		if autoSelect {
			target.SelectTab(w, true)
		}
		return nil
	}
	if err := w.undock(); err != nil {
		return err
	}
	// Undocking the only tab of target removes it.
	if !target.Alive() {
		target = w.m.root
	}
	if err := target.DockWindow(state, w, autoSelect, splitterValue); err != nil {
		return err
	}
	w.visible = true
	return nil
}

// ShowBeside docks w relative to the panel hosting other.
func (w *Window) ShowBeside(state DockState, other *Window, splitterValue float64) error {
	h := other.Host()
	if h == nil {
		return ErrNotDocked
	}
	return w.Show(state, h, true, splitterValue)
}

// ShowFloating shows w alone in a floating window. A window that already
// floats alone is moved and resized instead.
func (w *Window) ShowFloating(pos Point, size Size) (*Panel, error) {
	if w.destroyed {
		return nil, ErrWindowGone
	}
	if size.W <= 0 || size.H <= 0 {
		size = w.m.opts.FloatSize
	}
	if h := w.Host(); h != nil && h.kind == FloatPanel && len(h.tabs) == 1 && len(h.children) == 0 {
		h.host.SetPosition(pos)
		h.host.SetSize(size)
		h.host.Show()
		return h, nil
	}
	if err := w.undock(); err != nil {
		return nil, err
	}
	f, err := w.m.newFloat(pos, size)
	if err != nil {
		return nil, err
	}
	if err := f.DockWindow(DockFill, w, true, 0); err != nil {
		w.m.closeFloat(f)
		return nil, err
	}
	w.visible = true
	f.host.Show()
	f.host.Focus()
	return f, nil
}

// Hide removes w from its panel and keeps it registered.
func (w *Window) Hide() error {
	if err := w.undock(); err != nil {
		return err
	}
	w.visible = false
	return nil
}

// Close hides w and, unless HideOnClose is set, destroys it.
func (w *Window) Close() error {
	if w.destroyed {
		return nil
	}
	if err := w.Hide(); err != nil {
		return err
	}
	if w.HideOnClose {
		return nil
	}
	w.destroyed = true
	w.m.unregister(w)
	w.m.log.Debug("closed window", "window", w.title)
	w.m.notifyClosed(w)
	return nil
}

func (w *Window) String() string { return w.title }
