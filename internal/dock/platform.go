package dock

// MouseButton identifies the pressed button of a mouse event.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// MouseAction is the kind of a mouse event.
type MouseAction uint8

const (
	MouseDown MouseAction = iota + 1
	MouseUp
	MouseMove
)

// MouseEvent is a mouse event in desktop coordinates.
type MouseEvent struct {
	Action MouseAction
	Button MouseButton
	Pos    Point
}

// WindowHandler receives events of one host window. OnMouse returns true when
// the event was consumed; unconsumed events continue to later handlers.
type WindowHandler struct {
	OnMouse     func(ev MouseEvent) bool
	OnLostFocus func()
	OnClosed    func()
}

// WindowOptions describes a top-level window to create.
type WindowOptions struct {
	Title    string
	Position Point
	Size     Size
	// Positioned is false when the platform should pick the position later.
	Positioned bool
	// Frame draws a border with a title row; the title row is the drag handle.
	Frame bool
	// Overlay windows float above everything and never receive input.
	Overlay bool
}

// HostWindow is an opaque top-level window owned by the platform.
type HostWindow interface {
	Title() string
	SetTitle(title string)

	Position() Point
	SetPosition(p Point)
	// IsPositioned reports whether the window has received a valid position.
	IsPositioned() bool
	Size() Size
	SetSize(s Size)
	// Bounds is the outer rectangle in desktop coordinates.
	Bounds() Rect
	// ClientBounds is the rectangle available to the docking tree.
	ClientBounds() Rect
	// TitleBar is the drag handle of framed windows; empty for frameless ones.
	TitleBar() Rect

	Show()
	Hide()
	IsVisible() bool
	Focus()
	IsFocused() bool
	// Z is the stacking order; larger values are closer to the user.
	Z() int

	IsMaximized() bool
	Maximize()
	Restore()
	Close()

	// StartTrackingMouse routes every mouse event to this window until
	// EndTrackingMouse is called.
	StartTrackingMouse()
	EndTrackingMouse()

	// Subscribe registers h and returns a function removing it.
	Subscribe(h WindowHandler) (unsubscribe func())
}

// Platform is the window-creation facility the engine relies on.
type Platform interface {
	CreateWindow(opts WindowOptions) (HostWindow, error)
	MousePosition() Point
	IsAppFocused() bool
	// OnAppBlur registers fn to run when the application loses focus.
	OnAppBlur(fn func()) (unsubscribe func())
}
