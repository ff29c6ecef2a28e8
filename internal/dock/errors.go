package dock

import "errors"

var (
	// ErrNotDocked is returned when undocking a window that is not a tab of the panel.
	ErrNotDocked = errors.New("window is not a tab of this panel")
	// ErrAlreadyDocked is returned when docking a window that still has a host panel.
	ErrAlreadyDocked = errors.New("window is already docked")
	// ErrInvalidState is returned for dock states an operation cannot honor.
	ErrInvalidState = errors.New("invalid dock state")
	// ErrPanelGone is returned when operating on a destroyed panel handle.
	ErrPanelGone = errors.New("panel has been destroyed")
	// ErrWindowGone is returned when operating on a destroyed window.
	ErrWindowGone = errors.New("window has been destroyed")
	// ErrDragActive is returned when a drag starts while another one is running.
	ErrDragActive = errors.New("a drag session is already active")
)
