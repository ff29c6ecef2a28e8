package dock

import (
	"fmt"
	"strings"
)

// DockState is the requested placement of a window relative to a target panel.
type DockState uint8

const (
	DockUnknown DockState = iota
	Float
	DockFill
	DockTop
	DockLeft
	DockBottom
	DockRight
	Hidden
)

var dockStateNames = map[DockState]string{
	DockUnknown: "Unknown",
	Float:       "Float",
	DockFill:    "DockFill",
	DockTop:     "DockTop",
	DockLeft:    "DockLeft",
	DockBottom:  "DockBottom",
	DockRight:   "DockRight",
	Hidden:      "Hidden",
}

func (s DockState) String() string {
	if name, ok := dockStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("DockState(%d)", uint8(s))
}

// IsSplit reports whether docking with s inserts a splitter.
func (s DockState) IsSplit() bool {
	switch s {
	case DockTop, DockLeft, DockBottom, DockRight:
		return true
	}
	return false
}

// Orientation returns the splitter orientation a split state produces.
// Left/Right place panes side by side, Top/Bottom stack them.
func (s DockState) Orientation() Orientation {
	if s == DockTop || s == DockBottom {
		return Vertical
	}
	return Horizontal
}

// ParseDockState accepts the String form as well as the short aliases used in
// scripts ("left", "fill", "float", ...). Matching is case-insensitive.
func ParseDockState(text string) (DockState, error) {
	key := strings.ToLower(strings.TrimSpace(text))
	key = strings.TrimPrefix(key, "dock")
	switch key {
	case "fill", "tab", "center":
		return DockFill, nil
	case "top", "up":
		return DockTop, nil
	case "left":
		return DockLeft, nil
	case "bottom", "down":
		return DockBottom, nil
	case "right":
		return DockRight, nil
	case "float":
		return Float, nil
	case "hidden", "hide":
		return Hidden, nil
	case "unknown", "":
		return DockUnknown, nil
	}
	return DockUnknown, fmt.Errorf("unknown dock state %q", text)
}

// MarshalText implements encoding.TextMarshaler.
func (s DockState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *DockState) UnmarshalText(text []byte) error {
	v, err := ParseDockState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Orientation of a two-pane splitter.
type Orientation uint8

const (
	// Horizontal splitters lay panes out left to right.
	Horizontal Orientation = iota
	// Vertical splitters stack panes top to bottom.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}
