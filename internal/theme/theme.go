// Package theme provides color themes and styling for the tuidock workspace.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	enabled     bool
	hintOpacity = 0.5
)

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and the built-in palette is used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// SetHintOpacity sets how strongly drop hints tint the area below them.
func SetHintOpacity(v float64) {
	if v < 0 || v > 1 {
		return
	}
	hintOpacity = v
}

// Blend mixes over onto base with the given opacity.
func Blend(base, over color.Color, opacity float64) color.Color {
	b, ok1 := colorful.MakeColor(base)
	o, ok2 := colorful.MakeColor(over)
	if !ok1 || !ok2 {
		return over
	}
	return lipgloss.Color(b.BlendRgb(o, opacity).Clamped().Hex())
}

// Workspace colors
func Background() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#1a1a2e")
	}
	return t.Bg
}

func Foreground() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// Tab strip colors
func HeaderBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#2a2a3e")
	}
	return t.BrightBlack
}

func TabFg() color.Color {
	return lipgloss.Color("#a0a0a8")
}

func TabSelectedBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5c5cff")
	}
	return t.BrightBlue
}

func TabSelectedFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffffff")
	}
	return t.BrightWhite
}

func TabHoverBg() color.Color {
	return Blend(HeaderBg(), TabSelectedBg(), 0.35)
}

func CloseButton() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ff6b6b")
	}
	return t.BrightRed
}

func Splitter() color.Color {
	return lipgloss.Color("#808090")
}

// Window border colors
func BorderUnfocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#FAAAAA")
	}
	return t.Red
}

func BorderFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

// Drop hint colors
func HintBase() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cdcd")
	}
	return t.Cyan
}

// Hint is the translucent fill of an idle drop hint.
func Hint() color.Color {
	return Blend(Background(), HintBase(), hintOpacity)
}

// HintActive is the fill of the hint under the cursor.
func HintActive() color.Color {
	return Blend(Background(), HintBase(), min(1, hintOpacity+0.3))
}

// Context menu colors
func MenuBg() color.Color {
	return lipgloss.Color("#1a1a2a")
}

func MenuSelectedBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd00cd")
	}
	return t.Purple
}

// Status line colors
func StatusBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

func StatusFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

func StatusAccent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ff00")
	}
	return t.BrightGreen
}

// Style resolves the lipgloss style used for cells drawn with role.
func Style(role dock.Role) lipgloss.Style {
	s := lipgloss.NewStyle().Background(Background()).Foreground(Foreground())
	switch role {
	case dock.RoleHeader:
		return s.Background(HeaderBg()).Foreground(TabFg())
	case dock.RoleTab:
		return s.Background(HeaderBg()).Foreground(TabFg())
	case dock.RoleTabSelected:
		return s.Background(TabSelectedBg()).Foreground(TabSelectedFg()).Bold(true)
	case dock.RoleTabHover:
		return s.Background(TabHoverBg()).Foreground(TabSelectedFg())
	case dock.RoleClose:
		return s.Background(HeaderBg()).Foreground(CloseButton()).Bold(true)
	case dock.RoleSplitter:
		return s.Foreground(Splitter())
	case dock.RoleFrame:
		return s.Foreground(BorderUnfocused())
	case dock.RoleFrameFocused:
		return s.Foreground(BorderFocused())
	case dock.RoleHint:
		return s.Background(Hint()).Foreground(Foreground())
	case dock.RoleHintActive:
		return s.Background(HintActive()).Foreground(Foreground()).Bold(true)
	case dock.RoleMenu:
		return s.Background(MenuBg()).Foreground(Foreground())
	case dock.RoleMenuSelected:
		return s.Background(MenuSelectedBg()).Foreground(TabSelectedFg())
	}
	return s
}
