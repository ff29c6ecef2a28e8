// Package config loads and validates the tuidock configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidValue marks a setting that was reset to its default.
var ErrInvalidValue = errors.New("invalid config value")

// Config is the user configuration.
type Config struct {
	Docking     DockingConfig     `toml:"docking" jsonschema:"description=Geometry of the docking workspace"`
	Appearance  AppearanceConfig  `toml:"appearance" jsonschema:"description=Colors and glyphs"`
	Layout      LayoutConfig      `toml:"layout" jsonschema:"description=Layout persistence"`
	Keybindings KeybindingsConfig `toml:"keybindings" jsonschema:"description=Action to key bindings"`
}

// DockingConfig holds the sizes handed to the docking engine.
type DockingConfig struct {
	DefaultSplitRatio float64 `toml:"default_split_ratio" jsonschema:"exclusiveMinimum=0,exclusiveMaximum=1,default=0.25"`
	HintSize          int     `toml:"hint_size" jsonschema:"minimum=1,default=6"`
	HintMargin        int     `toml:"hint_margin" jsonschema:"minimum=0,default=1"`
	HeaderHeight      int     `toml:"header_height" jsonschema:"minimum=1,default=1"`
	TabPadding        int     `toml:"tab_padding" jsonschema:"minimum=0,default=1"`
	CloseButton       int     `toml:"close_button" jsonschema:"minimum=0,default=1"`
	SplitterSize      int     `toml:"splitter_size" jsonschema:"minimum=0,default=1"`
	MinPaneSize       int     `toml:"min_pane_size" jsonschema:"minimum=0,default=3"`
	ResizeStep        int     `toml:"resize_step" jsonschema:"minimum=1,default=2"`
	FloatWidth        int     `toml:"float_width" jsonschema:"minimum=1,default=40"`
	FloatHeight       int     `toml:"float_height" jsonschema:"minimum=1,default=12"`
}

// AppearanceConfig controls how the workspace is drawn.
type AppearanceConfig struct {
	Theme         string  `toml:"theme" jsonschema:"description=bubbletint theme id; empty uses the built-in palette"`
	HintOpacity   float64 `toml:"hint_opacity" jsonschema:"minimum=0,maximum=1,default=0.5"`
	ASCIIOnly     bool    `toml:"ascii_only"`
	ShowSplitters bool    `toml:"show_splitters" jsonschema:"default=true"`
}

// LayoutConfig controls where layouts are stored.
type LayoutConfig struct {
	AutoSave bool   `toml:"auto_save" jsonschema:"default=true"`
	Path     string `toml:"path" jsonschema:"description=Layout file; empty uses the XDG state directory"`
}

// KeybindingsConfig maps actions to keys, grouped like the help screen.
type KeybindingsConfig struct {
	Windows map[string][]string `toml:"windows"`
	Layout  map[string][]string `toml:"layout"`
	System  map[string][]string `toml:"system"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Docking: DockingConfig{
			DefaultSplitRatio: dock.DefaultSplitterValue,
			HintSize:          6,
			HintMargin:        1,
			HeaderHeight:      1,
			TabPadding:        1,
			CloseButton:       1,
			SplitterSize:      1,
			MinPaneSize:       3,
			ResizeStep:        2,
			FloatWidth:        40,
			FloatHeight:       12,
		},
		Appearance: AppearanceConfig{
			HintOpacity:   0.5,
			ShowSplitters: true,
		},
		Layout: LayoutConfig{
			AutoSave: true,
		},
		Keybindings: KeybindingsConfig{
			Windows: map[string][]string{
				"new_window":   {"n"},
				"close_tab":    {"x", "ctrl+w"},
				"next_tab":     {"tab"},
				"prev_tab":     {"shift+tab"},
				"float_tab":    {"f"},
				"dock_left":    {"H"},
				"dock_right":   {"L"},
				"dock_top":     {"K"},
				"dock_bottom":  {"J"},
				"dock_center":  {"C"},
				"grow_panel":   {"+", "="},
				"shrink_panel": {"-"},
				"toggle_max":   {"m"},
			},
			Layout: map[string][]string{
				"save_layout":   {"s", "ctrl+s"},
				"reload_layout": {"l"},
				"reset_layout":  {"R"},
			},
			System: map[string][]string{
				"toggle_help":     {"?"},
				"toggle_playback": {"p"},
				"cancel":          {"esc"},
				"quit":            {"q", "ctrl+c"},
			},
		},
	}
}

// GetConfigPath returns the config file path under the XDG config directory.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile("tuidock/config.toml")
}

// LoadUserConfig loads the user's config file, writing the defaults first
// when none exists.
func LoadUserConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("could not determine config path: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Load reads path on top of the defaults. Out-of-range values are reset and
// reported through the returned error together with a usable config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a TOML document on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Keybindings.fillMissing(DefaultConfig().Keybindings)
	return cfg, cfg.Validate()
}

func (k *KeybindingsConfig) fillMissing(def KeybindingsConfig) {
	fill := func(dst *map[string][]string, src map[string][]string) {
		if *dst == nil {
			*dst = map[string][]string{}
		}
		for action, keys := range src {
			if _, ok := (*dst)[action]; !ok {
				(*dst)[action] = keys
			}
		}
	}
	fill(&k.Windows, def.Windows)
	fill(&k.Layout, def.Layout)
	fill(&k.System, def.System)
}

// Validate resets out-of-range values to their defaults and reports each one.
func (c *Config) Validate() error {
	def := DefaultConfig()
	var errs []error
	reset := func(name string, bad bool, apply func()) {
		if bad {
			apply()
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrInvalidValue))
		}
	}

	d, dd := &c.Docking, def.Docking
	reset("docking.default_split_ratio", d.DefaultSplitRatio <= 0 || d.DefaultSplitRatio >= 1,
		func() { d.DefaultSplitRatio = dd.DefaultSplitRatio })
	reset("docking.hint_size", d.HintSize < 1, func() { d.HintSize = dd.HintSize })
	reset("docking.hint_margin", d.HintMargin < 0, func() { d.HintMargin = dd.HintMargin })
	reset("docking.header_height", d.HeaderHeight < 1, func() { d.HeaderHeight = dd.HeaderHeight })
	reset("docking.tab_padding", d.TabPadding < 0, func() { d.TabPadding = dd.TabPadding })
	reset("docking.close_button", d.CloseButton < 0, func() { d.CloseButton = dd.CloseButton })
	reset("docking.splitter_size", d.SplitterSize < 0, func() { d.SplitterSize = dd.SplitterSize })
	reset("docking.min_pane_size", d.MinPaneSize < 0, func() { d.MinPaneSize = dd.MinPaneSize })
	reset("docking.resize_step", d.ResizeStep < 1, func() { d.ResizeStep = dd.ResizeStep })
	reset("docking.float_width", d.FloatWidth < 1, func() { d.FloatWidth = dd.FloatWidth })
	reset("docking.float_height", d.FloatHeight < 1, func() { d.FloatHeight = dd.FloatHeight })

	a := &c.Appearance
	reset("appearance.hint_opacity", a.HintOpacity < 0 || a.HintOpacity > 1,
		func() { a.HintOpacity = def.Appearance.HintOpacity })

	n := NewKeyNormalizer()
	for _, section := range []map[string][]string{c.Keybindings.Windows, c.Keybindings.Layout, c.Keybindings.System} {
		for action, keys := range section {
			kept := keys[:0:0]
			for _, k := range keys {
				if ok, reason := n.ValidateKey(k); !ok {
					errs = append(errs, fmt.Errorf("keybindings.%s %q: %s: %w", action, k, reason, ErrInvalidValue))
					continue
				}
				kept = append(kept, k)
			}
			section[action] = kept
		}
	}
	return errors.Join(errs...)
}

// DockOptions converts the docking settings into engine options.
func (c *Config) DockOptions(measure func(string) int, logger *log.Logger) dock.Options {
	d := c.Docking
	return dock.Options{
		DefaultSplitRatio: d.DefaultSplitRatio,
		HintSize:          dock.Size{W: d.HintSize, H: max(1, d.HintSize/2)},
		HintMargin:        d.HintMargin,
		HeaderHeight:      d.HeaderHeight,
		TabPadding:        d.TabPadding,
		CloseButtonWidth:  d.CloseButton,
		SplitterSize:      d.SplitterSize,
		MinPaneSize:       d.MinPaneSize,
		FloatSize:         dock.Size{W: d.FloatWidth, H: d.FloatHeight},
		Measure:           measure,
		Logger:            logger,
	}
}

// LayoutPath returns the configured layout file, or fallback when unset.
// A leading ~ expands to the home directory.
func (c *Config) LayoutPath(fallback func() (string, error)) (string, error) {
	p := strings.TrimSpace(c.Layout.Path)
	if p == "" {
		return fallback()
	}
	if rest, ok := strings.CutPrefix(p, "~"); ok {
		p = filepath.Join(xdg.Home, rest)
	}
	return p, nil
}

// Marshal encodes c with a short header.
func Marshal(c *Config, path string) ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	var sb strings.Builder
	sb.WriteString("# tuidock configuration file\n")
	sb.WriteString("# Keybindings map an action to a list of keys; several keys may share an action.\n")
	if path != "" {
		sb.WriteString("# Location: " + path + "\n")
	}
	sb.WriteString("\n")
	sb.Write(data)
	return []byte(sb.String()), nil
}

// Save writes c to path, creating its directory.
func Save(path string, c *Config) error {
	data, err := Marshal(c, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
