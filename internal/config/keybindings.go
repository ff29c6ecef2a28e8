package config

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// ActionDescriptions describes every bindable action.
var ActionDescriptions = map[string]string{
	"new_window":      "New window",
	"close_tab":       "Close selected tab",
	"next_tab":        "Next tab",
	"prev_tab":        "Previous tab",
	"float_tab":       "Float selected tab",
	"dock_left":       "Dock tab to the left",
	"dock_right":      "Dock tab to the right",
	"dock_top":        "Dock tab to the top",
	"dock_bottom":     "Dock tab to the bottom",
	"dock_center":     "Dock tab into the main panel",
	"grow_panel":      "Grow focused panel",
	"shrink_panel":    "Shrink focused panel",
	"toggle_max":      "Maximize or restore floating window",
	"save_layout":     "Save layout",
	"reload_layout":   "Reload saved layout",
	"reset_layout":    "Reset to the default layout",
	"toggle_help":     "Toggle help",
	"toggle_playback": "Pause or resume script playback",
	"cancel":          "Cancel drag or close menu",
	"quit":            "Quit",
}

// sectionOrder fixes the order actions appear in help and listings.
var sectionOrder = []struct {
	title   string
	actions []string
	keys    func(KeybindingsConfig) map[string][]string
}{
	{"WINDOWS", []string{
		"new_window", "close_tab", "next_tab", "prev_tab", "float_tab",
		"dock_left", "dock_right", "dock_top", "dock_bottom", "dock_center",
		"grow_panel", "shrink_panel", "toggle_max",
	}, func(k KeybindingsConfig) map[string][]string { return k.Windows }},
	{"LAYOUT", []string{"save_layout", "reload_layout", "reset_layout"},
		func(k KeybindingsConfig) map[string][]string { return k.Layout }},
	{"SYSTEM", []string{"toggle_help", "toggle_playback", "cancel", "quit"},
		func(k KeybindingsConfig) map[string][]string { return k.System }},
}

// KeybindRegistry resolves keys to actions and back.
type KeybindRegistry struct {
	actionKeys map[string][]string
	keyAction  map[string]string
	normalizer *KeyNormalizer
}

// NewKeybindRegistry indexes the keybindings of cfg. When a key is bound to
// several actions the first one in help order wins.
func NewKeybindRegistry(cfg *Config) *KeybindRegistry {
	r := &KeybindRegistry{
		actionKeys: map[string][]string{},
		keyAction:  map[string]string{},
		normalizer: NewKeyNormalizer(),
	}
	for _, s := range sectionOrder {
		section := s.keys(cfg.Keybindings)
		for _, action := range s.actions {
			keys := section[action]
			r.actionKeys[action] = keys
			for _, k := range keys {
				for _, n := range r.normalizer.NormalizeKey(k) {
					if _, taken := r.keyAction[n]; !taken {
						r.keyAction[n] = action
					}
				}
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return slices.Clone(r.actionKeys[action])
}

// GetAction returns the action bound to key, "" when unbound.
func (r *KeybindRegistry) GetAction(key string) string {
	for _, n := range r.normalizer.NormalizeKey(key) {
		if a, ok := r.keyAction[n]; ok {
			return a
		}
	}
	return ""
}

// GetKeysForDisplay returns the keys of action joined for the help screen.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.actionKeys[action]
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = displayKey(k)
	}
	return strings.Join(out, ", ")
}

func displayKey(k string) string {
	parts := strings.Split(k, "+")
	for i, p := range parts {
		if utf8.RuneCountInString(p) > 1 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "+")
}

// GetKeybindings returns all keybinding sections for the help screen.
// A nil registry shows the defaults.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}
	var sections []KeybindingSection
	for _, s := range sectionOrder {
		section := KeybindingSection{Title: s.title}
		for _, action := range s.actions {
			addBinding(&section, registry, action, ActionDescriptions[action])
		}
		if len(section.Bindings) > 0 {
			sections = append(sections, section)
		}
	}
	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns mouse help, which is not configurable.
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Click tab", "Select tab"},
				{"Click ×", "Close tab"},
				{"Drag tab along header", "Reorder tabs"},
				{"Drag tab off header", "Float tab"},
				{"Drag float title bar", "Move floating window"},
				{"Release over hint", "Dock into target panel"},
				{"Drag splitter", "Resize panels"},
				{"Right click tab", "Tab menu"},
			},
		},
	}
}

// KeyNormalizer maps user-written keys onto the strings the terminal reports.
type KeyNormalizer struct {
	aliases map[string]string
}

var modifiers = []string{"ctrl", "alt", "shift", "super", "hyper", "meta"}

var namedKeys = []string{
	"enter", "return", "esc", "escape", "tab", "space", "backspace", "delete",
	"insert", "home", "end", "pgup", "pgdown", "up", "down", "left", "right",
	"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12",
}

// NewKeyNormalizer creates a normalizer with the common key aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{aliases: map[string]string{
		"return":   "enter",
		"escape":   "esc",
		"del":      "delete",
		"pageup":   "pgup",
		"pagedown": "pgdown",
	}}
}

// NormalizeKey returns the spellings of key that should match. Keys with
// modifiers and named keys are lowercased; a single character keeps its case,
// and an uppercase letter also matches its shift+ form.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if utf8.RuneCountInString(key) == 1 {
		out := []string{key}
		if r, _ := utf8.DecodeRuneInString(key); unicode.IsUpper(r) {
			out = append(out, "shift+"+string(unicode.ToLower(r)))
		}
		return out
	}
	mods, name := splitKey(key)
	for i := range mods {
		mods[i] = strings.ToLower(mods[i])
	}
	name = strings.ToLower(name)
	join := func(name string) string { return strings.Join(append(slices.Clone(mods), name), "+") }
	out := []string{join(name)}
	if alias, ok := n.aliases[name]; ok {
		out = append(out, join(alias))
	}
	return out
}

// ValidateKey reports whether key can be bound, with a reason when not.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, "empty key"
	}
	if utf8.RuneCountInString(key) == 1 {
		return true, ""
	}
	mods, name := splitKey(key)
	for _, m := range mods {
		if !slices.Contains(modifiers, strings.ToLower(m)) {
			return false, "unknown modifier " + m
		}
	}
	if name == "" {
		return false, "missing key after modifiers"
	}
	if utf8.RuneCountInString(name) > 1 && !slices.Contains(namedKeys, strings.ToLower(name)) {
		return false, "unknown key " + name
	}
	return true, ""
}

// splitKey splits "ctrl+shift+a" into modifiers and the key, treating a
// trailing "+" as the plus key.
func splitKey(key string) ([]string, string) {
	if strings.HasSuffix(key, "++") {
		return strings.Split(strings.TrimSuffix(key, "++"), "+"), "+"
	}
	parts := strings.Split(key, "+")
	return parts[:len(parts)-1], parts[len(parts)-1]
}
