package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyBindingsConfig holds the modifier and optional per-action overrides
type KeyBindingsConfig struct {
	Modifiers ModifierConfig    `toml:"modifiers"`
	Actions   map[string]string `toml:"actions"`
}

type ModifierConfig struct {
	Primary string `toml:"primary"` // "ctrl", "alt", ...
}

// actionDef defines the default modifier and key for an action
type actionDef struct {
	modifier string // "primary" or "none"
	key      string
}

// actionRegistry maps action names to their default keybindings.
// Users can override any of these in the [actions] section of keybindings.toml
var actionRegistry = map[string]actionDef{
	// Chat view
	"send":            {"none", "enter"},
	"retry":           {"primary", "r"},
	"clear":           {"primary", "l"},
	"listen":          {"primary", "o"},
	"stop_speaking":   {"primary", "x"},
	"yank_last_reply": {"primary", "y"},
	"personality":     {"primary", "p"},
	"voice_settings":  {"primary", "s"},
	"help":            {"none", "f1"},
	"quit":            {"primary", "q"},
	"scroll_up":       {"none", "pgup"},
	"scroll_down":     {"none", "pgdown"},

	// Pickers and panels
	"list_up":    {"none", "up"},
	"list_down":  {"none", "down"},
	"select":     {"none", "enter"},
	"close":      {"none", "esc"},
	"decrease":   {"none", "left"},
	"increase":   {"none", "right"},
	"test_voice": {"primary", "t"},
	"reset_all":  {"primary", "e"},
}

// DefaultKeybindings returns default configuration
func DefaultKeybindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{
		Modifiers: ModifierConfig{Primary: "ctrl"},
	}
}

// LoadKeybindings loads keybindings from data directory, creating the template on first run
func LoadKeybindings(dataDir string) (*KeyBindingsConfig, error) {
	cfg := DefaultKeybindings()
	keybindingsPath := filepath.Join(dataDir, "keybindings.toml")

	if !FileExists(keybindingsPath) {
		if err := CreateDefaultKeybindings(dataDir); err != nil {
			return nil, fmt.Errorf("failed to create keybindings: %w", err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(keybindingsPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse keybindings: %w", err)
	}

	if cfg.Modifiers.Primary == "" {
		cfg.Modifiers.Primary = "ctrl"
	}

	return cfg, nil
}

// CreateDefaultKeybindings creates default keybindings.toml
func CreateDefaultKeybindings(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	keybindingsPath := filepath.Join(dataDir, "keybindings.toml")
	if FileExists(keybindingsPath) {
		return nil
	}

	if err := os.WriteFile(keybindingsPath, []byte(GenerateKeybindingsTemplate()), 0600); err != nil {
		return fmt.Errorf("failed to write keybindings: %w", err)
	}

	return nil
}

// GenerateKeybindingsTemplate returns the default TOML template
func GenerateKeybindingsTemplate() string {
	return `# Jadoo Keybindings Configuration
# Location: <data_directory>/keybindings.toml

[modifiers]
primary = "ctrl"  # Options: ctrl, alt

[actions]
# Override single actions (uncomment to use):
#   retry = "alt+r"
#   listen = "ctrl+space"
#   quit = "ctrl+c"
`
}

// Primary returns the primary modifier
func (kb *KeyBindingsConfig) Primary() string {
	if kb.Modifiers.Primary == "" {
		return "ctrl"
	}
	return kb.Modifiers.Primary
}

// PrimaryKey builds a keybinding string with the primary modifier
func (kb *KeyBindingsConfig) PrimaryKey(key string) string {
	return kb.Primary() + "+" + key
}

// GetActionKey returns the keybinding for an action.
// User overrides win over registry defaults; unknown actions return "".
func (kb *KeyBindingsConfig) GetActionKey(action string) string {
	if override, ok := kb.Actions[action]; ok && override != "" {
		return override
	}

	def, ok := actionRegistry[action]
	if !ok {
		return ""
	}
	if def.modifier == "primary" {
		return kb.PrimaryKey(def.key)
	}
	return def.key
}

// Matches reports whether a pressed key string triggers action.
func (kb *KeyBindingsConfig) Matches(pressed, action string) bool {
	key := kb.GetActionKey(action)
	return key != "" && key == pressed
}

// DisplayActionKey returns a display-friendly keybinding, e.g. "ctrl+r" -> "Ctrl+R"
func (kb *KeyBindingsConfig) DisplayActionKey(action string) string {
	key := kb.GetActionKey(action)
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "+")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if len(part) == 1 {
			parts[i] = strings.ToUpper(part)
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "+")
}

// Actions lists every known action name, sorted.
func Actions() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
