// Package config handles loading and saving sheetmon configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/sheetmon/config.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Theme names accepted by UIConfig.Theme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("invalid config")

// UIConfig holds TUI preference settings. Pointer fields distinguish
// "unset" from an explicit false.
type UIConfig struct {
	AltScreen       *bool  `yaml:"alt_screen,omitempty"`
	Mouse           *bool  `yaml:"mouse,omitempty"`
	Theme           string `yaml:"theme,omitempty"`             // auto, dark, light
	ExpandFirstStep *bool  `yaml:"expand_first_step,omitempty"` // Open step 1 on launch
}

// ClipboardConfig controls formula copying.
type ClipboardConfig struct {
	Disabled bool `yaml:"disabled,omitempty"` // Report copies as unavailable instead of writing
}

// ExportConfig holds defaults for the workbook export command.
type ExportConfig struct {
	Path string `yaml:"path,omitempty"`
	Rows int    `yaml:"rows,omitempty"` // Data rows that receive formulas
}

// Config is the top-level configuration for sheetmon.
type Config struct {
	UI        UIConfig        `yaml:"ui,omitempty"`
	Clipboard ClipboardConfig `yaml:"clipboard,omitempty"`
	Export    ExportConfig    `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Theme: ThemeAuto,
		},
		Export: ExportConfig{
			Path: "price-monitor.xlsx",
			Rows: 9,
		},
	}
}

// AltScreenEnabled reports whether the TUI should use the alternate screen.
func (c Config) AltScreenEnabled() bool {
	return boolOr(c.UI.AltScreen, true)
}

// MouseEnabled reports whether mouse clicks should be captured.
func (c Config) MouseEnabled() bool {
	return boolOr(c.UI.Mouse, true)
}

// ExpandFirstStep reports whether step 1 starts expanded.
func (c Config) ExpandFirstStep() bool {
	return boolOr(c.UI.ExpandFirstStep, true)
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Validate checks field values that YAML cannot constrain.
func (c Config) Validate() error {
	switch c.UI.Theme {
	case "", ThemeAuto, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("%w: ui.theme must be auto, dark or light, got %q", ErrInvalidConfig, c.UI.Theme)
	}
	if c.Export.Rows < 0 {
		return fmt.Errorf("%w: export.rows must not be negative, got %d", ErrInvalidConfig, c.Export.Rows)
	}
	return nil
}

// ConfigDir returns the XDG config directory for sheetmon.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sheetmon")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sheetmon")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = ThemeAuto
	}
	cfg.Export.Path = expandHome(cfg.Export.Path)

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
