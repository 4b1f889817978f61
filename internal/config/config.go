// Package config provides configuration types and defaults for inkwell.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/appcues/inkwell/internal/log"
	"github.com/appcues/inkwell/internal/tracing"
)

// ThemePresets lists the built-in playground themes.
var ThemePresets = []string{"default", "dracula", "nord"}

// Config holds all configuration options for inkwell.
type Config struct {
	Debug      bool           `mapstructure:"debug"`
	AutoReload bool           `mapstructure:"auto_reload"`
	Document   []string       `mapstructure:"document"`
	Host       HostConfig     `mapstructure:"host"`
	UI         UIConfig       `mapstructure:"ui"`
	Theme      ThemeConfig    `mapstructure:"theme"`
	Tracing    tracing.Config `mapstructure:"tracing"`
}

// HostConfig controls the simulated selection host.
type HostConfig struct {
	// Extend grants the host the extend capability. Turning it off
	// exercises the backward-selection emulation path in the playground.
	Extend bool `mapstructure:"extend"`
}

// UIConfig holds playground interface options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	ShowLog       bool `mapstructure:"show_log"`
}

// ThemeConfig selects a preset and optional per-token color overrides.
type ThemeConfig struct {
	// Preset is one of ThemePresets. Empty means "default".
	Preset string `mapstructure:"preset"`

	// Colors overrides individual tokens, e.g. selection: "#44475A".
	// Tokens: text, caret, selection, drop_caret, status_bar, block_key.
	Colors map[string]string `mapstructure:"colors"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoReload: true,
		Document: []string{
			"Drag a selection with the mouse, then drop it elsewhere.",
			"External text and file drops are simulated from the keyboard.",
			"Undo works across every drop: one gesture, one step.",
		},
		Host: HostConfig{Extend: true},
		UI:   UIConfig{ShowStatusBar: true},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks the configuration for errors. Empty values fall back to
// defaults and are always valid.
func Validate(cfg Config) error {
	if cfg.Theme.Preset != "" {
		known := false
		for _, p := range ThemePresets {
			if cfg.Theme.Preset == p {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("theme.preset must be one of %v, got %q", ThemePresets, cfg.Theme.Preset)
		}
	}

	t := cfg.Tracing
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", "none", "file", "stdout":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", or \"stdout\", got %q", t.Exporter)
	}
	if t.Enabled && t.Exporter == "file" && t.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}
	return nil
}

// DefaultTracesFilePath returns ~/.config/inkwell/traces/traces.jsonl, or
// empty when the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "inkwell", "traces", "traces.jsonl")
}

// DefaultConfigTemplate returns the default config as a YAML string with
// comments.
func DefaultConfigTemplate() string {
	return `# Inkwell Configuration

# Enable debug logging to debug.log
debug: false

# Reload this file (and re-theme the playground) when it changes
auto_reload: true

# Initial playground document, one block per line
# document:
#   - "First line"
#   - "Second line"

# Simulated selection host
host:
  # Grant the host the extend capability. Set false to exercise
  # backward-selection emulation (endpoints swap, direction is lost).
  extend: true

# Playground interface
ui:
  show_status_bar: true   # Selection / mode read-out at the bottom
  show_log: false         # Tail the structured log in a side pane

# Theme configuration
theme:
  # Use a preset: default, dracula, nord
  # preset: dracula
  #
  # Override specific color tokens (works with or without preset):
  # colors:
  #   selection: "#44475A"
  #   drop_caret: "#FFB86C"
  #
  # Tokens: text, caret, selection, drop_caret, status_bar, block_key

# Tracing of drop handling and state pushes
# tracing:
#   enabled: false
#   exporter: file          # none, file, stdout
#   file_path: ~/.config/inkwell/traces/traces.jsonl
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
