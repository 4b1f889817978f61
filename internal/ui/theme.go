package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/appcues/inkwell/internal/config"
)

// Theme holds the playground's lipgloss styles, resolved from a preset
// plus per-token overrides.
type Theme struct {
	Text      lipgloss.Style
	BlockKey  lipgloss.Style
	Selection lipgloss.Style
	Caret     lipgloss.Style
	DropCaret lipgloss.Style
	StatusBar lipgloss.Style
	LogLine   lipgloss.Style
}

type palette struct {
	text      string
	caret     string
	selection string
	dropCaret string
	statusBar string
	blockKey  string
}

var presets = map[string]palette{
	"default": {
		text:      "#E4E4E4",
		caret:     "#FFFFFF",
		selection: "#264F78",
		dropCaret: "#E5C07B",
		statusBar: "#5F87AF",
		blockKey:  "#6C6C6C",
	},
	"dracula": {
		text:      "#F8F8F2",
		caret:     "#F8F8F0",
		selection: "#44475A",
		dropCaret: "#FFB86C",
		statusBar: "#BD93F9",
		blockKey:  "#6272A4",
	},
	"nord": {
		text:      "#D8DEE9",
		caret:     "#ECEFF4",
		selection: "#434C5E",
		dropCaret: "#EBCB8B",
		statusBar: "#81A1C1",
		blockKey:  "#4C566A",
	},
}

// NewTheme resolves a theme configuration into concrete styles. Unknown
// presets fall back to "default"; Validate rejects them before this runs.
func NewTheme(cfg config.ThemeConfig) Theme {
	p, ok := presets[cfg.Preset]
	if !ok {
		p = presets["default"]
	}

	pick := func(token, fallback string) string {
		if v, ok := cfg.Colors[token]; ok && v != "" {
			return v
		}
		return fallback
	}

	text := pick("text", p.text)
	return Theme{
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(text)),
		BlockKey:  lipgloss.NewStyle().Foreground(lipgloss.Color(pick("block_key", p.blockKey))),
		Selection: lipgloss.NewStyle().Foreground(lipgloss.Color(text)).Background(lipgloss.Color(pick("selection", p.selection))),
		Caret:     lipgloss.NewStyle().Reverse(true).Foreground(lipgloss.Color(pick("caret", p.caret))),
		DropCaret: lipgloss.NewStyle().Foreground(lipgloss.Color(pick("drop_caret", p.dropCaret))).Bold(true),
		StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color(pick("status_bar", p.statusBar))),
		LogLine:   lipgloss.NewStyle().Foreground(lipgloss.Color(pick("block_key", p.blockKey))).Faint(true),
	}
}
