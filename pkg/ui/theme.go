package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/sheetmon/pkg/config"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Feedback
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Danger  lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base      lipgloss.Style
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Focused   lipgloss.Style
	MutedText lipgloss.Style
	CodeBlock lipgloss.Style
	KeyStyle  lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		Success: lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green
		Warning: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange
		Danger:  lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}, // Red
		Info:    lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Title = r.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	t.Heading = r.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}).
		MarginTop(1)

	t.Focused = r.NewStyle().
		Background(t.Highlight).
		Bold(true)

	t.MutedText = r.NewStyle().Foreground(t.Muted)

	t.CodeBlock = r.NewStyle().
		Foreground(t.Info).
		Background(lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#1E1F29"}).
		Padding(0, 1)

	t.KeyStyle = r.NewStyle().Bold(true).Foreground(t.Primary)

	return t
}

// ThemeFor returns the default theme with the background forced according
// to the configured theme name. "auto" keeps the renderer's detection.
func ThemeFor(r *lipgloss.Renderer, name string) Theme {
	switch name {
	case config.ThemeDark:
		r.SetHasDarkBackground(true)
	case config.ThemeLight:
		r.SetHasDarkBackground(false)
	}
	return DefaultTheme(r)
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
