package ui

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing and glyphs
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

// Glyphs shared by the page sections.
const (
	glyphExpanded  = "▾"
	glyphCollapsed = "▸"
	glyphFocus     = "›"
	glyphCopy      = "⧉"
	glyphCopied    = "✓"
	glyphFailed    = "✗"
)

// bodyIndent is the left indent of expanded step and panel bodies, lined up
// under the step title text.
const bodyIndent = 6

// ══════════════════════════════════════════════════════════════════════════════
// BADGES AND MARKERS
// ══════════════════════════════════════════════════════════════════════════════

// badgeFg is the badge digit color. It reads on both the primary and the
// muted badge backgrounds.
const badgeFg = "#F8F8F2"

// RenderStepBadge returns the numbered circle shown before a step title.
// Active steps use the primary color, the rest are muted.
func RenderStepBadge(t Theme, n int, active bool) string {
	bg := t.Muted
	if active {
		bg = t.Primary
	}
	return t.Renderer.NewStyle().
		Background(bg).
		Foreground(ThemeFg(badgeFg)).
		Bold(true).
		Padding(0, 1).
		Render(strconv.Itoa(n))
}

// chevron returns the expand/collapse indicator.
func chevron(expanded bool) string {
	if expanded {
		return glyphExpanded
	}
	return glyphCollapsed
}

// focusMarker returns the two-cell gutter drawn left of every target.
func focusMarker(t Theme, focused bool) string {
	if !focused {
		return "  "
	}
	return t.KeyStyle.Render(glyphFocus) + " "
}

// truncateRunes shortens s to at most width terminal cells, using an
// ellipsis when it has to cut.
func truncateRunes(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// indent prefixes every non-empty line of s with n spaces.
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

// trimBlankLines drops leading and trailing lines that hold only whitespace.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
