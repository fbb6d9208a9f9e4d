package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"

	"github.com/vanderheijden86/sheetmon/pkg/debug"
	"github.com/vanderheijden86/sheetmon/pkg/metrics"
)

// minMarkdownWidth is the narrowest wrap width handed to glamour.
const minMarkdownWidth = 20

// MarkdownRenderer renders panel bodies with Glamour. Output is cached per
// source string and invalidated when the width changes.
type MarkdownRenderer struct {
	width    int
	dark     bool
	profile  termenv.Profile
	renderer *glamour.TermRenderer
	cache    map[string]string
}

// NewMarkdownRenderer creates a true-color renderer wrapping at width
// columns.
func NewMarkdownRenderer(width int, dark bool) *MarkdownRenderer {
	r := &MarkdownRenderer{dark: dark, profile: termenv.TrueColor}
	r.configure(width)
	return r
}

// NewMarkdownRendererWithTheme matches the theme's background and color
// profile. Writers without color support get plain text.
func NewMarkdownRendererWithTheme(width int, t Theme) *MarkdownRenderer {
	r := &MarkdownRenderer{
		dark:    t.Renderer.HasDarkBackground(),
		profile: t.Renderer.ColorProfile(),
	}
	r.configure(width)
	return r
}

func clampMarkdownWidth(width int) int {
	return max(width, minMarkdownWidth)
}

func (r *MarkdownRenderer) configure(width int) {
	width = clampMarkdownWidth(width)
	r.width = width
	r.cache = make(map[string]string)

	style := styles.LightStyle
	switch {
	case r.profile == termenv.Ascii:
		style = styles.NoTTYStyle
	case r.dark:
		style = styles.DarkStyle
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithColorProfile(r.profile),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		debug.Log("glamour renderer unavailable: %v", err)
		r.renderer = nil
		return
	}
	r.renderer = tr
}

// SetWidth rebuilds the renderer when the effective wrap width changes.
func (r *MarkdownRenderer) SetWidth(width int) {
	if clampMarkdownWidth(width) == r.width {
		return
	}
	r.configure(width)
}

// Width returns the current wrap width.
func (r *MarkdownRenderer) Width() int {
	return r.width
}

// Render converts markdown to styled terminal text. On failure the source
// is returned unchanged together with the error.
func (r *MarkdownRenderer) Render(md string) (string, error) {
	if out, ok := r.cache[md]; ok {
		return out, nil
	}
	if r.renderer == nil {
		return md, nil
	}
	defer metrics.Timer(metrics.MarkdownRender)()

	out, err := r.renderer.Render(md)
	if err != nil {
		return md, err
	}
	out = trimBlankLines(out)
	r.cache[md] = out
	return out, nil
}
