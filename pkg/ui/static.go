package ui

import (
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/vanderheijden86/sheetmon/pkg/tutorial"
)

// RenderStatic renders the whole tutorial with every step and panel
// expanded and no focus cursor. Used for `sheetmon print` and when stdout
// is not a terminal. Renderers without color support get plain text.
func RenderStatic(t Theme, width int, now func() time.Time, random func() float64) string {
	width = max(width, 20)
	st := pageState{
		steps:    NewStepNavigator(tutorial.StepCount(), NoStep),
		panels:   NewPanelSet(tutorial.PanelIDs()),
		focus:    -1,
		openAll:  true,
		targets:  pageTargets(tutorial.StepCount(), tutorial.Formulas(), tutorial.Panels()),
		markdown: NewMarkdownRendererWithTheme(width-SpaceLG, t),
		preview:  NewPreview(random, now),
	}
	out, _ := renderPage(t, width, st)
	if t.Renderer.ColorProfile() == termenv.Ascii {
		out = ansi.Strip(out)
	}
	return out + "\n"
}
