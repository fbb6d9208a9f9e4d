package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/sheetmon/pkg/debug"
	"github.com/vanderheijden86/sheetmon/pkg/tutorial"
)

// targetKind is the kind of interactive element on the page.
type targetKind int

const (
	targetStep targetKind = iota
	targetFormula
	targetPanel
	targetLink
)

// target is one focusable element, in page order.
type target struct {
	kind    targetKind
	step    int
	formula tutorial.FormulaKey
	panel   tutorial.PanelID
}

// pageTargets lists every interactive element in page order: step headers,
// formula copy buttons, panel headers, then the outbound link.
func pageTargets(stepCount int, formulas []tutorial.Formula, panels []tutorial.Panel) []target {
	out := make([]target, 0, stepCount+len(formulas)+len(panels)+1)
	for i := 0; i < stepCount; i++ {
		out = append(out, target{kind: targetStep, step: i})
	}
	for _, f := range formulas {
		out = append(out, target{kind: targetFormula, formula: f.Key})
	}
	for _, p := range panels {
		out = append(out, target{kind: targetPanel, panel: p.ID})
	}
	return append(out, target{kind: targetLink})
}

// pageState is the interaction state the page is drawn from.
type pageState struct {
	steps    StepNavigator
	panels   PanelSet
	copied   tutorial.FormulaKey
	failed   tutorial.FormulaKey
	focus    int  // Index into targets, -1 for none
	buttons  bool // Draw copy buttons (false for static output)
	openAll  bool // Expand every step and panel
	targets  []target
	markdown *MarkdownRenderer
	preview  Preview
}

// pageLayout maps rendered lines back to targets for mouse hit testing and
// scroll-into-view.
type pageLayout struct {
	lineTarget  []int // Per line: target index or -1
	targetStart []int // Per target: first line
	targetEnd   []int // Per target: last line
}

// targetAt returns the target drawn on line, or -1.
func (l pageLayout) targetAt(line int) int {
	if line < 0 || line >= len(l.lineTarget) {
		return -1
	}
	return l.lineTarget[line]
}

// pageWriter accumulates rendered blocks and remembers which lines belong
// to which target.
type pageWriter struct {
	lines  []string
	layout pageLayout
}

func newPageWriter(targets int) *pageWriter {
	w := &pageWriter{}
	w.layout.targetStart = make([]int, targets)
	w.layout.targetEnd = make([]int, targets)
	return w
}

func (w *pageWriter) add(block string) {
	w.addTarget(-1, block)
}

func (w *pageWriter) addTarget(idx int, block string) {
	start := len(w.lines)
	for _, l := range strings.Split(block, "\n") {
		w.lines = append(w.lines, l)
		w.layout.lineTarget = append(w.layout.lineTarget, idx)
	}
	if idx >= 0 && idx < len(w.layout.targetStart) {
		w.layout.targetStart[idx] = start
		w.layout.targetEnd[idx] = len(w.lines) - 1
	}
}

func (w *pageWriter) blank() {
	w.add("")
}

func (w *pageWriter) String() string {
	return strings.Join(w.lines, "\n")
}

// renderPage draws the whole tutorial: header, formula breakdown, preview,
// steps, formula reference, advanced features and the closing link.
func renderPage(t Theme, width int, st pageState) (string, pageLayout) {
	width = max(width, 20)
	w := newPageWriter(len(st.targets))

	w.add(t.Title.Render(truncateRunes(tutorial.Title, width)))
	w.add(t.MutedText.Width(width).Render(tutorial.Subtitle))
	w.blank()

	w.add(renderBreakdown(t, width))
	w.blank()
	w.add(st.preview.Render(t, width))
	w.blank()

	for idx, tg := range st.targets {
		focused := idx == st.focus
		switch tg.kind {
		case targetStep:
			if tg.step == 0 {
				w.add(t.Heading.Render("🚀 Step-by-Step Setup"))
			}
			writeStep(w, t, width, st, idx, tg.step, focused)
		case targetFormula:
			if tg.formula == tutorial.FormulaPrice {
				w.add(t.Heading.Render("📝 Formula Reference"))
			}
			writeFormula(w, t, width, st, idx, tg.formula, focused)
		case targetPanel:
			if tg.panel == tutorial.PanelNotifications {
				w.add(t.Heading.Render("🔧 Advanced Features"))
			}
			writePanel(w, t, width, st, idx, tg.panel, focused)
		case targetLink:
			w.blank()
			w.addTarget(idx, renderLink(t, width, focused))
		}
	}
	return w.String(), w.layout
}

func renderBreakdown(t Theme, width int) string {
	accents := []lipgloss.AdaptiveColor{t.Success, t.Warning, t.Primary}
	parts := tutorial.Breakdown()
	cards := make([]TutorialElement, 0, len(parts))
	for i, part := range parts {
		cards = append(cards, Term{Term: part.Term, Meaning: part.Meaning, Accent: accents[i%len(accents)]})
	}
	price, _ := tutorial.FormulaFor(tutorial.FormulaPrice)
	return renderElements([]TutorialElement{
		Section{Title: "🧩 Formula Breakdown"},
		Code{Text: price.Text},
		Row{Items: cards, MinWidth: 26},
	}, t, width)
}

func writeStep(w *pageWriter, t Theme, width int, st pageState, idx, step int, focused bool) {
	steps := tutorial.Steps()
	if step < 0 || step >= len(steps) {
		return
	}
	s := steps[step]
	expanded := st.openAll || st.steps.IsExpanded(step)

	titleStyle := t.Renderer.NewStyle().Bold(true)
	if focused {
		titleStyle = t.Focused
	}
	title := truncateRunes(s.Title, width-bodyIndent-SpaceSM)
	header := focusMarker(t, focused) +
		RenderStepBadge(t, step+1, expanded) + " " +
		titleStyle.Render(title) + " " +
		t.MutedText.Render(chevron(expanded))

	if !expanded {
		w.addTarget(idx, header)
		return
	}
	body := renderElements([]TutorialElement{
		Paragraph{Text: s.Description, Muted: true},
		Labeled{Label: "Action", Text: s.Action, Accent: t.Border},
		Labeled{Label: "Result", Text: s.Outcome, Accent: t.Success},
	}, t, width-bodyIndent)
	w.addTarget(idx, header+"\n"+indent(body, bodyIndent))
}

func writeFormula(w *pageWriter, t Theme, width int, st pageState, idx int, key tutorial.FormulaKey, focused bool) {
	f, ok := tutorial.FormulaFor(key)
	if !ok {
		return
	}
	titleStyle := t.Renderer.NewStyle().Bold(true)
	if focused {
		titleStyle = t.Focused
	}
	header := focusMarker(t, focused) + f.Icon + " " + titleStyle.Render(f.Title)
	if st.buttons {
		header += "  " + copyButton(t, key, st)
	} else if f.Column != "" {
		header += "  " + t.MutedText.Render("column "+f.Column)
	}
	code := indent(Code{Text: f.Text}.Render(t, width-SpaceSM), SpaceSM)
	w.addTarget(idx, header+"\n"+code)
}

func copyButton(t Theme, key tutorial.FormulaKey, st pageState) string {
	switch {
	case st.copied == key:
		return t.Renderer.NewStyle().Bold(true).Foreground(t.Success).
			Render("[" + glyphCopied + " Copied!]")
	case st.failed == key:
		return t.Renderer.NewStyle().Bold(true).Foreground(t.Danger).
			Render("[" + glyphFailed + " Copy failed]")
	default:
		return t.Renderer.NewStyle().Foreground(t.Info).
			Render("[" + glyphCopy + " Copy Formula]")
	}
}

func writePanel(w *pageWriter, t Theme, width int, st pageState, idx int, id tutorial.PanelID, focused bool) {
	var panel tutorial.Panel
	for _, p := range tutorial.Panels() {
		if p.ID == id {
			panel = p
			break
		}
	}
	if panel.ID == "" {
		return
	}
	expanded := st.openAll || st.panels.IsExpanded(id)

	titleStyle := t.Renderer.NewStyle().Bold(true)
	if focused {
		titleStyle = t.Focused
	}
	header := focusMarker(t, focused) + panel.Icon + " " + titleStyle.Render(panel.Title) + " " +
		t.MutedText.Render(chevron(expanded))
	if !expanded {
		w.addTarget(idx, header)
		return
	}

	src := panel.Markdown()
	body := src
	if st.markdown != nil {
		st.markdown.SetWidth(width - SpaceLG)
		out, err := st.markdown.Render(src)
		if err != nil {
			debug.Log("panel %s markdown: %v", id, err)
		}
		body = out
	}
	w.addTarget(idx, header+"\n"+indent(body, SpaceLG))
}

func renderLink(t Theme, width int, focused bool) string {
	button := t.Renderer.NewStyle().
		Bold(true).
		Foreground(t.Success).
		Render("▶ Start Building Your Price Monitor")
	if focused {
		button = t.Focused.Render("▶ Start Building Your Price Monitor")
	}
	url := t.MutedText.Render(truncateRunes(tutorial.SheetsURL, max(width-40, 10)))
	return focusMarker(t, focused) + button + "  " + url
}
