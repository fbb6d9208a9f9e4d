package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TutorialElement is a typed building block of a rendered page section.
type TutorialElement interface {
	Render(t Theme, width int) string
}

// Section is a bold section heading.
type Section struct {
	Title string
}

func (s Section) Render(t Theme, width int) string {
	return t.Heading.Render(s.Title)
}

// Paragraph is wrapped body text.
type Paragraph struct {
	Text  string
	Muted bool
}

func (p Paragraph) Render(t Theme, width int) string {
	style := t.Base
	if p.Muted {
		style = t.Renderer.NewStyle().Foreground(t.Subtext)
	}
	return style.Width(width).Render(p.Text)
}

// Code is a monospace block, wrapped to the available width.
type Code struct {
	Text string
}

func (c Code) Render(t Theme, width int) string {
	// Padding eats two cells.
	return t.CodeBlock.Width(max(width-SpaceSM, 10)).Render(c.Text)
}

// Labeled is a bordered box with a bold label, like "Action: ...".
type Labeled struct {
	Label  string
	Text   string
	Accent lipgloss.AdaptiveColor
}

func (l Labeled) Render(t Theme, width int) string {
	label := t.Renderer.NewStyle().Bold(true).Render(l.Label + ":")
	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(l.Accent).
		Padding(0, 1).
		Width(max(width-SpaceSM, 10)).
		Render(label + " " + l.Text)
}

// Term is a short explanation card: bold term over a one-line meaning.
type Term struct {
	Term    string
	Meaning string
	Accent  lipgloss.AdaptiveColor
}

func (c Term) Render(t Theme, width int) string {
	term := t.Renderer.NewStyle().Bold(true).Foreground(c.Accent).Render(c.Term)
	return t.Renderer.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(c.Accent).
		Padding(0, 1).
		Width(max(width-SpaceSM, 10)).
		Render(term + "\n" + c.Meaning)
}

// Row lays out its children side by side when they fit in width, and
// stacks them otherwise.
type Row struct {
	Items    []TutorialElement
	MinWidth int // Minimum width per item before falling back to stacking
}

func (r Row) Render(t Theme, width int) string {
	if len(r.Items) == 0 {
		return ""
	}
	gap := SpaceXS
	each := (width - gap*(len(r.Items)-1)) / len(r.Items)
	if each < r.MinWidth {
		return renderElements(r.Items, t, width)
	}
	parts := make([]string, 0, len(r.Items)*2)
	for i, it := range r.Items {
		if i > 0 {
			parts = append(parts, strings.Repeat(" ", gap))
		}
		parts = append(parts, it.Render(t, each))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Spacer inserts blank lines.
type Spacer struct {
	Lines int
}

func (s Spacer) Render(t Theme, width int) string {
	if s.Lines <= 1 {
		return ""
	}
	return strings.Repeat("\n", s.Lines-1)
}

// renderElements renders each element on its own line(s).
func renderElements(elems []TutorialElement, t Theme, width int) string {
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, e.Render(t, width))
	}
	return strings.Join(out, "\n")
}
