package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/sheetmon/pkg/tutorial"
)

func TestMarkdownRenderer_Render(t *testing.T) {
	r := NewMarkdownRenderer(60, true)
	out, err := r.Render("1. Go to **Tools**\n2. Click Save\n")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Tools") || !strings.Contains(out, "Save") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Contains(out, "**") {
		t.Errorf("emphasis markers not rendered: %q", out)
	}
}

func TestMarkdownRenderer_Cache(t *testing.T) {
	r := NewMarkdownRenderer(60, false)
	src := tutorial.Panels()[0].Markdown()

	first, err := r.Render(src)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, ok := r.cache[src]; !ok {
		t.Fatal("result not cached")
	}
	second, _ := r.Render(src)
	if first != second {
		t.Error("cached render differs")
	}

	r.SetWidth(40)
	if len(r.cache) != 0 {
		t.Error("cache not cleared on width change")
	}
}

func TestMarkdownRenderer_MinimumWidth(t *testing.T) {
	r := NewMarkdownRenderer(5, true)
	if r.Width() != 20 {
		t.Errorf("Width() = %d, want 20", r.Width())
	}
	r.SetWidth(50)
	if r.Width() != 50 {
		t.Errorf("Width() = %d after SetWidth(50)", r.Width())
	}
}

func TestMarkdownRenderer_PlainProfile(t *testing.T) {
	theme := DefaultTheme(lipgloss.NewRenderer(&bytes.Buffer{}))
	r := NewMarkdownRendererWithTheme(60, theme)

	for _, p := range tutorial.Panels() {
		out, err := r.Render(p.Markdown())
		if err != nil {
			t.Fatalf("Render(%s): %v", p.ID, err)
		}
		if strings.Contains(out, "\x1b[") {
			t.Errorf("panel %s rendered with escape sequences for a plain writer", p.ID)
		}
	}
}

func TestMarkdownRenderer_SetWidthBelowMinimumKeepsCache(t *testing.T) {
	r := NewMarkdownRenderer(10, true)
	src := tutorial.Panels()[0].Markdown()
	if _, err := r.Render(src); err != nil {
		t.Fatalf("Render: %v", err)
	}
	before := r.renderer

	// Both widths clamp to the minimum, so nothing is rebuilt.
	r.SetWidth(16)
	if r.renderer != before {
		t.Error("renderer rebuilt for an unchanged effective width")
	}
	if _, ok := r.cache[src]; !ok {
		t.Error("cache dropped for an unchanged effective width")
	}
}
