package ui

import (
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/sheetmon/pkg/tutorial"
)

func TestMain(m *testing.M) {
	// Keep test output free of debug logging regardless of the caller's env.
	os.Unsetenv("SHEETMON_DEBUG")
	os.Exit(m.Run())
}

// fakeClipboard records writes instead of touching the host clipboard.
type fakeClipboard struct {
	writes []string
	err    error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, text)
	return nil
}

// fakeOpener records opened URLs instead of launching a browser.
type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) Open(url string) error {
	f.urls = append(f.urls, url)
	return f.err
}

// fixedRandom always returns v.
func fixedRandom(v float64) func() float64 {
	return func() float64 { return v }
}

var testNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send runs one Update and returns the concrete model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next, cmd
}

// targetIndex returns the page index of the first target matching pred.
func targetIndex(t *testing.T, m Model, pred func(target) bool) int {
	t.Helper()
	for i, tg := range m.targets {
		if pred(tg) {
			return i
		}
	}
	t.Fatal("target not found")
	return -1
}

func formulaTarget(k tutorial.FormulaKey) func(target) bool {
	return func(tg target) bool { return tg.kind == targetFormula && tg.formula == k }
}

func panelTarget(id tutorial.PanelID) func(target) bool {
	return func(tg target) bool { return tg.kind == targetPanel && tg.panel == id }
}
