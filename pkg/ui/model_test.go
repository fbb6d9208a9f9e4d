package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/goleak"

	"github.com/vanderheijden86/sheetmon/pkg/config"
	"github.com/vanderheijden86/sheetmon/pkg/tutorial"
	"github.com/vanderheijden86/sheetmon/pkg/watcher"
)

func newTestModel(t *testing.T, opts ...Option) (Model, *fakeClipboard, *fakeOpener) {
	t.Helper()
	clip := &fakeClipboard{}
	opener := &fakeOpener{}
	base := []Option{
		WithClipboard(clip),
		WithLinkOpener(opener),
		WithPreviewSource(fixedRandom(0.5), fixedClock),
	}
	m := NewModel(TestTheme(), append(base, opts...)...)
	m.copier.delay = testFade
	return m, clip, opener
}

func TestModel_FirstStepExpandedByDefault(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.CurrentStep() != 0 {
		t.Errorf("CurrentStep() = %d, want 0", m.CurrentStep())
	}
	for _, id := range tutorial.PanelIDs() {
		if m.IsPanelExpanded(id) {
			t.Errorf("panel %s open at start", id)
		}
	}
	if m.CopiedFormula() != "" {
		t.Errorf("CopiedFormula() = %q at start", m.CopiedFormula())
	}
}

func TestModel_InitialStepOptions(t *testing.T) {
	m, _, _ := newTestModel(t, WithInitialStep(NoStep))
	if m.CurrentStep() != NoStep {
		t.Errorf("WithInitialStep(NoStep): CurrentStep() = %d", m.CurrentStep())
	}

	cfg := config.DefaultConfig()
	off := false
	cfg.UI.ExpandFirstStep = &off
	m, _, _ = newTestModel(t, WithConfig(cfg))
	if m.CurrentStep() != NoStep {
		t.Errorf("expand_first_step=false: CurrentStep() = %d", m.CurrentStep())
	}
}

func TestModel_NumberKeysToggleSteps(t *testing.T) {
	m, _, _ := newTestModel(t, WithInitialStep(NoStep))

	for i := 0; i < tutorial.StepCount(); i++ {
		digit := string(rune('1' + i))
		m, _ = send(t, m, keyRunes(digit))
		if m.CurrentStep() != i {
			t.Fatalf("after %q: CurrentStep() = %d, want %d", digit, m.CurrentStep(), i)
		}
		if m.focus != i {
			t.Errorf("after %q: focus = %d, want %d", digit, m.focus, i)
		}
	}

	m, _ = send(t, m, keyRunes("8"))
	if m.CurrentStep() != NoStep {
		t.Errorf("pressing 8 twice: CurrentStep() = %d, want NoStep", m.CurrentStep())
	}
}

func TestModel_EnterTogglesFocusedStep(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentStep() != NoStep {
		t.Fatalf("enter on expanded step 1: CurrentStep() = %d", m.CurrentStep())
	}

	m, _ = send(t, m, keyRunes("j"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.CurrentStep() != 1 {
		t.Fatalf("space on step 2: CurrentStep() = %d, want 1", m.CurrentStep())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentStep() != 0 {
		t.Errorf("enter on step 1 after moving up: CurrentStep() = %d, want 0", m.CurrentStep())
	}
}

func TestModel_FocusStaysInBounds(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = send(t, m, keyRunes("k"))
	if m.focus != 0 {
		t.Errorf("k at top: focus = %d", m.focus)
	}
	for i := 0; i < len(m.targets)+5; i++ {
		m, _ = send(t, m, keyRunes("j"))
	}
	if m.focus != len(m.targets)-1 {
		t.Errorf("focus = %d after many j, want %d", m.focus, len(m.targets)-1)
	}
	if len(m.targets) != 16 {
		t.Errorf("targets = %d, want 8 steps + 4 formulas + 3 panels + 1 link", len(m.targets))
	}
}

func TestModel_FocusedTargetScrolledIntoView(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 12})

	for i := 0; i < len(m.targets); i++ {
		m, _ = send(t, m, keyRunes("j"))
		start := m.layout.targetStart[m.focus]
		top := m.viewport.YOffset
		if start < top || start >= top+m.viewport.Height {
			t.Fatalf("focus %d starts at line %d, viewport shows %d..%d",
				m.focus, start, top, top+m.viewport.Height-1)
		}
	}
}

func TestModel_CopyFocusedFormula(t *testing.T) {
	m, clip, _ := newTestModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 400})
	m.focus = targetIndex(t, m, formulaTarget(tutorial.FormulaPrice))

	m, cmd := send(t, m, keyRunes("y"))
	if cmd == nil {
		t.Fatal("copy returned no fade command")
	}
	if m.CopiedFormula() != tutorial.FormulaPrice {
		t.Fatalf("CopiedFormula() = %q, want price", m.CopiedFormula())
	}
	price, _ := tutorial.FormulaFor(tutorial.FormulaPrice)
	if len(clip.writes) != 1 || clip.writes[0] != price.Text {
		t.Errorf("clipboard got %q", clip.writes)
	}
	if msg, isErr := m.Status(); isErr || !strings.Contains(msg, "Copied Demo Price Formula") {
		t.Errorf("status = %q (error=%v)", msg, isErr)
	}
	if !strings.Contains(m.View(), "Copied!") {
		t.Error("view does not show Copied! on the button")
	}

	m, _ = send(t, m, cmd())
	if m.CopiedFormula() != "" {
		t.Errorf("CopiedFormula() = %q after fade", m.CopiedFormula())
	}
	if msg, _ := m.Status(); msg != "" {
		t.Errorf("status %q not cleared by fade", msg)
	}
}

func TestModel_RapidCopiesKeepNewestNotice(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.focus = targetIndex(t, m, formulaTarget(tutorial.FormulaTimestamp))
	m, first := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.focus = targetIndex(t, m, formulaTarget(tutorial.FormulaAlert))
	m, second := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = send(t, m, first())
	if m.CopiedFormula() != tutorial.FormulaAlert {
		t.Fatalf("stale fade: CopiedFormula() = %q, want alert", m.CopiedFormula())
	}
	if msg, _ := m.Status(); !strings.Contains(msg, "Alert Formula") {
		t.Errorf("stale fade changed status to %q", msg)
	}

	m, _ = send(t, m, second())
	if m.CopiedFormula() != "" {
		t.Errorf("CopiedFormula() = %q after current fade", m.CopiedFormula())
	}
}

func TestModel_CopyFailureShownInStatus(t *testing.T) {
	m, clip, _ := newTestModel(t)
	clip.err = errors.New("no clipboard utility")
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 400})
	m.focus = targetIndex(t, m, formulaTarget(tutorial.FormulaRealPrice))

	m, _ = send(t, m, keyRunes("y"))
	msg, isErr := m.Status()
	if !isErr || !strings.Contains(msg, "Clipboard error") {
		t.Errorf("status = %q (error=%v), want clipboard error", msg, isErr)
	}
	if m.CopiedFormula() != "" {
		t.Error("failed copy marked as copied")
	}
	if !strings.Contains(m.View(), "Copy failed") {
		t.Error("view does not mark the failed button")
	}
}

func TestModel_ClipboardDisabledByConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Clipboard.Disabled = true
	m, clip, _ := newTestModel(t, WithConfig(cfg))
	m.focus = targetIndex(t, m, formulaTarget(tutorial.FormulaPrice))

	m, _ = send(t, m, keyRunes("y"))
	if len(clip.writes) != 0 {
		t.Error("disabled clipboard still wrote")
	}
	if msg, isErr := m.Status(); !isErr || !strings.Contains(msg, ErrClipboardDisabled.Error()) {
		t.Errorf("status = %q (error=%v)", msg, isErr)
	}
}

func TestModel_CopyKeyOutsideFormula(t *testing.T) {
	m, clip, _ := newTestModel(t)
	m, cmd := send(t, m, keyRunes("y"))
	if cmd != nil || len(clip.writes) != 0 {
		t.Error("y on a step header copied something")
	}
	if msg, isErr := m.Status(); isErr || msg == "" {
		t.Errorf("expected a hint in the status line, got %q", msg)
	}
}

func TestModel_PanelsToggleIndependently(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.focus = targetIndex(t, m, panelTarget(tutorial.PanelNotifications))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.focus = targetIndex(t, m, panelTarget(tutorial.PanelTips))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.IsPanelExpanded(tutorial.PanelNotifications) || !m.IsPanelExpanded(tutorial.PanelTips) {
		t.Fatal("expected notifications and tips open")
	}
	if m.IsPanelExpanded(tutorial.PanelAutomation) {
		t.Error("automation opened")
	}
	if m.CurrentStep() != 0 {
		t.Errorf("panel toggles changed the expanded step to %d", m.CurrentStep())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.IsPanelExpanded(tutorial.PanelTips) {
		t.Error("tips still open after second toggle")
	}
	if !m.IsPanelExpanded(tutorial.PanelNotifications) {
		t.Error("closing tips closed notifications")
	}
}

func TestModel_OpenLink(t *testing.T) {
	m, _, opener := newTestModel(t)

	m, cmd := send(t, m, keyRunes("o"))
	if cmd == nil {
		t.Fatal("o returned no command")
	}
	m, _ = send(t, m, cmd())
	if len(opener.urls) != 1 || opener.urls[0] != tutorial.SheetsURL {
		t.Fatalf("opened %q, want %s", opener.urls, tutorial.SheetsURL)
	}
	if msg, isErr := m.Status(); isErr || !strings.Contains(msg, "Opened") {
		t.Errorf("status = %q (error=%v)", msg, isErr)
	}

	// The next key clears a non-copy status.
	m, _ = send(t, m, keyRunes("j"))
	if msg, _ := m.Status(); msg != "" {
		t.Errorf("status %q survived a key press", msg)
	}
}

func TestModel_OpenLinkFailure(t *testing.T) {
	m, _, opener := newTestModel(t)
	opener.err = errors.New("no xdg-open")
	m.focus = len(m.targets) - 1

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, cmd())
	if msg, isErr := m.Status(); !isErr || !strings.Contains(msg, "no xdg-open") {
		t.Errorf("status = %q (error=%v)", msg, isErr)
	}
}

func TestModel_MouseClickActivatesTarget(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 400})

	line := m.layout.targetStart[2] - m.viewport.YOffset
	m, _ = send(t, m, tea.MouseMsg{
		X: 4, Y: line,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	if m.CurrentStep() != 2 {
		t.Errorf("click on step 3 header: CurrentStep() = %d, want 2", m.CurrentStep())
	}
	if m.focus != 2 {
		t.Errorf("focus = %d, want 2", m.focus)
	}

	// A release on the same line is not a click.
	m, _ = send(t, m, tea.MouseMsg{
		X: 4, Y: m.layout.targetStart[2] - m.viewport.YOffset,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	if m.CurrentStep() != 2 {
		t.Errorf("release toggled the step: CurrentStep() = %d", m.CurrentStep())
	}
}

func TestModel_MouseClickOnTextIgnored(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 400})

	// Line 0 is the page title.
	m, cmd := send(t, m, tea.MouseMsg{Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if cmd != nil || m.CurrentStep() != 0 {
		t.Error("click on the title changed state")
	}
}

func TestModel_WheelScrolls(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})

	m, _ = send(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if m.viewport.YOffset != wheelStep {
		t.Errorf("YOffset = %d after wheel down, want %d", m.viewport.YOffset, wheelStep)
	}
	m, _ = send(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	if m.viewport.YOffset != 0 {
		t.Errorf("YOffset = %d after wheel up, want 0", m.viewport.YOffset)
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	short := m.viewport.Height

	m, _ = send(t, m, keyRunes("?"))
	if !m.help.ShowAll {
		t.Fatal("? did not open full help")
	}
	if m.viewport.Height >= short {
		t.Errorf("viewport height %d not reduced for full help (was %d)", m.viewport.Height, short)
	}
	if !strings.Contains(m.View(), "page down") {
		t.Error("full help missing page down binding")
	}
}

func TestModel_QuitStopsCopyTimers(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.focus = targetIndex(t, m, formulaTarget(tutorial.FormulaPrice))
	m, fade := send(t, m, keyRunes("y"))

	m, cmd := send(t, m, keyRunes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if m.CopiedFormula() != "" {
		t.Error("quit left the copy notice set")
	}
	if m.copier.HandleFade(fade().(copyFadeMsg)) {
		t.Error("fade applied after quit")
	}
}

func TestModel_View(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 400})
	out := m.View()

	for _, want := range []string{
		"Google Sheets Price Monitor Setup",
		"Formula Breakdown",
		"LM358N",
		"Step-by-Step Setup",
		"Create New Google Sheet",
		"Action:",
		"Formula Reference",
		copyLabel,
		"Advanced Features",
		"Start Building Your Price Monitor",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	// Only the expanded step shows its body.
	if n := strings.Count(out, "Action:"); n != 1 {
		t.Errorf("Action: appears %d times, want 1", n)
	}
}

func TestModel_WindowResize(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	if m.viewport.Width != 60 {
		t.Errorf("viewport width = %d, want 60", m.viewport.Width)
	}
	if m.viewport.Height <= 0 || m.viewport.Height >= 30 {
		t.Errorf("viewport height = %d, want room for the footer", m.viewport.Height)
	}
}

func TestModel_FadeDelay(t *testing.T) {
	m := NewModel(TestTheme(), WithClipboard(&fakeClipboard{}))
	if m.copier.delay != 2*time.Second {
		t.Errorf("fade delay = %v, want 2s", m.copier.delay)
	}
	m.Stop()
}

func TestModel_ConfigReloadDisablesClipboard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.DefaultConfig()
	if err := config.SaveTo(cfg, path); err != nil {
		t.Fatal(err)
	}
	w := newTestWatcher(t, path)

	m, clip, _ := newTestModel(t, WithConfigWatcher(w))
	if m.Init() == nil {
		t.Fatal("Init returned nil command")
	}

	cfg.Clipboard.Disabled = true
	if err := config.SaveTo(cfg, path); err != nil {
		t.Fatal(err)
	}
	m, cmd := send(t, m, configChangedMsg{})
	if cmd == nil {
		t.Error("reload did not re-arm the config watch")
	}
	if msg, isErr := m.Status(); isErr || !strings.Contains(msg, "Config reloaded") {
		t.Errorf("status = %q (error=%v)", msg, isErr)
	}

	m.focus = targetIndex(t, m, formulaTarget(tutorial.FormulaPrice))
	m, _ = send(t, m, keyRunes("y"))
	if len(clip.writes) != 0 {
		t.Error("clipboard written after reload disabled it")
	}

	cfg.Clipboard.Disabled = false
	if err := config.SaveTo(cfg, path); err != nil {
		t.Fatal(err)
	}
	m, _ = send(t, m, configChangedMsg{})
	m, _ = send(t, m, keyRunes("y"))
	if len(clip.writes) != 1 {
		t.Errorf("clipboard writes = %d after re-enabling, want 1", len(clip.writes))
	}
	m.Stop()
}

func TestModel_ConfigReloadKeepsOldSettingsOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, clip, _ := newTestModel(t, WithConfigWatcher(newTestWatcher(t, path)))

	m, _ = send(t, m, configChangedMsg{})
	if msg, isErr := m.Status(); !isErr || !strings.Contains(msg, "Config not reloaded") {
		t.Errorf("status = %q (error=%v)", msg, isErr)
	}

	m.focus = targetIndex(t, m, formulaTarget(tutorial.FormulaPrice))
	m, _ = send(t, m, keyRunes("y"))
	if len(clip.writes) != 1 {
		t.Error("failed reload changed the clipboard")
	}
	m.Stop()
}

func TestModel_NoWatcherNoWatchCommand(t *testing.T) {
	if cmd := watchConfigCmd(nil, nil); cmd != nil {
		t.Error("watchConfigCmd(nil) returned a command")
	}
}

// newTestWatcher returns an unstarted watcher; tests deliver configChangedMsg
// directly.
func newTestWatcher(t *testing.T, path string) *watcher.Watcher {
	t.Helper()
	w, err := watcher.New(path)
	if err != nil {
		t.Fatalf("watcher.New: %v", err)
	}
	return w
}

func TestModel_StopReleasesConfigWatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	m, _, _ := newTestModel(t, WithConfigWatcher(newTestWatcher(t, path)))

	cmd := watchConfigCmd(m.watcher, m.done)
	got := make(chan tea.Msg, 1)
	go func() { got <- cmd() }()

	m.Stop()
	m.Stop()
	select {
	case msg := <-got:
		if msg != nil {
			t.Errorf("watch returned %T after Stop, want nil", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("config watch still blocked after Stop")
	}
}
