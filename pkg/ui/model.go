package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/sheetmon/pkg/config"
	"github.com/vanderheijden86/sheetmon/pkg/debug"
	"github.com/vanderheijden86/sheetmon/pkg/metrics"
	"github.com/vanderheijden86/sheetmon/pkg/tutorial"
	"github.com/vanderheijden86/sheetmon/pkg/watcher"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// wheelStep is how many lines one mouse wheel notch scrolls.
	wheelStep = 3
)

type modelOptions struct {
	clipboard         ClipboardWriter
	clipboardDisabled bool
	opener            LinkOpener
	random            func() float64
	now               func() time.Time
	initialStep       int
	configWatcher     *watcher.Watcher
}

// Option configures a Model.
type Option func(*modelOptions)

// WithClipboard replaces the system clipboard.
func WithClipboard(w ClipboardWriter) Option {
	return func(o *modelOptions) { o.clipboard = w }
}

// WithLinkOpener replaces the platform browser opener.
func WithLinkOpener(l LinkOpener) Option {
	return func(o *modelOptions) { o.opener = l }
}

// WithPreviewSource injects the random source and clock of the preview
// table.
func WithPreviewSource(random func() float64, now func() time.Time) Option {
	return func(o *modelOptions) {
		o.random = random
		o.now = now
	}
}

// WithInitialStep sets the step expanded on start. NoStep starts with all
// steps collapsed.
func WithInitialStep(i int) Option {
	return func(o *modelOptions) { o.initialStep = i }
}

// WithConfig applies the user configuration.
func WithConfig(cfg config.Config) Option {
	return func(o *modelOptions) {
		o.clipboardDisabled = cfg.Clipboard.Disabled
		if !cfg.ExpandFirstStep() {
			o.initialStep = NoStep
		}
	}
}

// WithConfigWatcher reloads the config whenever w reports a change. The
// caller owns w and must Start and Stop it.
func WithConfigWatcher(w *watcher.Watcher) Option {
	return func(o *modelOptions) { o.configWatcher = w }
}

// configChangedMsg is sent when the watched config file changes.
type configChangedMsg struct{}

// watchConfigCmd waits for the next config change. It returns a nil
// message once done is closed.
func watchConfigCmd(w *watcher.Watcher, done <-chan struct{}) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-w.Changed():
			return configChangedMsg{}
		case <-done:
			return nil
		}
	}
}

// Model is the interactive tutorial page.
type Model struct {
	theme    Theme
	keys     keyMap
	help     help.Model
	viewport viewport.Model

	width  int
	height int

	nav       StepNavigator
	panels    PanelSet
	copier    *CopyTracker
	clipboard ClipboardWriter
	opener    LinkOpener
	preview   Preview
	markdown  *MarkdownRenderer
	watcher   *watcher.Watcher
	done      chan struct{}
	stopOnce  *sync.Once

	targets []target
	focus   int
	layout  pageLayout

	statusMsg      string
	statusIsError  bool
	statusFromCopy bool
}

// NewModel creates the tutorial model. It is ready to render immediately at
// a default size; the first WindowSizeMsg resizes it.
func NewModel(theme Theme, opts ...Option) Model {
	o := modelOptions{initialStep: 0}
	for _, opt := range opts {
		opt(&o)
	}
	if o.opener == nil {
		o.opener = SystemBrowser{}
	}
	if o.clipboard == nil {
		o.clipboard = SystemClipboard{}
	}

	m := Model{
		theme:     theme,
		keys:      defaultKeyMap(),
		help:      help.New(),
		width:     defaultWidth,
		height:    defaultHeight,
		nav:       NewStepNavigator(tutorial.StepCount(), o.initialStep),
		panels:    NewPanelSet(tutorial.PanelIDs()),
		copier:    NewCopyTracker(o.clipboard),
		clipboard: o.clipboard,
		opener:    o.opener,
		preview:   NewPreview(o.random, o.now),
		markdown:  NewMarkdownRendererWithTheme(defaultWidth-SpaceLG, theme),
		watcher:   o.configWatcher,
		done:      make(chan struct{}),
		stopOnce:  &sync.Once{},
		targets:   pageTargets(tutorial.StepCount(), tutorial.Formulas(), tutorial.Panels()),
	}
	if o.clipboardDisabled {
		m.copier.SetWriter(DisabledClipboard{})
	}
	m.help.Width = m.width
	m.viewport = viewport.New(m.width, m.bodyHeight())
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("sheetmon"), watchConfigCmd(m.watcher, m.done))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = m.bodyHeight()

	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			return m, cmd
		}

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case copyFadeMsg:
		if m.copier.HandleFade(msg) && m.statusFromCopy {
			m.clearStatus()
		}

	case configChangedMsg:
		m.reloadConfig()
		cmd = watchConfigCmd(m.watcher, m.done)

	case linkOpenedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("❌ Could not open %s: %v", msg.url, msg.err), true)
		} else {
			m.setStatus(fmt.Sprintf("🌐 Opened %s", msg.url), false)
		}
	}

	m.refresh()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	// Any key dismisses a stale status message.
	if m.statusMsg != "" && !m.statusFromCopy {
		m.clearStatus()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Stop()
		return tea.Quit, true

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.bodyHeight()

	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)

	case key.Matches(msg, m.keys.Activate):
		return m.activate(m.focus), false

	case key.Matches(msg, m.keys.Step):
		step := int(msg.Runes[0] - '1')
		m.nav.Toggle(step)
		m.focus = step
		m.refresh()
		m.ensureVisible(m.focus)

	case key.Matches(msg, m.keys.Copy):
		if tg, ok := m.focusedTarget(); ok && tg.kind == targetFormula {
			return m.copyFormula(tg.formula), false
		}
		m.setStatus("Move the cursor to a formula to copy it", false)

	case key.Matches(msg, m.keys.Open):
		return openLinkCmd(m.opener, tutorial.SheetsURL), false

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		m.focus = 0

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		m.focus = len(m.targets) - 1
	}
	return nil, false
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.SetYOffset(m.viewport.YOffset - wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		m.viewport.SetYOffset(m.viewport.YOffset + wheelStep)
		return nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || msg.Y >= m.viewport.Height {
			return nil
		}
		idx := m.layout.targetAt(msg.Y + m.viewport.YOffset)
		if idx < 0 {
			return nil
		}
		m.focus = idx
		return m.activate(idx)
	}
	return nil
}

// activate performs the action of target idx: toggle a step or panel, copy
// a formula or open the link.
func (m *Model) activate(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.targets) {
		return nil
	}
	tg := m.targets[idx]
	switch tg.kind {
	case targetStep:
		m.nav.Toggle(tg.step)
	case targetPanel:
		m.panels.Toggle(tg.panel)
	case targetFormula:
		return m.copyFormula(tg.formula)
	case targetLink:
		return openLinkCmd(m.opener, tutorial.SheetsURL)
	}
	m.refresh()
	m.ensureVisible(idx)
	return nil
}

func (m *Model) copyFormula(k tutorial.FormulaKey) tea.Cmd {
	f, ok := tutorial.FormulaFor(k)
	if !ok {
		return nil
	}
	cmd := m.copier.Copy(f.Key, f.Text)
	if err := m.copier.Err(); err != nil {
		m.setStatus(fmt.Sprintf("❌ Clipboard error: %v", err), true)
	} else {
		m.setStatus(fmt.Sprintf("📋 Copied %s to clipboard", f.Title), false)
	}
	m.statusFromCopy = true
	return cmd
}

func (m *Model) moveFocus(delta int) {
	next := m.focus + delta
	if next < 0 || next >= len(m.targets) {
		return
	}
	m.focus = next
	m.ensureVisible(next)
}

// ensureVisible scrolls so target idx is on screen, preferring to show its
// whole block and never hiding its first line.
func (m *Model) ensureVisible(idx int) {
	if idx < 0 || idx >= len(m.layout.targetStart) {
		return
	}
	start, end := m.layout.targetStart[idx], m.layout.targetEnd[idx]
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	switch {
	case start < top:
		m.viewport.SetYOffset(start)
	case end > bottom:
		m.viewport.SetYOffset(min(start, end-m.viewport.Height+1))
	}
}

func (m Model) focusedTarget() (target, bool) {
	if m.focus < 0 || m.focus >= len(m.targets) {
		return target{}, false
	}
	return m.targets[m.focus], true
}

func (m *Model) reloadConfig() {
	if m.watcher == nil {
		return
	}
	cfg, err := config.LoadFrom(m.watcher.Path())
	if err != nil {
		debug.Logw("config reload failed", "path", m.watcher.Path(), "err", err)
		m.setStatus(fmt.Sprintf("❌ Config not reloaded: %v", err), true)
		return
	}
	m.applyConfig(cfg)
	m.setStatus("⚙ Config reloaded", false)
}

// applyConfig applies the settings that can change while running: theme and
// clipboard access.
func (m *Model) applyConfig(cfg config.Config) {
	m.theme = ThemeFor(m.theme.Renderer, cfg.UI.Theme)
	m.markdown = NewMarkdownRendererWithTheme(m.contentWidth()-SpaceLG, m.theme)
	if cfg.Clipboard.Disabled {
		m.copier.SetWriter(DisabledClipboard{})
	} else {
		m.copier.SetWriter(m.clipboard)
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsError = isErr
	m.statusFromCopy = false
}

func (m *Model) clearStatus() {
	m.statusMsg = ""
	m.statusIsError = false
	m.statusFromCopy = false
}

func (m Model) pageState() pageState {
	return pageState{
		steps:    m.nav,
		panels:   m.panels,
		copied:   m.copier.Copied(),
		failed:   m.copier.Failed(),
		focus:    m.focus,
		buttons:  true,
		targets:  m.targets,
		markdown: m.markdown,
		preview:  m.preview,
	}
}

// refresh re-renders the page into the viewport and records the layout.
func (m *Model) refresh() {
	content, layout := renderPage(m.theme, m.contentWidth(), m.pageState())
	m.layout = layout
	m.viewport.SetContent(content)
}

func (m Model) contentWidth() int {
	return max(m.width-SpaceXS, 20)
}

// bodyHeight returns the viewport height left after the footer.
func (m Model) bodyHeight() int {
	h := m.height - lipgloss.Height(m.renderFooter())
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) View() string {
	defer metrics.Timer(metrics.ViewRender)()

	// The preview prices are regenerated on every render.
	content, _ := renderPage(m.theme, m.contentWidth(), m.pageState())
	vp := m.viewport
	vp.SetContent(content)
	return vp.View() + "\n" + m.renderFooter()
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		style := m.theme.Renderer.NewStyle().Bold(true).Padding(0, 1)
		if m.statusIsError {
			style = style.Foreground(m.theme.Danger)
		} else {
			style = style.Foreground(m.theme.Success)
		}
		return style.Render(truncateRunes(m.statusMsg, max(m.width-SpaceSM, 1)))
	}
	return m.help.View(m.keys)
}

// CurrentStep returns the expanded step index or NoStep.
func (m Model) CurrentStep() int {
	return m.nav.Current()
}

// IsPanelExpanded reports whether the advanced panel id is open.
func (m Model) IsPanelExpanded(id tutorial.PanelID) bool {
	return m.panels.IsExpanded(id)
}

// CopiedFormula returns the formula currently showing "Copied!", or "".
func (m Model) CopiedFormula() tutorial.FormulaKey {
	return m.copier.Copied()
}

// Status returns the footer status message and whether it is an error.
func (m Model) Status() (string, bool) {
	return m.statusMsg, m.statusIsError
}

// Stop disposes the copy notice state so pending fades become no-ops, and
// releases a pending config watch. Safe to call more than once.
func (m Model) Stop() {
	m.stopOnce.Do(func() {
		debug.Log("tutorial model stopped")
		m.copier.Stop()
		close(m.done)
	})
}
