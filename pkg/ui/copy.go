package ui

import (
	"errors"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/sheetmon/pkg/debug"
	"github.com/vanderheijden86/sheetmon/pkg/metrics"
	"github.com/vanderheijden86/sheetmon/pkg/tutorial"
)

// CopiedFlashDuration is how long the "Copied!" notice stays visible.
const CopiedFlashDuration = 2 * time.Second

var (
	// ErrClipboardUnavailable is returned when no clipboard utility exists.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	// ErrClipboardDisabled is returned when copying is turned off in config.
	ErrClipboardDisabled = errors.New("clipboard disabled")
)

// ClipboardWriter places text on the host clipboard.
type ClipboardWriter interface {
	WriteAll(text string) error
}

// SystemClipboard writes through atotto/clipboard (pbcopy, xclip, xsel,
// wl-copy or the Windows API).
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// DisabledClipboard rejects every write.
type DisabledClipboard struct{}

func (DisabledClipboard) WriteAll(string) error {
	return ErrClipboardDisabled
}

// copyFadeMsg clears the copy notice it was scheduled for. seq identifies
// the copy that scheduled it.
type copyFadeMsg struct {
	key tutorial.FormulaKey
	seq uint64
}

// CopyTracker owns the "which formula was just copied" marker. Every copy
// bumps seq; a fade only clears the marker when it carries the current seq,
// so an older pending fade can never clear a newer notice.
type CopyTracker struct {
	writer ClipboardWriter
	delay  time.Duration

	copied  tutorial.FormulaKey
	failed  tutorial.FormulaKey
	lastErr error
	seq     uint64
	stopped bool
}

// NewCopyTracker creates a tracker writing through w. A nil writer uses the
// system clipboard.
func NewCopyTracker(w ClipboardWriter) *CopyTracker {
	if w == nil {
		w = SystemClipboard{}
	}
	return &CopyTracker{writer: w, delay: CopiedFlashDuration}
}

// SetWriter swaps the clipboard used by later copies.
func (c *CopyTracker) SetWriter(w ClipboardWriter) {
	if w == nil {
		w = SystemClipboard{}
	}
	c.writer = w
}

// Copy writes text to the clipboard and marks key as copied, or as failed
// when the write is rejected. The returned command delivers the fade for
// this copy after the flash duration.
func (c *CopyTracker) Copy(key tutorial.FormulaKey, text string) tea.Cmd {
	if c.stopped {
		return nil
	}

	stop := metrics.Timer(metrics.ClipboardWrite)
	err := c.writer.WriteAll(text)
	stop()

	c.seq++
	if err != nil {
		debug.Logw("clipboard write failed", "formula", string(key), "err", err)
		c.copied = ""
		c.failed = key
		c.lastErr = err
	} else {
		debug.Logw("formula copied", "formula", string(key), "seq", c.seq)
		c.copied = key
		c.failed = ""
		c.lastErr = nil
	}

	msg := copyFadeMsg{key: key, seq: c.seq}
	return tea.Tick(c.delay, func(time.Time) tea.Msg {
		return msg
	})
}

// HandleFade applies a fade message. It returns false for stale fades
// (superseded by a later copy) and after Stop.
func (c *CopyTracker) HandleFade(msg copyFadeMsg) bool {
	if c.stopped || msg.seq != c.seq {
		debug.Logw("stale copy fade ignored", "formula", string(msg.key), "seq", msg.seq, "current", c.seq)
		return false
	}
	c.copied = ""
	c.failed = ""
	c.lastErr = nil
	return true
}

// Copied returns the key currently flagged as copied, or "".
func (c *CopyTracker) Copied() tutorial.FormulaKey {
	return c.copied
}

// IsCopied reports whether key shows the "Copied!" notice.
func (c *CopyTracker) IsCopied(key tutorial.FormulaKey) bool {
	return c.copied != "" && c.copied == key
}

// Failed returns the key whose last copy failed, or "".
func (c *CopyTracker) Failed() tutorial.FormulaKey {
	return c.failed
}

// Err returns the error of the last failed copy while its notice is shown.
func (c *CopyTracker) Err() error {
	return c.lastErr
}

// Stop clears the notice and turns every pending fade into a no-op. Used
// when the view is torn down.
func (c *CopyTracker) Stop() {
	c.stopped = true
	c.copied = ""
	c.failed = ""
	c.lastErr = nil
}
