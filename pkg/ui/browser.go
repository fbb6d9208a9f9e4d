package ui

import (
	"fmt"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/sheetmon/pkg/debug"
)

// LinkOpener opens a URL in the user's browser.
type LinkOpener interface {
	Open(url string) error
}

// SystemBrowser opens links with the platform's default handler.
type SystemBrowser struct{}

func (SystemBrowser) Open(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return fmt.Errorf("no browser opener found: %w", err)
		}
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	// The handler may outlive us; reap it in the background.
	go func() { _ = cmd.Wait() }()
	return nil
}

// linkOpenedMsg reports the outcome of opening a link.
type linkOpenedMsg struct {
	url string
	err error
}

// openLinkCmd opens url off the update loop.
func openLinkCmd(o LinkOpener, url string) tea.Cmd {
	return func() tea.Msg {
		err := o.Open(url)
		debug.LogIf(err != nil, "open %s failed: %v", url, err)
		return linkOpenedMsg{url: url, err: err}
	}
}
