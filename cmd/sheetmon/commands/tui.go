package commands

import (
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/sheetmon/pkg/debug"
	"github.com/vanderheijden86/sheetmon/pkg/metrics"
	"github.com/vanderheijden86/sheetmon/pkg/ui"
)

// runTUIProgram runs the guide until the user quits. SIGINT and SIGTERM ask
// the program to quit; a second signal or a 5s stall kills it.
func runTUIProgram(m ui.Model, altScreen, mouse bool) error {
	opts := []tea.ProgramOption{tea.WithoutSignalHandler()}
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	runDone := make(chan struct{})
	defer close(runDone)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated runs: set SHEETMON_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("SHEETMON_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	logTimings()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

// logTimings writes the collected render and clipboard timings to the
// debug log.
func logTimings() {
	if !debug.Enabled() {
		return
	}
	for _, s := range metrics.AllTimingStats() {
		if s.Count == 0 {
			continue
		}
		debug.Logw("timing", "metric", s.Name, "count", s.Count, "avg_ms", s.AvgMs, "max_ms", s.MaxMs)
	}
}
