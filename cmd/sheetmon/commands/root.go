// Package commands defines the sheetmon command tree and flag bindings.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/sheetmon/pkg/config"
	"github.com/vanderheijden86/sheetmon/pkg/debug"
	"github.com/vanderheijden86/sheetmon/pkg/ui"
	"github.com/vanderheijden86/sheetmon/pkg/watcher"
)

// defaultPrintWidth is used when the output is not a terminal.
const defaultPrintWidth = 100

type rootOptions struct {
	configPath  string
	noAltScreen bool
	noMouse     bool
}

// Root returns the root command. Run without a subcommand it starts the
// interactive guide, or prints it when stdout is not a terminal.
func Root() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "sheetmon",
		Short: "Interactive guide to building a Google Sheets price monitor",
		Long: `sheetmon walks you through setting up a price monitoring spreadsheet
in Google Sheets: headers, sample data, price, timestamp and alert formulas,
and optional notifications and automation.

Formulas can be copied to the clipboard straight from the guide. Use
'sheetmon export' to skip the typing and start from a generated workbook.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoot(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/sheetmon/config.yaml)")
	cmd.Flags().BoolVar(&opts.noAltScreen, "no-alt-screen", false, "Run inline instead of in the alternate screen")
	cmd.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "Disable mouse support")

	cmd.AddCommand(Print(&opts.configPath))
	cmd.AddCommand(Formulas())
	cmd.AddCommand(Export(&opts.configPath))
	cmd.AddCommand(Config(&opts.configPath))
	cmd.AddCommand(Version())

	return cmd
}

func runRoot(cmd *cobra.Command, opts rootOptions) error {
	cfg := loadConfig(cmd, opts.configPath)
	out := cmd.OutOrStdout()

	if !isTerminal(out) {
		debug.Log("stdout is not a terminal, printing static guide")
		return printGuide(out, cfg, terminalWidth(out))
	}

	modelOpts := []ui.Option{ui.WithConfig(cfg)}
	if w := startConfigWatcher(opts.configPath); w != nil {
		defer w.Stop()
		modelOpts = append(modelOpts, ui.WithConfigWatcher(w))
	}

	theme := ui.ThemeFor(lipgloss.NewRenderer(out), cfg.UI.Theme)
	m := ui.NewModel(theme, modelOpts...)
	defer m.Stop()

	altScreen := cfg.AltScreenEnabled() && !opts.noAltScreen
	mouse := cfg.MouseEnabled() && !opts.noMouse
	if err := runTUIProgram(m, altScreen, mouse); err != nil {
		return fmt.Errorf("running guide: %w", err)
	}
	return nil
}

// loadConfig reads the config file. A broken file is reported and the
// defaults are used instead.
func loadConfig(cmd *cobra.Command, path string) config.Config {
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using defaults)\n", err)
		debug.Logw("config load failed", "path", path, "err", err)
	}
	return cfg
}

// startConfigWatcher watches the config file for live reload. It returns nil
// when the file cannot be watched; the guide then runs without reload.
func startConfigWatcher(path string) *watcher.Watcher {
	if path == "" {
		path = config.ConfigPath()
	}
	if path == "" {
		return nil
	}
	w, err := watcher.New(path, watcher.WithOnError(func(err error) {
		debug.Logw("config watch error", "path", path, "err", err)
	}))
	if err != nil {
		debug.Logw("config watcher unavailable", "path", path, "err", err)
		return nil
	}
	if err := w.Start(); err != nil {
		debug.Logw("config watcher unavailable", "path", path, "err", err)
		return nil
	}
	return w
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// terminalWidth returns the width of w when it is a terminal, or
// defaultPrintWidth.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultPrintWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultPrintWidth
	}
	return width
}
