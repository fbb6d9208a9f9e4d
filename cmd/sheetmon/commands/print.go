package commands

import (
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/sheetmon/pkg/config"
	"github.com/vanderheijden86/sheetmon/pkg/ui"
)

// Print returns the command that writes the whole guide, every step and
// panel expanded, to stdout.
func Print(configPath *string) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the full guide without the interactive view",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(cmd, *configPath)
			out := cmd.OutOrStdout()
			if width <= 0 {
				width = terminalWidth(out)
			}
			return printGuide(out, cfg, width)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "Wrap width (default: terminal width or 100)")

	return cmd
}

func printGuide(w io.Writer, cfg config.Config, width int) error {
	theme := ui.ThemeFor(lipgloss.NewRenderer(w), cfg.UI.Theme)
	_, err := io.WriteString(w, ui.RenderStatic(theme, width, time.Now, nil))
	return err
}
