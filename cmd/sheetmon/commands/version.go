package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/sheetmon/pkg/version"
)

// Version returns the version command.
func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sheetmon %s\n", version.Version)
		},
	}
}
