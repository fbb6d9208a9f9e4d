package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/sheetmon/pkg/debug"
	"github.com/vanderheijden86/sheetmon/pkg/workbook"
)

// stdoutPath as --output streams the workbook to stdout.
const stdoutPath = "-"

// Export returns the command that writes the starter workbook: headers,
// sample rows and every formula already copied down.
//
// Flags:
//
//	--output, -o: Path to write, or - for stdout (default from config, else price-monitor.xlsx)
//	--rows:       Number of data rows that receive formulas
//	--force, -f:  Overwrite an existing file
func Export(configPath *string) *cobra.Command {
	var (
		output string
		rows   int
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a starter price monitor workbook (.xlsx)",
		Long: `Write a starter workbook with everything the guide builds by hand:
headers, the three sample parts, price, timestamp and alert formulas copied
down, a supplier drop-down and a History sheet.

The .xlsx file can be imported into Google Sheets with File → Import.
When run in a terminal without --output you are asked for the path.
Use --output - to write the workbook to stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			defer func() { debug.LogTiming("export", time.Since(start)) }()

			cfg := loadConfig(cmd, *configPath)

			interactive := isTerminal(os.Stdin) && isTerminal(cmd.OutOrStdout())
			path := output
			if path == "" {
				path = cfg.Export.Path
				if interactive {
					var err error
					if path, err = promptExportPath(cmd.Context(), path); err != nil {
						return err
					}
				}
			}
			if !cmd.Flags().Changed("rows") {
				rows = cfg.Export.Rows
			}

			opts := workbook.Options{Rows: rows, Force: force}
			n, err := opts.DataRows()
			if err != nil {
				return err
			}

			if path == stdoutPath {
				if isTerminal(cmd.OutOrStdout()) {
					return errors.New("refusing to write a binary workbook to a terminal")
				}
				if err := workbook.Write(cmd.OutOrStdout(), opts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "✅ Wrote workbook to stdout (%d data rows)\n", n)
				return nil
			}

			err = workbook.Export(path, opts)
			if errors.Is(err, workbook.ErrFileExists) && interactive {
				overwrite, perr := confirmOverwrite(cmd.Context(), path)
				if perr != nil {
					return perr
				}
				if !overwrite {
					fmt.Fprintln(cmd.OutOrStdout(), "Export cancelled")
					return nil
				}
				opts.Force = true
				err = workbook.Export(path, opts)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s (%d data rows)\n", path, n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	cmd.Flags().IntVar(&rows, "rows", workbook.DefaultRows, "Number of data rows with formulas")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func promptExportPath(ctx context.Context, def string) (string, error) {
	path := def
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Workbook path").
				Description("Where to write the starter workbook").
				Placeholder(def).
				Value(&path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("path is required")
					}
					if !strings.HasSuffix(strings.ToLower(s), ".xlsx") {
						return errors.New("path must end in .xlsx")
					}
					return nil
				}),
		).Title("Export"),
	).RunWithContext(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(path), nil
}

func confirmOverwrite(ctx context.Context, path string) (bool, error) {
	var overwrite bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
				Affirmative("Overwrite").
				Negative("Cancel").
				Value(&overwrite),
		),
	).RunWithContext(ctx)
	return overwrite, err
}
