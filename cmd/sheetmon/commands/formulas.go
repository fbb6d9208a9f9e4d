package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/sheetmon/pkg/tutorial"
)

// Formulas returns the command that lists the example formulas.
//
// Flags:
//
//	--json: Emit a JSON array instead of text
//	--row:  Rewrite row 2 cell references for another sheet row
func Formulas() *cobra.Command {
	var (
		asJSON bool
		row    int
	)

	cmd := &cobra.Command{
		Use:   "formulas",
		Short: "List the example formulas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := formulasForRow(row)
			if err != nil {
				return err
			}
			if asJSON {
				return writeFormulasJSON(cmd.OutOrStdout(), list)
			}
			return writeFormulasText(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().IntVar(&row, "row", 2, "Sheet row the formulas are written for")

	return cmd
}

func formulasForRow(row int) ([]tutorial.Formula, error) {
	list := tutorial.Formulas()
	for i := range list {
		text, err := tutorial.FormulaForRow(list[i].Key, row)
		if err != nil {
			return nil, err
		}
		list[i].Text = text
	}
	return list, nil
}

func writeFormulasJSON(w io.Writer, list []tutorial.Formula) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(list)
}

func writeFormulasText(w io.Writer, list []tutorial.Formula) error {
	for i, f := range list {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s %s (column %s)\n  %s\n", f.Icon, f.Title, f.Column, f.Text); err != nil {
			return err
		}
	}
	return nil
}
