// Package workbook generates the starter price-monitor spreadsheet that the
// tutorial walks through: headers, sample rows, the demo price, timestamp
// and alert formulas copied down, plus a history sheet and a formula sheet.
package workbook

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vanderheijden86/sheetmon/pkg/debug"
	"github.com/vanderheijden86/sheetmon/pkg/metrics"
	"github.com/vanderheijden86/sheetmon/pkg/tutorial"
)

// Sheet names.
const (
	MonitorSheet  = "Price Monitor"
	HistorySheet  = "History"
	FormulasSheet = "Formulas"
)

// DefaultRows matches the tutorial's "paste to D3:D10": rows 2 through 10.
const DefaultRows = 9

// maxRows keeps generated ranges within reason; sheets allow far more.
const maxRows = 10000

var (
	// ErrFileExists is returned when the target exists and overwrite is off.
	ErrFileExists = errors.New("file already exists")
	// ErrInvalidRows is returned for a row count outside 1..maxRows.
	ErrInvalidRows = errors.New("invalid row count")
)

// Options controls workbook generation.
type Options struct {
	// Rows is the number of data rows (starting at row 2) that receive the
	// copied-down formulas. Zero means DefaultRows.
	Rows int
	// Force allows Export to overwrite an existing file.
	Force bool
}

// DataRows returns the number of data rows Build writes. Counts below the
// number of sample parts are raised so every sample row gets formulas.
func (o Options) DataRows() (int, error) {
	rows := o.Rows
	if rows == 0 {
		rows = DefaultRows
	}
	if rows < 0 || rows > maxRows {
		return 0, fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidRows, o.Rows, maxRows)
	}
	return max(rows, len(tutorial.SampleRows())), nil
}

// Build creates the workbook in memory. The caller must Close the result.
func Build(opts Options) (*excelize.File, error) {
	defer metrics.Timer(metrics.WorkbookBuild)()

	rows, err := opts.DataRows()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", MonitorSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	b := &builder{f: f, lastRow: rows + 1}
	steps := []struct {
		name string
		fn   func() error
	}{
		{"headers", b.writeHeaders},
		{"sample data", b.writeSampleData},
		{"formulas", b.writeFormulas},
		{"formats", b.writeFormats},
		{"validation", b.writeValidation},
		{"history sheet", b.writeHistorySheet},
		{"formula sheet", b.writeFormulaSheet},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing %s: %w", s.name, err)
		}
	}

	idx, err := f.GetSheetIndex(MonitorSheet)
	if err == nil {
		f.SetActiveSheet(idx)
	}
	debug.Log("workbook built: %d data rows", rows)
	return f, nil
}

// Export builds the workbook and saves it to path.
func Export(path string, opts Options) error {
	if !opts.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
	}
	f, err := Build(opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	debug.Log("workbook saved to %s", path)
	return nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, opts Options) error {
	f, err := Build(opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

type builder struct {
	f       *excelize.File
	lastRow int
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func (b *builder) writeHeaders() error {
	style, err := b.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DBEAFE"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	for i, h := range tutorial.Headers() {
		name, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := b.f.SetCellValue(MonitorSheet, name, h); err != nil {
			return err
		}
	}
	if err := b.f.SetCellStyle(MonitorSheet, "A1", "G1", style); err != nil {
		return err
	}
	return b.f.SetPanes(MonitorSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (b *builder) writeSampleData() error {
	for i, r := range tutorial.SampleRows() {
		row := i + 2
		values := map[string]any{
			"A": r.PartNumber,
			"B": r.Description,
			"C": r.Supplier,
			"E": r.TargetPrice,
		}
		for col, v := range values {
			if err := b.f.SetCellValue(MonitorSheet, cell(col, row), v); err != nil {
				return err
			}
		}
	}
	return nil
}

// formulaColumns are the columns whose formulas get copied down.
var formulaColumns = []struct {
	col string
	key tutorial.FormulaKey
}{
	{"D", tutorial.FormulaPrice},
	{"F", tutorial.FormulaTimestamp},
	{"G", tutorial.FormulaAlert},
}

func (b *builder) writeFormulas() error {
	for row := 2; row <= b.lastRow; row++ {
		for _, fc := range formulaColumns {
			text, err := tutorial.FormulaForRow(fc.key, row)
			if err != nil {
				return err
			}
			if err := b.f.SetCellFormula(MonitorSheet, cell(fc.col, row), strings.TrimPrefix(text, "=")); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) writeFormats() error {
	currency := "$#,##0.00"
	money, err := b.f.NewStyle(&excelize.Style{CustomNumFmt: &currency})
	if err != nil {
		return err
	}
	stamp := "m/d/yyyy h:mm"
	date, err := b.f.NewStyle(&excelize.Style{CustomNumFmt: &stamp})
	if err != nil {
		return err
	}
	if err := b.f.SetCellStyle(MonitorSheet, "D2", cell("E", b.lastRow), money); err != nil {
		return err
	}
	if err := b.f.SetCellStyle(MonitorSheet, "F2", cell("F", b.lastRow), date); err != nil {
		return err
	}

	widths := []struct {
		col   string
		width float64
	}{
		{"A", 14}, {"B", 18}, {"C", 12}, {"D", 14}, {"E", 14}, {"F", 18}, {"G", 12},
	}
	for _, w := range widths {
		if err := b.f.SetColWidth(MonitorSheet, w.col, w.col, w.width); err != nil {
			return err
		}
	}
	return nil
}

// suppliers are the names the price formula distinguishes.
var suppliers = []string{"digikey", "mouser", "octopart"}

func (b *builder) writeValidation() error {
	dv := excelize.NewDataValidation(true)
	dv.Sqref = "C2:" + cell("C", b.lastRow)
	if err := dv.SetDropList(suppliers); err != nil {
		return err
	}
	return b.f.AddDataValidation(MonitorSheet, dv)
}

func (b *builder) writeHistorySheet() error {
	if _, err := b.f.NewSheet(HistorySheet); err != nil {
		return err
	}
	for i, h := range []string{"Date", "Part Number", "Price"} {
		name, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := b.f.SetCellValue(HistorySheet, name, h); err != nil {
			return err
		}
	}
	return b.f.SetColWidth(HistorySheet, "A", "C", 16)
}

func (b *builder) writeFormulaSheet() error {
	if _, err := b.f.NewSheet(FormulasSheet); err != nil {
		return err
	}
	for i, h := range []string{"Key", "Name", "Column", "Formula"} {
		name, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := b.f.SetCellValue(FormulasSheet, name, h); err != nil {
			return err
		}
	}
	for i, fm := range tutorial.Formulas() {
		row := i + 2
		vals := []string{string(fm.Key), fm.Title, fm.Column, fm.Text}
		for j, v := range vals {
			name, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			if err := b.f.SetCellStr(FormulasSheet, name, v); err != nil {
				return err
			}
		}
	}
	if err := b.f.SetColWidth(FormulasSheet, "A", "C", 14); err != nil {
		return err
	}
	return b.f.SetColWidth(FormulasSheet, "D", "D", 90)
}
