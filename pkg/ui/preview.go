package ui

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vanderheijden86/sheetmon/pkg/tutorial"
)

// previewDateLayout matches a US locale short date, e.g. 3/14/2026.
const previewDateLayout = "1/2/2006"

// PreviewRow is one rendered line of the spreadsheet preview.
type PreviewRow struct {
	PartNumber   string
	Description  string
	Supplier     string
	CurrentPrice string
	TargetPrice  string
	LastUpdated  string
	Alert        string
}

func (r PreviewRow) cells() []string {
	return []string{r.PartNumber, r.Description, r.Supplier, r.CurrentPrice, r.TargetPrice, r.LastUpdated, r.Alert}
}

// Preview renders the cosmetic spreadsheet preview. Current price and last
// updated are regenerated on every call from the random source and clock.
type Preview struct {
	random func() float64 // Values in [0,1)
	now    func() time.Time
}

// NewPreview creates a preview. Nil arguments fall back to math/rand and
// the wall clock.
func NewPreview(random func() float64, now func() time.Time) Preview {
	if random == nil {
		random = rand.Float64
	}
	if now == nil {
		now = time.Now
	}
	return Preview{random: random, now: now}
}

// Rows generates a fresh set of preview rows, one per sample row.
func (p Preview) Rows() []PreviewRow {
	samples := tutorial.SampleRows()
	date := p.now().Format(previewDateLayout)
	rows := make([]PreviewRow, len(samples))
	for i, s := range samples {
		current := p.random() * tutorial.SupplierMultiplier(s.Supplier)
		// Compare at displayed precision so the alert agrees with the cells.
		shown := math.Round(current*100) / 100
		rows[i] = PreviewRow{
			PartNumber:   s.PartNumber,
			Description:  s.Description,
			Supplier:     s.Supplier,
			CurrentPrice: fmt.Sprintf("$%.2f", current),
			TargetPrice:  fmt.Sprintf("$%.2f", s.TargetPrice),
			LastUpdated:  date,
			Alert:        tutorial.AlertFor(shown, s.TargetPrice),
		}
	}
	return rows
}

var columnLetters = []string{"A", "B", "C", "D", "E", "F", "G"}

// Render draws the preview table: column letters, the header row, then the
// sample rows.
func (p Preview) Render(t Theme, width int) string {
	r := t.Renderer
	headerRowStyle := r.NewStyle().Bold(true).Foreground(t.Info).Padding(0, 1)
	letterStyle := r.NewStyle().Bold(true).Foreground(t.Muted).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)
	alertStyle := r.NewStyle().Padding(0, 1).Foreground(t.Danger)
	okStyle := r.NewStyle().Padding(0, 1).Foreground(t.Success)

	data := make([][]string, 0, 4)
	data = append(data, tutorial.Headers())
	for _, row := range p.Rows() {
		data = append(data, row.cells())
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(t.Border)).
		Headers(columnLetters...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return letterStyle
			case row == 0:
				return headerRowStyle
			case col == len(columnLetters)-1 && row < len(data):
				if data[row][col] == tutorial.AlertTriggered {
					return alertStyle
				}
				return okStyle
			default:
				return cellStyle
			}
		})

	title := t.Renderer.NewStyle().Bold(true).Render("📊 Your Spreadsheet Preview")
	body := tbl.String()
	if lipgloss.Width(body) > width {
		// Too narrow for the grid: fall back to one line per row.
		body = p.renderCompact(t)
	}
	return title + "\n" + body
}

func (p Preview) renderCompact(t Theme) string {
	var lines []string
	for _, row := range p.Rows() {
		lines = append(lines, fmt.Sprintf("%s  %s  %s → %s  %s",
			row.PartNumber, row.Supplier, row.CurrentPrice, row.TargetPrice, row.Alert))
	}
	return t.Renderer.NewStyle().Padding(0, 1).Render(strings.Join(lines, "\n"))
}
