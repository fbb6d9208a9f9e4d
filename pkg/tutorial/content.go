// Package tutorial holds the compiled-in content of the price-monitor
// walkthrough: the ordered setup steps, the example formulas, the sample
// rows shown in the preview table and the advanced-feature panels.
//
// Every accessor returns a fresh copy so callers can never mutate the
// shared content.
package tutorial

// SheetsURL is the single outbound link offered at the bottom of the page.
const SheetsURL = "https://sheets.google.com"

// Page header copy.
const (
	Title    = "📊 Google Sheets Price Monitor Setup"
	Subtitle = "Follow these steps to create your own automated price monitoring system"
)

// Step is one entry of the ordered setup walkthrough.
type Step struct {
	Title       string
	Description string
	Action      string
	Outcome     string // What the user should see once the action is done
}

// SampleRow is a fixed row of the cosmetic preview table.
type SampleRow struct {
	PartNumber  string
	Description string
	Supplier    string
	TargetPrice float64
}

// BreakdownPart explains one fragment of the demo price formula.
type BreakdownPart struct {
	Term    string
	Meaning string
}

var steps = [...]Step{
	{
		Title:       "Create New Google Sheet",
		Description: "Start with a blank spreadsheet",
		Action:      "Go to sheets.google.com → Click '+ Blank'",
		Outcome:     "📊 New Spreadsheet Created",
	},
	{
		Title:       "Set Up Headers",
		Description: "Create column headers in Row 1",
		Action:      "Type headers in cells A1 through G1",
		Outcome:     "Headers: Part Number | Description | Supplier | Current Price | Target Price | Last Updated | Alert",
	},
	{
		Title:       "Add Sample Data",
		Description: "Enter test products in rows 2-4",
		Action:      "Fill in part numbers, descriptions, and suppliers",
		Outcome:     "Sample data for LM358N, LM555CN, 1N4148",
	},
	{
		Title:       "Enter Price Formula",
		Description: "Add the price calculation formula",
		Action:      "Click cell D2 and paste the formula",
		Outcome:     "Formula generates random prices based on supplier",
	},
	{
		Title:       "Copy Formula Down",
		Description: "Apply formula to all product rows",
		Action:      "Select D2, copy, then paste to D3:D10",
		Outcome:     "All products now have price formulas",
	},
	{
		Title:       "Add Timestamp",
		Description: "Track when prices were last updated",
		Action:      "Enter =NOW() in F2 and copy down",
		Outcome:     "Current date/time appears in all rows",
	},
	{
		Title:       "Set Up Alerts",
		Description: "Create alert system for price changes",
		Action:      "Add alert formula in G2 and copy down",
		Outcome:     "Alert indicators show price status",
	},
	{
		Title:       "Enable Notifications",
		Description: "Get email alerts when prices change",
		Action:      "Tools → Notification Rules → Set up email alerts",
		Outcome:     "Email notifications configured",
	},
}

var headers = [...]string{
	"Part Number",
	"Description",
	"Supplier",
	"Current Price",
	"Target Price",
	"Last Updated",
	"Alert",
}

var sampleRows = [...]SampleRow{
	{PartNumber: "LM358N", Description: "Dual Op Amp", Supplier: "digikey", TargetPrice: 0.50},
	{PartNumber: "LM555CN", Description: "Timer IC", Supplier: "mouser", TargetPrice: 0.75},
	{PartNumber: "1N4148", Description: "Switching Diode", Supplier: "octopart", TargetPrice: 0.12},
}

var breakdown = [...]BreakdownPart{
	{Term: `IF(C2="digikey")`, Meaning: "Checks if supplier is Digi-Key"},
	{Term: "RAND()*1", Meaning: "Random price $0.00-$1.00"},
	{Term: "Nested IF", Meaning: "Different ranges per supplier"},
}

// Steps returns the eight setup steps in order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps[:])
	return out
}

// StepCount is the number of setup steps.
func StepCount() int { return len(steps) }

// Headers returns the sheet column headers for columns A through G.
func Headers() []string {
	out := make([]string, len(headers))
	copy(out, headers[:])
	return out
}

// SampleRows returns the three preview rows.
func SampleRows() []SampleRow {
	out := make([]SampleRow, len(sampleRows))
	copy(out, sampleRows[:])
	return out
}

// Breakdown returns the explanation of the demo price formula.
func Breakdown() []BreakdownPart {
	out := make([]BreakdownPart, len(breakdown))
	copy(out, breakdown[:])
	return out
}
