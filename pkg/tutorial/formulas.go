package tutorial

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// FormulaKey identifies one of the example formulas.
type FormulaKey string

const (
	FormulaPrice     FormulaKey = "price"
	FormulaTimestamp FormulaKey = "timestamp"
	FormulaAlert     FormulaKey = "alert"
	FormulaRealPrice FormulaKey = "realPrice"
)

var (
	// ErrUnknownFormula is returned for a key outside the fixed formula set.
	ErrUnknownFormula = errors.New("unknown formula")
	// ErrInvalidRow is returned when a sheet row number is below 1.
	ErrInvalidRow = errors.New("invalid row")
)

// Alert cell values produced by the alert formula.
const (
	AlertTriggered = "🚨 ALERT!"
	AlertOK        = "✅ OK"
)

// alertThreshold is the relative deviation from target that raises an alert.
const alertThreshold = 0.1

// Formula is a named example formula as written for row 2 of the sheet.
type Formula struct {
	Key    FormulaKey `json:"key"`
	Icon   string     `json:"icon"`
	Title  string     `json:"title"`
	Text   string     `json:"text"`
	Column string     `json:"column,omitempty"` // Sheet column the formula belongs in
}

var formulas = [...]Formula{
	{
		Key:    FormulaPrice,
		Icon:   "💰",
		Title:  "Demo Price Formula",
		Text:   `=IF(C2="digikey", RAND()*1, IF(C2="mouser", RAND()*1.2, RAND()*0.8))`,
		Column: "D",
	},
	{
		Key:    FormulaTimestamp,
		Icon:   "📅",
		Title:  "Timestamp Formula",
		Text:   `=NOW()`,
		Column: "F",
	},
	{
		Key:    FormulaAlert,
		Icon:   "🚨",
		Title:  "Alert Formula",
		Text:   `=IF(AND(D2<>0, E2<>0, ABS(D2-E2)/E2>0.1), "🚨 ALERT!", "✅ OK")`,
		Column: "G",
	},
	{
		Key:   FormulaRealPrice,
		Icon:  "🌐",
		Title: "Real Price Formula",
		Text:  `=IFERROR(IMPORTXML("https://example.com/search?q="&A2, "//span[@class='price']"), "Manual")`,
		// Replaces the demo price in column D once a real source is known.
		Column: "D",
	},
}

// Formulas returns the four example formulas in display order.
func Formulas() []Formula {
	out := make([]Formula, len(formulas))
	copy(out, formulas[:])
	return out
}

// FormulaFor looks up a formula by key.
func FormulaFor(key FormulaKey) (Formula, bool) {
	for _, f := range formulas {
		if f.Key == key {
			return f, true
		}
	}
	return Formula{}, false
}

// rowTwoRef matches a cell reference into row 2 (C2, D2, ...). Only the
// columns used by the sheet are considered so numbers such as 1.2 survive.
var rowTwoRef = regexp.MustCompile(`\b([A-G])2\b`)

// FormulaForRow returns the formula text with its row 2 references
// rewritten to row, which is what "copy formula down" does in a sheet.
func FormulaForRow(key FormulaKey, row int) (string, error) {
	f, ok := FormulaFor(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormula, key)
	}
	if row < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	if row == 2 {
		return f.Text, nil
	}
	return rowTwoRef.ReplaceAllString(f.Text, fmt.Sprintf("${1}%d", row)), nil
}

// SupplierMultiplier mirrors the nested IF of the demo price formula.
func SupplierMultiplier(supplier string) float64 {
	switch strings.ToLower(supplier) {
	case "digikey":
		return 1.0
	case "mouser":
		return 1.2
	default:
		return 0.8
	}
}

// AlertFor mirrors the alert formula for a current and target price.
func AlertFor(current, target float64) string {
	if current == 0 || target == 0 {
		return AlertOK
	}
	if math.Abs(current-target)/target > alertThreshold {
		return AlertTriggered
	}
	return AlertOK
}
