package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RowKind is the classifier's verdict for one data row.
type RowKind int

const (
	// RowOrdinary is a candidate line item.
	RowOrdinary RowKind = iota
	// RowDivisionHeader opens a new cost division.
	RowDivisionHeader
	// RowSkippableSummary is a subtotal/terms/summary row that must never
	// become a line item.
	RowSkippableSummary
)

// RowClass carries the classification and, for division headers, the
// detected code and name.
type RowClass struct {
	Kind         RowKind
	DivisionCode string
	DivisionName string
}

var (
	bareDivisionRe   = regexp.MustCompile(`^\d{1,2}$`)
	inlineDivisionRe = regexp.MustCompile(`^\s*(\d{2})\s*[-–]\s*(.+)$`)

	// Division headers and summary rows share physical columns with line
	// items, so detection is content-driven. Order matters: these run only
	// after header detection, since summary rows never start with a bare
	// division numeral.
	skipPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(subtotal|job total|payment terms|accepted by|terms|warranty|fee)$`),
		regexp.MustCompile(`(?i)project subtotal`),
		regexp.MustCompile(`(?i)overhead`),
		regexp.MustCompile(`(?i)profit`),
		regexp.MustCompile(`(?i)contingency`),
	}
)

// Classify decides whether a row opens a division, must be skipped, or is a
// candidate line item. The division column falls back to the first column
// when unmapped; rule order is header detection first, then skip patterns.
func Classify(sheet *Sheet, rowIdx int, cols ColumnMap) RowClass {
	divCol := cols.Col(FieldDivision)
	if divCol < 0 {
		divCol = 0
	}

	if code := sheet.Cell(rowIdx, divCol); bareDivisionRe.MatchString(code) {
		return RowClass{
			Kind:         RowDivisionHeader,
			DivisionCode: padDivisionCode(code),
			DivisionName: sheet.Cell(rowIdx, cols.Col(FieldDescription)),
		}
	}

	desc := sheet.Cell(rowIdx, cols.Col(FieldDescription))

	if m := inlineDivisionRe.FindStringSubmatch(desc); m != nil {
		return RowClass{
			Kind:         RowDivisionHeader,
			DivisionCode: m[1],
			DivisionName: strings.TrimSpace(m[2]),
		}
	}

	for _, re := range skipPatterns {
		if re.MatchString(desc) {
			return RowClass{Kind: RowSkippableSummary}
		}
	}

	return RowClass{Kind: RowOrdinary}
}

// padDivisionCode left-pads a 1-digit code to the canonical two characters.
func padDivisionCode(code string) string {
	n, err := strconv.Atoi(code)
	if err != nil {
		return code
	}
	return fmt.Sprintf("%02d", n)
}
