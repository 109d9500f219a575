package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// SummaryTotals holds the three bottom-of-sheet declared totals.
type SummaryTotals struct {
	ProjectSubtotal   float64
	OverheadAndProfit float64
	JobTotal          float64

	// SubtotalRow is the row index of the Project Subtotal row. Line items
	// live strictly above it.
	SubtotalRow int
}

var currencyCellRe = regexp.MustCompile(`^\$?[\d,]+\.?\d*$`)

// ScanSummary locates the summary rows by scanning the sheet bottom to top,
// keeping the first (closest-to-end) occurrence of each marker. Well-formed
// sheets put these rows last, so the upward scan finds them cheaply without
// first deciding where line items end.
//
// Overhead & Profit and Job Total default to 0.0 when their markers are
// absent; a missing Project Subtotal is fatal because the reconciliation
// invariant is unverifiable without it.
func ScanSummary(sheet *Sheet, cols ColumnMap) (SummaryTotals, error) {
	totals := SummaryTotals{SubtotalRow: -1}
	foundOverhead := false
	foundJobTotal := false

	for row := sheet.RowCount() - 1; row >= 0; row-- {
		text := rowText(sheet, row, cols)
		if text == "" {
			continue
		}

		if totals.SubtotalRow < 0 && strings.Contains(text, "project subtotal") {
			totals.ProjectSubtotal = summaryValue(sheet, row, cols)
			totals.SubtotalRow = row
		}
		if !foundOverhead && strings.Contains(text, "overhead") && strings.Contains(text, "profit") {
			totals.OverheadAndProfit = summaryValue(sheet, row, cols)
			foundOverhead = true
		}
		if !foundJobTotal && strings.Contains(text, "job total") {
			totals.JobTotal = summaryValue(sheet, row, cols)
			foundJobTotal = true
		}
	}

	if totals.SubtotalRow < 0 {
		return totals, fmt.Errorf("%w: no row matching %q", ErrMissingSummaryRow, "project subtotal")
	}

	return totals, nil
}

// rowText returns the lowercased label text for a summary row: the mapped
// description cell when available, otherwise the whole row joined, so a
// sheet with unresolved headers still yields its declared totals.
func rowText(sheet *Sheet, row int, cols ColumnMap) string {
	if cols.Has(FieldDescription) {
		return strings.ToLower(sheet.Cell(row, cols.Col(FieldDescription)))
	}
	parts := make([]string, 0, sheet.RowLen(row))
	for col := 0; col < sheet.RowLen(row); col++ {
		if v := sheet.Cell(row, col); v != "" {
			parts = append(parts, strings.ToLower(v))
		}
	}
	return strings.Join(parts, " ")
}

// summaryValue extracts the currency amount from a matched summary row:
// the mapped total-cost column when present, else the last cell in the row
// that looks like a currency value.
func summaryValue(sheet *Sheet, row int, cols ColumnMap) float64 {
	if cols.Has(FieldTotalCost) {
		if v := ParseCurrency(sheet.Cell(row, cols.Col(FieldTotalCost))); v != 0 {
			return v
		}
	}
	for col := sheet.RowLen(row) - 1; col >= 0; col-- {
		cell := sheet.Cell(row, col)
		if currencyCellRe.MatchString(cell) {
			if v := ParseCurrency(cell); v != 0 {
				return v
			}
		}
	}
	return 0
}
