// Package analyzer scores the worksheets of an uploaded workbook and
// recommends the one most likely to hold the estimate line items. It never
// parses a sheet fully; it only looks at names, headers and data shape so a
// caller (or a reviewer) can pick a sheet before running the parser.
package analyzer

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/xuri/excelize/v2"

	"github.com/protectprofit/estimate-parser/internal/domain/estimate/parser"
)

const (
	// analyzeRows bounds how much of each sheet is inspected.
	analyzeRows = 20
	// previewRows is how many leading rows each report carries.
	previewRows = 3

	estimateNameBonus = 50.0
	budgetNameBonus   = 10.0
	avoidNamePenalty  = 30.0
	headerFieldBonus  = 5.0
	numericColBonus   = 2.0
)

var (
	// "estimate" in the sheet name outranks everything else.
	highPriorityKeywords = []string{"estimate"}
	budgetKeywords       = []string{
		"budget", "cost", "summary", "total",
		"line item", "division", "scope", "takeoff", "quantity",
	}
	avoidKeywords = []string{
		"pricing", "price", "cover", "notes", "instructions", "template",
	}
)

// SheetReport is the per-sheet analysis result.
type SheetReport struct {
	SheetName        string         `json:"sheetName"`
	Score            float64        `json:"score"`
	RowCount         int            `json:"rowCount"`
	ColumnCount      int            `json:"columnCount"`
	SuggestedColumns map[string]int `json:"suggestedColumns"`
	Preview          [][]string     `json:"preview"`
	Error            string         `json:"error,omitempty"`
}

// WorkbookReport aggregates all sheet reports, best first.
type WorkbookReport struct {
	TotalSheets      int           `json:"totalSheets"`
	Sheets           []SheetReport `json:"sheetAnalysis"`
	RecommendedSheet string        `json:"recommendedSheet"`
}

// AnalyzeWorkbook inspects every worksheet in the workbook bytes and returns
// reports sorted by score. A sheet that cannot be read gets a zero score and
// an error note instead of failing the whole analysis.
func AnalyzeWorkbook(data []byte) (*WorkbookReport, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", parser.ErrMalformedInput, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	report := &WorkbookReport{TotalSheets: len(names)}

	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			report.Sheets = append(report.Sheets, SheetReport{
				SheetName: name,
				Error:     err.Error(),
			})
			continue
		}
		report.Sheets = append(report.Sheets, analyzeSheet(name, rows))
	}

	sort.SliceStable(report.Sheets, func(i, j int) bool {
		return report.Sheets[i].Score > report.Sheets[j].Score
	})
	if len(report.Sheets) > 0 {
		report.RecommendedSheet = report.Sheets[0].SheetName
	}
	return report, nil
}

func analyzeSheet(name string, rows [][]string) SheetReport {
	if len(rows) > analyzeRows {
		rows = rows[:analyzeRows]
	}
	sheet := parser.NewSheet(rows)
	cols := parser.ResolveColumns(sheet, analyzeRows)

	r := SheetReport{
		SheetName:        name,
		RowCount:         len(rows),
		ColumnCount:      maxRowLen(rows),
		SuggestedColumns: suggestedColumns(cols),
		Preview:          preview(rows),
	}
	r.Score = scoreSheet(name, rows, cols)
	return r
}

// scoreSheet grades a sheet by name keywords, recognized header columns,
// numeric data density and row count.
func scoreSheet(name string, rows [][]string, cols parser.ColumnMap) float64 {
	score := scoreSheetName(name)

	score += float64(len(cols.Mapped())) * headerFieldBonus
	score += float64(countNumericColumns(rows)) * numericColBonus

	if len(rows) > 10 {
		score += 5.0
	}
	if len(rows) >= analyzeRows {
		score += 10.0
	}

	if score < 0 {
		return 0
	}
	return score
}

func scoreSheetName(name string) float64 {
	lower := strings.ToLower(name)
	var score float64

	for _, kw := range highPriorityKeywords {
		switch {
		case strings.Contains(lower, kw):
			score += estimateNameBonus
		case nearKeyword(lower, kw):
			// Typo tolerance ("Estmate - Shed") at half weight.
			score += estimateNameBonus / 2
		}
	}
	for _, kw := range budgetKeywords {
		if strings.Contains(lower, kw) {
			score += budgetNameBonus
		}
	}
	for _, kw := range avoidKeywords {
		if strings.Contains(lower, kw) {
			score -= avoidNamePenalty
		}
	}
	return score
}

// nearKeyword reports whether any token of the name sits within two edits
// of the keyword, so "Estmate" still reads as "estimate".
func nearKeyword(name, kw string) bool {
	for _, tok := range strings.Fields(name) {
		if fuzzy.LevenshteinDistance(tok, kw) <= 2 {
			return true
		}
	}
	return false
}

// countNumericColumns counts columns where numbers dominate the non-empty
// cells. Currency formatting counts as numeric.
func countNumericColumns(rows [][]string) int {
	width := maxRowLen(rows)
	count := 0
	for col := 0; col < width; col++ {
		numeric, filled := 0, 0
		for _, row := range rows {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			filled++
			if isNumericCell(cell) {
				numeric++
			}
		}
		if filled > 0 && numeric*2 >= filled {
			count++
		}
	}
	return count
}

func isNumericCell(cell string) bool {
	cleaned := strings.NewReplacer("$", "", ",", "", "%", "").Replace(cell)
	_, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	return err == nil
}

func suggestedColumns(cols parser.ColumnMap) map[string]int {
	out := make(map[string]int)
	for field, col := range cols.Mapped() {
		out[string(field)] = col
	}
	return out
}

func preview(rows [][]string) [][]string {
	n := previewRows
	if n > len(rows) {
		n = len(rows)
	}
	out := make([][]string, 0, n)
	for _, row := range rows[:n] {
		copied := make([]string, len(row))
		copy(copied, row)
		out = append(out, copied)
	}
	return out
}

func maxRowLen(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}
