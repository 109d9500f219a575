package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is an immutable snapshot of one worksheet as a grid of raw cell text.
// All lookups are bounds-checked so callers can probe any coordinate without
// caring about the ragged row lengths excelize returns.
type Sheet struct {
	rows [][]string
}

// LoadSheet decodes workbook bytes and snapshots the named worksheet.
// A workbook that cannot be opened, or a worksheet that does not exist,
// is reported as ErrMalformedInput.
func LoadSheet(r io.Reader, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: worksheet %q not found (sheets: %s)",
			ErrMalformedInput, sheetName, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read worksheet %q: %v", ErrMalformedInput, sheetName, err)
	}

	return NewSheet(rows), nil
}

// NewSheet wraps an already-materialized grid. Used by tests and by the
// analyzer, which reads rows itself while scoring sheets.
func NewSheet(rows [][]string) *Sheet {
	return &Sheet{rows: rows}
}

// RowCount returns the number of rows in the sheet.
func (s *Sheet) RowCount() int {
	return len(s.rows)
}

// RowLen returns the number of cells in the given row, 0 when out of range.
func (s *Sheet) RowLen(row int) int {
	if row < 0 || row >= len(s.rows) {
		return 0
	}
	return len(s.rows[row])
}

// Cell returns the trimmed text of a cell. Out-of-range coordinates and
// NaN-style placeholders read as empty, which is what every downstream
// default expects.
func (s *Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.rows) {
		return ""
	}
	r := s.rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	v := strings.TrimSpace(r[col])
	if strings.EqualFold(v, "nan") || v == "#N/A" {
		return ""
	}
	return v
}
