package service

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/protectprofit/estimate-parser/internal/domain/estimate/parser"
)

// WriteJSON writes the parse result as indented JSON.
func WriteJSON(w io.Writer, result *parser.ParseResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// WriteCSV writes flattened budget records as CSV with a header row.
func WriteCSV(w io.Writer, records []BudgetRecord) error {
	return gocsv.Marshal(&records, w)
}
