// Package parser implements the deterministic construction-estimate
// spreadsheet parser: it recovers divisions, line items and declared totals
// from a contractor's Excel estimate and guarantees that the emitted
// division totals reconcile with the sheet's own Project Subtotal.
package parser

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseResult is the final output contract. Downstream storage and prompt
// assembly depend on this exact shape.
type ParseResult struct {
	Meta                Meta       `json:"meta"`
	Divisions           []Division `json:"divisions"`
	ProjectSubtotal     float64    `json:"projectSubtotal"`
	OverheadAndProfit   float64    `json:"overheadAndProfit"`
	JobTotal            float64    `json:"jobTotal"`
	GrandTotalFromItems float64    `json:"grandTotalFromItems"`
}

// Config tunes the parser's scan windows and reconciliation tolerance.
type Config struct {
	HeaderRows int     // candidate header rows scanned by the column resolver
	MetaRows   int     // rows scanned for client/project/date labels
	Tolerance  float64 // max |projectSubtotal - grandTotalFromItems|
}

// DefaultConfig returns the parser defaults used in production.
func DefaultConfig() Config {
	return Config{
		HeaderRows: 6,
		MetaRows:   10,
		Tolerance:  0.01,
	}
}

// Parser converts one worksheet of an estimate workbook into a ParseResult.
// It is a pure, single-pass computation over an in-memory sheet snapshot:
// no I/O after the initial read, no shared state, identical output for
// identical input.
type Parser struct {
	config Config
}

// NewParser creates a parser with the given configuration.
func NewParser(config Config) *Parser {
	return &Parser{config: config}
}

// Parse decodes the workbook bytes, parses the named worksheet and returns
// the reconciled result. Failures are one of the fatal taxonomy errors
// (ErrMalformedInput, ErrMissingSummaryRow, ErrReconciliationMismatch);
// row-level anomalies are absorbed via defaults and never surface.
func (p *Parser) Parse(data []byte, sheetName string) (*ParseResult, error) {
	sheet, err := LoadSheet(bytes.NewReader(data), sheetName)
	if err != nil {
		return nil, err
	}
	return p.ParseSheet(sheet)
}

// ParseSheet runs the full pipeline over an already-loaded sheet snapshot.
func (p *Parser) ParseSheet(sheet *Sheet) (*ParseResult, error) {
	cols := ResolveColumns(sheet, p.config.HeaderRows)
	meta := ExtractMeta(sheet, p.config.MetaRows)

	// The summary engine reads different rows than the item scan, so it can
	// run first; its subtotal row also bounds the item scan.
	summary, err := ScanSummary(sheet, cols)
	if err != nil {
		return nil, err
	}

	agg := NewAggregator()
	for row := p.config.HeaderRows; row < summary.SubtotalRow; row++ {
		switch rc := Classify(sheet, row, cols); rc.Kind {
		case RowDivisionHeader:
			agg.Open(rc.DivisionCode, rc.DivisionName)
		case RowSkippableSummary:
			continue
		case RowOrdinary:
			if !agg.HasOpen() {
				continue
			}
			if item := ExtractItem(sheet, row, agg.CurrentCode(), cols); item != nil {
				agg.Add(*item)
			}
		}
	}
	agg.CloseCurrent()

	divisions := agg.Divisions()
	grandTotal := sumDivisionTotals(divisions)

	// Compared as decimals so a declared subtotal exactly one cent off
	// still passes a 0.01 tolerance despite float64 representation error.
	drift := decimal.NewFromFloat(summary.ProjectSubtotal).Sub(decimal.NewFromFloat(grandTotal)).Abs()
	if drift.GreaterThan(decimal.NewFromFloat(p.config.Tolerance)) {
		return nil, fmt.Errorf("%w: items total %.2f, declared subtotal %.2f",
			ErrReconciliationMismatch, grandTotal, summary.ProjectSubtotal)
	}

	return &ParseResult{
		Meta:                meta,
		Divisions:           divisions,
		ProjectSubtotal:     Round2(summary.ProjectSubtotal),
		OverheadAndProfit:   Round2(summary.OverheadAndProfit),
		JobTotal:            Round2(summary.JobTotal),
		GrandTotalFromItems: grandTotal,
	}, nil
}

func sumDivisionTotals(divisions []Division) float64 {
	total := decimal.Zero
	for _, d := range divisions {
		total = total.Add(decimal.NewFromFloat(d.DivisionTotal))
	}
	f, _ := total.Round(2).Float64()
	return f
}
