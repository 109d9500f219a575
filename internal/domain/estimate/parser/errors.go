package parser

import "errors"

// Fatal parse failures. Everything below this tier (unparseable currency
// cells, unknown units, unmapped columns) is absorbed through defaults and
// never aborts a parse.
var (
	// ErrMalformedInput means the workbook bytes could not be decoded or the
	// requested worksheet does not exist.
	ErrMalformedInput = errors.New("malformed estimate workbook")

	// ErrMissingSummaryRow means no Project Subtotal row was found, so the
	// reconciliation invariant cannot be verified.
	ErrMissingSummaryRow = errors.New("project subtotal row not found")

	// ErrReconciliationMismatch means the sum of parsed division totals
	// disagrees with the declared Project Subtotal beyond tolerance.
	ErrReconciliationMismatch = errors.New("parsed items do not reconcile with project subtotal")
)
