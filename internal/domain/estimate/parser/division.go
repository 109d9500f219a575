package parser

import "github.com/shopspring/decimal"

// Division is one CSI-style cost division with its line items.
type Division struct {
	DivisionCode  string     `json:"divisionCode"`
	DivisionName  string     `json:"divisionName"`
	Items         []LineItem `json:"items"`
	DivisionTotal float64    `json:"divisionTotal"`
}

// Aggregator accumulates line items under the currently open division and
// emits divisions in first-appearance order as they close. At most one
// division is open at a time; a division that closes with zero items is
// dropped, never emitted.
type Aggregator struct {
	current *Division
	closed  []Division
}

// NewAggregator returns an empty accumulator.
func NewAggregator() *Aggregator {
	return &Aggregator{closed: make([]Division, 0, 8)}
}

// Open starts a new division. If one is already open it is implicitly
// closed (and emitted when non-empty) first.
func (a *Aggregator) Open(code, name string) {
	a.CloseCurrent()
	a.current = &Division{
		DivisionCode: code,
		DivisionName: name,
		Items:        make([]LineItem, 0, 16),
	}
}

// Add appends an item to the open division. Items seen before any division
// header are dropped; they have no owner.
func (a *Aggregator) Add(item LineItem) {
	if a.current == nil {
		return
	}
	a.current.Items = append(a.current.Items, item)
}

// HasOpen reports whether a division is currently accumulating items.
func (a *Aggregator) HasOpen() bool {
	return a.current != nil
}

// CurrentCode returns the open division's code, or "" when none is open.
func (a *Aggregator) CurrentCode() string {
	if a.current == nil {
		return ""
	}
	return a.current.DivisionCode
}

// CloseCurrent finalizes the open division: computes its total and appends
// it to the emitted list when it has at least one item. Returns the closed
// division, or nil when there was nothing to emit.
func (a *Aggregator) CloseCurrent() *Division {
	d := a.current
	a.current = nil
	if d == nil || len(d.Items) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(decimal.NewFromFloat(item.TotalCost))
	}
	d.DivisionTotal, _ = total.Round(2).Float64()

	a.closed = append(a.closed, *d)
	return d
}

// Divisions returns the closed divisions in first-appearance order.
func (a *Aggregator) Divisions() []Division {
	return a.closed
}
