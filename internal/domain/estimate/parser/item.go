package parser

import "fmt"

// LineItem is one priced unit of work within a division.
type LineItem struct {
	LineID           string   `json:"lineId"`
	TradeDescription string   `json:"tradeDescription"`
	Quantity         *float64 `json:"quantity"`
	Unit             *string  `json:"unit"`
	MaterialCost     float64  `json:"materialCost"`
	LaborCost        float64  `json:"laborCost"`
	SubEquipCost     float64  `json:"subEquipCost"`
	TotalCost        float64  `json:"totalCost"`
	ScopeNotes       *string  `json:"scopeNotes"`
	EstimatingNotes  *string  `json:"estimatingNotes"`
}

const lineIDSlugLen = 24

// ExtractItem turns an Ordinary row into a LineItem, or nil when the row is
// not one: no description, or all four cost fields zero. Unmapped columns
// degrade to their defaults (0.0 for costs, absent for quantity, unit and
// notes) rather than failing the row.
func ExtractItem(sheet *Sheet, rowIdx int, divisionCode string, cols ColumnMap) *LineItem {
	desc := sheet.Cell(rowIdx, cols.Col(FieldDescription))
	if desc == "" {
		return nil
	}

	material := ParseCurrency(sheet.Cell(rowIdx, cols.Col(FieldMaterialCost)))
	labor := ParseCurrency(sheet.Cell(rowIdx, cols.Col(FieldLaborCost)))
	subEquip := ParseCurrency(sheet.Cell(rowIdx, cols.Col(FieldSubEquipCost)))
	total := ParseCurrency(sheet.Cell(rowIdx, cols.Col(FieldTotalCost)))

	// All-zero rows are noise, not free work.
	if material == 0 && labor == 0 && subEquip == 0 && total == 0 {
		return nil
	}

	// The explicit total wins only when positive; otherwise the components
	// are summed.
	if total <= 0 {
		total = material + labor + subEquip
	}

	quantity := ParseNumber(sheet.Cell(rowIdx, cols.Col(FieldQuantity)))
	if quantity != nil {
		q := Round2(*quantity)
		quantity = &q
	}

	return &LineItem{
		LineID:           LineID(divisionCode, desc, rowIdx),
		TradeDescription: desc,
		Quantity:         quantity,
		Unit:             NormalizeUnit(sheet.Cell(rowIdx, cols.Col(FieldUnit))),
		MaterialCost:     Round2(material),
		LaborCost:        Round2(labor),
		SubEquipCost:     Round2(subEquip),
		TotalCost:        Round2(total),
		ScopeNotes:       optionalText(sheet.Cell(rowIdx, cols.Col(FieldScopeNotes))),
		EstimatingNotes:  optionalText(sheet.Cell(rowIdx, cols.Col(FieldEstimatingNotes))),
	}
}

// LineID builds the stable synthetic identifier for a line item. It is a
// pure function of (division code, description, row index), so identical
// inputs produce identical IDs across runs even when descriptions repeat.
func LineID(divisionCode, description string, rowIdx int) string {
	slug := Slugify(description)
	if len(slug) > lineIDSlugLen {
		slug = slug[:lineIDSlugLen]
	}
	for len(slug) > 0 && slug[len(slug)-1] == '-' {
		slug = slug[:len(slug)-1]
	}
	return fmt.Sprintf("%s-%s-%d", divisionCode, slug, rowIdx)
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
