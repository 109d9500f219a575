package parser

import (
	"strings"
	"unicode"
)

// Field names the semantic columns of an estimate sheet.
type Field string

const (
	FieldDivision        Field = "division"
	FieldDescription     Field = "description"
	FieldQuantity        Field = "quantity"
	FieldUnit            Field = "unit"
	FieldMaterialCost    Field = "materialCost"
	FieldLaborCost       Field = "laborCost"
	FieldSubEquipCost    Field = "subEquipCost"
	FieldTotalCost       Field = "totalCost"
	FieldScopeNotes      Field = "scopeNotes"
	FieldEstimatingNotes Field = "estimatingNotes"
)

// fieldOrder fixes the claim order when one header cell could satisfy more
// than one field (e.g. "Labor Subtotal" contains both "labor" and
// "subtotal"-ish variants). Specific cost columns come before the total.
var fieldOrder = []Field{
	FieldDivision,
	FieldDescription,
	FieldQuantity,
	FieldUnit,
	FieldMaterialCost,
	FieldLaborCost,
	FieldSubEquipCost,
	FieldTotalCost,
	FieldScopeNotes,
	FieldEstimatingNotes,
}

// headerVariants lists accepted label spellings per field, most specific
// first. Matching is contains-based on normalized text.
var headerVariants = map[Field][]string{
	FieldDivision:        {"division", "div", "csi", "section"},
	FieldDescription:     {"trade description", "description", "work item", "item", "desc", "scope of work"},
	FieldQuantity:        {"qty", "quantity", "takeoff"},
	FieldUnit:            {"unit", "units", "um", "uom"},
	FieldMaterialCost:    {"material subtotal", "materials", "material"},
	FieldLaborCost:       {"labor subtotal", "labor"},
	FieldSubEquipCost:    {"subequip subtotal", "sub equip", "sequip", "subcontractor", "equipment"},
	FieldTotalCost:       {"budget total", "line total", "total"},
	FieldScopeNotes:      {"scope notes", "scope"},
	FieldEstimatingNotes: {"estimating notes", "notes"},
}

// ColumnMap maps semantic fields to concrete column indices. It is built
// once per sheet and read-only afterward; unmapped fields report -1 and the
// extractor degrades to its documented defaults.
type ColumnMap struct {
	cols map[Field]int
}

// Col returns the column index for a field, or -1 when unmapped.
func (m ColumnMap) Col(f Field) int {
	if m.cols == nil {
		return -1
	}
	if c, ok := m.cols[f]; ok {
		return c
	}
	return -1
}

// Has reports whether the field is mapped to a column.
func (m ColumnMap) Has(f Field) bool {
	return m.Col(f) >= 0
}

// Mapped returns the mapped fields with their column indices.
func (m ColumnMap) Mapped() map[Field]int {
	out := make(map[Field]int, len(m.cols))
	for f, c := range m.cols {
		out[f] = c
	}
	return out
}

// ResolveColumns scans the first windowRows rows of the sheet and maps
// column labels to semantic fields by meaning, not position. The first cell
// whose normalized text contains an accepted variant for a still-unmapped
// field claims that field's column; a mapped field is never remapped.
// Resolution never fails: a partial or empty map is valid output.
func ResolveColumns(sheet *Sheet, windowRows int) ColumnMap {
	cols := make(map[Field]int, len(fieldOrder))

	limit := windowRows
	if limit > sheet.RowCount() {
		limit = sheet.RowCount()
	}

	for row := 0; row < limit; row++ {
		for col := 0; col < sheet.RowLen(row); col++ {
			normalized := normalizeHeader(sheet.Cell(row, col))
			if normalized == "" {
				continue
			}
			for _, field := range fieldOrder {
				if _, claimed := cols[field]; claimed {
					continue
				}
				if matchesVariant(normalized, headerVariants[field]) {
					cols[field] = col
					break
				}
			}
		}
	}

	return ColumnMap{cols: cols}
}

func matchesVariant(normalized string, variants []string) bool {
	for _, v := range variants {
		if strings.Contains(normalized, v) {
			return true
		}
	}
	return false
}

// normalizeHeader lowercases, strips punctuation and collapses whitespace
// so "Sub/Equip  Subtotal:" matches "subequip subtotal".
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
