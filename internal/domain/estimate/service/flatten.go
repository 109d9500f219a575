package service

import (
	"github.com/protectprofit/estimate-parser/internal/domain/estimate/parser"
)

// BudgetRecord is one line item flattened out of the division tree, the
// shape spreadsheets and downstream imports want.
type BudgetRecord struct {
	LineID           string   `csv:"line_id" json:"lineId"`
	DivisionCode     string   `csv:"division_code" json:"divisionCode"`
	DivisionName     string   `csv:"division_name" json:"divisionName"`
	TradeDescription string   `csv:"trade_description" json:"tradeDescription"`
	Quantity         *float64 `csv:"quantity" json:"quantity"`
	Unit             *string  `csv:"unit" json:"unit"`
	MaterialCost     float64  `csv:"material_cost" json:"materialCost"`
	LaborCost        float64  `csv:"labor_cost" json:"laborCost"`
	SubEquipCost     float64  `csv:"sub_equip_cost" json:"subEquipCost"`
	TotalCost        float64  `csv:"total_cost" json:"totalCost"`
	UnitCost         float64  `csv:"unit_cost" json:"unitCost"`
	ScopeNotes       *string  `csv:"scope_notes" json:"scopeNotes"`
	EstimatingNotes  *string  `csv:"estimating_notes" json:"estimatingNotes"`
}

// Flatten turns the division tree into flat budget records, preserving the
// parse order. UnitCost is derived (total / quantity) and zero when no
// usable quantity exists.
func Flatten(result *parser.ParseResult) []BudgetRecord {
	var records []BudgetRecord
	for _, d := range result.Divisions {
		for _, item := range d.Items {
			rec := BudgetRecord{
				LineID:           item.LineID,
				DivisionCode:     d.DivisionCode,
				DivisionName:     d.DivisionName,
				TradeDescription: item.TradeDescription,
				Quantity:         item.Quantity,
				Unit:             item.Unit,
				MaterialCost:     item.MaterialCost,
				LaborCost:        item.LaborCost,
				SubEquipCost:     item.SubEquipCost,
				TotalCost:        item.TotalCost,
				ScopeNotes:       item.ScopeNotes,
				EstimatingNotes:  item.EstimatingNotes,
			}
			if item.Quantity != nil && *item.Quantity > 0 {
				rec.UnitCost = parser.Round2(item.TotalCost / *item.Quantity)
			}
			records = append(records, rec)
		}
	}
	return records
}
