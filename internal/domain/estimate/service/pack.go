package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/protectprofit/estimate-parser/internal/domain/estimate/parser"
)

// DivisionPack renders one division as the compact text block handed to the
// normalization prompt downstream, e.g.:
//
//	DIVISION_CODE: 08
//	DIVISION_NAME: Doors & Windows
//	ROWS:
//	- [row=742] "Electrical Allowance" | qty=null | unit=null | material=0.00 | labor=0.00 | subequip=0.00 | total=25000.00 | scope=null | est=null
//
// A division with no items renders as the empty string.
func DivisionPack(d parser.Division) string {
	if len(d.Items) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "DIVISION_CODE: %s\n", d.DivisionCode)
	fmt.Fprintf(&b, "DIVISION_NAME: %s\n", d.DivisionName)
	b.WriteString("ROWS:")

	for _, item := range d.Items {
		fmt.Fprintf(&b,
			"\n- [row=%s] \"%s\" | qty=%s | unit=%s | material=%.2f | labor=%.2f | subequip=%.2f | total=%.2f | scope=%s | est=%s",
			rowRef(item.LineID),
			item.TradeDescription,
			packNumber(item.Quantity),
			packText(item.Unit),
			item.MaterialCost,
			item.LaborCost,
			item.SubEquipCost,
			item.TotalCost,
			packText(item.ScopeNotes),
			packText(item.EstimatingNotes),
		)
	}
	return b.String()
}

// DivisionPacks renders every non-empty division of a result.
func DivisionPacks(result *parser.ParseResult) []string {
	var packs []string
	for _, d := range result.Divisions {
		if p := DivisionPack(d); p != "" {
			packs = append(packs, p)
		}
	}
	return packs
}

// rowRef recovers the source row number embedded as the lineId's last
// dash-separated segment.
func rowRef(lineID string) string {
	if idx := strings.LastIndex(lineID, "-"); idx >= 0 {
		return lineID[idx+1:]
	}
	return "unknown"
}

func packNumber(v *float64) string {
	if v == nil {
		return "null"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func packText(v *string) string {
	if v == nil {
		return "null"
	}
	return `"` + *v + `"`
}
