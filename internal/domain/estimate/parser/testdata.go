package parser

import (
	"bytes"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// WorkbookBuilder assembles in-memory XLSX workbooks for tests and for the
// analyzer's fixtures. Rows are positioned explicitly so fixtures can
// reproduce the ragged layouts real estimates have.
type WorkbookBuilder struct {
	order  []string
	sheets map[string]map[int][]interface{}
}

// NewWorkbookBuilder returns an empty builder.
func NewWorkbookBuilder() *WorkbookBuilder {
	return &WorkbookBuilder{sheets: make(map[string]map[int][]interface{})}
}

// Row sets the cells of one row (0-based index) on the named sheet,
// creating the sheet on first use.
func (b *WorkbookBuilder) Row(sheet string, rowIdx int, cells ...interface{}) *WorkbookBuilder {
	if _, ok := b.sheets[sheet]; !ok {
		b.order = append(b.order, sheet)
		b.sheets[sheet] = make(map[int][]interface{})
	}
	b.sheets[sheet][rowIdx] = cells
	return b
}

// Bytes renders the workbook to XLSX bytes.
func (b *WorkbookBuilder) Bytes() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range b.order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, err
			}
		}
		for rowIdx, cells := range b.sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			row := cells
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EstimateHeaderRow is the canonical header row used by generated fixtures.
// Columns mirror the spreadsheet layout most estimates in the wild use.
var EstimateHeaderRow = []interface{}{
	"Division", "", "Trade Description", "Qty", "Unit", "", "",
	"Material Subtotal", "", "Labor Subtotal", "", "Sub/Equip Subtotal",
	"Budget Total", "Scope Notes", "Estimating Notes",
}

// GeneratedItem is one fabricated line-item row.
type GeneratedItem struct {
	Description string
	Quantity    float64
	Unit        string
	Material    float64
	Labor       float64
	SubEquip    float64
}

// Total returns the item's cost (sum of components, 2-decimal).
func (i GeneratedItem) Total() float64 {
	return Round2(i.Material + i.Labor + i.SubEquip)
}

// GeneratedDivision is one fabricated division with its items.
type GeneratedDivision struct {
	Code  string
	Name  string
	Items []GeneratedItem
}

// EstimateDataGenerator fabricates realistic, internally consistent
// estimate workbooks using gofakeit. Seeded generators are reproducible.
type EstimateDataGenerator struct {
	faker *gofakeit.Faker
}

// NewEstimateDataGenerator creates a generator with a specific seed.
func NewEstimateDataGenerator(seed int64) *EstimateDataGenerator {
	return &EstimateDataGenerator{faker: gofakeit.New(seed)}
}

var (
	// No trade here may match a skip pattern ("Overhead Doors" would be
	// classified as a summary row and break reconciliation).
	generatorTrades = []string{
		"Demolition", "Excavation", "Concrete Footings", "CMU Block Walls",
		"Structural Steel", "Rough Carpentry", "Roofing Membrane",
		"Metal Siding", "Hollow Metal Doors", "Gypsum Board", "Painting",
		"Plumbing Rough-In", "HVAC Ductwork", "Electrical Allowance",
		"Site Cleanup",
	}
	generatorDivisionNames = []string{
		"General Requirements", "Site Work", "Concrete", "Masonry",
		"Metals", "Wood & Plastics", "Thermal & Moisture", "Doors & Windows",
		"Finishes", "Specialties",
	}
	generatorUnits = []string{"EA", "LF", "SF", "SY", "CY", "HR", "LS", "MO"}
)

// Division fabricates one division with n items.
func (g *EstimateDataGenerator) Division(code string, n int) GeneratedDivision {
	d := GeneratedDivision{
		Code: code,
		Name: g.faker.RandomString(generatorDivisionNames),
	}
	for i := 0; i < n; i++ {
		d.Items = append(d.Items, GeneratedItem{
			Description: fmt.Sprintf("%s %d", g.faker.RandomString(generatorTrades), i+1),
			Quantity:    Round2(g.faker.Float64Range(1, 500)),
			Unit:        g.faker.RandomString(generatorUnits),
			Material:    Round2(g.faker.Float64Range(0, 20000)),
			Labor:       Round2(g.faker.Float64Range(100, 15000)),
			SubEquip:    Round2(g.faker.Float64Range(0, 5000)),
		})
	}
	return d
}

// Workbook renders divisions into a complete estimate workbook with meta
// rows, the canonical header, and reconciled summary rows. It returns the
// workbook bytes and the project subtotal it declared.
func (g *EstimateDataGenerator) Workbook(sheetName string, divisions []GeneratedDivision) ([]byte, float64, error) {
	b := NewWorkbookBuilder()
	// Meta values are fixed: a random company name landing inside the
	// header window could collide with a header variant and skew column
	// resolution.
	b.Row(sheetName, 0, "Client:", "Meridian Commercial Builders")
	b.Row(sheetName, 1, "Project:", "Prefab Storage Building")
	b.Row(sheetName, 2, "Date:", "2025-03-14")
	b.Row(sheetName, 4, EstimateHeaderRow...)

	row := 6
	subtotal := decimal.Zero
	for _, d := range divisions {
		b.Row(sheetName, row, d.Code, "", d.Name)
		row++
		for _, item := range d.Items {
			b.Row(sheetName, row,
				"", "", item.Description, item.Quantity, item.Unit, "", "",
				item.Material, "", item.Labor, "", item.SubEquip,
				item.Total(), "", "")
			subtotal = subtotal.Add(decimal.NewFromFloat(item.Total()))
			row++
		}
	}

	declared, _ := subtotal.Round(2).Float64()
	overhead := Round2(declared * 0.15)

	row++
	b.Row(sheetName, row, "", "", "Project Subtotal", "", "", "", "", "", "", "", "", "", declared)
	row++
	b.Row(sheetName, row, "", "", "Overhead & Profit", "", "", "", "", "", "", "", "", "", overhead)
	row++
	b.Row(sheetName, row, "", "", "Job Total", "", "", "", "", "", "", "", "", "", Round2(declared+overhead))

	data, err := b.Bytes()
	return data, declared, err
}
