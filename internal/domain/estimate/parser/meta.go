package parser

import "strings"

// Meta carries the optional client/project/date fields from the sheet's
// header area.
type Meta struct {
	Client  *string `json:"client"`
	Project *string `json:"project"`
	Date    *string `json:"date"`
}

// ExtractMeta scans the first windowRows rows for "client", "project" and
// "date" labels and takes the nearest non-empty cell to the right of each.
// Fields without a label stay nil; meta extraction never fails.
func ExtractMeta(sheet *Sheet, windowRows int) Meta {
	var meta Meta

	limit := windowRows
	if limit > sheet.RowCount() {
		limit = sheet.RowCount()
	}

	for row := 0; row < limit; row++ {
		for col := 0; col < sheet.RowLen(row); col++ {
			label := strings.ToLower(sheet.Cell(row, col))
			if label == "" {
				continue
			}

			if meta.Client == nil && strings.Contains(label, "client") {
				meta.Client = adjacentValue(sheet, row, col)
			}
			if meta.Project == nil && strings.Contains(label, "project") {
				meta.Project = adjacentValue(sheet, row, col)
			}
			if meta.Date == nil && strings.Contains(label, "date") {
				meta.Date = adjacentValue(sheet, row, col)
			}
		}
	}

	return meta
}

// adjacentValue returns the first non-empty cell to the right of a label,
// looking past merged-cell gaps.
func adjacentValue(sheet *Sheet, row, labelCol int) *string {
	for col := labelCol + 1; col < sheet.RowLen(row); col++ {
		if v := sheet.Cell(row, col); v != "" {
			return &v
		}
	}
	return nil
}
