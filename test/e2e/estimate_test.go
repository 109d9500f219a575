// Package e2etest provides end-to-end tests for the estimate parse flow.
package e2etest

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protectprofit/estimate-parser/internal/domain/estimate/analyzer"
	"github.com/protectprofit/estimate-parser/internal/domain/estimate/parser"
	"github.com/protectprofit/estimate-parser/internal/domain/estimate/service"
)

// TestEstimateWorkbookFlow walks the full pipeline an upload goes through:
// analyze the workbook, pick a sheet, parse it, flatten, export.
func TestEstimateWorkbookFlow(t *testing.T) {
	gen := parser.NewEstimateDataGenerator(1)
	divisions := []parser.GeneratedDivision{
		gen.Division("1", 5),
		gen.Division("3", 8),
		gen.Division("16", 4),
	}
	data, declared, err := gen.Workbook("Estimate - Warehouse", divisions)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewEstimateService(parser.NewParser(parser.DefaultConfig()), logger)

	t.Run("Analyze", func(t *testing.T) {
		report, err := analyzer.AnalyzeWorkbook(data)
		require.NoError(t, err)
		assert.Equal(t, "Estimate - Warehouse", report.RecommendedSheet)
		require.NotEmpty(t, report.Sheets)
		assert.Greater(t, report.Sheets[0].Score, 50.0)
	})

	t.Run("Parse", func(t *testing.T) {
		job, err := svc.ParseWorkbook(data, "")
		require.NoError(t, err)

		assert.Equal(t, "Estimate - Warehouse", job.SheetName)
		assert.Equal(t, 3, job.Divisions)
		assert.Equal(t, 17, job.Items)
		assert.InDelta(t, declared, job.Result.GrandTotalFromItems, 0.01)

		t.Logf("parsed %d divisions, %d items, subtotal %.2f in %s",
			job.Divisions, job.Items, job.Result.ProjectSubtotal, job.Duration)
	})

	t.Run("FlattenAndExport", func(t *testing.T) {
		job, err := svc.ParseWorkbook(data, "Estimate - Warehouse")
		require.NoError(t, err)

		records := service.Flatten(job.Result)
		assert.Len(t, records, 17)

		var csvBuf bytes.Buffer
		require.NoError(t, service.WriteCSV(&csvBuf, records))
		lines := strings.Split(strings.TrimSpace(csvBuf.String()), "\n")
		assert.Len(t, lines, 18, "header plus one line per record")

		var jsonBuf bytes.Buffer
		require.NoError(t, service.WriteJSON(&jsonBuf, job.Result))
		assert.Contains(t, jsonBuf.String(), `"grandTotalFromItems"`)
	})

	t.Run("DivisionPacks", func(t *testing.T) {
		job, err := svc.ParseWorkbook(data, "Estimate - Warehouse")
		require.NoError(t, err)

		packs := service.DivisionPacks(job.Result)
		require.Len(t, packs, 3)
		assert.True(t, strings.HasPrefix(packs[0], "DIVISION_CODE: 01\n"))
		for _, p := range packs {
			assert.Contains(t, p, "ROWS:")
		}
	})
}
