// Package service orchestrates estimate parsing end to end: worksheet
// selection, parse jobs, flattening to budget records and export.
package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/protectprofit/estimate-parser/internal/domain/estimate/analyzer"
	"github.com/protectprofit/estimate-parser/internal/domain/estimate/parser"
)

// ParseJob is the outcome of one parse run. The JobID ties log lines,
// exports and downstream records back to a single upload.
type ParseJob struct {
	JobID     uuid.UUID          `json:"jobId"`
	SheetName string             `json:"sheetName"`
	Result    *parser.ParseResult `json:"result"`
	Divisions int                `json:"divisions"`
	Items     int                `json:"items"`
	Duration  time.Duration      `json:"duration"`
}

// EstimateService runs parse jobs over uploaded workbooks.
type EstimateService struct {
	parser *parser.Parser
	logger *slog.Logger
}

// NewEstimateService creates a service around the given parser.
func NewEstimateService(p *parser.Parser, logger *slog.Logger) *EstimateService {
	return &EstimateService{parser: p, logger: logger}
}

// ParseWorkbook parses the named worksheet of the workbook bytes. An empty
// sheetName triggers automatic selection via the workbook analyzer.
func (s *EstimateService) ParseWorkbook(data []byte, sheetName string) (*ParseJob, error) {
	jobID := uuid.New()

	if sheetName == "" {
		report, err := analyzer.AnalyzeWorkbook(data)
		if err != nil {
			return nil, err
		}
		if report.RecommendedSheet == "" {
			return nil, fmt.Errorf("%w: workbook has no worksheets", parser.ErrMalformedInput)
		}
		sheetName = report.RecommendedSheet
		s.logger.Info("worksheet auto-selected",
			"jobID", jobID, "sheet", sheetName, "candidates", report.TotalSheets)
	}

	start := time.Now()
	result, err := s.parser.Parse(data, sheetName)
	if err != nil {
		s.logger.Error("estimate parse failed",
			"jobID", jobID, "sheet", sheetName, "error", err)
		return nil, err
	}

	items := 0
	for _, d := range result.Divisions {
		items += len(d.Items)
	}

	job := &ParseJob{
		JobID:     jobID,
		SheetName: sheetName,
		Result:    result,
		Divisions: len(result.Divisions),
		Items:     items,
		Duration:  time.Since(start),
	}

	s.logger.Info("estimate parsed",
		"jobID", jobID,
		"sheet", sheetName,
		"divisions", job.Divisions,
		"items", job.Items,
		"projectSubtotal", result.ProjectSubtotal,
		"duration", job.Duration)
	return job, nil
}
