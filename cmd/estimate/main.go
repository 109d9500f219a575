package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/protectprofit/estimate-parser/internal/domain/estimate/analyzer"
	"github.com/protectprofit/estimate-parser/internal/domain/estimate/parser"
	"github.com/protectprofit/estimate-parser/internal/domain/estimate/service"
	"github.com/protectprofit/estimate-parser/pkg/config"
)

func main() {
	cfg, err := config.Load()
	must(err)

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch cmd := os.Args[1]; cmd {
	case "parse":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "path to the estimate workbook (.xlsx)")
		sheet := fs.String("sheet", cfg.Parser.SheetName, "worksheet name (empty auto-selects)")
		format := fs.String("format", cfg.Output.Format, "output format: json|csv|pack")
		out := fs.String("out", cfg.Output.Path, "output path (empty writes to stdout)")
		_ = fs.Parse(os.Args[2:])
		must(runParse(cfg, logger, *file, *sheet, *format, *out))
	case "analyze":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "path to the workbook (.xlsx)")
		_ = fs.Parse(os.Args[2:])
		must(runAnalyze(*file))
	default:
		usage()
		os.Exit(1)
	}
}

func runParse(cfg *config.Config, logger *slog.Logger, file, sheet, format, out string) error {
	if file == "" {
		return fmt.Errorf("--file is required")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	p := parser.NewParser(parser.Config{
		HeaderRows: cfg.Parser.HeaderRows,
		MetaRows:   cfg.Parser.MetaRows,
		Tolerance:  cfg.Parser.Tolerance,
	})
	svc := service.NewEstimateService(p, logger)

	job, err := svc.ParseWorkbook(data, sheet)
	if err != nil {
		return err
	}

	w, closeFn, err := openOutput(out)
	if err != nil {
		return err
	}
	defer closeFn()

	switch format {
	case "json":
		return service.WriteJSON(w, job.Result)
	case "csv":
		return service.WriteCSV(w, service.Flatten(job.Result))
	case "pack":
		_, err := io.WriteString(w, strings.Join(service.DivisionPacks(job.Result), "\n\n")+"\n")
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func runAnalyze(file string) error {
	if file == "" {
		return fmt.Errorf("--file is required")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	report, err := analyzer.AnalyzeWorkbook(data)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: estimate <command> [flags]

commands:
  parse    parse an estimate workbook into divisions and line items
  analyze  score worksheets and recommend the estimate sheet

run "estimate <command> -h" for command flags
`)
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
