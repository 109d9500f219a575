package config

import (
	"fmt"
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Parser  ParserConfig
	Output  OutputConfig
	Logging LoggingConfig
}

type ParserConfig struct {
	SheetName  string // empty triggers analyzer-based auto-selection
	HeaderRows int
	MetaRows   int
	Tolerance  float64
}

type OutputConfig struct {
	Format string // json, csv or pack
	Path   string // empty writes to stdout
}

type LoggingConfig struct {
	Level string
	JSON  bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Parser: ParserConfig{
			SheetName:  getEnv("ESTIMATE_SHEET_NAME", ""),
			HeaderRows: getEnvAsInt("ESTIMATE_HEADER_ROWS", 6),
			MetaRows:   getEnvAsInt("ESTIMATE_META_ROWS", 10),
			Tolerance:  getEnvAsFloat("ESTIMATE_TOLERANCE", 0.01),
		},
		Output: OutputConfig{
			Format: getEnv("ESTIMATE_OUTPUT_FORMAT", "json"),
			Path:   getEnv("ESTIMATE_OUTPUT_PATH", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			JSON:  getEnvAsBool("LOG_JSON", false),
		},
	}

	if cfg.Parser.HeaderRows <= 0 {
		return nil, fmt.Errorf("ESTIMATE_HEADER_ROWS must be positive, got %d", cfg.Parser.HeaderRows)
	}
	if cfg.Parser.Tolerance < 0 {
		return nil, fmt.Errorf("ESTIMATE_TOLERANCE must be non-negative, got %g", cfg.Parser.Tolerance)
	}
	switch cfg.Output.Format {
	case "json", "csv", "pack":
	default:
		return nil, fmt.Errorf("ESTIMATE_OUTPUT_FORMAT must be json, csv or pack, got %q", cfg.Output.Format)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
