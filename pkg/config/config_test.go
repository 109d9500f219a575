package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Parser.SheetName)
	assert.Equal(t, 6, cfg.Parser.HeaderRows)
	assert.Equal(t, 10, cfg.Parser.MetaRows)
	assert.Equal(t, 0.01, cfg.Parser.Tolerance)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ESTIMATE_SHEET_NAME", "Estimate - Shed")
	t.Setenv("ESTIMATE_HEADER_ROWS", "8")
	t.Setenv("ESTIMATE_TOLERANCE", "0.05")
	t.Setenv("ESTIMATE_OUTPUT_FORMAT", "csv")
	t.Setenv("LOG_JSON", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Estimate - Shed", cfg.Parser.SheetName)
	assert.Equal(t, 8, cfg.Parser.HeaderRows)
	assert.Equal(t, 0.05, cfg.Parser.Tolerance)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.True(t, cfg.Logging.JSON)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero header rows", "ESTIMATE_HEADER_ROWS", "0"},
		{"negative tolerance", "ESTIMATE_TOLERANCE", "-0.5"},
		{"unknown output format", "ESTIMATE_OUTPUT_FORMAT", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
