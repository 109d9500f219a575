package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain number", "1200", 1200},
		{"dollar sign and commas", "$1,234.50", 1234.5},
		{"spaces around", "  $500.00 ", 500},
		{"zero", "$0.00", 0},
		{"negative", "-45.25", -45.25},
		{"empty", "", 0},
		{"text junk", "TBD", 0},
		{"lone symbol", "$", 0},
		{"embedded text", "approx $750", 750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCurrency(tt.in))
		})
	}
}

func TestParseNumber(t *testing.T) {
	t.Run("parses plain numbers", func(t *testing.T) {
		v := ParseNumber("42.5")
		require.NotNil(t, v)
		assert.Equal(t, 42.5, *v)
	})

	t.Run("strips thousands separators", func(t *testing.T) {
		v := ParseNumber("1,250")
		require.NotNil(t, v)
		assert.Equal(t, 1250.0, *v)
	})

	t.Run("blank is absent, not zero", func(t *testing.T) {
		assert.Nil(t, ParseNumber(""))
		assert.Nil(t, ParseNumber("   "))
	})

	t.Run("zero is zero, not absent", func(t *testing.T) {
		v := ParseNumber("0")
		require.NotNil(t, v)
		assert.Equal(t, 0.0, *v)
	})

	t.Run("unparseable is absent", func(t *testing.T) {
		assert.Nil(t, ParseNumber("n/a"))
	})
}

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		in   string
		want string // "" means absent
	}{
		{"EA", "EA"},
		{"ea", "EA"},
		{"EACH", "EA"},
		{"LINEAR", "LF"},
		{"Lineal", "LF"},
		{"LIN", "LF"},
		{"SQUARE", "SF"},
		{"SQFT", "SF"},
		{"SQ", "SF"},
		{"CUBIC", "CY"},
		{"SY", "SY"},
		{"Hour", "HR"},
		{"HOURS", "HR"},
		{"LUMP", "LS"},
		{"Lump Sum", "LS"},
		{"LOT", "LS"},
		{"Month", "MO"},
		{"MONTHS", "MO"},
		{"LS.", "LS"},
		{"widgets", ""},
		{"TONS", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeUnit(tt.in)
			if tt.want == "" {
				assert.Nil(t, got, "expected %q to normalize to absent", tt.in)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, tt.want, *got)
			}
		})
	}
}

// Every non-nil normalized unit must be a member of the canonical set.
func TestNormalizeUnit_Closure(t *testing.T) {
	inputs := []string{"EA", "each", "LINEAR", "sqft", "CUBIC", "hours", "lump", "months", "SY", "LF", "bogus", "M2"}
	for _, in := range inputs {
		if got := NormalizeUnit(in); got != nil {
			_, ok := canonicalUnits[*got]
			assert.True(t, ok, "unit %q normalized to %q, outside the canonical set", in, *got)
		}
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "concrete-footings", Slugify("Concrete Footings"))
	assert.Equal(t, "demo-haul-off", Slugify("Demo & Haul-Off!"))
	assert.Equal(t, "8-cmu-wall", Slugify(`8" CMU Wall`))
	assert.Equal(t, "", Slugify("***"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.3, Round2(0.1+0.2))
	assert.Equal(t, 1234.57, Round2(1234.567))
	assert.Equal(t, 100.0, Round2(100.0))
	assert.Equal(t, -2.35, Round2(-2.345))
}
