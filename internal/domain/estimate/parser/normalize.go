package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyJunkRe = regexp.MustCompile(`[^0-9.\-]`)
	slugStripRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugDashRe     = regexp.MustCompile(`[\s-]+`)
)

// canonicalUnits is the closed set a parsed unit may take.
var canonicalUnits = map[string]struct{}{
	"EA": {}, "LF": {}, "SF": {}, "SY": {}, "CY": {}, "HR": {}, "LS": {}, "MO": {},
}

// unitSynonyms maps common spellings onto the canonical set. Anything not
// in this table or the canonical set normalizes to absent; an unrecognized
// token is never passed through.
var unitSynonyms = map[string]string{
	"EACH":     "EA",
	"LINEAR":   "LF",
	"LINEAL":   "LF",
	"LIN":      "LF",
	"SQUARE":   "SF",
	"SQFT":     "SF",
	"SQ":       "SF",
	"CUBIC":    "CY",
	"HOUR":     "HR",
	"HOURS":    "HR",
	"LUMP":     "LS",
	"LUMPSUM":  "LS",
	"LUMP SUM": "LS",
	"LOT":      "LS",
	"MONTH":    "MO",
	"MONTHS":   "MO",
}

// ParseCurrency converts currency text ("$1,234.50", "(500)", "1200") to a
// float. Every character that is not a digit, dot or minus is stripped
// before parsing. Blank or unparseable cells yield 0.0; a bad cell never
// aborts a parse.
func ParseCurrency(raw string) float64 {
	clean := currencyJunkRe.ReplaceAllString(strings.TrimSpace(raw), "")
	if clean == "" {
		return 0
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseNumber converts numeric text to a float, returning nil when the cell
// is blank or unparseable. Unlike ParseCurrency it preserves the
// zero-vs-absent distinction, which matters for quantities.
func ParseNumber(raw string) *float64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// NormalizeUnit canonicalizes a raw unit label to one of
// EA, LF, SF, SY, CY, HR, LS, MO. Unrecognized labels return nil.
func NormalizeUnit(raw string) *string {
	u := strings.ToUpper(strings.TrimSpace(raw))
	u = strings.TrimSuffix(u, ".")
	if u == "" {
		return nil
	}
	if _, ok := canonicalUnits[u]; ok {
		return &u
	}
	if canon, ok := unitSynonyms[u]; ok {
		return &canon
	}
	return nil
}

// Slugify lowercases text, strips punctuation and hyphenates whitespace,
// producing the identifier-safe fragment used inside line IDs.
func Slugify(text string) string {
	s := slugStripRe.ReplaceAllString(strings.ToLower(text), "")
	s = slugDashRe.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-")
}

// Round2 rounds to two decimal places through decimal arithmetic, avoiding
// the float drift of naive multiply-divide rounding on money values.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
