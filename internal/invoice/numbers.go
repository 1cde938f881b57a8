package invoice

import (
	"regexp"
	"strconv"
	"strings"
)

// numberCleanRe drops currency symbols and other stray characters, keeping
// only digits, separators, and a sign.
var numberCleanRe = regexp.MustCompile(`[^\d,.\-]`)

// NormalizeNumber converts a locale-formatted numeric token into a float.
// German convention: thousands sep = "." and decimal = "," ("1.285,20").
// English convention: thousands sep = "," and decimal = "." ("1,285.20").
// For German input the LAST comma is the decimal separator; everything
// before it loses its periods. Without a comma, all periods are treated as
// thousands separators. The boolean is false when the cleaned token does
// not parse; that is a data-quality signal, not an error.
func NormalizeNumber(raw string, lang Language) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	s := numberCleanRe.ReplaceAllString(strings.TrimSpace(raw), "")

	var normalized string
	if lang == LanguageGerman {
		if idx := strings.LastIndex(s, ","); idx >= 0 {
			integerPart := strings.ReplaceAll(s[:idx], ",", "")
			integerPart = strings.ReplaceAll(integerPart, ".", "")
			normalized = integerPart + "." + s[idx+1:]
		} else {
			normalized = strings.ReplaceAll(s, ".", "")
		}
	} else {
		normalized = strings.ReplaceAll(s, ",", "")
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
