package invoice

import (
	"regexp"
	"strings"

	"github.com/Ailurophile47/invoice-qc/pkg/models"
)

var itemNumberRe = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?`)

// ParseLineItems extracts item rows from the region between the table
// header and the totals block. A row must carry at least two numeric
// tokens and a non-empty description; the tokens are read as quantity,
// unit price and line total in that order. Returns an empty, non-nil
// slice when no rows qualify.
func ParseLineItems(text string, lang Language) []models.LineItem {
	items := []models.LineItem{}

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line != "" {
			lines = append(lines, line)
		}
	}

	start := 0
	if idx := findTableHeader(lines, lang); idx >= 0 {
		start = idx + 1
	}
	stopKeywords := tableStopKeywords(lang)

	for _, line := range lines[start:] {
		lowered := strings.ToLower(line)
		if containsAny(lowered, stopKeywords...) {
			break
		}

		tokens := itemNumberRe.FindAllString(line, -1)
		if len(tokens) < 2 {
			continue
		}

		desc := itemNumberRe.ReplaceAllString(line, "")
		desc = strings.Trim(desc, " -:|,.")
		if desc == "" {
			continue
		}

		var lineTotal *float64
		if len(tokens) > 2 {
			lineTotal = numberPtr(tokens[2], lang)
		}
		items = append(items, models.NewLineItem(&desc, numberPtr(tokens[0], lang), numberPtr(tokens[1], lang), lineTotal))
	}
	return items
}

// findTableHeader returns the index of the first line that looks like an
// item table header, or -1 when the document has none.
func findTableHeader(lines []string, lang Language) int {
	for i, line := range lines {
		lowered := strings.ToLower(line)
		if lang == LanguageGerman {
			if (strings.Contains(lowered, "pos") && strings.Contains(lowered, "artikel")) ||
				(strings.Contains(lowered, "artikelbeschreibung") && strings.Contains(lowered, "preis")) ||
				(strings.Contains(lowered, "menge") && strings.Contains(lowered, "bestellwert")) {
				return i
			}
			continue
		}
		if (strings.Contains(lowered, "description") && strings.Contains(lowered, "price")) ||
			(strings.Contains(lowered, "quantity") && strings.Contains(lowered, "description")) {
			return i
		}
	}
	return -1
}

// tableStopKeywords returns the markers that end the item region: the
// totals labels plus the VAT labels for the language.
func tableStopKeywords(lang Language) []string {
	if lang == LanguageGerman {
		return append(append([]string{}, deTotalKeywords...), deVATKeywords...)
	}
	return append(append([]string{}, enTotalKeywords...), enVATKeywords...)
}

func numberPtr(token string, lang Language) *float64 {
	if v, ok := NormalizeNumber(token, lang); ok {
		return &v
	}
	return nil
}
