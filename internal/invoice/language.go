package invoice

import "strings"

// Language identifies the invoice text language, which steers the
// locale-specific number formats and keyword sets used by the extractors.
type Language string

const (
	// LanguageGerman selects German conventions ("1.285,20", "Rechnungsnr").
	LanguageGerman Language = "de"

	// LanguageEnglish selects English conventions ("1,285.20", "Invoice No").
	LanguageEnglish Language = "en"
)

// Marker words that are characteristic of invoices in each language.
// Detection counts which markers appear, not how often.
var (
	germanMarkers  = []string{"gesamtwert", "mwst", "kundennummer", "bestellung", "artikelbeschreibung", "menge"}
	englishMarkers = []string{"invoice", "total", "tax", "quantity", "description"}
)

// DetectLanguage classifies invoice text as German or English by marker
// presence. Ties go to German; a text with zero German markers is English
// regardless of how few English markers it has.
func DetectLanguage(text string) Language {
	low := strings.ToLower(text)

	germanCount := 0
	for _, marker := range germanMarkers {
		if strings.Contains(low, marker) {
			germanCount++
		}
	}

	englishCount := 0
	for _, marker := range englishMarkers {
		if strings.Contains(low, marker) {
			englishCount++
		}
	}

	if germanCount >= englishCount && germanCount > 0 {
		return LanguageGerman
	}
	return LanguageEnglish
}
