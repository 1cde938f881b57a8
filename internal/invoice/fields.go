package invoice

import (
	"regexp"
	"strings"

	"github.com/Ailurophile47/invoice-qc/pkg/models"
)

var (
	enInvoiceNoRe  = regexp.MustCompile(`(?i)(?:Invoice\s*(?:No\.?|Number)?\s*[:#]?\s*)([A-Za-z0-9\-_/]+)`)
	deInvoiceNoRe  = regexp.MustCompile(`(?i)(?:Rechnungs(?:nr\.|nummer)?|Belegnr\.?)\s*[:#]?\s*([A-Za-z0-9\-_/]+)`)
	dateRe         = regexp.MustCompile(`(\d{4}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`)
	amountTokenRe  = regexp.MustCompile(`[0-9.,]+`)
	currencyCodeRe = regexp.MustCompile(`(?i)\b(EUR|USD|CHF|GBP)\b`)
)

// Totals and VAT keyword lists used both for amount classification and as
// stop markers when scanning item tables.
var (
	enTotalKeywords = []string{"total", "subtotal", "grand total", "amount due"}
	deTotalKeywords = []string{"gesamtwert", "gesamtbetrag", "betrag", "gesamt", "gesamtwert inkl", "gesamtwert inkl. mwst"}
	enVATKeywords   = []string{"tax", "vat"}
	deVATKeywords   = []string{"mwst", "umsatzsteuer"}
)

// ExtractInvoiceNumber pulls the invoice number following a language
// specific label such as "Invoice No:" or "Rechnungsnr.". Returns nil when
// no label is present.
func ExtractInvoiceNumber(text string, lang Language) *string {
	re := enInvoiceNoRe
	if lang == LanguageGerman {
		re = deInvoiceNoRe
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	number := strings.TrimSpace(m[1])
	if number == "" {
		return nil
	}
	return &number
}

// ExtractDates returns the first two date-shaped strings in the document,
// interpreted as invoice date and due date. The raw matches are preserved
// unchanged; parsing is deferred to validation.
func ExtractDates(text string) (invoiceDate, dueDate *models.Date) {
	matches := dateRe.FindAllString(text, 2)
	if len(matches) > 0 {
		d := models.NewDate(matches[0])
		invoiceDate = &d
	}
	if len(matches) > 1 {
		d := models.NewDate(matches[1])
		dueDate = &d
	}
	return invoiceDate, dueDate
}

// ExtractTotals scans the document bottom-up for labeled amount lines and
// classifies the last numeric token on each into net, tax and gross totals.
// Each slot keeps the first (lowest) match; lines whose slot is already
// filled fall through to the next matching category.
func ExtractTotals(text string, lang Language) (net, tax, gross *float64) {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.ToLower(lines[i])
		tokens := amountTokenRe.FindAllString(line, -1)
		if len(tokens) == 0 {
			continue
		}
		value, ok := NormalizeNumber(tokens[len(tokens)-1], lang)
		if !ok {
			continue
		}

		if lang == LanguageGerman {
			switch {
			case tax == nil && containsAny(line, "mwst", "ust", "umsatzsteuer"):
				tax = &value
			case gross == nil && containsAny(line, "gesamtwert inkl", "gesamtwert inkl.", "gesamtwert", "gesamtbetrag", "gesamt"):
				gross = &value
			case net == nil && strings.Contains(line, "netto"):
				net = &value
			case gross == nil && containsAny(line, deTotalKeywords...):
				gross = &value
			}
			continue
		}

		switch {
		case tax == nil && containsAny(line, enVATKeywords...):
			tax = &value
		case gross == nil && containsAny(line, enTotalKeywords...):
			gross = &value
		case net == nil && strings.Contains(line, "net"):
			net = &value
		}
	}
	return net, tax, gross
}

// ExtractCurrency detects the invoice currency. An explicit three-letter
// code anywhere in the text wins; otherwise a "eur" substring or the €
// symbol implies EUR. Returns nil when nothing matches.
func ExtractCurrency(text string) *string {
	if m := currencyCodeRe.FindStringSubmatch(text); m != nil {
		code := strings.ToUpper(m[1])
		return &code
	}
	lowered := strings.ToLower(text)
	if strings.Contains(lowered, "eur") || strings.Contains(text, "€") {
		code := "EUR"
		return &code
	}
	return nil
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
