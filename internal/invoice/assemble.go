package invoice

import (
	"github.com/Ailurophile47/invoice-qc/pkg/models"
)

// AssembleInvoice runs every field heuristic over the extracted text and
// builds a candidate record. Party names and tax IDs are left unset; no
// heuristic exists for them yet and validation flags their absence.
// Empty input yields an empty invoice rather than an error.
func AssembleInvoice(text string) *models.Invoice {
	inv := &models.Invoice{LineItems: []models.LineItem{}}
	if text == "" {
		return inv
	}

	lang := DetectLanguage(text)
	inv.NetTotal, inv.TaxAmount, inv.GrossTotal = ExtractTotals(text, lang)
	inv.InvoiceDate, inv.DueDate = ExtractDates(text)
	inv.InvoiceNumber = ExtractInvoiceNumber(text, lang)
	inv.Currency = ExtractCurrency(text)
	inv.LineItems = ParseLineItems(text, lang)
	return inv
}
