package invoice

import (
	"sort"

	"github.com/Ailurophile47/invoice-qc/pkg/models"
)

// topErrorLimit caps the number of error codes surfaced in the summary.
const topErrorLimit = 5

// duplicateKey identifies an invoice across the dataset. A nil field and
// an empty one collapse to the same key, so a blank number matches an
// absent one.
type duplicateKey struct {
	number string
	seller string
}

func keyOf(inv *models.Invoice) duplicateKey {
	var key duplicateKey
	if inv.InvoiceNumber != nil {
		key.number = *inv.InvoiceNumber
	}
	if inv.SellerName != nil {
		key.seller = *inv.SellerName
	}
	return key
}

// ValidateInvoices validates a whole dataset: each invoice individually,
// plus duplicate detection on the (invoice_number, seller_name) pair
// across all of them. Results keep input order; every member of a
// duplicate group is flagged, not just the later ones.
func ValidateInvoices(invoices []*models.Invoice) models.BulkReport {
	counts := make(map[duplicateKey]int, len(invoices))
	for _, inv := range invoices {
		if inv == nil {
			inv = &models.Invoice{}
		}
		counts[keyOf(inv)]++
	}

	results := make([]models.ValidationResult, 0, len(invoices))
	for _, inv := range invoices {
		if inv == nil {
			inv = &models.Invoice{}
		}
		result := ValidateInvoice(inv)
		if counts[keyOf(inv)] > 1 {
			result.Errors = append(result.Errors, validationError(models.CodeDuplicateInvoice, "invoice_number",
				"Duplicate combination of invoice_number and seller_name detected across the dataset."))
			result.IsValid = false
		}
		results = append(results, result)
	}

	valid := 0
	for _, r := range results {
		if r.IsValid {
			valid++
		}
	}

	return models.BulkReport{
		Results: results,
		Summary: models.ValidationSummary{
			TotalInvoices:   len(results),
			ValidInvoices:   valid,
			InvalidInvoices: len(results) - valid,
			TopErrors:       topErrors(results),
		},
	}
}

// topErrors ranks error codes by frequency, most frequent first. Ties
// keep the order codes were first seen in, and at most topErrorLimit
// codes are returned. The slice is never nil.
func topErrors(results []models.ValidationResult) []string {
	codeCounts := make(map[string]int)
	var codeOrder []string
	for _, result := range results {
		for _, e := range result.Errors {
			if _, seen := codeCounts[e.Code]; !seen {
				codeOrder = append(codeOrder, e.Code)
			}
			codeCounts[e.Code]++
		}
	}

	sort.SliceStable(codeOrder, func(i, j int) bool {
		return codeCounts[codeOrder[i]] > codeCounts[codeOrder[j]]
	})

	top := make([]string, 0, topErrorLimit)
	for _, code := range codeOrder {
		if len(top) == topErrorLimit {
			break
		}
		top = append(top, code)
	}
	return top
}
