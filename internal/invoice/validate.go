package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ailurophile47/invoice-qc/pkg/models"
)

// amountTolerance is the absolute difference, in currency units, still
// accepted when cross-checking totals. Extracted amounts carry rounding
// noise from locale normalization, so equality is never exact.
const amountTolerance = 0.5

// dateLayouts are the accepted invoice date formats. Non-padded layout
// elements also match zero-padded input, so each covers both variants.
var dateLayouts = []string{
	"2006-1-2",
	"2-1-2006",
	"2/1/2006",
	"2006/1/2",
	"1/2/2006",
}

// ValidateInvoice checks one invoice for completeness and arithmetic
// consistency. Checks run in a fixed order and all findings are
// reported; one broken field never masks another.
func ValidateInvoice(inv *models.Invoice) models.ValidationResult {
	if inv == nil {
		inv = &models.Invoice{LineItems: []models.LineItem{}}
	}
	errs := []models.ValidationError{}

	if isBlank(inv.InvoiceNumber) {
		errs = append(errs, validationError(models.CodeMissingInvoiceNumber, "invoice_number",
			"Invoice number must not be empty."))
	}
	if isBlank(inv.SellerName) {
		errs = append(errs, validationError(models.CodeMissingSellerName, "seller_name",
			"Seller name must not be empty."))
	}
	if isBlank(inv.BuyerName) {
		errs = append(errs, validationError(models.CodeMissingBuyerName, "buyer_name",
			"Buyer name must not be empty."))
	}

	if inv.InvoiceDate != nil && !parseableDate(*inv.InvoiceDate) {
		errs = append(errs, validationError(models.CodeInvalidInvoiceDate, "invoice_date",
			"Invoice date could not be parsed."))
	}

	if inv.NetTotal != nil && inv.TaxAmount != nil && inv.GrossTotal != nil {
		if !almostEqual(*inv.NetTotal+*inv.TaxAmount, *inv.GrossTotal) {
			errs = append(errs, validationError(models.CodeTotalMismatch, "gross_total",
				fmt.Sprintf("net_total + tax_amount should equal gross_total within %g tolerance.", amountTolerance)))
		}
	}

	if inv.NetTotal != nil && len(inv.LineItems) > 0 {
		var lineSum float64
		for _, item := range inv.LineItems {
			if item.LineTotal != nil {
				lineSum += *item.LineTotal
			}
		}
		if !almostEqual(lineSum, *inv.NetTotal) {
			errs = append(errs, validationError(models.CodeLineItemsTotalMismatch, "line_items",
				fmt.Sprintf("Sum of line item totals should equal net_total within %g tolerance.", amountTolerance)))
		}
	}

	for _, amount := range []struct {
		field string
		value *float64
	}{
		{"net_total", inv.NetTotal},
		{"tax_amount", inv.TaxAmount},
		{"gross_total", inv.GrossTotal},
	} {
		if amount.value != nil && *amount.value < 0 {
			errs = append(errs, validationError(models.CodeNegativeTotal, amount.field,
				fmt.Sprintf("%s must not be negative.", amount.field)))
		}
	}

	var invoiceID *string
	if inv.InvoiceNumber != nil {
		id := *inv.InvoiceNumber
		invoiceID = &id
	}
	return models.ValidationResult{
		InvoiceID: invoiceID,
		IsValid:   len(errs) == 0,
		Errors:    errs,
	}
}

func validationError(code, field, message string) models.ValidationError {
	f := field
	return models.ValidationError{Code: code, Message: message, Field: &f}
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= amountTolerance
}

// parseableDate accepts dates already parsed at construction and raw
// strings matching any accepted layout.
func parseableDate(d models.Date) bool {
	if d.Parsed() {
		return true
	}
	raw := strings.TrimSpace(d.Raw())
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, raw); err == nil {
			return true
		}
	}
	return false
}
