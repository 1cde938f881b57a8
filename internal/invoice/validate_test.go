package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ailurophile47/invoice-qc/internal/invoice"
	"github.com/Ailurophile47/invoice-qc/pkg/models"
)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }
func datePtr(raw string) *models.Date {
	d := models.NewDate(raw)
	return &d
}

// completeInvoice returns a record that passes every check.
func completeInvoice() *models.Invoice {
	return &models.Invoice{
		InvoiceNumber: strPtr("INV-2024-001"),
		InvoiceDate:   datePtr("2024-03-15"),
		SellerName:    strPtr("Acme GmbH"),
		BuyerName:     strPtr("Example Corp"),
		Currency:      strPtr("EUR"),
		NetTotal:      floatPtr(100.00),
		TaxAmount:     floatPtr(19.00),
		GrossTotal:    floatPtr(119.00),
		LineItems: []models.LineItem{
			models.NewLineItem(strPtr("Widget"), floatPtr(4), floatPtr(15), nil),
			models.NewLineItem(strPtr("Gadget"), floatPtr(2), floatPtr(20), nil),
		},
	}
}

func errorCodes(result models.ValidationResult) []string {
	codes := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		codes = append(codes, e.Code)
	}
	return codes
}

func TestValidateInvoiceAcceptsCompleteRecord(t *testing.T) {
	result := invoice.ValidateInvoice(completeInvoice())

	assert.True(t, result.IsValid)
	assert.NotNil(t, result.Errors)
	assert.Empty(t, result.Errors)
	require.NotNil(t, result.InvoiceID)
	assert.Equal(t, "INV-2024-001", *result.InvoiceID)
}

func TestValidateInvoiceReportsMissingFieldsInOrder(t *testing.T) {
	result := invoice.ValidateInvoice(&models.Invoice{LineItems: []models.LineItem{}})

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{
		models.CodeMissingInvoiceNumber,
		models.CodeMissingSellerName,
		models.CodeMissingBuyerName,
	}, errorCodes(result))
	assert.Nil(t, result.InvoiceID)
}

func TestValidateInvoiceTreatsWhitespaceAsMissing(t *testing.T) {
	inv := completeInvoice()
	inv.InvoiceNumber = strPtr("   ")

	result := invoice.ValidateInvoice(inv)
	assert.False(t, result.IsValid)
	assert.Contains(t, errorCodes(result), models.CodeMissingInvoiceNumber)
}

func TestValidateInvoiceMessages(t *testing.T) {
	result := invoice.ValidateInvoice(&models.Invoice{})

	require.Len(t, result.Errors, 3)
	assert.Equal(t, "Invoice number must not be empty.", result.Errors[0].Message)
	require.NotNil(t, result.Errors[0].Field)
	assert.Equal(t, "invoice_number", *result.Errors[0].Field)
	assert.Equal(t, "Seller name must not be empty.", result.Errors[1].Message)
	assert.Equal(t, "Buyer name must not be empty.", result.Errors[2].Message)
}

func TestValidateInvoiceDateFormats(t *testing.T) {
	parseable := []string{
		"2024-03-05", "05-03-2024", "5/3/2024", "2024/3/5", "03/15/2024",
	}
	for _, raw := range parseable {
		t.Run("accepts "+raw, func(t *testing.T) {
			inv := completeInvoice()
			inv.InvoiceDate = datePtr(raw)
			result := invoice.ValidateInvoice(inv)
			assert.NotContains(t, errorCodes(result), models.CodeInvalidInvoiceDate)
		})
	}

	unparseable := []string{"15.03.2024", "March 5, 2024", "2024-13-40", "15/04/24"}
	for _, raw := range unparseable {
		t.Run("rejects "+raw, func(t *testing.T) {
			inv := completeInvoice()
			inv.InvoiceDate = datePtr(raw)
			result := invoice.ValidateInvoice(inv)
			assert.Contains(t, errorCodes(result), models.CodeInvalidInvoiceDate)
			assert.False(t, result.IsValid)
		})
	}

	t.Run("absent date is not an error", func(t *testing.T) {
		inv := completeInvoice()
		inv.InvoiceDate = nil
		result := invoice.ValidateInvoice(inv)
		assert.NotContains(t, errorCodes(result), models.CodeInvalidInvoiceDate)
	})
}

func TestValidateInvoiceTotalConsistency(t *testing.T) {
	t.Run("difference above tolerance is flagged", func(t *testing.T) {
		inv := completeInvoice()
		inv.GrossTotal = floatPtr(119.60)
		result := invoice.ValidateInvoice(inv)
		assert.Contains(t, errorCodes(result), models.CodeTotalMismatch)
	})

	t.Run("difference at exactly the tolerance passes", func(t *testing.T) {
		inv := completeInvoice()
		inv.GrossTotal = floatPtr(119.50)
		result := invoice.ValidateInvoice(inv)
		assert.NotContains(t, errorCodes(result), models.CodeTotalMismatch)
	})

	t.Run("absent operand disables the check", func(t *testing.T) {
		inv := completeInvoice()
		inv.TaxAmount = nil
		inv.GrossTotal = floatPtr(999.00)
		result := invoice.ValidateInvoice(inv)
		assert.NotContains(t, errorCodes(result), models.CodeTotalMismatch)
	})
}

func TestValidateInvoiceLineItemSum(t *testing.T) {
	t.Run("sum off by more than tolerance is flagged", func(t *testing.T) {
		inv := completeInvoice()
		inv.LineItems = []models.LineItem{
			models.NewLineItem(strPtr("Widget"), nil, nil, floatPtr(60.00)),
			models.NewLineItem(strPtr("Gadget"), nil, nil, floatPtr(39.00)),
		}
		result := invoice.ValidateInvoice(inv)
		assert.Contains(t, errorCodes(result), models.CodeLineItemsTotalMismatch)
	})

	t.Run("items without totals are skipped in the sum", func(t *testing.T) {
		inv := completeInvoice()
		inv.LineItems = []models.LineItem{
			models.NewLineItem(strPtr("Widget"), nil, nil, floatPtr(50.00)),
			models.NewLineItem(strPtr("Freight"), nil, nil, nil),
			models.NewLineItem(strPtr("Gadget"), nil, nil, floatPtr(49.80)),
		}
		result := invoice.ValidateInvoice(inv)
		assert.NotContains(t, errorCodes(result), models.CodeLineItemsTotalMismatch)
	})

	t.Run("no items disables the check", func(t *testing.T) {
		inv := completeInvoice()
		inv.LineItems = []models.LineItem{}
		result := invoice.ValidateInvoice(inv)
		assert.NotContains(t, errorCodes(result), models.CodeLineItemsTotalMismatch)
	})

	t.Run("absent net total disables the check", func(t *testing.T) {
		inv := completeInvoice()
		inv.NetTotal = nil
		inv.TaxAmount = nil
		result := invoice.ValidateInvoice(inv)
		assert.NotContains(t, errorCodes(result), models.CodeLineItemsTotalMismatch)
	})
}

func TestValidateInvoiceNegativeTotals(t *testing.T) {
	inv := completeInvoice()
	inv.NetTotal = floatPtr(-100.00)
	inv.TaxAmount = floatPtr(-19.00)
	inv.GrossTotal = floatPtr(-119.00)
	inv.LineItems = []models.LineItem{}

	result := invoice.ValidateInvoice(inv)
	assert.False(t, result.IsValid)

	var fields []string
	for _, e := range result.Errors {
		if e.Code == models.CodeNegativeTotal {
			require.NotNil(t, e.Field)
			fields = append(fields, *e.Field)
		}
	}
	assert.Equal(t, []string{"net_total", "tax_amount", "gross_total"}, fields)

	for _, e := range result.Errors {
		if e.Code == models.CodeNegativeTotal && *e.Field == "net_total" {
			assert.Equal(t, "net_total must not be negative.", e.Message)
		}
	}
}

func TestValidateInvoiceAccumulatesAllFindings(t *testing.T) {
	inv := &models.Invoice{
		InvoiceDate: datePtr("31.12.2024"),
		NetTotal:    floatPtr(100.00),
		TaxAmount:   floatPtr(19.00),
		GrossTotal:  floatPtr(-150.00),
		LineItems: []models.LineItem{
			models.NewLineItem(strPtr("Widget"), nil, nil, floatPtr(10.00)),
		},
	}

	result := invoice.ValidateInvoice(inv)
	assert.Equal(t, []string{
		models.CodeMissingInvoiceNumber,
		models.CodeMissingSellerName,
		models.CodeMissingBuyerName,
		models.CodeInvalidInvoiceDate,
		models.CodeTotalMismatch,
		models.CodeLineItemsTotalMismatch,
		models.CodeNegativeTotal,
	}, errorCodes(result))
}

func TestValidateInvoiceNilRecord(t *testing.T) {
	result := invoice.ValidateInvoice(nil)
	assert.False(t, result.IsValid)
	assert.Nil(t, result.InvoiceID)
	assert.Len(t, result.Errors, 3)
}

func TestValidateInvoiceIsDeterministic(t *testing.T) {
	inv := completeInvoice()
	inv.GrossTotal = floatPtr(200.00)

	first := invoice.ValidateInvoice(inv)
	second := invoice.ValidateInvoice(inv)
	assert.Equal(t, first, second)
}
