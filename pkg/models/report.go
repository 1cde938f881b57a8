package models

// Validation error codes. The code set is the stable contract consumed by
// report readers; messages are free text.
const (
	CodeMissingInvoiceNumber   = "MISSING_INVOICE_NUMBER"
	CodeMissingSellerName      = "MISSING_SELLER_NAME"
	CodeMissingBuyerName       = "MISSING_BUYER_NAME"
	CodeInvalidInvoiceDate     = "INVALID_INVOICE_DATE"
	CodeTotalMismatch          = "TOTAL_MISMATCH"
	CodeLineItemsTotalMismatch = "LINE_ITEMS_TOTAL_MISMATCH"
	CodeNegativeTotal          = "NEGATIVE_TOTAL"
	CodeDuplicateInvoice       = "DUPLICATE_INVOICE"
)

// ValidationError describes one data-quality finding on an invoice.
// It is a value, created by validation and never mutated.
type ValidationError struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Field   *string `json:"field"`
}

// ValidationResult is the verdict for a single invoice.
type ValidationResult struct {
	InvoiceID *string           `json:"invoice_id"`
	IsValid   bool              `json:"is_valid"`
	Errors    []ValidationError `json:"errors"`
}

// ValidationSummary aggregates a batch. TotalInvoices always equals
// ValidInvoices + InvalidInvoices, and TopErrors holds at most the five
// most frequent codes, most frequent first, ties kept in first-seen order.
type ValidationSummary struct {
	TotalInvoices   int      `json:"total_invoices"`
	ValidInvoices   int      `json:"valid_invoices"`
	InvalidInvoices int      `json:"invalid_invoices"`
	TopErrors       []string `json:"top_errors"`
}

// BulkReport pairs per-invoice results, in input order, with the summary.
type BulkReport struct {
	Results []ValidationResult `json:"results"`
	Summary ValidationSummary  `json:"summary"`
}
