// Package models defines the invoice data contract shared by extraction,
// validation and the outer CLI/HTTP surfaces.
//
// Every field of an Invoice is optional: the type represents a candidate
// record assembled from heuristic extraction, and completeness is judged by
// validation, not construction. Optional scalars are pointers so that an
// absent value is distinguishable from a zero value; JSON output keeps
// absent fields as explicit nulls to match the wire format consumed by
// downstream tooling.
package models

import "encoding/json"

// LineItem is one billable row of an invoice table.
//
// line_total is derived as quantity*unit_price exactly once, at
// construction, when it is absent and both operands are present. An
// explicitly provided line_total is never overridden, and the value is
// never re-derived later.
type LineItem struct {
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	LineTotal   *float64 `json:"line_total"`
}

// NewLineItem builds a line item and applies the one-time line_total
// derivation.
func NewLineItem(description *string, quantity, unitPrice, lineTotal *float64) LineItem {
	item := LineItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   lineTotal,
	}
	item.deriveLineTotal()
	return item
}

func (li *LineItem) deriveLineTotal() {
	if li.LineTotal == nil && li.Quantity != nil && li.UnitPrice != nil {
		total := *li.Quantity * *li.UnitPrice
		li.LineTotal = &total
	}
}

// UnmarshalJSON applies the same derivation to records arriving as JSON,
// so a decoded line item is indistinguishable from a constructed one.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	type plain LineItem
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*li = LineItem(p)
	li.deriveLineTotal()
	return nil
}

// Invoice is a candidate invoice record.
type Invoice struct {
	// Business key
	InvoiceNumber *string `json:"invoice_number"`

	// Dates, parsed best-effort; raw strings are kept when no format matched
	InvoiceDate *Date `json:"invoice_date"`
	DueDate     *Date `json:"due_date"`

	// Parties
	SellerName  *string `json:"seller_name"`
	SellerTaxID *string `json:"seller_tax_id"`
	BuyerName   *string `json:"buyer_name"`
	BuyerTaxID  *string `json:"buyer_tax_id"`

	// Amounts
	Currency   *string  `json:"currency"`
	NetTotal   *float64 `json:"net_total"`
	TaxAmount  *float64 `json:"tax_amount"`
	GrossTotal *float64 `json:"gross_total"`

	// Table rows, never nil after construction or decoding
	LineItems []LineItem `json:"line_items"`
}

// UnmarshalJSON keeps LineItems non-nil so callers never distinguish a
// missing array from an empty one.
func (inv *Invoice) UnmarshalJSON(data []byte) error {
	type plain Invoice
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*inv = Invoice(p)
	if inv.LineItems == nil {
		inv.LineItems = []LineItem{}
	}
	return nil
}

// WithInvoiceNumber returns a copy of the invoice with the number set.
// The receiver is left untouched; this is the only sanctioned way to
// change a record after assembly (filename backfill at the API boundary).
func (inv Invoice) WithInvoiceNumber(number string) Invoice {
	out := inv
	out.InvoiceNumber = &number
	out.LineItems = make([]LineItem, len(inv.LineItems))
	copy(out.LineItems, inv.LineItems)
	return out
}
