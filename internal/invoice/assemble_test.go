package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ailurophile47/invoice-qc/internal/invoice"
)

const germanInvoiceText = `Musterfirma GmbH
Rechnungsnr.: RE-2024-001
Rechnungsdatum: 2024-03-15
Kundennummer: K-1001
Artikelbeschreibung Menge Preis
Schrauben 100 0,10
Muttern 50 0,20
Nettobetrag: 20,00
MwSt. 19%: 3,80
Gesamtbetrag: 23,80
Zahlbar in EUR`

const englishInvoiceText = `Acme Corp
Invoice No: INV-2024-042
Date: 2024-01-10
Due date: 2024-02-09
Description Quantity Price
Consulting services 10 150.00 1500.00
Hosting 1 50.00 50.00
Net total: 1550.00
VAT (19%): 294.50
Total: 1844.50
All amounts in USD`

func TestAssembleInvoiceGerman(t *testing.T) {
	inv := invoice.AssembleInvoice(germanInvoiceText)
	require.NotNil(t, inv)

	require.NotNil(t, inv.InvoiceNumber)
	assert.Equal(t, "RE-2024-001", *inv.InvoiceNumber)

	require.NotNil(t, inv.InvoiceDate)
	assert.Equal(t, "2024-03-15", inv.InvoiceDate.Raw())
	assert.Nil(t, inv.DueDate)

	require.NotNil(t, inv.NetTotal)
	assert.InDelta(t, 20.00, *inv.NetTotal, 1e-9)
	require.NotNil(t, inv.TaxAmount)
	assert.InDelta(t, 3.80, *inv.TaxAmount, 1e-9)
	require.NotNil(t, inv.GrossTotal)
	assert.InDelta(t, 23.80, *inv.GrossTotal, 1e-9)

	require.NotNil(t, inv.Currency)
	assert.Equal(t, "EUR", *inv.Currency)

	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, "Schrauben", *inv.LineItems[0].Description)
	assert.Equal(t, "Muttern", *inv.LineItems[1].Description)

	// Party names have no extraction heuristic and stay absent.
	assert.Nil(t, inv.SellerName)
	assert.Nil(t, inv.BuyerName)
}

func TestAssembleInvoiceEnglish(t *testing.T) {
	inv := invoice.AssembleInvoice(englishInvoiceText)
	require.NotNil(t, inv)

	require.NotNil(t, inv.InvoiceNumber)
	assert.Equal(t, "INV-2024-042", *inv.InvoiceNumber)

	require.NotNil(t, inv.InvoiceDate)
	assert.Equal(t, "2024-01-10", inv.InvoiceDate.Raw())
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, "2024-02-09", inv.DueDate.Raw())

	require.NotNil(t, inv.NetTotal)
	assert.InDelta(t, 1550.00, *inv.NetTotal, 1e-9)
	require.NotNil(t, inv.TaxAmount)
	assert.InDelta(t, 294.50, *inv.TaxAmount, 1e-9)
	require.NotNil(t, inv.GrossTotal)
	assert.InDelta(t, 1844.50, *inv.GrossTotal, 1e-9)

	require.NotNil(t, inv.Currency)
	assert.Equal(t, "USD", *inv.Currency)

	require.Len(t, inv.LineItems, 2)
	first := inv.LineItems[0]
	assert.Equal(t, "Consulting services", *first.Description)
	assert.InDelta(t, 10, *first.Quantity, 1e-9)
	assert.InDelta(t, 150.00, *first.UnitPrice, 1e-9)
	assert.InDelta(t, 1500.00, *first.LineTotal, 1e-9)
}

func TestAssembleInvoiceEmptyText(t *testing.T) {
	inv := invoice.AssembleInvoice("")
	require.NotNil(t, inv)

	assert.Nil(t, inv.InvoiceNumber)
	assert.Nil(t, inv.InvoiceDate)
	assert.Nil(t, inv.DueDate)
	assert.Nil(t, inv.NetTotal)
	assert.Nil(t, inv.TaxAmount)
	assert.Nil(t, inv.GrossTotal)
	assert.Nil(t, inv.Currency)
	assert.NotNil(t, inv.LineItems)
	assert.Empty(t, inv.LineItems)
}

func TestAssembleInvoiceUnstructuredText(t *testing.T) {
	inv := invoice.AssembleInvoice("just some prose with no billing structure at all")
	require.NotNil(t, inv)
	assert.Nil(t, inv.InvoiceNumber)
	assert.NotNil(t, inv.LineItems)
}
