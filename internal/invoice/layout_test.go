package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ailurophile47/invoice-qc/internal/invoice"
	"github.com/Ailurophile47/invoice-qc/internal/pdftext"
)

// word builds a positioned word 10 units tall whose vertical center sits
// at the given coordinate.
func word(text string, left, center float64) pdftext.Word {
	return pdftext.Word{Text: text, Left: left, Top: center - 5, Bottom: center + 5}
}

func TestReconstructLinesEmptyInput(t *testing.T) {
	assert.Empty(t, invoice.ReconstructLines(nil))
	assert.Empty(t, invoice.ReconstructLines([]pdftext.Word{}))
}

func TestReconstructLinesGroupsByVerticalCenter(t *testing.T) {
	words := []pdftext.Word{
		word("Rechnungsnr.:", 50, 100),
		word("RE-001", 150, 100),
		word("Gesamtbetrag:", 50, 300),
		word("119,00", 200, 300),
	}

	lines := invoice.ReconstructLines(words)
	require.Len(t, lines, 2)
	assert.Equal(t, "Rechnungsnr.: RE-001", lines[0])
	assert.Equal(t, "Gesamtbetrag: 119,00", lines[1])
}

func TestReconstructLinesOrdersWordsByLeftEdge(t *testing.T) {
	// Words arrive out of visual order, as PDF content streams often do.
	words := []pdftext.Word{
		word("119.00", 300, 100),
		word("Total:", 50, 100),
	}

	lines := invoice.ReconstructLines(words)
	require.Len(t, lines, 1)
	assert.Equal(t, "Total: 119.00", lines[0])
}

func TestReconstructLinesOrdersLinesTopDown(t *testing.T) {
	words := []pdftext.Word{
		word("third", 10, 500),
		word("first", 10, 100),
		word("second", 10, 250),
	}

	lines := invoice.ReconstructLines(words)
	assert.Equal(t, []string{"first", "second", "third"}, lines)
}

func TestReconstructLinesToleratesBaselineWobble(t *testing.T) {
	words := []pdftext.Word{
		word("Invoice", 10, 100),
		word("No:", 80, 103), // 3.0 away, still the same line
		word("next", 10, 103.5),
	}

	lines := invoice.ReconstructLines(words)
	require.Len(t, lines, 2)
	assert.Equal(t, "Invoice No:", lines[0])
	assert.Equal(t, "next", lines[1])
}

func TestReconstructLinesAnchorsOnFirstWordOfLine(t *testing.T) {
	// The second word joins the first line, but the line keeps the first
	// word's center, so a third word drifting further down opens a new
	// line even though it is close to the second word.
	words := []pdftext.Word{
		word("a", 10, 100),
		word("b", 30, 103),
		word("c", 50, 105),
	}

	lines := invoice.ReconstructLines(words)
	assert.Equal(t, []string{"a b", "c"}, lines)
}

func TestReconstructLinesDropsEmptyLines(t *testing.T) {
	words := []pdftext.Word{
		{Text: "", Left: 10, Top: 95, Bottom: 105},
		word("kept", 10, 300),
	}

	lines := invoice.ReconstructLines(words)
	assert.Equal(t, []string{"kept"}, lines)
}
