package pdftext

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glyph(s string, x, y, w, size float64) pdf.Text {
	return pdf.Text{Font: "Helvetica", FontSize: size, X: x, Y: y, W: w, S: s}
}

func TestAssembleWords_Empty(t *testing.T) {
	words := assembleWords(nil, defaultPageTop)

	assert.NotNil(t, words)
	assert.Empty(t, words)
}

func TestAssembleWords_MergesAdjacentRuns(t *testing.T) {
	texts := []pdf.Text{
		glyph("Inv", 72, 700, 18, 12),
		glyph("oice", 90, 700, 24, 12),
	}

	words := assembleWords(texts, defaultPageTop)

	require.Len(t, words, 1)
	assert.Equal(t, "Invoice", words[0].Text)
	assert.Equal(t, 72.0, words[0].Left)
}

func TestAssembleWords_WhitespaceRunSplits(t *testing.T) {
	texts := []pdf.Text{
		glyph("Total", 72, 700, 30, 12),
		glyph(" ", 102, 700, 3, 12),
		glyph("100", 105, 700, 20, 12),
	}

	words := assembleWords(texts, defaultPageTop)

	require.Len(t, words, 2)
	assert.Equal(t, "Total", words[0].Text)
	assert.Equal(t, "100", words[1].Text)
}

func TestAssembleWords_LargeGapSplits(t *testing.T) {
	// Right-aligned amount far from its label, no explicit space glyph.
	texts := []pdf.Text{
		glyph("Gesamtbetrag", 72, 300, 80, 10),
		glyph("119,00", 480, 300, 36, 10),
	}

	words := assembleWords(texts, defaultPageTop)

	require.Len(t, words, 2)
	assert.Equal(t, "Gesamtbetrag", words[0].Text)
	assert.Equal(t, "119,00", words[1].Text)
	assert.Equal(t, 480.0, words[1].Left)
}

func TestAssembleWords_SmallGapWithinWord(t *testing.T) {
	// Kerned runs inside one word sit closer than a third of the font size.
	texts := []pdf.Text{
		glyph("Rech", 72, 700, 26, 12),
		glyph("nung", 99, 700, 28, 12),
	}

	words := assembleWords(texts, defaultPageTop)

	require.Len(t, words, 1)
	assert.Equal(t, "Rechnung", words[0].Text)
}

func TestAssembleWords_ConvertsToTopDownCoordinates(t *testing.T) {
	texts := []pdf.Text{
		glyph("Invoice", 72, 700, 42, 12),
	}

	words := assembleWords(texts, 792)

	require.Len(t, words, 1)
	assert.InDelta(t, 80.0, words[0].Top, 1e-9)    // 792 - (700 + 12)
	assert.InDelta(t, 92.0, words[0].Bottom, 1e-9) // 792 - 700
}

func TestAssembleWords_SortsIntoReadingOrder(t *testing.T) {
	// Runs arrive out of order; higher PDF Y means closer to the page top.
	texts := []pdf.Text{
		glyph("second", 72, 650, 40, 12),
		glyph("first", 72, 700, 30, 12),
	}

	words := assembleWords(texts, 792)

	require.Len(t, words, 2)
	assert.Equal(t, "first", words[0].Text)
	assert.Equal(t, "second", words[1].Text)
	assert.Less(t, words[0].Top, words[1].Top)
}

func TestAssembleWords_BaselineWobbleStaysOneLine(t *testing.T) {
	texts := []pdf.Text{
		glyph("Am", 72, 700.0, 16, 12),
		glyph("ount", 88, 700.4, 26, 12),
	}

	words := assembleWords(texts, defaultPageTop)

	require.Len(t, words, 1)
	assert.Equal(t, "Amount", words[0].Text)
}

func TestAssembleWords_DifferentLinesNeverMerge(t *testing.T) {
	texts := []pdf.Text{
		glyph("Netto", 72, 320, 30, 10),
		glyph("Brutto", 72, 300, 36, 10),
	}

	words := assembleWords(texts, defaultPageTop)

	require.Len(t, words, 2)
	assert.Equal(t, "Netto", words[0].Text)
	assert.Equal(t, "Brutto", words[1].Text)
}

func TestWordGap_FloorsAtOnePoint(t *testing.T) {
	assert.Equal(t, 1.0, wordGap(2))
	assert.Equal(t, 3.0, wordGap(10))
}
