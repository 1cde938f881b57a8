// Package pdftext reads text out of digital PDFs. It serves two callers:
// positioned word extraction for layout reconstruction, and plain text
// extraction as the cruder fallback when layout handling fails.
//
// Coordinates are top-down: Top is the distance from the upper page edge,
// growing downwards, so callers can group words into visual lines without
// caring about the PDF-native bottom-up coordinate system.
//
// Scanned PDFs without embedded text yield empty results here; OCR is a
// separate concern handled by the ocr package.
package pdftext

import "context"

// Word is one positioned token on a page.
type Word struct {
	Text   string
	Left   float64
	Top    float64
	Bottom float64
}

// Service defines the interface for PDF text extraction.
type Service interface {
	// ExtractWords returns positioned words per page, in reading order.
	ExtractWords(ctx context.Context, pdfData []byte) ([][]Word, error)

	// ExtractWordsFromFile is ExtractWords for an on-disk document.
	ExtractWordsFromFile(ctx context.Context, filePath string) ([][]Word, error)

	// ExtractPlainText returns the embedded text of the whole document.
	ExtractPlainText(ctx context.Context, pdfData []byte) (string, error)

	// ExtractPlainTextFromFile is ExtractPlainText for an on-disk document.
	ExtractPlainTextFromFile(ctx context.Context, filePath string) (string, error)
}
