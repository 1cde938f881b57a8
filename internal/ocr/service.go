// Package ocr provides OCR text extraction from PDF documents.
//
// Three engines implement the same interface:
//   - Tesseract: renders pages with pdftoppm and runs the local tesseract
//     binary on each page image. No network access required.
//   - Google Cloud Vision: synchronous document text detection on inline
//     PDF content (20MB / 5 page limits apply).
//   - Google Document AI: processes the PDF through an OCR processor and
//     returns the recognized document text.
//
// The cloud engines authenticate with either a credentials file path or an
// inline service account JSON blob. Engine selection happens at service
// construction; callers only see the OCRService interface.
package ocr

import (
	"context"
	"io"
	"time"
)

// OCRService defines the interface for OCR text extraction services.
type OCRService interface {
	// ProcessPDF extracts text from a PDF document.
	// Returns the concatenated text from all pages.
	ProcessPDF(ctx context.Context, pdfData io.Reader) (string, error)

	// ProcessPDFWithMetadata extracts text from a PDF document with
	// additional metadata such as page count and processing duration.
	ProcessPDFWithMetadata(ctx context.Context, pdfData io.Reader) (*OCRResult, error)
}

// OCRResult contains the results of OCR processing with metadata.
type OCRResult struct {
	// Text is the extracted text from all pages, concatenated in reading order.
	Text string `json:"text"`

	// PageCount is the number of pages that were processed.
	PageCount int `json:"page_count"`

	// Engine names the OCR backend that produced the result.
	Engine string `json:"engine"`

	// Confidence is the average confidence across all detected text
	// (0.0 to 1.0). Zero when the engine does not report confidence.
	Confidence float32 `json:"confidence"`

	// LanguageCodes contains the languages detected or requested.
	LanguageCodes []string `json:"language_codes,omitempty"`

	// ProcessedAt is when processing completed.
	ProcessedAt time.Time `json:"processed_at"`

	// ProcessingDuration is how long the OCR processing took.
	ProcessingDuration time.Duration `json:"processing_duration"`
}
