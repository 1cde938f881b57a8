package pdftext

import (
	"errors"
	"fmt"
)

// Common PDF reading errors
var (
	// ErrInvalidPDF is returned when the data cannot be parsed as a PDF.
	ErrInvalidPDF = errors.New("invalid or corrupted PDF document")

	// ErrNoPages is returned when the document contains no readable pages.
	ErrNoPages = errors.New("PDF document contains no pages")
)

// PDFError wraps errors with context about the failed read operation.
type PDFError struct {
	// Op is the operation that failed (e.g., "ExtractWords").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *PDFError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("pdftext: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("pdftext: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *PDFError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped sentinels.
func (e *PDFError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewPDFError creates a new PDFError.
func NewPDFError(op string, err error, details string) *PDFError {
	return &PDFError{Op: op, Err: err, Details: details}
}

// WrapPDFError wraps an error as a PDFError if it isn't already one.
func WrapPDFError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var pdfErr *PDFError
	if errors.As(err, &pdfErr) {
		return err
	}

	return NewPDFError(op, err, details)
}
