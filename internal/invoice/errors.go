package invoice

import (
	"errors"
	"fmt"
)

// Common extraction service errors
var (
	// ErrFileNotFound is returned when the requested invoice file does not exist.
	ErrFileNotFound = errors.New("invoice file not found")

	// ErrDirectoryNotFound is returned when the requested invoice directory does not exist.
	ErrDirectoryNotFound = errors.New("invoice directory not found")

	// ErrNotADirectory is returned when a directory operation targets a regular file.
	ErrNotADirectory = errors.New("path is not a directory")

	// ErrNotAFile is returned when a file operation targets a directory.
	ErrNotAFile = errors.New("path is a directory, not a file")

	// ErrContextCanceled is returned when extraction is canceled via context.
	ErrContextCanceled = errors.New("invoice extraction was canceled")
)

// ExtractionError wraps errors with additional context about extraction failures.
// Heuristic misses are not errors; only input problems such as a missing file
// or a canceled context surface through this type.
type ExtractionError struct {
	// Op is the operation that failed (e.g., "ExtractInvoiceFromFile").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("invoice: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *ExtractionError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewExtractionError creates a new ExtractionError with the specified operation and underlying error.
func NewExtractionError(op string, err error, details string) *ExtractionError {
	return &ExtractionError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapExtractionError wraps an error as an ExtractionError if it isn't already one.
func WrapExtractionError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		return err // Already wrapped
	}

	return NewExtractionError(op, err, details)
}
