// Package invoice extracts structured data from PDF invoices and checks
// it for quality problems.
//
// Extraction is heuristic. Text is recovered through a tiered pipeline,
// each tier a fallback for the one before:
//   - Layout-aware reconstruction of the embedded text, preserving the
//     visual line structure amounts and table rows depend on
//   - The parser's raw text stream, when layout reconstruction yields
//     nothing
//   - OCR, when the embedded text is too short to be trusted (scanned
//     documents)
//
// The document language (English or German) is then detected from
// keyword markers, and language-aware heuristics recover the invoice
// number, dates, net/tax/gross totals, currency and table line items.
// Fields that cannot be recovered stay nil; a completely unreadable
// document yields an empty record, not an error.
//
// Validation judges the assembled records: completeness of the business
// fields, date parseability, arithmetic consistency of the totals within
// a fixed tolerance, negative amounts, and duplicate detection across a
// dataset. Batch results aggregate into a report with per-invoice
// findings and summary counts.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Ailurophile47/invoice-qc/internal/logger"
	"github.com/Ailurophile47/invoice-qc/pkg/models"
)

// Service defines the invoice extraction operations.
type Service interface {
	// ExtractInvoice extracts a candidate invoice from in-memory PDF data.
	ExtractInvoice(ctx context.Context, pdfData []byte) (*models.Invoice, error)

	// ExtractInvoiceFromFile extracts a candidate invoice from a PDF on disk.
	ExtractInvoiceFromFile(ctx context.Context, filePath string) (*models.Invoice, error)

	// ExtractInvoicesFromDirectory extracts invoices from every PDF directly
	// inside the directory, in filename order. Unreadable files are logged
	// and skipped; the batch keeps going.
	ExtractInvoicesFromDirectory(ctx context.Context, dirPath string) ([]*models.Invoice, error)
}

type extractionService struct {
	pipeline *TextExtractionPipeline
	workers  int
	log      zerolog.Logger
}

// NewService creates the extraction service. workers bounds the number of
// PDFs processed concurrently during directory extraction; values below
// one are raised to one.
func NewService(pipeline *TextExtractionPipeline, workers int) Service {
	if workers < 1 {
		workers = 1
	}
	return &extractionService{
		pipeline: pipeline,
		workers:  workers,
		log:      logger.WithComponent("invoice"),
	}
}

func (s *extractionService) ExtractInvoice(ctx context.Context, pdfData []byte) (*models.Invoice, error) {
	const op = "ExtractInvoice"

	if err := ctx.Err(); err != nil {
		return nil, NewExtractionError(op, ErrContextCanceled, err.Error())
	}

	text := s.pipeline.ExtractText(ctx, pdfData)
	if strings.TrimSpace(text) == "" {
		s.log.Warn().Msg("No text recovered from document, assembling empty record")
	}
	return AssembleInvoice(text), nil
}

func (s *extractionService) ExtractInvoiceFromFile(ctx context.Context, filePath string) (*models.Invoice, error) {
	const op = "ExtractInvoiceFromFile"

	if err := ctx.Err(); err != nil {
		return nil, NewExtractionError(op, ErrContextCanceled, err.Error())
	}

	info, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewExtractionError(op, ErrFileNotFound, filePath)
		}
		return nil, WrapExtractionError(op, err, filePath)
	}
	if info.IsDir() {
		return nil, NewExtractionError(op, ErrNotAFile, filePath)
	}

	text := s.pipeline.ExtractTextFromFile(ctx, filePath)
	if strings.TrimSpace(text) == "" {
		s.log.Warn().Str("file", filePath).Msg("No text recovered from document, assembling empty record")
	}
	return AssembleInvoice(text), nil
}

func (s *extractionService) ExtractInvoicesFromDirectory(ctx context.Context, dirPath string) ([]*models.Invoice, error) {
	const op = "ExtractInvoicesFromDirectory"

	info, err := os.Stat(dirPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewExtractionError(op, ErrDirectoryNotFound, dirPath)
		}
		return nil, WrapExtractionError(op, err, dirPath)
	}
	if !info.IsDir() {
		return nil, NewExtractionError(op, ErrNotADirectory, dirPath)
	}

	paths, err := listPDFFiles(dirPath)
	if err != nil {
		return nil, WrapExtractionError(op, err, dirPath)
	}

	s.log.Info().
		Int("files", len(paths)).
		Int("workers", s.workers).
		Str("directory", dirPath).
		Msg("Extracting invoices from directory")

	results := s.extractInParallel(ctx, paths)
	if err := ctx.Err(); err != nil {
		return nil, NewExtractionError(op, ErrContextCanceled, err.Error())
	}

	invoices := make([]*models.Invoice, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			s.log.Warn().Err(r.err).Str("file", r.path).Msg("Skipping unreadable PDF")
			continue
		}
		invoices = append(invoices, r.invoice)
	}
	return invoices, nil
}

type extractionJob struct {
	path  string
	index int
}

type extractionResult struct {
	path    string
	invoice *models.Invoice
	err     error
}

// extractInParallel runs file extraction across the worker pool. Results
// land at the index of their job, so output order matches input order
// regardless of which worker finished first.
func (s *extractionService) extractInParallel(ctx context.Context, paths []string) []extractionResult {
	jobs := make(chan extractionJob, len(paths))
	results := make([]extractionResult, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for job := range jobs {
				s.log.Debug().
					Int("worker", workerID).
					Str("file", job.path).
					Msg("Processing PDF")
				inv, err := s.ExtractInvoiceFromFile(ctx, job.path)
				results[job.index] = extractionResult{path: job.path, invoice: inv, err: err}
			}
		}(w)
	}

	for i, path := range paths {
		jobs <- extractionJob{path: path, index: i}
	}
	close(jobs)
	wg.Wait()
	return results
}

// listPDFFiles returns the PDFs directly inside dirPath, sorted by path.
// Subdirectories are not descended into.
func listPDFFiles(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dirPath, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dirPath, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
