package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ailurophile47/invoice-qc/internal/config"
	"github.com/Ailurophile47/invoice-qc/internal/invoice"
	"github.com/Ailurophile47/invoice-qc/internal/ocr"
	"github.com/Ailurophile47/invoice-qc/internal/pdftext"
	"github.com/Ailurophile47/invoice-qc/internal/report"
	"github.com/Ailurophile47/invoice-qc/pkg/models"
)

// newRunContext creates a context that is canceled on SIGINT/SIGTERM and,
// for timeoutSecs > 0, after the given number of seconds.
func newRunContext(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	var ctx context.Context
	var cancel context.CancelFunc
	if timeoutSecs > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
			// Context completed normally
		}
	}()

	return ctx, cancel
}

// createOCRService builds the engine selected by OCR_ENGINE, or nil when
// the OCR fallback is disabled.
func createOCRService(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ocr.OCRService, error) {
	switch strings.ToLower(cfg.OCREngine) {
	case config.EngineOff:
		log.Debug().Msg("OCR fallback disabled")
		return nil, nil
	case config.EngineTesseract:
		return ocr.NewTesseractOCRService(cfg.GetTesseractConfig()), nil
	case config.EngineVision:
		ocrService, err := ocr.NewGoogleVisionOCRService(ctx, cfg.GetVisionConfig())
		if err != nil {
			if errors.Is(err, ocr.ErrMissingCredentials) {
				return nil, fmt.Errorf("missing Google Cloud credentials for the vision engine. Please set one of:\n"+
					"  GOOGLE_APPLICATION_CREDENTIALS=/path/to/service-account-key.json\n"+
					"  GOOGLE_CREDENTIALS='<json-credentials>'\n"+
					"Original error: %w", err)
			}
			return nil, fmt.Errorf("failed to create Google Vision OCR service: %w", err)
		}
		return ocrService, nil
	case config.EngineDocumentAI:
		ocrService, err := ocr.NewDocumentAIOCRService(ctx, cfg.GetDocumentAIConfig())
		if err != nil {
			if errors.Is(err, ocr.ErrMissingCredentials) || errors.Is(err, ocr.ErrInvalidConfiguration) {
				return nil, fmt.Errorf("Document AI engine is not configured. Please check your .env file:\n"+
					"  DOCAI_PROJECT_ID - your Google Cloud project ID\n"+
					"  DOCAI_LOCATION - processing location (us, eu, etc.)\n"+
					"  DOCAI_PROCESSOR_ID - your Document AI processor ID\n"+
					"Original error: %w", err)
			}
			return nil, fmt.Errorf("failed to create Document AI OCR service: %w", err)
		}
		return ocrService, nil
	default:
		return nil, fmt.Errorf("unknown OCR engine %q", cfg.OCREngine)
	}
}

// newExtractionService wires the PDF parser, the configured OCR engine and
// the worker pool into a ready-to-use extraction service. A workers value
// of zero falls back to EXTRACT_WORKERS.
func newExtractionService(ctx context.Context, cfg *config.Config, workers int, log zerolog.Logger) (invoice.Service, error) {
	ocrEngine, err := createOCRService(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = cfg.ExtractWorkers
	}

	pipeline := invoice.NewTextExtractionPipeline(pdftext.NewPDFService(), ocrEngine, cfg.MinTextLength)
	return invoice.NewService(pipeline, workers), nil
}

// readInvoicesJSON loads a JSON array of invoices from disk. An empty file
// counts as an empty batch.
func readInvoicesJSON(path string) ([]*models.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("input JSON not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read input JSON: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []*models.Invoice{}, nil
	}

	var invoices []*models.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, fmt.Errorf("failed to parse input JSON %s: %w", path, err)
	}
	return invoices, nil
}

// ensureRegularFile verifies the path exists and points at a regular file.
func ensureRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("PDF file not found: %s", path)
		}
		return fmt.Errorf("error accessing PDF file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path is not a regular file: %s", path)
	}
	return nil
}

// writeReportFiles writes the JSON report plus any optional exports.
func writeReportFiles(bulkReport *models.BulkReport, jsonPath, csvPath, xlsxPath string, log zerolog.Logger) error {
	if err := report.WriteJSON(jsonPath, bulkReport); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	log.Info().Str("file", jsonPath).Msg("Validation report written")

	if csvPath != "" {
		if err := report.WriteCSV(csvPath, bulkReport); err != nil {
			return fmt.Errorf("failed to write CSV report: %w", err)
		}
		log.Info().Str("file", csvPath).Msg("CSV report written")
	}

	if xlsxPath != "" {
		if err := report.WriteXLSX(xlsxPath, bulkReport); err != nil {
			return fmt.Errorf("failed to write XLSX report: %w", err)
		}
		log.Info().Str("file", xlsxPath).Msg("XLSX report written")
	}

	return nil
}

// printSummary writes the aggregate validation counts to stdout.
func printSummary(summary models.ValidationSummary) {
	fmt.Printf("Total invoices: %d\n", summary.TotalInvoices)
	fmt.Printf("Valid invoices: %d\n", summary.ValidInvoices)
	fmt.Printf("Invalid invoices: %d\n", summary.InvalidInvoices)
	if len(summary.TopErrors) > 0 {
		fmt.Printf("Top errors: %s\n", strings.Join(summary.TopErrors, ", "))
	} else {
		fmt.Println("Top errors: None")
	}
}

// validationExit converts a completed run with invalid invoices into the
// sentinel mapped to exit code 2.
func validationExit(summary models.ValidationSummary) error {
	if summary.InvalidInvoices > 0 {
		return errInvalidInvoices
	}
	return nil
}
