package ocr

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ailurophile47/invoice-qc/internal/logger"
)

// TesseractConfig configures the exec-based local OCR engine.
type TesseractConfig struct {
	// TesseractPath is the tesseract binary to invoke. Defaults to "tesseract".
	TesseractPath string

	// PdftoppmPath is the pdftoppm binary used to render pages. Defaults to "pdftoppm".
	PdftoppmPath string

	// Languages is the tesseract -l argument, for example "eng+deu".
	Languages string

	// DPI is the render resolution passed to pdftoppm. Defaults to 300.
	DPI int
}

// TesseractOCRService implements OCRService with local pdftoppm and
// tesseract binaries. Pages are rendered to PNG images in a temporary
// directory and recognized one by one.
type TesseractOCRService struct {
	config TesseractConfig
	runner Runner
	log    zerolog.Logger
}

// NewTesseractOCRService creates the local OCR engine.
func NewTesseractOCRService(config TesseractConfig) OCRService {
	return NewTesseractOCRServiceWithRunner(config, execRunner{})
}

// NewTesseractOCRServiceWithRunner creates the engine with an explicit
// command runner (for testing).
func NewTesseractOCRServiceWithRunner(config TesseractConfig, runner Runner) OCRService {
	if config.TesseractPath == "" {
		config.TesseractPath = "tesseract"
	}
	if config.PdftoppmPath == "" {
		config.PdftoppmPath = "pdftoppm"
	}
	if config.Languages == "" {
		config.Languages = "eng+deu"
	}
	if config.DPI <= 0 {
		config.DPI = 300
	}

	return &TesseractOCRService{
		config: config,
		runner: runner,
		log:    logger.WithComponent("tesseract-ocr"),
	}
}

// ProcessPDF extracts text from a PDF document.
func (t *TesseractOCRService) ProcessPDF(ctx context.Context, pdfData io.Reader) (string, error) {
	result, err := t.ProcessPDFWithMetadata(ctx, pdfData)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// ProcessPDFWithMetadata extracts text from a PDF document with metadata.
// An error on any page aborts the whole document; partial OCR output is
// never returned.
func (t *TesseractOCRService) ProcessPDFWithMetadata(ctx context.Context, pdfData io.Reader) (*OCRResult, error) {
	const op = "ProcessPDFWithMetadata"
	startTime := time.Now()

	pdfBytes, err := io.ReadAll(pdfData)
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to read PDF data")
	}

	if len(pdfBytes) < 4 || string(pdfBytes[:4]) != "%PDF" {
		return nil, WrapOCRError(op, ErrInvalidPDF, "missing PDF header")
	}

	tmpDir, err := os.MkdirTemp("", "invoice-qc-ocr-*")
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to create temp directory")
	}
	defer func() {
		if removeErr := os.RemoveAll(tmpDir); removeErr != nil {
			t.log.Warn().Err(removeErr).Str("dir", tmpDir).Msg("Failed to remove temp directory")
		}
	}()

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0600); err != nil {
		return nil, WrapOCRError(op, err, "failed to write temp PDF")
	}

	images, err := t.renderPages(ctx, pdfPath, filepath.Join(tmpDir, "page"))
	if err != nil {
		return nil, err
	}

	var allText strings.Builder
	for i, img := range images {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, WrapOCRError(op, ErrContextCanceled, ctxErr.Error())
		}

		pageText, err := t.recognizePage(ctx, img)
		if err != nil {
			return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("page %d: %v", i+1, err))
		}

		if i > 0 {
			allText.WriteString("\n\n")
		}
		allText.WriteString(pageText)
	}

	t.log.Debug().
		Int("pages", len(images)).
		Int("chars", allText.Len()).
		Msg("Tesseract OCR completed")

	processedAt := time.Now()
	return &OCRResult{
		Text:               allText.String(),
		PageCount:          len(images),
		Engine:             "tesseract",
		LanguageCodes:      strings.Split(t.config.Languages, "+"),
		ProcessedAt:        processedAt,
		ProcessingDuration: processedAt.Sub(startTime),
	}, nil
}

// renderPages runs pdftoppm and returns the generated page images in order.
func (t *TesseractOCRService) renderPages(ctx context.Context, pdfPath, prefix string) ([]string, error) {
	const op = "renderPages"

	// pdftoppm -r <dpi> -png <in.pdf> <prefix>
	_, stderr, err := t.runner.Run(ctx, t.config.PdftoppmPath,
		"-r", fmt.Sprintf("%d", t.config.DPI), "-png", pdfPath, prefix)
	if err != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("pdftoppm: %v: %s", err, truncate(string(stderr), 512)))
	}

	// pdftoppm names output prefix-1.png, prefix-2.png, ...
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, NewOCRError(op, ErrNoPagesRendered, "")
	}
	return matches, nil
}

// recognizePage runs tesseract on a single page image.
func (t *TesseractOCRService) recognizePage(ctx context.Context, imagePath string) (string, error) {
	// tesseract <image> stdout -l <languages>
	stdout, stderr, err := t.runner.Run(ctx, t.config.TesseractPath,
		imagePath, "stdout", "-l", t.config.Languages)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, truncate(string(stderr), 512))
	}
	return string(stdout), nil
}
