package ocr

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/Ailurophile47/invoice-qc/internal/logger"
)

// MaxDocumentSizeBytes is the maximum document size for Document AI processing (20MB)
const MaxDocumentSizeBytes = 20 * 1024 * 1024

// DocumentAIConfig configures the Google Document AI engine.
type DocumentAIConfig struct {
	// ProjectID is the Google Cloud project that hosts the processor.
	ProjectID string

	// Location is the processor region, for example "eu" or "us".
	Location string

	// ProcessorID identifies the OCR processor to run documents through.
	ProcessorID string

	// ProcessorVersion optionally pins a specific processor version.
	ProcessorVersion string

	// CredentialsJSON is an inline service account JSON blob. Takes
	// precedence over CredentialsFile when both are set.
	CredentialsJSON string

	// CredentialsFile is a path to a service account JSON file.
	CredentialsFile string

	// Timeout bounds a single ProcessDocument call. Defaults to 60s.
	Timeout time.Duration
}

// DocumentAIOCRService implements OCRService using Google Document AI.
// It reads the recognized text of the processed document; structured
// entity extraction is not used.
type DocumentAIOCRService struct {
	client *documentai.DocumentProcessorClient
	config DocumentAIConfig
	log    zerolog.Logger
}

// NewDocumentAIOCRService creates the Document AI engine. ProjectID and
// ProcessorID are required; Location defaults to "eu".
func NewDocumentAIOCRService(ctx context.Context, config DocumentAIConfig) (OCRService, error) {
	const op = "NewDocumentAIOCRService"

	if config.ProjectID == "" {
		return nil, WrapOCRError(op, ErrInvalidConfiguration, "Document AI project ID is required")
	}
	if config.ProcessorID == "" {
		return nil, WrapOCRError(op, ErrInvalidConfiguration, "Document AI processor ID is required")
	}
	if config.Location == "" {
		config.Location = "eu"
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}

	var clientOptions []option.ClientOption

	// Regional processors require the matching regional endpoint.
	if config.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", config.Location)
		clientOptions = append(clientOptions, option.WithEndpoint(endpoint))
	}

	switch {
	case config.CredentialsJSON != "":
		clientOptions = append(clientOptions, option.WithCredentialsJSON([]byte(config.CredentialsJSON)))
	case config.CredentialsFile != "":
		clientOptions = append(clientOptions, option.WithCredentialsFile(config.CredentialsFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions...)
	if err != nil {
		if config.CredentialsJSON == "" && config.CredentialsFile == "" {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials configured")
		}
		return nil, WrapOCRError(op, err, fmt.Sprintf("failed to create Document AI client for location: %s", config.Location))
	}

	return &DocumentAIOCRService{
		client: client,
		config: config,
		log:    logger.WithComponent("documentai-ocr"),
	}, nil
}

// NewDocumentAIOCRServiceWithClient creates the engine with an explicit client (for testing).
func NewDocumentAIOCRServiceWithClient(config DocumentAIConfig, client *documentai.DocumentProcessorClient) OCRService {
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	return &DocumentAIOCRService{
		client: client,
		config: config,
		log:    logger.WithComponent("documentai-ocr"),
	}
}

// ProcessPDF extracts text from a PDF document.
func (p *DocumentAIOCRService) ProcessPDF(ctx context.Context, pdfData io.Reader) (string, error) {
	result, err := p.ProcessPDFWithMetadata(ctx, pdfData)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// ProcessPDFWithMetadata extracts text from a PDF document with metadata.
func (p *DocumentAIOCRService) ProcessPDFWithMetadata(ctx context.Context, pdfData io.Reader) (*OCRResult, error) {
	const op = "ProcessPDFWithMetadata"
	startTime := time.Now()

	pdfBytes, err := io.ReadAll(pdfData)
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to read PDF data")
	}

	if len(pdfBytes) > MaxDocumentSizeBytes {
		return nil, WrapOCRError(op, ErrPDFTooLarge, fmt.Sprintf("file size: %d bytes", len(pdfBytes)))
	}

	if len(pdfBytes) < 4 || string(pdfBytes[:4]) != "%PDF" {
		return nil, WrapOCRError(op, ErrInvalidPDF, "missing PDF header")
	}

	processCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	req := &documentaipb.ProcessRequest{
		Name: p.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  pdfBytes,
				MimeType: "application/pdf",
			},
		},
	}

	resp, err := p.client.ProcessDocument(processCtx, req)
	if err != nil {
		return nil, p.handleProcessingError(op, err)
	}

	if resp.Document == nil {
		return nil, WrapOCRError(op, ErrOCRFailed, "no document in response")
	}

	text := resp.Document.Text
	if strings.TrimSpace(text) == "" {
		return nil, NewOCRError(op, ErrEmptyDocument, "")
	}

	pageCount := len(resp.Document.Pages)
	languageSet := make(map[string]bool)
	for _, page := range resp.Document.Pages {
		for _, lang := range page.DetectedLanguages {
			if lang.LanguageCode != "" {
				languageSet[lang.LanguageCode] = true
			}
		}
	}
	var languages []string
	for lang := range languageSet {
		languages = append(languages, lang)
	}

	p.log.Debug().
		Int("pages", pageCount).
		Int("chars", len(text)).
		Msg("Document AI OCR completed")

	processedAt := time.Now()
	return &OCRResult{
		Text:               text,
		PageCount:          pageCount,
		Engine:             "documentai",
		LanguageCodes:      languages,
		ProcessedAt:        processedAt,
		ProcessingDuration: processedAt.Sub(startTime),
	}, nil
}

// processorName constructs the full processor resource name.
func (p *DocumentAIOCRService) processorName() string {
	if p.config.ProcessorVersion != "" {
		return fmt.Sprintf("projects/%s/locations/%s/processors/%s/processorVersions/%s",
			p.config.ProjectID, p.config.Location, p.config.ProcessorID, p.config.ProcessorVersion)
	}
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		p.config.ProjectID, p.config.Location, p.config.ProcessorID)
}

// handleProcessingError maps Document AI API failures onto package errors.
func (p *DocumentAIOCRService) handleProcessingError(op string, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "PERMISSION_DENIED"):
		return WrapOCRError(op, ErrMissingCredentials, "insufficient permissions for Document AI")
	case strings.Contains(errStr, "NOT_FOUND"):
		return WrapOCRError(op, ErrProcessorNotFound, fmt.Sprintf("processor not found: %s", p.config.ProcessorID))
	case strings.Contains(errStr, "INVALID_ARGUMENT"):
		return WrapOCRError(op, ErrInvalidPDF, "document format not supported or corrupted")
	case strings.Contains(errStr, "DeadlineExceeded") || strings.Contains(errStr, "context deadline exceeded"):
		return WrapOCRError(op, context.DeadlineExceeded, "processing timeout")
	case strings.Contains(errStr, "Canceled") || strings.Contains(errStr, "context canceled"):
		return WrapOCRError(op, ErrContextCanceled, "processing was canceled")
	default:
		return WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Document AI error: %v", err))
	}
}

// Close closes the underlying Document AI client.
func (p *DocumentAIOCRService) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
