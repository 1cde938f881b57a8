package server

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Ailurophile47/invoice-qc/internal/invoice"
	"github.com/Ailurophile47/invoice-qc/internal/logger"
	"github.com/Ailurophile47/invoice-qc/pkg/models"
)

// Handler serves the QC endpoints.
type Handler struct {
	extractor invoice.Service
	log       zerolog.Logger
}

// NewHandler creates the handler around an extraction service.
func NewHandler(extractor invoice.Service) *Handler {
	return &Handler{
		extractor: extractor,
		log:       logger.WithComponent("server"),
	}
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ValidateJSON handles POST /validate-json: a JSON array of invoices in,
// a full validation report out.
func (h *Handler) ValidateJSON(c *gin.Context) {
	var invoices []*models.Invoice
	if err := c.ShouldBindJSON(&invoices); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON array of invoices: " + err.Error()})
		return
	}

	report := invoice.ValidateInvoices(invoices)
	c.JSON(http.StatusOK, report)
}

// ExtractAndValidatePDFs handles POST /extract-and-validate-pdfs: each
// uploaded file in the multipart field "files" is extracted, invoices
// missing a number are backfilled from the filename stem, and the whole
// batch is validated. Unreadable uploads degrade to empty records; they
// never fail the request.
func (h *Handler) ExtractAndValidatePDFs(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required: " + err.Error()})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded in field 'files'"})
		return
	}

	invoices := make([]*models.Invoice, 0, len(files))
	for _, fileHeader := range files {
		inv := h.extractUpload(c, fileHeader)
		if needsNumberBackfill(inv) {
			backfilled := inv.WithInvoiceNumber(filenameStem(fileHeader.Filename))
			inv = &backfilled
		}
		invoices = append(invoices, inv)
	}

	report := invoice.ValidateInvoices(invoices)
	c.JSON(http.StatusOK, report)
}

// extractUpload reads one multipart file and extracts a candidate record
// from it. Every failure degrades to an empty record.
func (h *Handler) extractUpload(c *gin.Context, fileHeader *multipart.FileHeader) *models.Invoice {
	empty := &models.Invoice{LineItems: []models.LineItem{}}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Warn().Err(err).Str("file", fileHeader.Filename).Msg("Cannot open upload, using empty record")
		return empty
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.log.Warn().Err(closeErr).Str("file", fileHeader.Filename).Msg("Failed to close upload")
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Warn().Err(err).Str("file", fileHeader.Filename).Msg("Cannot read upload, using empty record")
		return empty
	}

	inv, err := h.extractor.ExtractInvoice(c.Request.Context(), data)
	if err != nil {
		h.log.Warn().Err(err).Str("file", fileHeader.Filename).Msg("Extraction failed, using empty record")
		return empty
	}
	return inv
}

func needsNumberBackfill(inv *models.Invoice) bool {
	return inv.InvoiceNumber == nil || strings.TrimSpace(*inv.InvoiceNumber) == ""
}

// filenameStem returns the base name without its extension, the fallback
// identity for uploads whose content yields no invoice number.
func filenameStem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
