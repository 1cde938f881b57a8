package invoice

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Ailurophile47/invoice-qc/internal/logger"
	"github.com/Ailurophile47/invoice-qc/internal/ocr"
	"github.com/Ailurophile47/invoice-qc/internal/pdftext"
)

// defaultMinTextLength is the embedded-text threshold at or below which
// the pipeline escalates to OCR.
const defaultMinTextLength = 20

// TextExtractionPipeline turns a PDF into text through three tiers:
// layout-aware line reconstruction, the parser's raw text stream, and
// OCR for scanned documents. Extraction never fails; the worst outcome
// is an empty string, which downstream assembly treats as an empty
// invoice.
type TextExtractionPipeline struct {
	pdf           pdftext.Service
	ocr           ocr.OCRService
	minTextLength int
	log           zerolog.Logger
}

// NewTextExtractionPipeline wires the tiers together. A nil OCR engine
// disables the third tier; minTextLength values below one select the
// default threshold.
func NewTextExtractionPipeline(pdf pdftext.Service, ocrEngine ocr.OCRService, minTextLength int) *TextExtractionPipeline {
	if minTextLength <= 0 {
		minTextLength = defaultMinTextLength
	}
	return &TextExtractionPipeline{
		pdf:           pdf,
		ocr:           ocrEngine,
		minTextLength: minTextLength,
		log:           logger.WithComponent("pipeline"),
	}
}

// ExtractText extracts the text of an in-memory PDF.
func (p *TextExtractionPipeline) ExtractText(ctx context.Context, pdfData []byte) string {
	var text string

	pages, err := p.pdf.ExtractWords(ctx, pdfData)
	if err != nil {
		p.log.Debug().Err(err).Msg("Layout extraction failed, trying raw text stream")
	} else {
		text = joinPages(pages)
	}

	if strings.TrimSpace(text) == "" {
		plain, plainErr := p.pdf.ExtractPlainText(ctx, pdfData)
		if plainErr != nil {
			p.log.Debug().Err(plainErr).Msg("Raw text extraction failed")
		} else {
			text = plain
		}
	}

	if !p.needsOCR(text) {
		return text
	}
	return p.runOCR(ctx, bytes.NewReader(pdfData), text)
}

// ExtractTextFromFile extracts the text of an on-disk PDF.
func (p *TextExtractionPipeline) ExtractTextFromFile(ctx context.Context, filePath string) string {
	var text string

	pages, err := p.pdf.ExtractWordsFromFile(ctx, filePath)
	if err != nil {
		p.log.Debug().Err(err).Str("file", filePath).Msg("Layout extraction failed, trying raw text stream")
	} else {
		text = joinPages(pages)
	}

	if strings.TrimSpace(text) == "" {
		plain, plainErr := p.pdf.ExtractPlainTextFromFile(ctx, filePath)
		if plainErr != nil {
			p.log.Debug().Err(plainErr).Str("file", filePath).Msg("Raw text extraction failed")
		} else {
			text = plain
		}
	}

	if !p.needsOCR(text) {
		return text
	}

	file, openErr := os.Open(filePath)
	if openErr != nil {
		p.log.Warn().Err(openErr).Str("file", filePath).Msg("Cannot reopen file for OCR, keeping embedded text")
		return text
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			p.log.Warn().Err(closeErr).Str("file", filePath).Msg("Failed to close PDF file after OCR")
		}
	}()

	return p.runOCR(ctx, file, text)
}

// needsOCR reports whether the embedded text is too short to trust and
// an OCR engine is configured.
func (p *TextExtractionPipeline) needsOCR(text string) bool {
	if len(strings.TrimSpace(text)) > p.minTextLength {
		return false
	}
	return p.ocr != nil
}

// runOCR hands the document to the OCR engine. A successful run replaces
// the embedded text outright; a failed run keeps whatever the earlier
// tiers produced.
func (p *TextExtractionPipeline) runOCR(ctx context.Context, document io.Reader, embedded string) string {
	p.log.Info().
		Int("embedded_length", len(strings.TrimSpace(embedded))).
		Msg("Embedded text below threshold, attempting OCR")

	ocrText, err := p.ocr.ProcessPDF(ctx, document)
	if err != nil {
		p.log.Warn().Err(err).Msg("OCR failed, keeping embedded text")
		return embedded
	}
	return ocrText
}

func joinPages(pages [][]pdftext.Word) string {
	parts := make([]string, 0, len(pages))
	for _, words := range pages {
		parts = append(parts, strings.Join(ReconstructLines(words), "\n"))
	}
	return strings.Join(parts, "\n\n")
}
