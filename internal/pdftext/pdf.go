package pdftext

import (
	"bytes"
	"context"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"github.com/Ailurophile47/invoice-qc/internal/logger"
)

const (
	// defaultPageTop is the fallback page height (US Letter, points) when
	// no MediaBox can be resolved for a page.
	defaultPageTop = 792.0

	// baselineTolerance groups glyph runs onto one text line even when
	// their baselines wobble by a fraction of a point.
	baselineTolerance = 1.0
)

// PDFService implements Service on top of the ledongthuc/pdf parser.
type PDFService struct {
	log zerolog.Logger
}

// NewPDFService creates the parser-backed text extraction service.
func NewPDFService() Service {
	return &PDFService{
		log: logger.WithComponent("pdftext"),
	}
}

// ExtractWords returns positioned words per page, in reading order.
func (s *PDFService) ExtractWords(ctx context.Context, pdfData []byte) ([][]Word, error) {
	const op = "ExtractWords"

	reader, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, NewPDFError(op, ErrInvalidPDF, err.Error())
	}
	return s.wordsFromReader(ctx, op, reader)
}

// ExtractWordsFromFile is ExtractWords for an on-disk document.
func (s *PDFService) ExtractWordsFromFile(ctx context.Context, filePath string) ([][]Word, error) {
	const op = "ExtractWordsFromFile"

	file, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, WrapPDFError(op, err, filePath)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.log.Warn().Err(closeErr).Str("file", filePath).Msg("Failed to close PDF file")
		}
	}()

	return s.wordsFromReader(ctx, op, reader)
}

// ExtractPlainText returns the embedded text of the whole document.
func (s *PDFService) ExtractPlainText(ctx context.Context, pdfData []byte) (string, error) {
	const op = "ExtractPlainText"

	reader, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", NewPDFError(op, ErrInvalidPDF, err.Error())
	}
	return s.plainTextFromReader(ctx, op, reader)
}

// ExtractPlainTextFromFile is ExtractPlainText for an on-disk document.
func (s *PDFService) ExtractPlainTextFromFile(ctx context.Context, filePath string) (string, error) {
	const op = "ExtractPlainTextFromFile"

	file, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", WrapPDFError(op, err, filePath)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.log.Warn().Err(closeErr).Str("file", filePath).Msg("Failed to close PDF file")
		}
	}()

	return s.plainTextFromReader(ctx, op, reader)
}

func (s *PDFService) wordsFromReader(ctx context.Context, op string, reader *pdf.Reader) ([][]Word, error) {
	pageCount := reader.NumPage()
	if pageCount < 1 {
		return nil, NewPDFError(op, ErrNoPages, "")
	}

	pages := make([][]Word, 0, pageCount)
	for num := 1; num <= pageCount; num++ {
		if err := ctx.Err(); err != nil {
			return nil, WrapPDFError(op, err, "canceled while reading pages")
		}

		page := reader.Page(num)
		if page.V.IsNull() {
			pages = append(pages, []Word{})
			continue
		}
		pages = append(pages, assembleWords(page.Content().Text, pageTopOf(page)))
	}

	s.log.Debug().
		Int("pages", pageCount).
		Msg("Extracted positioned words")

	return pages, nil
}

func (s *PDFService) plainTextFromReader(ctx context.Context, op string, reader *pdf.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", WrapPDFError(op, err, "canceled before reading")
	}
	if reader.NumPage() < 1 {
		return "", NewPDFError(op, ErrNoPages, "")
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", WrapPDFError(op, err, "plain text extraction failed")
	}

	raw, err := io.ReadAll(textReader)
	if err != nil {
		return "", WrapPDFError(op, err, "reading plain text stream failed")
	}

	return string(raw), nil
}

// pageTopOf resolves the upper page edge from the MediaBox, walking parent
// nodes because the attribute is inheritable.
func pageTopOf(page pdf.Page) float64 {
	node := page.V
	for depth := 0; depth < 32 && !node.IsNull(); depth++ {
		if box := node.Key("MediaBox"); !box.IsNull() && box.Len() == 4 {
			return box.Index(3).Float64()
		}
		node = node.Key("Parent")
	}
	return defaultPageTop
}

// assembleWords merges the parser's glyph runs into words. Runs on one
// baseline separated by less than a glyph-sized gap belong to the same
// word; whitespace runs and larger gaps are word boundaries. Coordinates
// are converted from bottom-up PDF space into top-down page space.
func assembleWords(texts []pdf.Text, pageTop float64) []Word {
	if len(texts) == 0 {
		return []Word{}
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.Sort(pdf.TextVertical(sorted))

	words := make([]Word, 0, len(sorted)/4)

	var (
		current  strings.Builder
		left     float64
		right    float64
		baseline float64
		size     float64
		open     bool
	)

	flush := func() {
		if !open {
			return
		}
		open = false
		text := strings.TrimSpace(current.String())
		current.Reset()
		if text == "" {
			return
		}
		words = append(words, Word{
			Text:   text,
			Left:   left,
			Top:    pageTop - (baseline + size),
			Bottom: pageTop - baseline,
		})
	}

	for _, t := range sorted {
		if strings.TrimSpace(t.S) == "" {
			flush()
			continue
		}

		if open && math.Abs(t.Y-baseline) <= baselineTolerance && t.X-right <= wordGap(t.FontSize) {
			current.WriteString(t.S)
			if t.X+t.W > right {
				right = t.X + t.W
			}
			if t.FontSize > size {
				size = t.FontSize
			}
			continue
		}

		flush()
		open = true
		left = t.X
		right = t.X + t.W
		baseline = t.Y
		size = t.FontSize
		current.WriteString(t.S)
	}
	flush()

	return words
}

// wordGap is the horizontal distance between glyph runs beyond which a new
// word starts. Proportional to the font so tight body text and wide
// headlines both split sensibly.
func wordGap(fontSize float64) float64 {
	gap := fontSize * 0.3
	if gap < 1.0 {
		gap = 1.0
	}
	return gap
}
