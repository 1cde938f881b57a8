package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ailurophile47/invoice-qc/internal/config"
)

// clearEnv blanks every key Load reads, so the ambient environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OCR_ENGINE", "TESSERACT_PATH", "PDFTOPPM_PATH", "OCR_LANGUAGES", "OCR_DPI",
		"GOOGLE_CREDENTIALS", "GOOGLE_APPLICATION_CREDENTIALS",
		"DOCAI_PROJECT_ID", "DOCAI_LOCATION", "DOCAI_PROCESSOR_ID",
		"MIN_TEXT_LENGTH", "EXTRACT_WORKERS", "SERVER_ADDR",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_TIME_FORMAT", "LOG_OUTPUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.EngineTesseract, cfg.OCREngine)
	assert.Equal(t, "tesseract", cfg.TesseractPath)
	assert.Equal(t, "pdftoppm", cfg.PdftoppmPath)
	assert.Equal(t, "eng+deu", cfg.OCRLanguages)
	assert.Equal(t, 300, cfg.OCRDPI)
	assert.Equal(t, "eu", cfg.DocAILocation)
	assert.Equal(t, 20, cfg.MinTextLength)
	assert.Equal(t, 4, cfg.ExtractWorkers)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadReadsOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OCR_ENGINE", "documentai")
	t.Setenv("DOCAI_PROJECT_ID", "my-project")
	t.Setenv("DOCAI_PROCESSOR_ID", "proc-123")
	t.Setenv("OCR_DPI", "150")
	t.Setenv("EXTRACT_WORKERS", "8")
	t.Setenv("SERVER_ADDR", "127.0.0.1:9090")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "documentai", cfg.OCREngine)
	assert.Equal(t, 150, cfg.OCRDPI)
	assert.Equal(t, 8, cfg.ExtractWorkers)
	assert.Equal(t, "127.0.0.1:9090", cfg.ServerAddr)
	assert.Equal(t, "json", cfg.LogFormat)

	docai := cfg.GetDocumentAIConfig()
	assert.Equal(t, "my-project", docai.ProjectID)
	assert.Equal(t, "proc-123", docai.ProcessorID)
	assert.Equal(t, "eu", docai.Location)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown engine", "OCR_ENGINE", "abbyy"},
		{"unknown log format", "LOG_FORMAT", "xml"},
		{"dpi too low", "OCR_DPI", "30"},
		{"dpi too high", "OCR_DPI", "2400"},
		{"zero workers", "EXTRACT_WORKERS", "0"},
		{"negative min text length", "MIN_TEXT_LENGTH", "-1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()

			assert.Error(t, err)
		})
	}
}

func TestUnparseableIntFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("OCR_DPI", "not-a-number")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 300, cfg.OCRDPI)
}

func TestGetTesseractConfigMapping(t *testing.T) {
	clearEnv(t)
	t.Setenv("TESSERACT_PATH", "/opt/tesseract/bin/tesseract")
	t.Setenv("OCR_LANGUAGES", "deu")

	cfg, err := config.Load()
	require.NoError(t, err)

	tess := cfg.GetTesseractConfig()
	assert.Equal(t, "/opt/tesseract/bin/tesseract", tess.TesseractPath)
	assert.Equal(t, "pdftoppm", tess.PdftoppmPath)
	assert.Equal(t, "deu", tess.Languages)
	assert.Equal(t, 300, tess.DPI)
}
