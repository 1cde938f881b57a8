// Package config loads process configuration from the environment. Every
// tunable has a default so the binary runs without any setup; validation
// only rejects values that cannot be acted on.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Ailurophile47/invoice-qc/internal/logger"
	"github.com/Ailurophile47/invoice-qc/internal/ocr"
)

// OCR engine selection values.
const (
	EngineTesseract  = "tesseract"
	EngineVision     = "vision"
	EngineDocumentAI = "documentai"
	EngineOff        = "off"
)

type Config struct {
	// OCR Configuration
	OCREngine     string
	TesseractPath string
	PdftoppmPath  string
	OCRLanguages  string
	OCRDPI        int

	// Google Cloud Configuration (vision and documentai engines)
	GoogleCredentialsJSON string
	GoogleCredentialsFile string
	DocAIProjectID        string
	DocAILocation         string
	DocAIProcessorID      string

	// Extraction Configuration
	MinTextLength  int
	ExtractWorkers int

	// HTTP Server Configuration
	ServerAddr string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	config := &Config{
		OCREngine:             getEnv("OCR_ENGINE", EngineTesseract),
		TesseractPath:         getEnv("TESSERACT_PATH", "tesseract"),
		PdftoppmPath:          getEnv("PDFTOPPM_PATH", "pdftoppm"),
		OCRLanguages:          getEnv("OCR_LANGUAGES", "eng+deu"),
		OCRDPI:                getEnvInt("OCR_DPI", 300),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		DocAIProjectID:        getEnv("DOCAI_PROJECT_ID", ""),
		DocAILocation:         getEnv("DOCAI_LOCATION", "eu"),
		DocAIProcessorID:      getEnv("DOCAI_PROCESSOR_ID", ""),
		MinTextLength:         getEnvInt("MIN_TEXT_LENGTH", 20),
		ExtractWorkers:        getEnvInt("EXTRACT_WORKERS", 4),
		ServerAddr:            getEnv("SERVER_ADDR", ":8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:         getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:             getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.OCREngine) {
	case EngineTesseract, EngineVision, EngineDocumentAI, EngineOff:
	default:
		return fmt.Errorf("OCR_ENGINE must be one of tesseract, vision, documentai, off; got %q", c.OCREngine)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console; got %q", c.LogFormat)
	}
	if c.OCRDPI < 72 || c.OCRDPI > 1200 {
		return fmt.Errorf("OCR_DPI must be between 72 and 1200; got %d", c.OCRDPI)
	}
	if c.MinTextLength < 0 {
		return fmt.Errorf("MIN_TEXT_LENGTH must not be negative; got %d", c.MinTextLength)
	}
	if c.ExtractWorkers < 1 {
		return fmt.Errorf("EXTRACT_WORKERS must be at least 1; got %d", c.ExtractWorkers)
	}
	return nil
}

// GetLoggerConfig returns the logger configuration section.
func (c *Config) GetLoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// GetTesseractConfig returns the configuration for the exec-based OCR engine.
func (c *Config) GetTesseractConfig() ocr.TesseractConfig {
	return ocr.TesseractConfig{
		TesseractPath: c.TesseractPath,
		PdftoppmPath:  c.PdftoppmPath,
		Languages:     c.OCRLanguages,
		DPI:           c.OCRDPI,
	}
}

// GetVisionConfig returns the configuration for the Google Vision engine.
func (c *Config) GetVisionConfig() ocr.VisionConfig {
	return ocr.VisionConfig{
		CredentialsJSON: c.GoogleCredentialsJSON,
		CredentialsFile: c.GoogleCredentialsFile,
	}
}

// GetDocumentAIConfig returns the configuration for the Document AI engine.
func (c *Config) GetDocumentAIConfig() ocr.DocumentAIConfig {
	return ocr.DocumentAIConfig{
		ProjectID:       c.DocAIProjectID,
		Location:        c.DocAILocation,
		ProcessorID:     c.DocAIProcessorID,
		CredentialsJSON: c.GoogleCredentialsJSON,
		CredentialsFile: c.GoogleCredentialsFile,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
