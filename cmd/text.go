package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/Ailurophile47/invoice-qc/internal/config"
	"github.com/Ailurophile47/invoice-qc/internal/invoice"
	"github.com/Ailurophile47/invoice-qc/internal/logger"
	"github.com/Ailurophile47/invoice-qc/internal/pdftext"
)

var textCmd = &cobra.Command{
	Use:   "text <file.pdf>",
	Short: "Extract raw text from a single PDF",
	Long: `Run the tiered text extraction pipeline against a single PDF and
print the result. Useful for debugging why field extraction came up empty
for a particular document.

The pipeline prefers layout-aware embedded text, falls back to plain
embedded text, and finally to the configured OCR engine for scanned
documents (see OCR_ENGINE). The JSON format additionally reports the
detected language and the character count.`,
	Example: `  # Print extracted text to stdout
  invoice-qc text invoice.pdf

  # Inspect the detected language and character count
  invoice-qc text invoice.pdf --format json

  # Save the text to a file
  invoice-qc text scan.pdf --output scan.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

// textOutput is the JSON shape of the text command.
type textOutput struct {
	File       string `json:"file"`
	Language   string `json:"language"`
	Characters int    `json:"characters"`
	Text       string `json:"text"`
}

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().StringP("format", "f", "text", "Output format: text or json")
	textCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runText(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("text")

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: must be text or json", format)
	}

	pdfPath := args[0]
	if err := ensureRegularFile(pdfPath); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := newRunContext(0, log)
	defer cancel()

	ocrEngine, err := createOCRService(ctx, cfg, log)
	if err != nil {
		return err
	}

	pipeline := invoice.NewTextExtractionPipeline(pdftext.NewPDFService(), ocrEngine, cfg.MinTextLength)
	text := pipeline.ExtractTextFromFile(ctx, pdfPath)

	var rendered []byte
	if format == "json" {
		output := textOutput{
			File:       pdfPath,
			Language:   string(invoice.DetectLanguage(text)),
			Characters: utf8.RuneCountInString(text),
			Text:       text,
		}
		rendered, err = json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		rendered = append(rendered, '\n')
	} else {
		rendered = []byte(text)
		if !strings.HasSuffix(text, "\n") {
			rendered = append(rendered, '\n')
		}
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, rendered, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(rendered)).
			Msg("Extracted text written to file")
		return nil
	}

	if _, err := os.Stdout.Write(rendered); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
