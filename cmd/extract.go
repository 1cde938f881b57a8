package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ailurophile47/invoice-qc/internal/config"
	"github.com/Ailurophile47/invoice-qc/internal/logger"
	"github.com/Ailurophile47/invoice-qc/internal/report"
)

var extractCmd = &cobra.Command{
	Use:   "extract <input-dir> <output-json>",
	Short: "Extract structured invoice data from all PDFs in a directory",
	Long: `Extract structured data from every PDF invoice in a directory and
write the result as a JSON array.

Each PDF goes through the tiered text extraction pipeline (layout-aware
embedded text, plain embedded text, optional OCR fallback) followed by
locale-aware field heuristics for English and German invoices. Fields that
cannot be read from the document are left null; nothing is invented.

Unreadable PDFs are logged and skipped, so one corrupt file never sinks
the batch.`,
	Example: `  # Extract every PDF in ./invoices into extracted.json
  invoice-qc extract ./invoices output/extracted.json

  # Use eight parallel workers and a two-minute timeout
  invoice-qc extract ./invoices output/extracted.json --workers 8 --timeout 120`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().Int("workers", 0, "Number of parallel extraction workers (default: EXTRACT_WORKERS)")
	extractCmd.Flags().Int("timeout", 0, "Overall timeout in seconds (0 = no timeout)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	workers, _ := cmd.Flags().GetInt("workers")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	inputDir, outputPath := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := newRunContext(timeoutSecs, log)
	defer cancel()

	extractor, err := newExtractionService(ctx, cfg, workers, log)
	if err != nil {
		return err
	}

	invoices, err := extractor.ExtractInvoicesFromDirectory(ctx, inputDir)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := report.WriteInvoicesJSON(outputPath, invoices); err != nil {
		return fmt.Errorf("failed to write extracted invoices: %w", err)
	}

	log.Info().
		Int("invoices", len(invoices)).
		Str("output", outputPath).
		Msg("Extraction completed")
	fmt.Printf("Extracted %d invoices to %s\n", len(invoices), outputPath)

	return nil
}
