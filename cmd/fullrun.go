package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ailurophile47/invoice-qc/internal/config"
	"github.com/Ailurophile47/invoice-qc/internal/invoice"
	"github.com/Ailurophile47/invoice-qc/internal/logger"
)

var fullRunCmd = &cobra.Command{
	Use:   "full-run <input-dir> <report-json>",
	Short: "Extract PDFs and validate the results in one pass",
	Long: `Run extraction and validation back to back: every PDF in the input
directory is extracted, the resulting records are validated, and the QC
report is written to the given path.

Equivalent to running "extract" followed by "validate" without the
intermediate JSON file. The summary is printed to stdout and the command
exits with code 2 when any invoice failed validation.`,
	Example: `  # Process a directory of invoices end to end
  invoice-qc full-run ./invoices output/validation_report.json

  # With extra exports and a bounded runtime
  invoice-qc full-run ./invoices output/report.json --csv report.csv --timeout 300`,
	Args: cobra.ExactArgs(2),
	RunE: runFullRun,
}

func init() {
	rootCmd.AddCommand(fullRunCmd)

	fullRunCmd.Flags().Int("workers", 0, "Number of parallel extraction workers (default: EXTRACT_WORKERS)")
	fullRunCmd.Flags().Int("timeout", 0, "Overall timeout in seconds (0 = no timeout)")
	fullRunCmd.Flags().String("csv", "", "Also write the report as CSV to this path")
	fullRunCmd.Flags().String("xlsx", "", "Also write the report as an Excel workbook to this path")
}

func runFullRun(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("full-run")

	workers, _ := cmd.Flags().GetInt("workers")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	csvPath, _ := cmd.Flags().GetString("csv")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")

	inputDir, reportPath := args[0], args[1]

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

	log.Info().
		Int("invoices", len(invoices)).
		Msg("Extraction completed, validating")

	bulkReport := invoice.ValidateInvoices(invoices)

	if err := writeReportFiles(&bulkReport, reportPath, csvPath, xlsxPath, log); err != nil {
		return err
	}

	printSummary(bulkReport.Summary)
	return validationExit(bulkReport.Summary)
}
