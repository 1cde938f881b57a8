package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ailurophile47/invoice-qc/internal/invoice"
	"github.com/Ailurophile47/invoice-qc/internal/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate <invoices-json> <report-json>",
	Short: "Validate extracted invoice data and write a QC report",
	Long: `Validate a JSON array of extracted invoices against the QC rule set
and write a report with per-invoice findings and an aggregate summary.

Checks cover required fields (invoice number, seller, buyer), date
parseability, net + tax = gross consistency, line item sums, negative
amounts and duplicate invoice number/seller combinations across the batch.

The summary is printed to stdout. The command exits with code 2 when any
invoice failed validation, after the report has been written.`,
	Example: `  # Validate extracted data and write a JSON report
  invoice-qc validate output/extracted.json output/validation_report.json

  # Additionally export the report as CSV and Excel
  invoice-qc validate output/extracted.json output/report.json --csv report.csv --xlsx report.xlsx`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("csv", "", "Also write the report as CSV to this path")
	validateCmd.Flags().String("xlsx", "", "Also write the report as an Excel workbook to this path")
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("validate")

	csvPath, _ := cmd.Flags().GetString("csv")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")

	inputPath, reportPath := args[0], args[1]

	invoices, err := readInvoicesJSON(inputPath)
	if err != nil {
		return err
	}

	log.Info().
		Int("invoices", len(invoices)).
		Str("input", inputPath).
		Msg("Validating invoices")

	bulkReport := invoice.ValidateInvoices(invoices)

	if err := writeReportFiles(&bulkReport, reportPath, csvPath, xlsxPath, log); err != nil {
		return err
	}

	printSummary(bulkReport.Summary)
	return validationExit(bulkReport.Summary)
}
