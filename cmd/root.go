package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ailurophile47/invoice-qc/internal/logger"
)

var version = "1.0.0"

// errInvalidInvoices reports a run that completed normally but found at
// least one invalid invoice. Execute maps it to exit code 2 so scripts can
// tell a failed QC check apart from an operational error.
var errInvalidInvoices = errors.New("one or more invoices failed validation")

var rootCmd = &cobra.Command{
	Use:   "invoice-qc",
	Short: "Invoice QC - extract and validate PDF invoices",
	Long: `Invoice QC extracts structured data from English and German PDF
invoices and validates the result against a set of completeness and
consistency checks.

Extraction is heuristic: embedded PDF text is preferred, with an optional
OCR fallback for scanned documents (see OCR_ENGINE). Validation records
every failed check per invoice plus an aggregate summary across the batch.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Exit codes: 0 on success, 1 on operational errors,
// 2 when a validation run completed but found invalid invoices.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errInvalidInvoices) {
			os.Exit(2)
		}

		log := logger.WithComponent("cmd")
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
