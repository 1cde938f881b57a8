package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Ailurophile47/invoice-qc/pkg/models"
)

// WriteCSV writes one row per validation result, then the summary as
// key/value rows. Error codes within a row are joined with "|".
func WriteCSV(path string, report *models.BulkReport) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"invoice_id", "is_valid", "error_count", "error_codes"},
	}
	for _, result := range report.Results {
		id := ""
		if result.InvoiceID != nil {
			id = *result.InvoiceID
		}
		records = append(records, []string{
			id,
			strconv.FormatBool(result.IsValid),
			strconv.Itoa(len(result.Errors)),
			joinCodes(result.Errors),
		})
	}
	records = append(records,
		[]string{"total_invoices", strconv.Itoa(report.Summary.TotalInvoices)},
		[]string{"valid_invoices", strconv.Itoa(report.Summary.ValidInvoices)},
		[]string{"invalid_invoices", strconv.Itoa(report.Summary.InvalidInvoices)},
		[]string{"top_errors", strings.Join(report.Summary.TopErrors, "|")},
	)

	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("encoding csv for %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func joinCodes(errs []models.ValidationError) string {
	codes := make([]string, 0, len(errs))
	for _, e := range errs {
		codes = append(codes, e.Code)
	}
	return strings.Join(codes, "|")
}
