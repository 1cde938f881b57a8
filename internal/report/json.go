// Package report writes validation reports and extraction results to
// files. JSON is the primary machine-readable format; CSV and XLSX serve
// spreadsheet consumers. Writers create missing parent directories, so a
// report path like output/report.json works on a fresh checkout.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ailurophile47/invoice-qc/pkg/models"
)

// WriteJSON writes the report as indented JSON.
func WriteJSON(path string, report *models.BulkReport) error {
	return writeJSONFile(path, report)
}

// WriteInvoicesJSON writes extracted invoices as an indented JSON array.
// A nil slice is written as an empty array, never as null.
func WriteInvoicesJSON(path string, invoices []*models.Invoice) error {
	if invoices == nil {
		invoices = []*models.Invoice{}
	}
	return writeJSONFile(path, invoices)
}

func writeJSONFile(path string, payload any) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}
