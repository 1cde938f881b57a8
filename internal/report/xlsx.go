package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Ailurophile47/invoice-qc/pkg/models"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// WriteXLSX writes the report as a workbook: a Results sheet with one row
// per invoice and a Summary sheet with the batch counts.
func WriteXLSX(path string, report *models.BulkReport) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	resultsIndex, err := f.NewSheet(resultsSheet)
	if err != nil {
		return fmt.Errorf("creating sheet %s: %w", resultsSheet, err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", summarySheet, err)
	}
	f.SetActiveSheet(resultsIndex)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	writeCell := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for i, header := range []string{"Invoice ID", "Valid", "Error Count", "Error Codes"} {
		writeCell(resultsSheet, i+1, 1, header)
	}
	for i, result := range report.Results {
		row := i + 2
		id := ""
		if result.InvoiceID != nil {
			id = *result.InvoiceID
		}
		writeCell(resultsSheet, 1, row, id)
		writeCell(resultsSheet, 2, row, result.IsValid)
		writeCell(resultsSheet, 3, row, len(result.Errors))
		writeCell(resultsSheet, 4, row, joinCodes(result.Errors))
	}

	summaryRows := []struct {
		label string
		value any
	}{
		{"Total invoices", report.Summary.TotalInvoices},
		{"Valid invoices", report.Summary.ValidInvoices},
		{"Invalid invoices", report.Summary.InvalidInvoices},
		{"Top errors", strings.Join(report.Summary.TopErrors, ", ")},
	}
	for i, row := range summaryRows {
		writeCell(summarySheet, 1, i+1, row.label)
		writeCell(summarySheet, 2, i+1, row.value)
	}

	_ = f.SetColWidth(resultsSheet, "A", "A", 24)
	_ = f.SetColWidth(resultsSheet, "B", "C", 12)
	_ = f.SetColWidth(resultsSheet, "D", "D", 64)
	_ = f.SetColWidth(summarySheet, "A", "A", 18)
	_ = f.SetColWidth(summarySheet, "B", "B", 48)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
