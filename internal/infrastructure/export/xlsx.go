package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ReceiptLedger/internal/ports"
	"ReceiptLedger/internal/summary"
)

// XLSXWriter renders a roll-up into a two-sheet workbook: the summary
// table plus dataset-wide totals.
type XLSXWriter struct {
	path string
}

var _ ports.SummarySink = (*XLSXWriter)(nil)

// NewXLSXWriter writes the workbook to the given path on WriteSummary.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

// WriteSummary materializes the workbook and saves it.
func (w *XLSXWriter) WriteSummary(result summary.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, summary.Headers); err != nil {
		return err
	}
	for i, row := range result.Rows {
		if err := setRow(f, sheet, i+2, summary.RowValues(row)); err != nil {
			return err
		}
	}

	const totals = "Totals"
	if _, err := f.NewSheet(totals); err != nil {
		return fmt.Errorf("add totals sheet: %w", err)
	}

	totalRows := [][]string{
		{"Total Spent", result.Stats.TotalSpent.StringFixed(2)},
		{"Orders", fmt.Sprintf("%d", result.Stats.OrderCount)},
		{"Spend / Day", result.Stats.SpendPerDay.StringFixed(2)},
		{"Day Span", fmt.Sprintf("%d", result.DaySpan)},
		{"First Date", summary.DateLabel(result, false)},
		{"Last Date", summary.DateLabel(result, true)},
	}
	for i, row := range totalRows {
		if err := setRow(f, totals, i+1, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
