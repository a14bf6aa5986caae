package chart

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"co2dash.ds4003.org/internal/logging"
)

const exportSheet = "emissions"

// WriteXLSX writes the points of spec as a country/year/metric sheet.
func WriteXLSX(w io.Writer, spec ChartSpec) (err error) {
	f := excelize.NewFile()
	defer logging.HandleDeferredError(&err, f.Close, slog.Default(), "close_workbook")

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	metric := spec.Metric
	if metric == "" {
		metric = "value"
	}
	if err := f.SetSheetRow(exportSheet, "A1", &[]interface{}{"country", "year", metric}); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", "C1", bold); err != nil {
		return fmt.Errorf("error styling header: %w", err)
	}

	row := 2
	for _, s := range spec.Series {
		for _, p := range s.Points {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(exportSheet, cell, &[]interface{}{s.Name, p.Year, p.Value}); err != nil {
				return fmt.Errorf("error writing row %d: %w", row, err)
			}
			row++
		}
	}
	if err := f.SetColWidth(exportSheet, "A", "C", 18); err != nil {
		return fmt.Errorf("error sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
