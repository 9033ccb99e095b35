// Package export writes the analysis tables to a spreadsheet.
package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/seenimoa/finratios/pkg/models"
)

// DefaultFilename is used when no output path is supplied.
const DefaultFilename = "BMW_Financial_Analysis.xlsx"

// Sheet names, in workbook order.
const (
	SheetFinancials = "Financials"
	SheetRatios     = "Ratios"
)

// Ratio sheet number format applied to columns B through E.
const (
	ratioFirstCol   = "B"
	ratioLastCol    = "E"
	ratioColWidth   = 12
	ratioNumFmt     = "0.00"
	yearColumnTitle = "Year"
)

// Exporter writes the period and ratio tables to an .xlsx workbook.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates a new spreadsheet exporter.
func NewExporter(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger}
}

// Export writes the workbook to path (DefaultFilename when empty) and returns
// its absolute path. The workbook always holds exactly the Financials and
// Ratios sheets.
func (e *Exporter) Export(path string, pt *models.PeriodTable, rt *models.RatioTable) (string, error) {
	if path == "" {
		path = DefaultFilename
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("close workbook", zap.Error(err))
		}
	}()

	// The default sheet becomes Financials so the workbook has no extras.
	if err := f.SetSheetName(f.GetSheetName(0), SheetFinancials); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetRatios); err != nil {
		return "", fmt.Errorf("create %s sheet: %w", SheetRatios, err)
	}

	if err := writeFinancials(f, pt); err != nil {
		return "", err
	}
	if err := writeRatios(f, rt); err != nil {
		return "", err
	}
	for _, sheet := range []struct {
		name  string
		width int
	}{{SheetFinancials, len(pt.Columns()) + 1}, {SheetRatios, len(rt.Columns()) + 1}} {
		if err := boldHeader(f, sheet.name, sheet.width); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(abs); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	e.logger.Info("workbook exported",
		zap.String("path", abs),
		zap.Int("years", pt.Len()),
		zap.Int("columns", len(pt.Columns())))
	return abs, nil
}

func writeFinancials(f *excelize.File, pt *models.PeriodTable) error {
	columns := pt.Columns()
	if err := writeHeader(f, SheetFinancials, columns); err != nil {
		return err
	}
	for r, year := range pt.Years() {
		row := make([]any, 0, len(columns)+1)
		row = append(row, year)
		for _, c := range columns {
			row = append(row, cellValue(pt.Get(c, year)))
		}
		if err := writeRow(f, SheetFinancials, r+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRatios(f *excelize.File, rt *models.RatioTable) error {
	if err := writeHeader(f, SheetRatios, rt.Columns()); err != nil {
		return err
	}
	for r, ratio := range rt.Rows {
		row := []any{ratio.Year}
		for _, v := range ratio.Values() {
			row = append(row, cellValue(v))
		}
		if err := writeRow(f, SheetRatios, r+2, row); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(ratioNumFmt)})
	if err != nil {
		return fmt.Errorf("create ratio style: %w", err)
	}
	if err := f.SetColWidth(SheetRatios, ratioFirstCol, ratioLastCol, ratioColWidth); err != nil {
		return fmt.Errorf("set ratio column width: %w", err)
	}
	if err := f.SetColStyle(SheetRatios, ratioFirstCol+":"+ratioLastCol, style); err != nil {
		return fmt.Errorf("set ratio column style: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, columns []string) error {
	header := make([]any, 0, len(columns)+1)
	header = append(header, yearColumnTitle)
	for _, c := range columns {
		header = append(header, c)
	}
	return writeRow(f, sheet, 1, header)
}

// boldHeader styles the first row once column styles are in place.
func boldHeader(f *excelize.File, sheet string, width int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(width, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// cellValue leaves non-finite numbers blank.
func cellValue(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func strPtr(s string) *string { return &s }
