package ingestion

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/validation"
)

// XLSXLoader reads one worksheet of an Excel workbook. The first row is
// the header.
type XLSXLoader struct {
	Path     string
	Sheet    string // empty selects the first sheet
	Required []string
}

// Load implements Source.
func (l *XLSXLoader) Load(ctx context.Context) (domain.Dataset, error) {
	f, err := excelize.OpenFile(l.Path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	ds, err := tableFromRows(rows)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read %s: %w", l.Path, err)
	}
	if l.Required != nil {
		if err := validation.CheckColumns(ds, l.Required); err != nil {
			return domain.Dataset{}, err
		}
	}
	return ds, nil
}

// WriteXLSX saves records to a workbook with a single sheet.
func WriteXLSX(path, sheet string, records []domain.ProjectRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Projects"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for i, header := range domain.RequiredColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, r := range records {
		row := i + 2
		values := []interface{}{r.Name, r.CSAT, r.OnTimeDelivery, r.BudgetVariance}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
