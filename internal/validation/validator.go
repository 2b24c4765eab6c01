// Package validation checks input tables against the required schema and
// applies the default-fill policy for missing values.
package validation

import (
	"sqa-dashboard/internal/domain"
)

// DefaultFill is the text written into missing numeric cells.
const DefaultFill = "0"

// CellRef identifies a cell that was default-filled.
type CellRef struct {
	Row    int // zero-based data row
	Column string
}

// Result is a validated copy of the input.
type Result struct {
	Dataset     domain.Dataset
	FilledCells []CellRef
}

// Filled reports whether any value was default-filled.
func (r *Result) Filled() bool {
	return len(r.FilledCells) > 0
}

// CheckColumns returns a MissingColumnsError listing every required column
// absent from the header, or nil.
func CheckColumns(ds domain.Dataset, required []string) error {
	var missing []string
	for _, col := range required {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &domain.MissingColumnsError{Columns: missing}
	}
	return nil
}

// Validate checks that required columns exist and returns a copy in which
// every missing cell has been filled. The input is left untouched. Value
// columns receive DefaultFill; the project name column receives an empty
// name.
//
// No numeric cast happens here. Text that is not a number survives and
// fails later when the column is aggregated.
func Validate(ds domain.Dataset, required []string) (*Result, error) {
	if err := CheckColumns(ds, required); err != nil {
		return nil, err
	}

	out := ds.Clone()
	width := len(out.Columns)
	var filled []CellRef

	for i := range out.Rows {
		// Pad short rows so every required cell is addressable
		if len(out.Rows[i]) < width {
			padded := make([]domain.Cell, width)
			copy(padded, out.Rows[i])
			for j := len(out.Rows[i]); j < width; j++ {
				padded[j] = domain.MissingCell()
			}
			out.Rows[i] = padded
		}

		for idx, col := range out.Columns {
			if !out.Rows[i][idx].Missing {
				continue
			}
			fill := DefaultFill
			if col == domain.ColumnProject {
				fill = ""
			}
			out.Rows[i][idx] = domain.Cell{Raw: fill}
			filled = append(filled, CellRef{Row: i, Column: col})
		}
	}

	return &Result{Dataset: out, FilledCells: filled}, nil
}
