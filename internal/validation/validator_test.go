package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqa-dashboard/internal/domain"
)

func table(columns []string, rows ...[]string) domain.Dataset {
	ds := domain.Dataset{Columns: columns}
	for _, r := range rows {
		cells := make([]domain.Cell, len(r))
		for i, v := range r {
			cells[i] = domain.TextCell(v)
		}
		ds.Rows = append(ds.Rows, cells)
	}
	return ds
}

func TestValidate_MissingColumns(t *testing.T) {
	ds := table([]string{"Project", "CSAT"}, []string{"A", "80"})

	_, err := Validate(ds, domain.RequiredColumns)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSchema))

	var mce *domain.MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []string{"OnTimeDelivery", "BudgetVariance"}, mce.Columns)
}

func TestValidate_FillsMissingWithZero(t *testing.T) {
	ds := table(domain.RequiredColumns,
		[]string{"A", "85", "", "2"},
		[]string{"B", "NaN", "90", "-1"},
		[]string{"C", "70"}, // short row
	)

	res, err := Validate(ds, domain.RequiredColumns)
	require.NoError(t, err)
	require.True(t, res.Filled())

	for _, col := range domain.NumericColumns {
		idx := res.Dataset.ColumnIndex(col)
		for row := range res.Dataset.Rows {
			cell := res.Dataset.Cell(row, idx)
			assert.False(t, cell.Missing, "row %d column %s still missing", row, col)
		}
	}

	assert.Equal(t, []CellRef{
		{Row: 0, Column: "OnTimeDelivery"},
		{Row: 1, Column: "CSAT"},
		{Row: 2, Column: "OnTimeDelivery"},
		{Row: 2, Column: "BudgetVariance"},
	}, res.FilledCells)

	csat, err := res.Dataset.Float64Column(domain.ColumnCSAT)
	require.NoError(t, err)
	assert.Equal(t, []float64{85, 0, 70}, csat)
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	ds := table(domain.RequiredColumns, []string{"A", "", "90", "1"})

	_, err := Validate(ds, domain.RequiredColumns)
	require.NoError(t, err)

	assert.True(t, ds.Rows[0][1].Missing, "input cell was mutated")
}

func TestValidate_EmptyNameFilledWithEmptyString(t *testing.T) {
	ds := table(domain.RequiredColumns, []string{"", "80", "90", "1"})

	res, err := Validate(ds, domain.RequiredColumns)
	require.NoError(t, err)

	names, err := res.Dataset.Strings(domain.ColumnProject)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, names)
}

func TestValidate_NonNumericPassesThrough(t *testing.T) {
	ds := table(domain.RequiredColumns, []string{"A", "high", "90", "1"})

	res, err := Validate(ds, domain.RequiredColumns)
	require.NoError(t, err)
	assert.False(t, res.Filled())

	// The failure surfaces when the column is read as numbers
	_, err = res.Dataset.Float64Column(domain.ColumnCSAT)
	assert.True(t, errors.Is(err, domain.ErrDataQuality))
}

func TestValidate_ExtraColumnsKept(t *testing.T) {
	cols := append(append([]string(nil), domain.RequiredColumns...), "Owner")
	ds := table(cols, []string{"A", "80", "90", "1", ""})

	res, err := Validate(ds, domain.RequiredColumns)
	require.NoError(t, err)
	assert.Equal(t, cols, res.Dataset.Columns)
	assert.Equal(t, []CellRef{{Row: 0, Column: "Owner"}}, res.FilledCells)
}
