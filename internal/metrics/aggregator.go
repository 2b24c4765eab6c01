package metrics

import (
	"fmt"

	"sqa-dashboard/internal/domain"
)

// CalculateKPIs computes the mean of each numeric column independently.
// Returns domain.ErrEmptyDataset for a table with no rows, a
// MissingColumnError if a numeric column is absent, and a DataQualityError
// if a column holds text that is not a finite number.
func CalculateKPIs(ds domain.Dataset) (domain.KPISet, error) {
	for _, col := range domain.NumericColumns {
		if !ds.HasColumn(col) {
			return domain.KPISet{}, &domain.MissingColumnError{Column: col}
		}
	}
	if ds.Len() == 0 {
		return domain.KPISet{}, domain.ErrEmptyDataset
	}

	averages := make(map[string]float64, len(domain.NumericColumns))
	for _, col := range domain.NumericColumns {
		values, err := ds.Float64Column(col)
		if err != nil {
			return domain.KPISet{}, err
		}
		mean, n := computeMean(values)
		if n == 0 {
			return domain.KPISet{}, fmt.Errorf("average %s: %w", col, domain.ErrEmptyDataset)
		}
		averages[col] = mean
	}

	return domain.KPISet{
		AverageCSAT:           averages[domain.ColumnCSAT],
		AverageOnTimeDelivery: averages[domain.ColumnOnTimeDelivery],
		AverageBudgetVariance: averages[domain.ColumnBudgetVariance],
		RecordCount:           ds.Len(),
	}, nil
}
