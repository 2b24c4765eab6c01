package domain

import "math"

// StoredProject is one input row persisted in a project store.
// Nil metrics are NULL in the database and read back as missing cells.
type StoredProject struct {
	Dataset        string   // dataset name, groups rows from one import
	Position       int      // zero-based row order within the dataset
	Name           string   // empty when the source cell was missing
	CSAT           *float64 // percent
	OnTimeDelivery *float64 // percent
	BudgetVariance *float64 // signed percent
	CreatedAt      int64    // Unix ms
}

// StoredProjectsFromDataset converts dataset rows for persistence.
// Missing numeric cells become nil; non-numeric text fails.
func StoredProjectsFromDataset(name string, ds Dataset, createdAt int64) ([]*StoredProject, error) {
	names, err := ds.Strings(ColumnProject)
	if err != nil {
		return nil, err
	}
	cols := make(map[string][]float64, len(NumericColumns))
	for _, c := range NumericColumns {
		vals, err := ds.Float64Column(c)
		if err != nil {
			return nil, err
		}
		cols[c] = vals
	}

	out := make([]*StoredProject, ds.Len())
	for i := range out {
		out[i] = &StoredProject{
			Dataset:        name,
			Position:       i,
			Name:           names[i],
			CSAT:           optional(cols[ColumnCSAT][i]),
			OnTimeDelivery: optional(cols[ColumnOnTimeDelivery][i]),
			BudgetVariance: optional(cols[ColumnBudgetVariance][i]),
			CreatedAt:      createdAt,
		}
	}
	return out, nil
}

// DatasetFromStored rebuilds a dataset with the required columns from
// stored rows, keeping their order.
func DatasetFromStored(rows []*StoredProject) Dataset {
	ds := Dataset{
		Columns: append([]string(nil), RequiredColumns...),
		Rows:    make([][]Cell, 0, len(rows)),
	}
	for _, r := range rows {
		ds.Rows = append(ds.Rows, []Cell{
			TextCell(r.Name),
			OptionalNumberCell(r.CSAT),
			OptionalNumberCell(r.OnTimeDelivery),
			OptionalNumberCell(r.BudgetVariance),
		})
	}
	return ds
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
