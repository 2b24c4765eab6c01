package ingestion

import (
	"context"
	"fmt"

	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/storage"
)

// StoreSource loads a previously ingested dataset from a project store.
type StoreSource struct {
	store   storage.ProjectStore
	dataset string
}

// NewStoreSource creates a source reading one dataset.
func NewStoreSource(store storage.ProjectStore, dataset string) *StoreSource {
	return &StoreSource{store: store, dataset: dataset}
}

// Load implements Source. NULL columns come back as missing cells.
func (s *StoreSource) Load(ctx context.Context) (domain.Dataset, error) {
	rows, err := s.store.GetByDataset(ctx, s.dataset)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("load dataset %q: %w", s.dataset, err)
	}
	return domain.DatasetFromStored(rows), nil
}
