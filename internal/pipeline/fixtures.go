package pipeline

import (
	"context"

	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/ingestion"
	"sqa-dashboard/internal/storage"
)

// FixtureDataset is the dataset name LoadFixtures writes under.
const FixtureDataset = "fixtures"

// LoadFixtures populates store with the sample projects under
// FixtureDataset, stamped with createdAt.
func LoadFixtures(ctx context.Context, store storage.ProjectStore, createdAt int64) error {
	rows, err := domain.StoredProjectsFromDataset(FixtureDataset, ingestion.MockDataset(), createdAt)
	if err != nil {
		return err
	}
	return store.InsertBulk(ctx, rows)
}
