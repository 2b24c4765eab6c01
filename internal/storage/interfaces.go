package storage

import (
	"context"

	"sqa-dashboard/internal/domain"
)

// ProjectStore provides access to the projects table.
// Rows are keyed by (dataset, position) and never updated.
type ProjectStore interface {
	// Insert adds one row. Returns ErrDuplicateKey if (dataset, position) exists.
	Insert(ctx context.Context, p *domain.StoredProject) error

	// InsertBulk adds multiple rows atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, projects []*domain.StoredProject) error

	// GetByDataset retrieves all rows of a dataset, ordered by position ASC.
	// Returns ErrNotFound if the dataset has no rows.
	GetByDataset(ctx context.Context, dataset string) ([]*domain.StoredProject, error)

	// ListDatasets returns the distinct dataset names, sorted ASC.
	ListDatasets(ctx context.Context) ([]string, error)
}

// ValidateProject checks the fields every store requires.
func ValidateProject(p *domain.StoredProject) error {
	if p == nil || p.Dataset == "" || p.Position < 0 {
		return ErrInvalidInput
	}
	return nil
}
