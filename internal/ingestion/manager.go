package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/observability"
	"sqa-dashboard/internal/storage"
)

// Manager copies a source table into a project store.
// Duplicate datasets are rejected by the storage layer (ErrDuplicateKey).
type Manager struct {
	source Source
	store  storage.ProjectStore
	logger  *zap.Logger
	metrics *observability.Metrics
	clock   func() time.Time
}

// ManagerOptions contains configuration for creating a Manager.
type ManagerOptions struct {
	Source Source
	Store  storage.ProjectStore
	Logger  *zap.Logger            // nil disables logging
	Metrics *observability.Metrics // nil disables metrics
	Clock   func() time.Time       // nil uses time.Now
}

// NewManager creates a new ingestion manager.
func NewManager(opts ManagerOptions) *Manager {
	m := &Manager{
		source:  opts.Source,
		store:   opts.Store,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		clock:   opts.Clock,
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	return m
}

// Ingest loads the source and stores every row under the dataset name.
// Returns the number of rows stored.
func (m *Manager) Ingest(ctx context.Context, dataset string) (int, error) {
	if m.source == nil || m.store == nil {
		return 0, errors.New("ingest: source and store are required")
	}
	if dataset == "" {
		return 0, fmt.Errorf("ingest: %w: empty dataset name", storage.ErrInvalidInput)
	}

	ds, err := m.source.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("ingest load: %w", err)
	}
	if ds.Len() == 0 {
		return 0, fmt.Errorf("ingest %q: %w", dataset, domain.ErrEmptyDataset)
	}

	rows, err := domain.StoredProjectsFromDataset(dataset, ds, m.clock().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("ingest convert: %w", err)
	}

	if err := m.store.InsertBulk(ctx, rows); err != nil {
		return 0, fmt.Errorf("ingest store: %w", err)
	}
	if m.metrics != nil {
		m.metrics.RowsIngested.Add(float64(len(rows)))
	}

	m.logger.Info("dataset ingested",
		zap.String("dataset", dataset),
		zap.Int("rows", len(rows)),
	)
	return len(rows), nil
}
