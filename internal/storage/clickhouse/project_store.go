package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/storage"
)

// ProjectStore implements storage.ProjectStore using ClickHouse.
type ProjectStore struct {
	conn *Conn
}

// NewProjectStore creates a new ProjectStore.
func NewProjectStore(conn *Conn) *ProjectStore {
	return &ProjectStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ProjectStore = (*ProjectStore)(nil)

// Insert adds one row. Returns ErrDuplicateKey if (dataset, position) exists.
func (s *ProjectStore) Insert(ctx context.Context, p *domain.StoredProject) error {
	return s.InsertBulk(ctx, []*domain.StoredProject{p})
}

// InsertBulk adds multiple rows in one batch. Fails entire batch on any duplicate.
func (s *ProjectStore) InsertBulk(ctx context.Context, projects []*domain.StoredProject) error {
	if len(projects) == 0 {
		return nil
	}

	type key struct {
		dataset  string
		position int
	}
	seen := make(map[key]struct{}, len(projects))
	for _, p := range projects {
		if err := storage.ValidateProject(p); err != nil {
			return err
		}
		k := key{p.Dataset, p.Position}
		if _, dup := seen[k]; dup {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// MergeTree does not enforce keys, so check existing rows first.
	for _, p := range projects {
		exists, err := s.exists(ctx, p.Dataset, p.Position)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO projects (
			dataset, position, name, csat, on_time_delivery, budget_variance, created_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range projects {
		err = batch.Append(
			p.Dataset,
			uint32(p.Position),
			p.Name,
			p.CSAT,
			p.OnTimeDelivery,
			p.BudgetVariance,
			p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByDataset retrieves all rows of a dataset, ordered by position ASC.
func (s *ProjectStore) GetByDataset(ctx context.Context, dataset string) ([]*domain.StoredProject, error) {
	query := `
		SELECT dataset, position, name, csat, on_time_delivery, budget_variance, created_at
		FROM projects
		WHERE dataset = ?
		ORDER BY position ASC
	`

	rows, err := s.conn.Query(ctx, query, dataset)
	if err != nil {
		return nil, fmt.Errorf("query by dataset: %w", err)
	}
	defer rows.Close()

	projects, err := scanProjects(rows)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, storage.ErrNotFound
	}
	return projects, nil
}

// ListDatasets returns the distinct dataset names, sorted ASC.
func (s *ProjectStore) ListDatasets(ctx context.Context) ([]string, error) {
	rows, err := s.conn.Query(ctx, `SELECT DISTINCT dataset FROM projects ORDER BY dataset ASC`)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan dataset name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dataset rows: %w", err)
	}
	return names, nil
}

func (s *ProjectStore) exists(ctx context.Context, dataset string, position int) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx,
		`SELECT count() FROM projects WHERE dataset = ? AND position = ?`,
		dataset, uint32(position),
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func scanProjects(rows driver.Rows) ([]*domain.StoredProject, error) {
	var projects []*domain.StoredProject

	for rows.Next() {
		var (
			p        domain.StoredProject
			position uint32
		)
		err := rows.Scan(
			&p.Dataset,
			&position,
			&p.Name,
			&p.CSAT,
			&p.OnTimeDelivery,
			&p.BudgetVariance,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		p.Position = int(position)
		projects = append(projects, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project rows: %w", err)
	}

	return projects, nil
}
