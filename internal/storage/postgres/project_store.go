package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/storage"
)

// ProjectStore implements storage.ProjectStore using PostgreSQL.
type ProjectStore struct {
	pool *Pool
}

// NewProjectStore creates a new ProjectStore.
func NewProjectStore(pool *Pool) *ProjectStore {
	return &ProjectStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ProjectStore = (*ProjectStore)(nil)

const insertProjectQuery = `
	INSERT INTO projects (
		dataset, position, name, csat, on_time_delivery, budget_variance, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// Insert adds one row. Returns ErrDuplicateKey if (dataset, position) exists.
func (s *ProjectStore) Insert(ctx context.Context, p *domain.StoredProject) error {
	if err := storage.ValidateProject(p); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, insertProjectQuery,
		p.Dataset,
		p.Position,
		p.Name,
		p.CSAT,
		p.OnTimeDelivery,
		p.BudgetVariance,
		p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// InsertBulk adds multiple rows atomically. Fails entire batch on any duplicate.
func (s *ProjectStore) InsertBulk(ctx context.Context, projects []*domain.StoredProject) error {
	if len(projects) == 0 {
		return nil
	}
	for _, p := range projects {
		if err := storage.ValidateProject(p); err != nil {
			return err
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range projects {
		_, err := tx.Exec(ctx, insertProjectQuery,
			p.Dataset,
			p.Position,
			p.Name,
			p.CSAT,
			p.OnTimeDelivery,
			p.BudgetVariance,
			p.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert project in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByDataset retrieves all rows of a dataset, ordered by position ASC.
func (s *ProjectStore) GetByDataset(ctx context.Context, dataset string) ([]*domain.StoredProject, error) {
	query := `
		SELECT dataset, position, name, csat, on_time_delivery, budget_variance, created_at
		FROM projects
		WHERE dataset = $1
		ORDER BY position ASC
	`

	rows, err := s.pool.Query(ctx, query, dataset)
	if err != nil {
		return nil, fmt.Errorf("get projects by dataset: %w", err)
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
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT dataset FROM projects ORDER BY dataset ASC`)
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

// scanProjects scans multiple rows into a slice of StoredProject.
func scanProjects(rows pgx.Rows) ([]*domain.StoredProject, error) {
	var projects []*domain.StoredProject

	for rows.Next() {
		var p domain.StoredProject

		err := rows.Scan(
			&p.Dataset,
			&p.Position,
			&p.Name,
			&p.CSAT,
			&p.OnTimeDelivery,
			&p.BudgetVariance,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}

		projects = append(projects, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project rows: %w", err)
	}

	return projects, nil
}
