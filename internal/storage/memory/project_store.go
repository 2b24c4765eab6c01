package memory

import (
	"context"
	"sort"
	"sync"

	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/storage"
)

// ProjectStore is an in-memory implementation of storage.ProjectStore.
type ProjectStore struct {
	mu        sync.RWMutex
	byDataset map[string]map[int]*domain.StoredProject // dataset -> position -> row
}

// NewProjectStore creates a new in-memory project store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		byDataset: make(map[string]map[int]*domain.StoredProject),
	}
}

// Insert adds one row. Returns ErrDuplicateKey if (dataset, position) exists.
func (s *ProjectStore) Insert(_ context.Context, p *domain.StoredProject) error {
	if err := storage.ValidateProject(p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exists(p.Dataset, p.Position) {
		return storage.ErrDuplicateKey
	}
	s.put(p)
	return nil
}

// InsertBulk adds multiple rows atomically. Fails entire batch on any duplicate.
func (s *ProjectStore) InsertBulk(_ context.Context, projects []*domain.StoredProject) error {
	if len(projects) == 0 {
		return nil
	}

	for _, p := range projects {
		if err := storage.ValidateProject(p); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	type key struct {
		dataset  string
		position int
	}
	seen := make(map[key]struct{}, len(projects))
	for _, p := range projects {
		k := key{p.Dataset, p.Position}
		if _, dup := seen[k]; dup || s.exists(p.Dataset, p.Position) {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	for _, p := range projects {
		s.put(p)
	}
	return nil
}

// GetByDataset retrieves all rows of a dataset, ordered by position ASC.
func (s *ProjectStore) GetByDataset(_ context.Context, dataset string) ([]*domain.StoredProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.byDataset[dataset]
	if !ok || len(rows) == 0 {
		return nil, storage.ErrNotFound
	}

	result := make([]*domain.StoredProject, 0, len(rows))
	for _, p := range rows {
		result = append(result, copyProject(p))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result, nil
}

// ListDatasets returns the distinct dataset names, sorted ASC.
func (s *ProjectStore) ListDatasets(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.byDataset))
	for name := range s.byDataset {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *ProjectStore) exists(dataset string, position int) bool {
	_, ok := s.byDataset[dataset][position]
	return ok
}

func (s *ProjectStore) put(p *domain.StoredProject) {
	rows, ok := s.byDataset[p.Dataset]
	if !ok {
		rows = make(map[int]*domain.StoredProject)
		s.byDataset[p.Dataset] = rows
	}
	rows[p.Position] = copyProject(p)
}

// copyProject deep-copies a row so callers cannot alias stored pointers.
func copyProject(p *domain.StoredProject) *domain.StoredProject {
	c := *p
	c.CSAT = copyFloat(p.CSAT)
	c.OnTimeDelivery = copyFloat(p.OnTimeDelivery)
	c.BudgetVariance = copyFloat(p.BudgetVariance)
	return &c
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}

var _ storage.ProjectStore = (*ProjectStore)(nil)
