package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/storage"
)

func ptr[T any](v T) *T {
	return &v
}

func TestProjectStore_InsertAndGetByDataset(t *testing.T) {
	pool := newTestPool(t)

	store := NewProjectStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &domain.StoredProject{
		Dataset: "q3", Position: 1, Name: "Project2",
		CSAT: ptr(78.0), OnTimeDelivery: ptr(85.0), BudgetVariance: ptr(-3.0),
		CreatedAt: 1704067200000,
	}))
	require.NoError(t, store.Insert(ctx, &domain.StoredProject{
		Dataset: "q3", Position: 0, Name: "Project1",
		CSAT: ptr(85.0), BudgetVariance: ptr(2.0),
		CreatedAt: 1704067200000,
	}))

	got, err := store.GetByDataset(ctx, "q3")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Project1", got[0].Name)
	assert.Equal(t, 85.0, *got[0].CSAT)
	assert.Nil(t, got[0].OnTimeDelivery, "NULL must read back as nil")
	assert.Equal(t, "Project2", got[1].Name)
	assert.Equal(t, -3.0, *got[1].BudgetVariance)
}

func TestProjectStore_Duplicate(t *testing.T) {
	pool := newTestPool(t)

	store := NewProjectStore(pool)
	ctx := context.Background()

	p := &domain.StoredProject{Dataset: "q3", Position: 0, Name: "A", CreatedAt: 1}
	require.NoError(t, store.Insert(ctx, p))

	err := store.Insert(ctx, p)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestProjectStore_InsertBulkRollsBack(t *testing.T) {
	pool := newTestPool(t)

	store := NewProjectStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &domain.StoredProject{Dataset: "q3", Position: 1, Name: "B", CreatedAt: 1}))

	err := store.InsertBulk(ctx, []*domain.StoredProject{
		{Dataset: "q3", Position: 0, Name: "A", CreatedAt: 1},
		{Dataset: "q3", Position: 1, Name: "B", CreatedAt: 1},
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	got, err := store.GetByDataset(ctx, "q3")
	require.NoError(t, err)
	assert.Len(t, got, 1, "failed batch must not leave rows behind")
}

func TestProjectStore_RoundTripDataset(t *testing.T) {
	pool := newTestPool(t)

	store := NewProjectStore(pool)
	ctx := context.Background()

	ds := domain.Dataset{
		Columns: domain.RequiredColumns,
		Rows: [][]domain.Cell{
			{domain.TextCell("Project1"), domain.NumberCell(85), domain.MissingCell(), domain.NumberCell(2)},
			{domain.TextCell("Project2"), domain.NumberCell(78), domain.NumberCell(85), domain.NumberCell(-3)},
		},
	}
	rows, err := domain.StoredProjectsFromDataset("q3", ds, 1704067200000)
	require.NoError(t, err)
	require.NoError(t, store.InsertBulk(ctx, rows))

	stored, err := store.GetByDataset(ctx, "q3")
	require.NoError(t, err)

	back := domain.DatasetFromStored(stored)
	assert.True(t, back.Cell(0, 2).Missing)
	assert.Equal(t, "-3", back.Cell(1, 3).Raw)

	names, err := store.ListDatasets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"q3"}, names)
}

func TestProjectStore_NotFound(t *testing.T) {
	pool := newTestPool(t)

	_, err := NewProjectStore(pool).GetByDataset(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
