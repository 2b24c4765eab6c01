package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/storage"
)

func TestProjectStore_InsertBulkAndGet(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProjectStore(conn)
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.StoredProject{
		{Dataset: "q3", Position: 2, Name: "Project3", CSAT: ptr(92.0), OnTimeDelivery: ptr(90.0), BudgetVariance: ptr(0.0)},
		{Dataset: "q3", Position: 0, Name: "Project1", CSAT: ptr(85.0), OnTimeDelivery: ptr(95.0), BudgetVariance: ptr(2.0)},
		{Dataset: "q3", Position: 1, Name: "Project2", CSAT: nil, OnTimeDelivery: ptr(85.0), BudgetVariance: ptr(-3.0)},
	})
	require.NoError(t, err)

	got, err := store.GetByDataset(ctx, "q3")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"Project1", "Project2", "Project3"},
		[]string{got[0].Name, got[1].Name, got[2].Name})
	assert.Nil(t, got[1].CSAT, "Nullable column must read back as nil")
	assert.Equal(t, 0.0, *got[2].BudgetVariance)
}

func TestProjectStore_Duplicate(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProjectStore(conn)
	ctx := context.Background()

	p := &domain.StoredProject{Dataset: "q3", Position: 0, Name: "A"}
	require.NoError(t, store.Insert(ctx, p))
	assert.ErrorIs(t, store.Insert(ctx, p), storage.ErrDuplicateKey)

	err := store.InsertBulk(ctx, []*domain.StoredProject{
		{Dataset: "q4", Position: 0},
		{Dataset: "q4", Position: 0},
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestProjectStore_ListDatasetsAndNotFound(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProjectStore(conn)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &domain.StoredProject{Dataset: "b", Position: 0}))
	require.NoError(t, store.Insert(ctx, &domain.StoredProject{Dataset: "a", Position: 0}))

	names, err := store.ListDatasets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	_, err = store.GetByDataset(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
