package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getSono/OpenPOS-sub000/internal/domain"
)

func testProduct(id, name string) *domain.Product {
	return &domain.Product{
		ID:       id,
		Name:     name,
		Price:    1.5,
		Category: "drinks",
		Barcode:  "400" + id,
		Active:   true,
	}
}

func TestProductRepo_CreateAndGet(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewProductRepo(pool)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("p1", "Cola")))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Cola", got.Name)
	assert.InDelta(t, 1.5, got.Price, 0.0001)
	assert.Equal(t, "400p1", got.Barcode)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestProductRepo_GetByBarcode(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewProductRepo(pool)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("p1", "Cola")))

	got, err := repo.GetByBarcode(ctx, "400p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	_, err = repo.GetByBarcode(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepo_GetMissing(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewProductRepo(pool)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepo_ListSkipsInactive(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewProductRepo(pool)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("p1", "Cola")))
	inactive := testProduct("p2", "Old Item")
	inactive.Active = false
	require.NoError(t, repo.Create(ctx, inactive))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestProductRepo_UpdateAndDelete(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewProductRepo(pool)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("p1", "Cola")))

	updated := testProduct("p1", "Cola Zero")
	updated.Price = 1.8
	require.NoError(t, repo.Update(ctx, updated))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Cola Zero", got.Name)
	assert.InDelta(t, 1.8, got.Price, 0.0001)

	require.NoError(t, repo.Delete(ctx, "p1"))
	assert.ErrorIs(t, repo.Delete(ctx, "p1"), domain.ErrProductNotFound)
	assert.ErrorIs(t, repo.Update(ctx, updated), domain.ErrProductNotFound)
}
