package repo

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(sku string, stock, minimum int) models.Product {
	return models.Product{
		SKU:           sku,
		Name:          "Product " + sku,
		Category:      "Furniture",
		Price:         decimal.RequireFromString("10.50"),
		StockQuantity: stock,
		MinimumStock:  minimum,
		SupplierID:    1,
		IsActive:      true,
	}
}

func TestInMemoryProductRepository_CreateRejectsDuplicateSKU(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository(NewInMemoryTransactionRepository())

	created, err := r.Create(ctx, newProduct("ABC-1", 5, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	_, err = r.Create(ctx, newProduct("abc-1", 5, 1))
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)
}

func TestInMemoryProductRepository_Filter(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository(NewInMemoryTransactionRepository())
	for _, p := range []models.Product{newProduct("A", 50, 10), newProduct("B", 5, 10), newProduct("C", 10, 10)} {
		_, err := r.Create(ctx, p)
		require.NoError(t, err)
	}

	low := true
	items, total, err := r.Filter(ctx, ProductFilter{LowStock: &low})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "B", items[0].SKU)
	assert.Equal(t, "C", items[1].SKU)

	offset, limit := 1, 1
	items, total, err = r.Filter(ctx, ProductFilter{Offset: &offset, Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].SKU)

	items, _, err = r.Filter(ctx, ProductFilter{Name: "product c"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "C", items[0].SKU)
}

func TestInMemoryProductRepository_AdjustStock(t *testing.T) {
	ctx := context.Background()
	txns := NewInMemoryTransactionRepository()
	r := NewInMemoryProductRepository(txns)
	p, err := r.Create(ctx, newProduct("A", 10, 2))
	require.NoError(t, err)

	updated, txn, err := r.AdjustStock(ctx, p.ID, -4, models.StockTransaction{Type: models.TransactionSale, PerformedBy: "alice"})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.StockQuantity)
	assert.Equal(t, -4, txn.Quantity)
	assert.Equal(t, p.ID, txn.ProductID)
	assert.False(t, txn.TransactionDate.IsZero())

	count, err := txns.CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInMemoryProductRepository_AdjustStockInsufficient(t *testing.T) {
	ctx := context.Background()
	txns := NewInMemoryTransactionRepository()
	r := NewInMemoryProductRepository(txns)
	p, err := r.Create(ctx, newProduct("A", 3, 2))
	require.NoError(t, err)

	_, _, err = r.AdjustStock(ctx, p.ID, -4, models.StockTransaction{Type: models.TransactionSale})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	got, err := r.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StockQuantity)

	count, err := txns.CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInMemoryProductRepository_AdjustStockInactive(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository(NewInMemoryTransactionRepository())
	inactive := newProduct("A", 3, 2)
	inactive.IsActive = false
	p, err := r.Create(ctx, inactive)
	require.NoError(t, err)

	_, _, err = r.AdjustStock(ctx, p.ID, 1, models.StockTransaction{Type: models.TransactionPurchase})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, _, err = r.AdjustStock(ctx, 999, 1, models.StockTransaction{Type: models.TransactionPurchase})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestInMemoryProductRepository_Delete(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository(NewInMemoryTransactionRepository())
	p, err := r.Create(ctx, newProduct("A", 3, 2))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, p.ID))
	assert.ErrorIs(t, r.Delete(ctx, p.ID), ErrProductNotFound)
	_, err = r.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestInMemoryProductRepository_UpdateKeepsConcurrentStockChange(t *testing.T) {
	ctx := context.Background()
	txns := NewInMemoryTransactionRepository()
	r := NewInMemoryProductRepository(txns)

	created, err := r.Create(ctx, newProduct("LACK-001", 10, 2))
	require.NoError(t, err)

	snapshot, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)

	_, _, err = r.AdjustStock(ctx, created.ID, 5, models.StockTransaction{Type: models.TransactionPurchase, PerformedBy: "tester"})
	require.NoError(t, err)

	snapshot.Name = "LACK Side Table"
	snapshot.StockQuantity = 999
	snapshot.SKU = "OTHER"
	updated, err := r.Update(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, "LACK Side Table", updated.Name)
	assert.Equal(t, 15, updated.StockQuantity)
	assert.Equal(t, "LACK-001", updated.SKU)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	stored, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, stored.StockQuantity)

	journaled, err := txns.CountByProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, journaled)
}
