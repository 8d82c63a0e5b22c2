package catalog

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/warehouse-inventory/internal/apperrors"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"github.com/rogerio-castellano/warehouse-inventory/internal/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_FillsProductSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.products.Create(ctx, f.input("BILLY-001"))
	require.NoError(t, err)

	_, _, err = f.ledger.ApplyStockChange(ctx, stock.Change{ProductID: p.ID, Delta: -3, Type: models.TransactionSale, PerformedBy: "alice"})
	require.NoError(t, err)
	_, _, err = f.ledger.ApplyStockChange(ctx, stock.Change{ProductID: p.ID, Delta: 10, Type: models.TransactionPurchase, PerformedBy: "alice"})
	require.NoError(t, err)

	history := NewHistoryService(f.products.transactions, f.productRepo)

	items, total, err := history.ForProduct(ctx, p.ID, repo.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, txn := range items {
		assert.Equal(t, "BILLY-001", txn.ProductSKU)
		assert.Equal(t, "BILLY Bookcase", txn.ProductName)
	}

	items, total, err = history.List(ctx, repo.TransactionFilter{Type: models.TransactionSale})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, -3, items[0].Quantity)
}

func TestHistoryService_Errors(t *testing.T) {
	f := newFixture(t)
	history := NewHistoryService(f.products.transactions, f.productRepo)

	_, _, err := history.ForProduct(context.Background(), 404, repo.TransactionFilter{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, _, err = history.List(context.Background(), repo.TransactionFilter{Type: "Gift"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
