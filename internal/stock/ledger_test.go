package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/rogerio-castellano/warehouse-inventory/internal/apperrors"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	calls []models.StockTransaction
	err   error
}

func (o *recordingObserver) StockChanged(_ context.Context, _ models.Product, txn models.StockTransaction) error {
	o.calls = append(o.calls, txn)
	return o.err
}

func setup(t *testing.T, stock int, observers ...Observer) (*Ledger, *repo.InMemoryProductRepository, *repo.InMemoryTransactionRepository, models.Product) {
	t.Helper()
	txns := repo.NewInMemoryTransactionRepository()
	products := repo.NewInMemoryProductRepository(txns)
	p, err := products.Create(context.Background(), models.Product{
		SKU:           "BILLY-001",
		Name:          "BILLY Bookcase",
		Price:         decimal.RequireFromString("79.99"),
		StockQuantity: stock,
		MinimumStock:  20,
		SupplierID:    1,
		IsActive:      true,
	})
	require.NoError(t, err)
	return NewLedger(products, nil, observers...), products, txns, p
}

func countTransactions(t *testing.T, txns *repo.InMemoryTransactionRepository, productID int) int {
	t.Helper()
	n, err := txns.CountByProduct(context.Background(), productID)
	require.NoError(t, err)
	return n
}

func TestApplyStockChange_PurchaseAddsStockAndRecordsTransaction(t *testing.T) {
	ledger, _, txns, p := setup(t, 150)

	updated, txn, err := ledger.ApplyStockChange(context.Background(), Change{
		ProductID:   p.ID,
		Delta:       50,
		Type:        models.TransactionPurchase,
		Reference:   " PO-1 ",
		PerformedBy: "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, 200, updated.StockQuantity)
	assert.Equal(t, models.TransactionPurchase, txn.Type)
	assert.Equal(t, 50, txn.Quantity)
	assert.Equal(t, "PO-1", txn.Reference)
	assert.Equal(t, "alice", txn.PerformedBy)
	assert.Equal(t, 1, countTransactions(t, txns, p.ID))
}

func TestApplyStockChange_InsufficientStockLeavesStateUnchanged(t *testing.T) {
	ledger, products, txns, p := setup(t, 3)

	_, _, err := ledger.ApplyStockChange(context.Background(), Change{ProductID: p.ID, Delta: -5, Type: models.TransactionSale})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidOperation))

	got, err := products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StockQuantity)
	assert.Zero(t, countTransactions(t, txns, p.ID))
}

func TestApplyStockChange_DrainToZeroIsAllowed(t *testing.T) {
	ledger, _, _, p := setup(t, 3)

	updated, _, err := ledger.ApplyStockChange(context.Background(), Change{ProductID: p.ID, Delta: -3, Type: models.TransactionSale})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockQuantity)
	assert.True(t, IsLowStock(updated))
}

func TestApplyStockChange_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		change func(id int) Change
		kind   apperrors.Kind
	}{
		{"zero delta", func(id int) Change { return Change{ProductID: id, Delta: 0, Type: models.TransactionAdjustment} }, apperrors.KindValidation},
		{"missing type", func(id int) Change { return Change{ProductID: id, Delta: 1} }, apperrors.KindValidation},
		{"unknown type", func(id int) Change { return Change{ProductID: id, Delta: 1, Type: "Gift"} }, apperrors.KindValidation},
		{"negative purchase", func(id int) Change { return Change{ProductID: id, Delta: -1, Type: models.TransactionPurchase} }, apperrors.KindInvalidOperation},
		{"negative return", func(id int) Change { return Change{ProductID: id, Delta: -1, Type: models.TransactionReturn} }, apperrors.KindInvalidOperation},
		{"positive sale", func(id int) Change { return Change{ProductID: id, Delta: 1, Type: models.TransactionSale} }, apperrors.KindInvalidOperation},
		{"unknown product", func(int) Change { return Change{ProductID: 999, Delta: 1, Type: models.TransactionPurchase} }, apperrors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, _, txns, p := setup(t, 10)

			_, _, err := ledger.ApplyStockChange(context.Background(), tt.change(p.ID))
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, tt.kind), "got %v", err)
			assert.Zero(t, countTransactions(t, txns, p.ID))
		})
	}
}

func TestApplyStockChange_InactiveProductIsNotFound(t *testing.T) {
	ledger, products, _, p := setup(t, 10)
	p.IsActive = false
	_, err := products.Update(context.Background(), p)
	require.NoError(t, err)

	_, _, err = ledger.ApplyStockChange(context.Background(), Change{ProductID: p.ID, Delta: 1, Type: models.TransactionPurchase})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestApplyStockChange_AdjustmentAcceptsBothSigns(t *testing.T) {
	ledger, _, txns, p := setup(t, 10)
	ctx := context.Background()

	_, _, err := ledger.ApplyStockChange(ctx, Change{ProductID: p.ID, Delta: -4, Type: models.TransactionAdjustment})
	require.NoError(t, err)
	updated, _, err := ledger.ApplyStockChange(ctx, Change{ProductID: p.ID, Delta: 2, Type: models.TransactionAdjustment})
	require.NoError(t, err)

	assert.Equal(t, 8, updated.StockQuantity)
	assert.Equal(t, 2, countTransactions(t, txns, p.ID))
}

func TestApplyStockChange_IsNotIdempotent(t *testing.T) {
	ledger, _, txns, p := setup(t, 10)
	change := Change{ProductID: p.ID, Delta: 5, Type: models.TransactionReturn}

	_, _, err := ledger.ApplyStockChange(context.Background(), change)
	require.NoError(t, err)
	updated, _, err := ledger.ApplyStockChange(context.Background(), change)
	require.NoError(t, err)

	assert.Equal(t, 20, updated.StockQuantity)
	assert.Equal(t, 2, countTransactions(t, txns, p.ID))
}

func TestApplyStockChange_ObserverFailureDoesNotUndoChange(t *testing.T) {
	failing := &recordingObserver{err: errors.New("broker down")}
	ok := &recordingObserver{}
	ledger, products, _, p := setup(t, 10, failing, ok)

	_, txn, err := ledger.ApplyStockChange(context.Background(), Change{ProductID: p.ID, Delta: -2, Type: models.TransactionSale})
	require.NoError(t, err)

	require.Len(t, failing.calls, 1)
	require.Len(t, ok.calls, 1)
	assert.Equal(t, txn.ID, ok.calls[0].ID)

	got, err := products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.StockQuantity)
}

func TestApplyStockChange_ObserversNotCalledOnRejection(t *testing.T) {
	obs := &recordingObserver{}
	ledger, _, _, p := setup(t, 1, obs)

	_, _, err := ledger.ApplyStockChange(context.Background(), Change{ProductID: p.ID, Delta: -2, Type: models.TransactionSale})
	require.Error(t, err)
	assert.Empty(t, obs.calls)
}

func TestInferTransactionType(t *testing.T) {
	assert.Equal(t, models.TransactionPurchase, InferTransactionType(50))
	assert.Equal(t, models.TransactionAdjustment, InferTransactionType(-5))
}

func TestIsLowStock(t *testing.T) {
	tests := []struct {
		stock, minimum int
		want           bool
	}{
		{0, 0, true},
		{5, 10, true},
		{10, 10, true},
		{11, 10, false},
	}
	for _, tt := range tests {
		p := models.Product{StockQuantity: tt.stock, MinimumStock: tt.minimum}
		assert.Equal(t, tt.want, IsLowStock(p), "stock=%d minimum=%d", tt.stock, tt.minimum)
	}
}
