package alerts

import (
	"context"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

// Recorder logs an alert entry whenever a stock change leaves a product low.
type Recorder struct {
	store Store
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

func (r *Recorder) StockChanged(ctx context.Context, product models.Product, txn models.StockTransaction) error {
	if !product.IsLowStock() {
		return nil
	}
	return r.store.Append(ctx, Entry{
		ProductID:    product.ID,
		SKU:          product.SKU,
		Name:         product.Name,
		Stock:        product.StockQuantity,
		MinimumStock: product.MinimumStock,
		PerformedBy:  txn.PerformedBy,
		Time:         txn.TransactionDate,
	})
}
