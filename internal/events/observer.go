package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

// StockObserver turns committed stock changes into published events.
type StockObserver struct {
	publisher Publisher
}

func NewStockObserver(publisher Publisher) *StockObserver {
	return &StockObserver{publisher: publisher}
}

func (o *StockObserver) StockChanged(ctx context.Context, product models.Product, txn models.StockTransaction) error {
	return o.publisher.Publish(ctx, NewStockChangedEvent(product, txn))
}

func NewStockChangedEvent(product models.Product, txn models.StockTransaction) StockChangedEvent {
	occurred := txn.TransactionDate
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return StockChangedEvent{
		EventID:       uuid.New().String(),
		EventType:     StockChangedEventType,
		OccurredAt:    occurred,
		ProductID:     product.ID,
		SKU:           product.SKU,
		TransactionID: txn.ID,
		Type:          txn.Type,
		Delta:         txn.Quantity,
		NewQuantity:   product.StockQuantity,
		MinimumStock:  product.MinimumStock,
		LowStock:      product.IsLowStock(),
		PerformedBy:   txn.PerformedBy,
	}
}
