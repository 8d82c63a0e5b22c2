package events

import (
	"context"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"go.uber.org/zap"
)

const StockChangedEventType = "StockChanged"

// StockChangedEvent is emitted once per committed stock transaction.
type StockChangedEvent struct {
	EventID       string                 `json:"eventId"`
	EventType     string                 `json:"eventType"`
	OccurredAt    time.Time              `json:"occurredAt"`
	ProductID     int                    `json:"productId"`
	SKU           string                 `json:"sku"`
	TransactionID int                    `json:"transactionId"`
	Type          models.TransactionType `json:"type"`
	Delta         int                    `json:"delta"`
	NewQuantity   int                    `json:"newQuantity"`
	MinimumStock  int                    `json:"minimumStock"`
	LowStock      bool                   `json:"lowStock"`
	PerformedBy   string                 `json:"performedBy"`
}

// Publisher sends stock events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event StockChangedEvent) error
	Close() error
}

// LogPublisher writes events to the logger. It is used when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event StockChangedEvent) error {
	p.logger.Info("Event published (log)",
		zap.String("event_type", event.EventType),
		zap.String("event_id", event.EventID),
		zap.String("sku", event.SKU),
		zap.Int("delta", event.Delta),
		zap.Int("new_quantity", event.NewQuantity),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
