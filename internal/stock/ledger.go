package stock

import (
	"context"
	"errors"
	"strings"

	"github.com/rogerio-castellano/warehouse-inventory/internal/apperrors"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"go.uber.org/zap"
)

// Change is a request to move stock for one product.
type Change struct {
	ProductID   int
	Delta       int
	Type        models.TransactionType
	Reference   string
	Notes       string
	PerformedBy string
}

// Observer is notified after a stock change has been committed.
type Observer interface {
	StockChanged(ctx context.Context, product models.Product, txn models.StockTransaction) error
}

// Ledger applies stock changes and journals them.
type Ledger struct {
	products  repo.ProductRepository
	observers []Observer
	logger    *zap.Logger
}

func NewLedger(products repo.ProductRepository, logger *zap.Logger, observers ...Observer) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{products: products, observers: observers, logger: logger}
}

// ApplyStockChange validates the change, then persists the new quantity together
// with exactly one StockTransaction. Calls are not idempotent.
func (l *Ledger) ApplyStockChange(ctx context.Context, c Change) (models.Product, models.StockTransaction, error) {
	if err := validateChange(c); err != nil {
		return models.Product{}, models.StockTransaction{}, err
	}

	txn := models.StockTransaction{
		Type:        c.Type,
		Reference:   strings.TrimSpace(c.Reference),
		Notes:       strings.TrimSpace(c.Notes),
		PerformedBy: c.PerformedBy,
	}

	product, recorded, err := l.products.AdjustStock(ctx, c.ProductID, c.Delta, txn)
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		return models.Product{}, models.StockTransaction{}, apperrors.NotFound("product", c.ProductID)
	case errors.Is(err, repo.ErrInsufficientStock):
		return models.Product{}, models.StockTransaction{}, apperrors.InvalidOperation("insufficient stock", "stock cannot go below zero")
	case err != nil:
		return models.Product{}, models.StockTransaction{}, apperrors.Internal("failed to apply stock change", err)
	}

	l.logger.Info("stock changed",
		zap.Int("product_id", product.ID),
		zap.String("sku", product.SKU),
		zap.String("type", string(recorded.Type)),
		zap.Int("delta", c.Delta),
		zap.Int("stock", product.StockQuantity),
		zap.String("performed_by", c.PerformedBy),
	)

	l.notify(ctx, product, recorded)
	return product, recorded, nil
}

// notify fans out to observers. The change is already committed, so failures are only logged.
func (l *Ledger) notify(ctx context.Context, product models.Product, txn models.StockTransaction) {
	for _, o := range l.observers {
		if err := o.StockChanged(ctx, product, txn); err != nil {
			l.logger.Warn("stock observer failed",
				zap.Int("product_id", product.ID),
				zap.Int("transaction_id", txn.ID),
				zap.Error(err),
			)
		}
	}
}

func validateChange(c Change) error {
	if c.Delta == 0 {
		return apperrors.Validation(apperrors.FieldError{Field: "quantity", Description: "must not be zero"})
	}
	if c.Type == "" {
		return apperrors.Validation(apperrors.FieldError{Field: "type", Description: "is required"})
	}
	if !c.Type.Valid() {
		return apperrors.Validation(apperrors.FieldError{Field: "type", Description: "must be one of Purchase, Sale, Adjustment, Return"})
	}
	if !signAllowed(c.Type, c.Delta) {
		return apperrors.InvalidOperation("invalid delta type", string(c.Type)+" does not allow this quantity sign")
	}
	return nil
}

func signAllowed(t models.TransactionType, delta int) bool {
	switch t {
	case models.TransactionPurchase, models.TransactionReturn:
		return delta > 0
	case models.TransactionSale:
		return delta < 0
	default:
		return true
	}
}

// InferTransactionType picks a type from the sign of delta for callers that do
// not send one. Negative deltas become Adjustment since a sale cannot be told apart.
func InferTransactionType(delta int) models.TransactionType {
	if delta > 0 {
		return models.TransactionPurchase
	}
	return models.TransactionAdjustment
}

// IsLowStock reports whether the product is at or below its minimum stock.
func IsLowStock(p models.Product) bool {
	return p.IsLowStock()
}
