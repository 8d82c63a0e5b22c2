package catalog

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/warehouse-inventory/internal/apperrors"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

// HistoryService reads the stock transaction journal.
type HistoryService struct {
	transactions repo.TransactionRepository
	products     repo.ProductRepository
}

func NewHistoryService(transactions repo.TransactionRepository, products repo.ProductRepository) *HistoryService {
	return &HistoryService{transactions: transactions, products: products}
}

// List returns transactions newest first with the product SKU and name filled in.
func (h *HistoryService) List(ctx context.Context, tf repo.TransactionFilter) ([]models.StockTransaction, int, error) {
	if tf.Type != "" && !tf.Type.Valid() {
		return nil, 0, apperrors.Validation(apperrors.FieldError{Field: "type", Description: "unknown transaction type"})
	}
	if tf.Since != nil && tf.Until != nil && tf.Since.After(*tf.Until) {
		return nil, 0, apperrors.Validation(apperrors.FieldError{Field: "since", Description: "since must not be after until"})
	}

	items, total, err := h.transactions.List(ctx, tf)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list transactions", err)
	}
	if err := h.fillSnapshots(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ForProduct lists the history of one product, failing with NotFound for unknown ids.
func (h *HistoryService) ForProduct(ctx context.Context, productID int, tf repo.TransactionFilter) ([]models.StockTransaction, int, error) {
	if _, err := h.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			return nil, 0, apperrors.NotFound("product", productID)
		}
		return nil, 0, apperrors.Internal("failed to load product", err)
	}
	tf.ProductID = &productID
	return h.List(ctx, tf)
}

func (h *HistoryService) fillSnapshots(ctx context.Context, items []models.StockTransaction) error {
	cache := map[int]models.Product{}
	for i := range items {
		if items[i].ProductSKU != "" {
			continue
		}
		p, ok := cache[items[i].ProductID]
		if !ok {
			var err error
			p, err = h.products.GetByID(ctx, items[i].ProductID)
			if err != nil && !errors.Is(err, repo.ErrProductNotFound) {
				return apperrors.Internal("failed to load product", err)
			}
			cache[items[i].ProductID] = p
		}
		items[i].ProductSKU = p.SKU
		items[i].ProductName = p.Name
	}
	return nil
}
