package repo

import (
	"context"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	GetBySKU(ctx context.Context, sku string) (models.Product, error)
	Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id int) error
	CountBySupplier(ctx context.Context, supplierID int) (int, error)

	// AdjustStock applies delta to an active product and appends txn in a single
	// atomic step. It returns ErrInsufficientStock when the result would be negative.
	AdjustStock(ctx context.Context, productID, delta int, txn models.StockTransaction) (models.Product, models.StockTransaction, error)
}
