package repo

import (
	"context"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

type TransactionFilter struct {
	ProductID *int
	Type      models.TransactionType
	Since     *time.Time
	Until     *time.Time
	Offset    *int
	Limit     *int
}

// TransactionRepository is append-only: there is no update or delete.
type TransactionRepository interface {
	Append(ctx context.Context, txn models.StockTransaction) (models.StockTransaction, error)
	List(ctx context.Context, tf TransactionFilter) ([]models.StockTransaction, int, error)
	CountByProduct(ctx context.Context, productID int) (int, error)
}
