package repo

import (
	"context"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier models.Supplier) (models.Supplier, error)
	GetAll(ctx context.Context) ([]models.Supplier, error)
	ListActive(ctx context.Context) ([]models.Supplier, error)
	GetByID(ctx context.Context, id int) (models.Supplier, error)
	Update(ctx context.Context, supplier models.Supplier) (models.Supplier, error)
	Delete(ctx context.Context, id int) error
}
