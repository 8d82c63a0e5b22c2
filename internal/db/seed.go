package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	product  models.Product
	supplier int // index into seedSuppliers
}

var seedSuppliers = []models.Supplier{
	{Name: "Scandinavian Furniture Co.", ContactPerson: "Erik Larsson", Email: "erik@scandi.com", Phone: "+46-123-456", Address: "Stockholm, Sweden", IsActive: true},
	{Name: "Baltic Wood Supplies", ContactPerson: "Anna Kowalski", Email: "anna@baltic.com", Phone: "+48-987-654", Address: "Gdansk, Poland", IsActive: true},
}

var seedProducts = []seedProduct{
	{supplier: 0, product: models.Product{SKU: "BILLY-001", Name: "BILLY Bookcase", Description: "Adjustable shelves", Category: "Storage",
		Price: decimal.RequireFromString("79.99"), StockQuantity: 150, MinimumStock: 20, Location: "Warehouse A-1", IsActive: true}},
	{supplier: 0, product: models.Product{SKU: "EKTORP-001", Name: "EKTORP Sofa", Description: "3-seat sofa with removable cover", Category: "Furniture",
		Price: decimal.RequireFromString("599.99"), StockQuantity: 25, MinimumStock: 5, Location: "Warehouse B-3", IsActive: true}},
	{supplier: 1, product: models.Product{SKU: "LACK-001", Name: "LACK Coffee Table", Description: "Easy to assemble", Category: "Tables",
		Price: decimal.RequireFromString("49.99"), StockQuantity: 200, MinimumStock: 30, Location: "Warehouse A-2", IsActive: true}},
	{supplier: 1, product: models.Product{SKU: "MALM-001", Name: "MALM Bed Frame", Description: "Queen size with storage", Category: "Bedroom",
		Price: decimal.RequireFromString("299.99"), StockQuantity: 15, MinimumStock: 10, Location: "Warehouse C-1", IsActive: true}},
}

// Seed inserts the demo suppliers and products when no supplier exists yet.
// It returns false when the store already had data.
func Seed(ctx context.Context, suppliers repo.SupplierRepository, products repo.ProductRepository) (bool, error) {
	existing, err := suppliers.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check suppliers: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	now := time.Now().UTC()
	ids := make([]int, len(seedSuppliers))
	for i, s := range seedSuppliers {
		s.CreatedAt = now
		created, err := suppliers.Create(ctx, s)
		if err != nil {
			return false, fmt.Errorf("failed to seed supplier %q: %w", s.Name, err)
		}
		ids[i] = created.ID
	}

	for _, sp := range seedProducts {
		p := sp.product
		p.SupplierID = ids[sp.supplier]
		p.CreatedAt = now
		p.UpdatedAt = now
		if _, err := products.Create(ctx, p); err != nil {
			return false, fmt.Errorf("failed to seed product %s: %w", p.SKU, err)
		}
	}
	return true, nil
}
