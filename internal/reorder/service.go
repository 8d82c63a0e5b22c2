package reorder

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

// Service feeds the planner with a product snapshot joined to suppliers.
type Service struct {
	products  repo.ProductRepository
	suppliers repo.SupplierRepository
	planner   *Planner
}

func NewService(products repo.ProductRepository, suppliers repo.SupplierRepository, planner *Planner) *Service {
	return &Service{products: products, suppliers: suppliers, planner: planner}
}

func (s *Service) Suggestions(ctx context.Context) ([]Suggestion, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	suppliers, err := s.suppliers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}
	byID := make(map[int]models.Supplier, len(suppliers))
	for _, sp := range suppliers {
		byID[sp.ID] = sp
	}

	for i := range products {
		if sp, ok := byID[products[i].SupplierID]; ok {
			products[i].Supplier = &sp
		}
	}

	return s.planner.Plan(products), nil
}
