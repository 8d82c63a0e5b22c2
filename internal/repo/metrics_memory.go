package repo

import (
	"context"

	"github.com/shopspring/decimal"
)

type InMemoryMetricsRepository struct {
	productRepo     ProductRepository
	transactionRepo TransactionRepository
}

func NewInMemoryMetricsRepository(productRepo ProductRepository, transactionRepo TransactionRepository) *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
	}
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	m := Metrics{
		TotalValue:           decimal.Zero,
		CategoryDistribution: map[string]int{},
	}

	products, err := i.productRepo.GetAll(ctx)
	if err != nil {
		return m, err
	}
	m.TotalProducts = len(products)

	for _, product := range products {
		m.TotalItems += product.StockQuantity
		m.TotalValue = m.TotalValue.Add(product.StockValue())
		m.CategoryDistribution[product.Category]++
		if product.IsLowStock() {
			m.LowStockCount++
		}

		count, err := i.transactionRepo.CountByProduct(ctx, product.ID)
		if err != nil {
			return m, err
		}
		m.TotalTransactions += count
		if count > m.MostMovedProduct.MovementCount {
			m.MostMovedProduct.Name = product.Name
			m.MostMovedProduct.MovementCount = count
		}
	}

	return m, nil
}
