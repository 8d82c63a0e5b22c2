package repo

import (
	"context"

	"github.com/shopspring/decimal"
)

type MostMovedProduct struct {
	Name          string `json:"name"`
	MovementCount int    `json:"movement_count"`
}

type Metrics struct {
	TotalProducts        int              `json:"total_products"`
	TotalItems           int              `json:"total_items"`
	TotalValue           decimal.Decimal  `json:"total_value"`
	LowStockCount        int              `json:"low_stock_count"`
	TotalTransactions    int              `json:"total_transactions"`
	CategoryDistribution map[string]int   `json:"category_distribution"`
	MostMovedProduct     MostMovedProduct `json:"most_moved_product"`
}

type MetricsRepository interface {
	GetDashboardMetrics(ctx context.Context) (Metrics, error)
}
