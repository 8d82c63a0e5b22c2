package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	m := Metrics{
		TotalValue:           decimal.Zero,
		CategoryDistribution: map[string]int{},
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(stock_quantity), 0),
		       COALESCE(SUM(price * stock_quantity), 0),
		       COUNT(*) FILTER (WHERE stock_quantity <= minimum_stock)
		FROM products
	`).Scan(&m.TotalProducts, &m.TotalItems, &m.TotalValue, &m.LowStockCount)
	if err != nil {
		return m, err
	}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock_transactions`).Scan(&m.TotalTransactions); err != nil {
		return m, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM products GROUP BY category`)
	if err != nil {
		return m, err
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return m, err
		}
		m.CategoryDistribution[category] = count
	}
	if err := rows.Err(); err != nil {
		return m, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT p.name, COUNT(*) as cnt
		FROM stock_transactions t
		JOIN products p ON t.product_id = p.id
		GROUP BY p.name
		ORDER BY cnt DESC
		LIMIT 1
	`).Scan(&m.MostMovedProduct.Name, &m.MostMovedProduct.MovementCount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return m, err
	}

	return m, nil
}
