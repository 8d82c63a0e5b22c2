package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

const defaultLimit = 100

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

// Append inserts a transaction outside of a stock update. Stock changes go
// through ProductRepository.AdjustStock instead.
func (r *PostgresTransactionRepository) Append(ctx context.Context, txn models.StockTransaction) (models.StockTransaction, error) {
	query := `INSERT INTO stock_transactions (product_id, type, quantity, reference, notes, transaction_date, performed_by)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6::timestamptz, now()), $7) RETURNING id, transaction_date`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var date sql.NullTime
	if !txn.TransactionDate.IsZero() {
		date = sql.NullTime{Time: txn.TransactionDate, Valid: true}
	}
	err := r.db.QueryRowContext(ctx, query, txn.ProductID, string(txn.Type), txn.Quantity, txn.Reference, txn.Notes, date, txn.PerformedBy).
		Scan(&txn.ID, &txn.TransactionDate)
	if err != nil {
		return models.StockTransaction{}, fmt.Errorf("failed to insert stock transaction: %w", translatePgError(err))
	}
	return txn, nil
}

// List returns transactions newest first with the product snapshot joined in.
func (r *PostgresTransactionRepository) List(ctx context.Context, tf TransactionFilter) ([]models.StockTransaction, int, error) {
	whereClause, args := buildTransactionWhere(tf)

	if tf.Offset != nil && *tf.Offset < 0 {
		return nil, 0, fmt.Errorf("offset must be non-negative")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	countQuery := "SELECT COUNT(*) FROM stock_transactions t " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	if tf.Offset != nil && *tf.Offset >= total {
		return []models.StockTransaction{}, total, nil
	}

	query := `SELECT t.id, t.product_id, t.type, t.quantity, t.reference, t.notes, t.transaction_date, t.performed_by, p.sku, p.name
		FROM stock_transactions t JOIN products p ON p.id = t.product_id ` + whereClause + ` ORDER BY t.transaction_date DESC, t.id DESC`
	argIndex := len(args) + 1

	limit := defaultLimit
	if tf.Limit != nil && *tf.Limit > 0 {
		limit = min(*tf.Limit, defaultLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, limit)
	argIndex++

	if tf.Offset != nil && *tf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *tf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	transactions := []models.StockTransaction{}
	for rows.Next() {
		var t models.StockTransaction
		var txnType string
		if err := rows.Scan(&t.ID, &t.ProductID, &txnType, &t.Quantity, &t.Reference, &t.Notes,
			&t.TransactionDate, &t.PerformedBy, &t.ProductSKU, &t.ProductName); err != nil {
			return nil, 0, err
		}
		t.Type = models.TransactionType(txnType)
		transactions = append(transactions, t)
	}

	return transactions, total, rows.Err()
}

func buildTransactionWhere(tf TransactionFilter) (string, []any) {
	whereClause := "WHERE 1=1"
	args := []any{}
	argIndex := 1

	if tf.ProductID != nil {
		whereClause += fmt.Sprintf(" AND t.product_id = $%d", argIndex)
		args = append(args, *tf.ProductID)
		argIndex++
	}
	if tf.Type != "" {
		whereClause += fmt.Sprintf(" AND t.type = $%d", argIndex)
		args = append(args, string(tf.Type))
		argIndex++
	}
	if tf.Since != nil {
		whereClause += fmt.Sprintf(" AND t.transaction_date >= $%d", argIndex)
		args = append(args, *tf.Since)
		argIndex++
	}
	if tf.Until != nil {
		whereClause += fmt.Sprintf(" AND t.transaction_date <= $%d", argIndex)
		args = append(args, *tf.Until)
	}

	return whereClause, args
}

func (r *PostgresTransactionRepository) CountByProduct(ctx context.Context, productID int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock_transactions WHERE product_id = $1`, productID).Scan(&count)
	return count, err
}
