package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

const queryTimeout = 3 * time.Second

const productColumns = `id, sku, name, description, category, price, stock_quantity, minimum_stock, supplier_id, location, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner) (models.Product, error) {
	var p models.Product
	err := s.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Price,
		&p.StockQuantity, &p.MinimumStock, &p.SupplierID, &p.Location, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (sku, name, description, category, price, stock_quantity, minimum_stock, supplier_id, location, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.SKU, p.Name, p.Description, p.Category, p.Price, p.StockQuantity,
		p.MinimumStock, p.SupplierID, p.Location, p.IsActive, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", translatePgError(err))
	}
	return p, nil
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) GetBySKU(ctx context.Context, sku string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE lower(sku) = lower($1)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, sku))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $1, description = $2, category = $3, price = $4, minimum_stock = $5,
		supplier_id = $6, location = $7, is_active = $8, updated_at = $9 WHERE id = $10
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Category, p.Price, p.MinimumStock,
		p.SupplierID, p.Location, p.IsActive, p.UpdatedAt, p.ID)
	updated, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to update product: %w", translatePgError(err))
	}
	return updated, nil
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", translatePgError(err))
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) CountBySupplier(ctx context.Context, supplierID int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE supplier_id = $1`, supplierID).Scan(&count)
	return count, err
}

func (r *PostgresProductRepository) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := filterConditions(pf)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	query += conditions
	query += " ORDER BY id"

	if pf.Limit != nil && *pf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *pf.Limit)
		argIdx++
	}
	if pf.Offset != nil && *pf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *pf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}

	return products, totalCount, rows.Err()
}

func filterConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	add := func(clause string, arg any) {
		query += fmt.Sprintf(clause, argIdx)
		args = append(args, arg)
		argIdx++
	}

	if pf.Name != "" {
		add(" AND name ILIKE $%d", "%"+pf.Name+"%")
	}
	if pf.Category != "" {
		add(" AND lower(category) = lower($%d)", pf.Category)
	}
	if pf.SupplierID != nil {
		add(" AND supplier_id = $%d", *pf.SupplierID)
	}
	if pf.MinPrice != nil {
		add(" AND price >= $%d", *pf.MinPrice)
	}
	if pf.MaxPrice != nil {
		add(" AND price <= $%d", *pf.MaxPrice)
	}
	if pf.MinQty != nil {
		add(" AND stock_quantity >= $%d", *pf.MinQty)
	}
	if pf.MaxQty != nil {
		add(" AND stock_quantity <= $%d", *pf.MaxQty)
	}
	if pf.LowStock != nil {
		if *pf.LowStock {
			query += " AND stock_quantity <= minimum_stock"
		} else {
			query += " AND stock_quantity > minimum_stock"
		}
	}
	if pf.Active != nil {
		add(" AND is_active = $%d", *pf.Active)
	}

	return query, args, argIdx
}

// AdjustStock runs the guarded stock update and the transaction insert in one
// database transaction.
func (r *PostgresProductRepository) AdjustStock(ctx context.Context, productID, delta int, txn models.StockTransaction) (models.Product, models.StockTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, models.StockTransaction{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	update := `
		UPDATE products
		SET stock_quantity = stock_quantity + $1, updated_at = $2
		WHERE id = $3 AND is_active AND stock_quantity + $1 >= 0
		RETURNING ` + productColumns
	p, err := scanProduct(tx.QueryRowContext(ctx, update, delta, now, productID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, models.StockTransaction{}, r.adjustFailure(ctx, tx, productID)
	}
	if err != nil {
		return models.Product{}, models.StockTransaction{}, fmt.Errorf("failed to update stock: %w", err)
	}

	txn.ProductID = productID
	txn.Quantity = delta
	if txn.TransactionDate.IsZero() {
		txn.TransactionDate = now
	}
	insert := `INSERT INTO stock_transactions (product_id, type, quantity, reference, notes, transaction_date, performed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err = tx.QueryRowContext(ctx, insert, txn.ProductID, string(txn.Type), txn.Quantity, txn.Reference, txn.Notes,
		txn.TransactionDate, txn.PerformedBy).Scan(&txn.ID)
	if err != nil {
		return models.Product{}, models.StockTransaction{}, fmt.Errorf("failed to insert stock transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, models.StockTransaction{}, fmt.Errorf("failed to commit stock change: %w", err)
	}

	txn.ProductSKU = p.SKU
	txn.ProductName = p.Name
	return p, txn, nil
}

// adjustFailure tells a missing or inactive product apart from a stock shortfall.
func (r *PostgresProductRepository) adjustFailure(ctx context.Context, tx *sql.Tx, productID int) error {
	var active bool
	err := tx.QueryRowContext(ctx, `SELECT is_active FROM products WHERE id = $1`, productID).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !active) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	return ErrInsufficientStock
}
