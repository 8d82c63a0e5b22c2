package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

const supplierColumns = `id, name, contact_person, email, phone, address, is_active, created_at`

type PostgresSupplierRepository struct {
	db *sql.DB
}

func NewPostgresSupplierRepository(db *sql.DB) *PostgresSupplierRepository {
	return &PostgresSupplierRepository{db: db}
}

func scanSupplier(s rowScanner) (models.Supplier, error) {
	var sp models.Supplier
	err := s.Scan(&sp.ID, &sp.Name, &sp.ContactPerson, &sp.Email, &sp.Phone, &sp.Address, &sp.IsActive, &sp.CreatedAt)
	return sp, err
}

func (r *PostgresSupplierRepository) Create(ctx context.Context, s models.Supplier) (models.Supplier, error) {
	query := `INSERT INTO suppliers (name, contact_person, email, phone, address, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.IsActive, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		return models.Supplier{}, fmt.Errorf("failed to insert supplier: %w", translatePgError(err))
	}
	return s, nil
}

func (r *PostgresSupplierRepository) GetAll(ctx context.Context) ([]models.Supplier, error) {
	return r.list(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY id`)
}

func (r *PostgresSupplierRepository) ListActive(ctx context.Context) ([]models.Supplier, error) {
	return r.list(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE is_active ORDER BY name`)
}

func (r *PostgresSupplierRepository) list(ctx context.Context, query string) ([]models.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *PostgresSupplierRepository) GetByID(ctx context.Context, id int) (models.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	s, err := scanSupplier(r.db.QueryRowContext(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Supplier{}, ErrSupplierNotFound
	}
	return s, err
}

func (r *PostgresSupplierRepository) Update(ctx context.Context, s models.Supplier) (models.Supplier, error) {
	query := `UPDATE suppliers SET name = $1, contact_person = $2, email = $3, phone = $4, address = $5, is_active = $6 WHERE id = $7`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.IsActive, s.ID)
	if err != nil {
		return models.Supplier{}, fmt.Errorf("failed to update supplier: %w", translatePgError(err))
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Supplier{}, ErrSupplierNotFound
	}
	return s, nil
}

func (r *PostgresSupplierRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", translatePgError(err))
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
