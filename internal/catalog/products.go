package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/apperrors"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductInput carries the fields of a new product.
type ProductInput struct {
	SKU           string
	Name          string
	Description   string
	Category      string
	Price         decimal.Decimal
	StockQuantity int
	MinimumStock  int
	SupplierID    int
	Location      string
	IsActive      *bool
}

// ProductPatch is a partial update. SKU and stock quantity cannot be changed here.
type ProductPatch struct {
	Name         *string
	Description  *string
	Category     *string
	Price        *decimal.Decimal
	MinimumStock *int
	SupplierID   *int
	Location     *string
	IsActive     *bool
}

type ProductService struct {
	products     repo.ProductRepository
	suppliers    repo.SupplierRepository
	transactions repo.TransactionRepository
	logger       *zap.Logger
}

func NewProductService(products repo.ProductRepository, suppliers repo.SupplierRepository, transactions repo.TransactionRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{products: products, suppliers: suppliers, transactions: transactions, logger: logger}
}

func validateProductInput(in ProductInput) fieldErrors {
	var errs fieldErrors
	errs.required("sku", in.SKU, 50)
	errs.required("name", in.Name, 200)
	errs.maxLen("description", in.Description, 1000)
	errs.maxLen("category", in.Category, 100)
	errs.maxLen("location", in.Location, 100)
	if in.Price.IsNegative() {
		errs.add("price", "price cannot be negative")
	}
	errs.nonNegative("stockQuantity", in.StockQuantity)
	errs.nonNegative("minimumStock", in.MinimumStock)
	if in.SupplierID <= 0 {
		errs.add("supplierId", "supplierId is required")
	}
	return errs
}

func (s *ProductService) checkSupplier(ctx context.Context, errs *fieldErrors, supplierID int) error {
	if supplierID <= 0 {
		return nil
	}
	_, err := s.suppliers.GetByID(ctx, supplierID)
	if errors.Is(err, repo.ErrSupplierNotFound) {
		errs.add("supplierId", fmt.Sprintf("supplier %d does not exist", supplierID))
		return nil
	}
	return err
}

// Create validates and stores a new product. Initial stock is not journaled.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)

	errs := validateProductInput(in)
	if err := s.checkSupplier(ctx, &errs, in.SupplierID); err != nil {
		return models.Product{}, apperrors.Internal("failed to load supplier", err)
	}
	if err := errs.err(); err != nil {
		return models.Product{}, err
	}

	if _, err := s.products.GetBySKU(ctx, in.SKU); err == nil {
		return models.Product{}, apperrors.Conflict("duplicate SKU", fmt.Sprintf("product with SKU %s already exists", in.SKU))
	} else if !errors.Is(err, repo.ErrProductNotFound) {
		return models.Product{}, apperrors.Internal("failed to check SKU", err)
	}

	now := time.Now().UTC()
	p := models.Product{
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		MinimumStock:  in.MinimumStock,
		SupplierID:    in.SupplierID,
		Location:      in.Location,
		IsActive:      in.IsActive == nil || *in.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.products.Create(ctx, p)
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		return models.Product{}, apperrors.Conflict("duplicate SKU", fmt.Sprintf("product with SKU %s already exists", in.SKU))
	}
	if err != nil {
		return models.Product{}, apperrors.Internal("failed to create product", err)
	}

	s.logger.Info("product created", zap.Int("product_id", created.ID), zap.String("sku", created.SKU))
	return s.withSupplier(ctx, created), nil
}

func (s *ProductService) Get(ctx context.Context, id int) (models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repo.ErrProductNotFound) {
		return models.Product{}, apperrors.NotFound("product", id)
	}
	if err != nil {
		return models.Product{}, apperrors.Internal("failed to load product", err)
	}
	return s.withSupplier(ctx, p), nil
}

func (s *ProductService) GetBySKU(ctx context.Context, sku string) (models.Product, error) {
	p, err := s.products.GetBySKU(ctx, sku)
	if errors.Is(err, repo.ErrProductNotFound) {
		return models.Product{}, apperrors.NotFound("product", sku)
	}
	if err != nil {
		return models.Product{}, apperrors.Internal("failed to load product", err)
	}
	return s.withSupplier(ctx, p), nil
}

// List returns every product with its supplier snapshot attached.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list products", err)
	}
	return s.attachSuppliers(ctx, products)
}

func (s *ProductService) Filter(ctx context.Context, pf repo.ProductFilter) ([]models.Product, int, error) {
	products, total, err := s.products.Filter(ctx, pf)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to filter products", err)
	}
	products, err = s.attachSuppliers(ctx, products)
	return products, total, err
}

// LowStock lists active products at or below their minimum stock.
func (s *ProductService) LowStock(ctx context.Context) ([]models.Product, error) {
	low, active := true, true
	products, _, err := s.Filter(ctx, repo.ProductFilter{LowStock: &low, Active: &active})
	return products, err
}

func (s *ProductService) Update(ctx context.Context, id int, patch ProductPatch) (models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repo.ErrProductNotFound) {
		return models.Product{}, apperrors.NotFound("product", id)
	}
	if err != nil {
		return models.Product{}, apperrors.Internal("failed to load product", err)
	}

	p, err = s.applyPatch(ctx, p, patch)
	if err != nil {
		return models.Product{}, err
	}

	p.UpdatedAt = time.Now().UTC()
	updated, err := s.products.Update(ctx, p)
	if errors.Is(err, repo.ErrProductNotFound) {
		return models.Product{}, apperrors.NotFound("product", id)
	}
	if err != nil {
		return models.Product{}, apperrors.Internal("failed to update product", err)
	}

	s.logger.Info("product updated", zap.Int("product_id", updated.ID))
	return s.withSupplier(ctx, updated), nil
}

// applyPatch returns p with patch applied and validated. Nothing is stored.
func (s *ProductService) applyPatch(ctx context.Context, p models.Product, patch ProductPatch) (models.Product, error) {
	var errs fieldErrors
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
		errs.required("name", p.Name, 200)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
		errs.maxLen("description", p.Description, 1000)
	}
	if patch.Category != nil {
		p.Category = *patch.Category
		errs.maxLen("category", p.Category, 100)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
		if p.Price.IsNegative() {
			errs.add("price", "price cannot be negative")
		}
	}
	if patch.MinimumStock != nil {
		p.MinimumStock = *patch.MinimumStock
		errs.nonNegative("minimumStock", p.MinimumStock)
	}
	if patch.SupplierID != nil && *patch.SupplierID != p.SupplierID {
		p.SupplierID = *patch.SupplierID
		if p.SupplierID <= 0 {
			errs.add("supplierId", "supplierId is required")
		} else if err := s.checkSupplier(ctx, &errs, p.SupplierID); err != nil {
			return models.Product{}, apperrors.Internal("failed to load supplier", err)
		}
	}
	if patch.Location != nil {
		p.Location = *patch.Location
		errs.maxLen("location", p.Location, 100)
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if err := errs.err(); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Delete removes a product. Products with stock history are kept so the
// transaction journal stays complete; deactivate them instead.
func (s *ProductService) Delete(ctx context.Context, id int) error {
	if _, err := s.products.GetByID(ctx, id); errors.Is(err, repo.ErrProductNotFound) {
		return apperrors.NotFound("product", id)
	} else if err != nil {
		return apperrors.Internal("failed to load product", err)
	}

	count, err := s.transactions.CountByProduct(ctx, id)
	if err != nil {
		return apperrors.Internal("failed to check stock history", err)
	}
	if count > 0 {
		return apperrors.Conflict("product has stock history", fmt.Sprintf("%d transactions reference product %d; deactivate it instead", count, id))
	}

	err = s.products.Delete(ctx, id)
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		return apperrors.NotFound("product", id)
	case errors.Is(err, repo.ErrReferenced):
		return apperrors.Conflict("product has stock history", "deactivate it instead")
	case err != nil:
		return apperrors.Internal("failed to delete product", err)
	}

	s.logger.Info("product deleted", zap.Int("product_id", id))
	return nil
}

func (s *ProductService) withSupplier(ctx context.Context, p models.Product) models.Product {
	if sp, err := s.suppliers.GetByID(ctx, p.SupplierID); err == nil {
		p.Supplier = &sp
	}
	return p
}

func (s *ProductService) attachSuppliers(ctx context.Context, products []models.Product) ([]models.Product, error) {
	suppliers, err := s.suppliers.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list suppliers", err)
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
	return products, nil
}
