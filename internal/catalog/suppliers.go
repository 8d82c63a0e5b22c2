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
	"go.uber.org/zap"
)

type SupplierInput struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	IsActive      *bool
}

type SupplierPatch struct {
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	IsActive      *bool
}

type SupplierService struct {
	suppliers repo.SupplierRepository
	products  repo.ProductRepository
	logger    *zap.Logger
}

func NewSupplierService(suppliers repo.SupplierRepository, products repo.ProductRepository, logger *zap.Logger) *SupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{suppliers: suppliers, products: products, logger: logger}
}

func validateSupplier(s models.Supplier) error {
	var errs fieldErrors
	errs.required("name", s.Name, 200)
	errs.maxLen("contactPerson", s.ContactPerson, 100)
	errs.maxLen("email", s.Email, 100)
	errs.email("email", s.Email)
	errs.maxLen("phone", s.Phone, 20)
	errs.maxLen("address", s.Address, 500)
	return errs.err()
}

func (s *SupplierService) Create(ctx context.Context, in SupplierInput) (models.Supplier, error) {
	sp := models.Supplier{
		Name:          strings.TrimSpace(in.Name),
		ContactPerson: in.ContactPerson,
		Email:         strings.TrimSpace(in.Email),
		Phone:         in.Phone,
		Address:       in.Address,
		IsActive:      in.IsActive == nil || *in.IsActive,
		CreatedAt:     time.Now().UTC(),
	}
	if err := validateSupplier(sp); err != nil {
		return models.Supplier{}, err
	}

	created, err := s.suppliers.Create(ctx, sp)
	if err != nil {
		return models.Supplier{}, apperrors.Internal("failed to create supplier", err)
	}
	s.logger.Info("supplier created", zap.Int("supplier_id", created.ID))
	return created, nil
}

func (s *SupplierService) Get(ctx context.Context, id int) (models.Supplier, error) {
	sp, err := s.suppliers.GetByID(ctx, id)
	if errors.Is(err, repo.ErrSupplierNotFound) {
		return models.Supplier{}, apperrors.NotFound("supplier", id)
	}
	if err != nil {
		return models.Supplier{}, apperrors.Internal("failed to load supplier", err)
	}
	return sp, nil
}

func (s *SupplierService) List(ctx context.Context) ([]models.Supplier, error) {
	suppliers, err := s.suppliers.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list suppliers", err)
	}
	return suppliers, nil
}

func (s *SupplierService) ListActive(ctx context.Context) ([]models.Supplier, error) {
	suppliers, err := s.suppliers.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list suppliers", err)
	}
	return suppliers, nil
}

func (s *SupplierService) Update(ctx context.Context, id int, patch SupplierPatch) (models.Supplier, error) {
	sp, err := s.Get(ctx, id)
	if err != nil {
		return models.Supplier{}, err
	}

	if patch.Name != nil {
		sp.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.ContactPerson != nil {
		sp.ContactPerson = *patch.ContactPerson
	}
	if patch.Email != nil {
		sp.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Phone != nil {
		sp.Phone = *patch.Phone
	}
	if patch.Address != nil {
		sp.Address = *patch.Address
	}
	if patch.IsActive != nil {
		sp.IsActive = *patch.IsActive
	}
	if err := validateSupplier(sp); err != nil {
		return models.Supplier{}, err
	}

	updated, err := s.suppliers.Update(ctx, sp)
	if errors.Is(err, repo.ErrSupplierNotFound) {
		return models.Supplier{}, apperrors.NotFound("supplier", id)
	}
	if err != nil {
		return models.Supplier{}, apperrors.Internal("failed to update supplier", err)
	}
	return updated, nil
}

// Delete removes a supplier that no product references.
func (s *SupplierService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.products.CountBySupplier(ctx, id)
	if err != nil {
		return apperrors.Internal("failed to check supplier usage", err)
	}
	if count > 0 {
		return apperrors.Conflict("supplier is in use", fmt.Sprintf("%d products reference supplier %d", count, id))
	}

	err = s.suppliers.Delete(ctx, id)
	switch {
	case errors.Is(err, repo.ErrSupplierNotFound):
		return apperrors.NotFound("supplier", id)
	case errors.Is(err, repo.ErrReferenced):
		return apperrors.Conflict("supplier is in use", "products reference this supplier")
	case err != nil:
		return apperrors.Internal("failed to delete supplier", err)
	}

	s.logger.Info("supplier deleted", zap.Int("supplier_id", id))
	return nil
}
