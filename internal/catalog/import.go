package catalog

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/warehouse-inventory/internal/apperrors"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/stock"
	"go.uber.org/zap"
)

type ImportMode string

const (
	ImportSkip   ImportMode = "skip"
	ImportUpdate ImportMode = "update"
)

// ImportRow is one parsed CSV line. ParseErr is set when the line could not be read.
type ImportRow struct {
	Line     int
	Input    ProductInput
	ParseErr error
}

type ImportResult struct {
	Created int                    `json:"created"`
	Updated int                    `json:"updated"`
	Skipped int                    `json:"skipped"`
	Errors  []apperrors.FieldError `json:"errors"`
}

// StockApplier is the part of the stock ledger used by imports.
type StockApplier interface {
	ApplyStockChange(ctx context.Context, c stock.Change) (models.Product, models.StockTransaction, error)
}

type Importer struct {
	products *ProductService
	ledger   StockApplier
	logger   *zap.Logger
}

func NewImporter(products *ProductService, ledger StockApplier, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{products: products, ledger: ledger, logger: logger}
}

// Import creates new products and, in update mode, patches existing ones by SKU.
// A quantity change on an existing product goes through the ledger as an Adjustment.
func (im *Importer) Import(ctx context.Context, rows []ImportRow, mode ImportMode, performedBy string) ImportResult {
	result := ImportResult{Errors: []apperrors.FieldError{}}

	fail := func(line int, format string, args ...any) {
		result.Errors = append(result.Errors, apperrors.FieldError{
			Field:       fmt.Sprintf("row %d", line),
			Description: fmt.Sprintf(format, args...),
		})
	}

	for _, row := range rows {
		if row.ParseErr != nil {
			fail(row.Line, "%v", row.ParseErr)
			continue
		}

		existing, err := im.products.GetBySKU(ctx, row.Input.SKU)
		if err != nil && !apperrors.IsKind(err, apperrors.KindNotFound) {
			fail(row.Line, "%v", err)
			continue
		}

		if err != nil {
			if _, err := im.products.Create(ctx, row.Input); err != nil {
				fail(row.Line, "%s", describe(err))
				continue
			}
			result.Created++
			continue
		}

		if mode != ImportUpdate {
			result.Skipped++
			continue
		}

		if err := im.update(ctx, existing, row.Input, performedBy); err != nil {
			fail(row.Line, "%s", describe(err))
			continue
		}
		result.Updated++
	}

	im.logger.Info("products imported",
		zap.String("mode", string(mode)),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result
}

// update checks the whole row before touching anything, so a rejected row
// leaves the product as it was.
func (im *Importer) update(ctx context.Context, existing models.Product, in ProductInput, performedBy string) error {
	if in.StockQuantity < 0 {
		return apperrors.Validation(apperrors.FieldError{Field: "stockQuantity", Description: "stockQuantity cannot be negative"})
	}
	patch := ProductPatch{
		Name:         &in.Name,
		Description:  &in.Description,
		Category:     &in.Category,
		Price:        &in.Price,
		MinimumStock: &in.MinimumStock,
		SupplierID:   &in.SupplierID,
		Location:     &in.Location,
		IsActive:     in.IsActive,
	}
	target, err := im.products.applyPatch(ctx, existing, patch)
	if err != nil {
		return err
	}

	delta := in.StockQuantity - existing.StockQuantity
	if delta != 0 && !existing.IsActive && !target.IsActive {
		return apperrors.InvalidOperation("stock of an inactive product cannot change", "SKU "+existing.SKU)
	}

	// The ledger only accepts active products: adjust before a deactivating
	// patch, after a reactivating one.
	if delta != 0 && existing.IsActive {
		if err := im.adjust(ctx, existing.ID, delta, performedBy); err != nil {
			return err
		}
		delta = 0
	}
	if _, err := im.products.Update(ctx, existing.ID, patch); err != nil {
		return err
	}
	if delta != 0 {
		return im.adjust(ctx, existing.ID, delta, performedBy)
	}
	return nil
}

func (im *Importer) adjust(ctx context.Context, productID, delta int, performedBy string) error {
	_, _, err := im.ledger.ApplyStockChange(ctx, stock.Change{
		ProductID:   productID,
		Delta:       delta,
		Type:        models.TransactionAdjustment,
		Reference:   "csv-import",
		PerformedBy: performedBy,
	})
	return err
}

func describe(err error) string {
	appErr := apperrors.From(err)
	if len(appErr.Fields) == 0 {
		if appErr.Details != "" {
			return appErr.Message + ": " + appErr.Details
		}
		return appErr.Message
	}
	msg := ""
	for i, f := range appErr.Fields {
		if i > 0 {
			msg += "; "
		}
		msg += f.Description
	}
	return msg
}
