package catalog

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/warehouse-inventory/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierService_CreateAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sp, err := f.suppliers.Create(ctx, SupplierInput{Name: "Baltic Wood Supplies", Email: "anna@baltic.com"})
	require.NoError(t, err)
	assert.True(t, sp.IsActive)

	off := false
	phone := "+48-987-654"
	updated, err := f.suppliers.Update(ctx, sp.ID, SupplierPatch{IsActive: &off, Phone: &phone})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Baltic Wood Supplies", updated.Name)

	active, err := f.suppliers.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, f.supplier.ID, active[0].ID)
}

func TestSupplierService_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.suppliers.Create(context.Background(), SupplierInput{Name: "", Email: "not-an-email"})
	appErr := apperrors.From(err)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Fields, 2)
}

func TestSupplierService_DeleteReferencedConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.products.Create(ctx, f.input("BILLY-001"))
	require.NoError(t, err)

	err = f.suppliers.Delete(ctx, f.supplier.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	unused, err := f.suppliers.Create(ctx, SupplierInput{Name: "Unused"})
	require.NoError(t, err)
	require.NoError(t, f.suppliers.Delete(ctx, unused.ID))

	_, err = f.suppliers.Get(ctx, unused.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
