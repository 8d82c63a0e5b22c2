package db

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_PopulatesEmptyStoreOnce(t *testing.T) {
	ctx := context.Background()
	suppliers := repo.NewInMemorySupplierRepository()
	products := repo.NewInMemoryProductRepository(repo.NewInMemoryTransactionRepository())

	seeded, err := Seed(ctx, suppliers, products)
	require.NoError(t, err)
	assert.True(t, seeded)

	all, err := products.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)

	malm, err := products.GetBySKU(ctx, "MALM-001")
	require.NoError(t, err)
	assert.Equal(t, "299.99", malm.Price.StringFixed(2))
	assert.Equal(t, 2, malm.SupplierID)

	seeded, err = Seed(ctx, suppliers, products)
	require.NoError(t, err)
	assert.False(t, seeded)

	all, err = products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
