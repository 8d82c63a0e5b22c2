package repo_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/rogerio-castellano/warehouse-inventory/internal/db"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to DATABASE_URL and empties every table. The test is skipped when it is not set.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.EnsureSchema(ctx, database))
	_, err = database.ExecContext(ctx, "TRUNCATE stock_transactions, products, suppliers, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return database
}

func TestPostgres_ProductLifecycle(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	suppliers := repo.NewPostgresSupplierRepository(database)
	products := repo.NewPostgresProductRepository(database)
	transactions := repo.NewPostgresTransactionRepository(database)

	sp, err := suppliers.Create(ctx, models.Supplier{Name: "Baltic Wood Supplies", Email: "anna@baltic.com", IsActive: true})
	require.NoError(t, err)

	p, err := products.Create(ctx, models.Product{
		SKU: "LACK-001", Name: "LACK Coffee Table", Category: "Tables",
		Price: decimal.RequireFromString("49.99"), StockQuantity: 10, MinimumStock: 5,
		SupplierID: sp.ID, IsActive: true,
	})
	require.NoError(t, err)

	_, err = products.Create(ctx, models.Product{SKU: "lack-001", Name: "dup", Price: decimal.Zero, SupplierID: sp.ID, IsActive: true})
	assert.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)

	got, err := products.GetBySKU(ctx, "LACK-001")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("49.99")))

	updated, txn, err := products.AdjustStock(ctx, p.ID, -4, models.StockTransaction{Type: models.TransactionSale, PerformedBy: "tester"})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.StockQuantity)
	assert.Equal(t, -4, txn.Quantity)
	assert.NotZero(t, txn.ID)

	_, _, err = products.AdjustStock(ctx, p.ID, -7, models.StockTransaction{Type: models.TransactionSale, PerformedBy: "tester"})
	assert.ErrorIs(t, err, repo.ErrInsufficientStock)

	_, _, err = products.AdjustStock(ctx, 9999, 1, models.StockTransaction{Type: models.TransactionPurchase, PerformedBy: "tester"})
	assert.ErrorIs(t, err, repo.ErrProductNotFound)

	got, err = products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.StockQuantity)

	stale := p
	stale.Name = "LACK Side Table"
	renamed, err := products.Update(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, "LACK Side Table", renamed.Name)
	assert.Equal(t, 6, renamed.StockQuantity)

	items, total, err := transactions.List(ctx, repo.TransactionFilter{ProductID: &p.ID})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "LACK-001", items[0].ProductSKU)

	count, err := products.CountBySupplier(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.ErrorIs(t, suppliers.Delete(ctx, sp.ID), repo.ErrReferenced)

	lowStock := true
	filtered, total, err := products.Filter(ctx, repo.ProductFilter{LowStock: &lowStock})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, filtered)
}

func TestPostgres_Users(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	users := repo.NewPostgresUserRepository(database)

	_, err := users.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "hash", Role: "user"})
	require.NoError(t, err)

	_, err = users.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "hash", Role: "user"})
	assert.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)

	u, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "user", u.Role)

	_, err = users.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
}

func TestPostgres_DashboardMetrics(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	seeded, err := db.Seed(ctx, repo.NewPostgresSupplierRepository(database), repo.NewPostgresProductRepository(database))
	require.NoError(t, err)
	require.True(t, seeded)

	m, err := repo.NewPostgresMetricsRepository(database).GetDashboardMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, m.TotalProducts)
	assert.Equal(t, 150+25+200+15, m.TotalItems)
	assert.Equal(t, 0, m.LowStockCount)
	assert.Len(t, m.CategoryDistribution, 4)
}
