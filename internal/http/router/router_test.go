package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/auth"
	"github.com/rogerio-castellano/warehouse-inventory/internal/catalog"
	"github.com/rogerio-castellano/warehouse-inventory/internal/db"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/handlers"
	mw "github.com/rogerio-castellano/warehouse-inventory/internal/http/middleware"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/reorder"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"github.com/rogerio-castellano/warehouse-inventory/internal/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup wires an in-memory stack seeded with the demo catalog and returns the router and a bearer token.
func setup(t *testing.T) (http.Handler, string) {
	t.Helper()
	ctx := context.Background()

	txns := repo.NewInMemoryTransactionRepository()
	productRepo := repo.NewInMemoryProductRepository(txns)
	supplierRepo := repo.NewInMemorySupplierRepository()
	userRepo := repo.NewInMemoryUserRepository()

	seeded, err := db.Seed(ctx, supplierRepo, productRepo)
	require.NoError(t, err)
	require.True(t, seeded)

	productService := catalog.NewProductService(productRepo, supplierRepo, txns, nil)
	ledger := stock.NewLedger(productRepo, nil)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	handlers.SetProductService(productService)
	handlers.SetSupplierService(catalog.NewSupplierService(supplierRepo, productRepo, nil))
	handlers.SetHistoryService(catalog.NewHistoryService(txns, productRepo))
	handlers.SetImporter(catalog.NewImporter(productService, ledger, nil))
	handlers.SetLedger(ledger)
	handlers.SetReorderService(reorder.NewService(productRepo, supplierRepo, reorder.NewPlanner(reorder.DefaultPolicy())))
	handlers.SetMetricsRepo(repo.NewInMemoryMetricsRepository(productRepo, txns))
	handlers.SetAuthService(auth.NewAuthService(userRepo, tokens))
	handlers.SetHealthChecks()
	mw.SetTokenIssuer(tokens)

	r := NewRouter(nil, nil)

	w := do(t, r, http.MethodPost, "/register", "", `{"username":"warehouse","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reg handlers.RegisterResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	require.NotEmpty(t, reg.Token)

	return r, reg.Token
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestLogin(t *testing.T) {
	r, _ := setup(t)

	w := do(t, r, http.MethodPost, "/login", "", `{"username":"warehouse","password":"secret123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[handlers.LoginResult](t, w).Token)

	w = do(t, r, http.MethodPost, "/login", "", `{"username":"warehouse","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/register", "", `{"username":"warehouse","password":"secret123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/login", "", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProducts(t *testing.T) {
	r, _ := setup(t)

	w := do(t, r, http.MethodGet, "/products", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	products := decode[[]handlers.ProductResponse](t, w)
	require.Len(t, products, 4)
	for _, p := range products {
		require.NotNil(t, p.Supplier, p.SKU)
	}
}

func TestGetProductByID(t *testing.T) {
	r, _ := setup(t)

	w := do(t, r, http.MethodGet, "/products/1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[handlers.ProductResponse](t, w)
	assert.Equal(t, "BILLY-001", p.SKU)
	assert.False(t, p.IsLowStock)
	assert.InDelta(t, 79.99*150, p.StockValue, 0.001)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/products/999", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/products/abc", "", "").Code)
}

func TestMutationsRequireToken(t *testing.T) {
	r, _ := setup(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/products"},
		{http.MethodPut, "/products/1"},
		{http.MethodDelete, "/products/1"},
		{http.MethodPost, "/products/1/stock"},
		{http.MethodPatch, "/products/1/stock"},
		{http.MethodPost, "/products/import"},
		{http.MethodPost, "/suppliers"},
		{http.MethodPut, "/suppliers/1"},
		{http.MethodDelete, "/suppliers/1"},
	}
	for _, rt := range routes {
		w := do(t, r, rt.method, rt.path, "", `{}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
	}
}

func TestCreateProduct(t *testing.T) {
	r, token := setup(t)

	body := `{"sku":"POANG-001","name":"POANG Armchair","category":"Furniture","price":129.5,"stockQuantity":5,"minimumStock":5,"supplierId":1}`
	w := do(t, r, http.MethodPost, "/products", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	p := decode[handlers.ProductResponse](t, w)
	assert.Equal(t, "POANG-001", p.SKU)
	assert.True(t, p.IsActive)
	assert.True(t, p.IsLowStock)

	w = do(t, r, http.MethodPost, "/products", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/products", token, `{"sku":"X-1","name":"X","price":1,"supplierId":42}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/products", token, `{"sku":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid input")
}

func TestUpdateProduct(t *testing.T) {
	r, token := setup(t)

	w := do(t, r, http.MethodPut, "/products/4", token, `{"minimumStock":20,"price":249.99}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	p := decode[handlers.ProductResponse](t, w)
	assert.Equal(t, 20, p.MinimumStock)
	assert.Equal(t, 15, p.StockQuantity)
	assert.True(t, p.IsLowStock)
	assert.InDelta(t, 249.99, p.Price, 0.0001)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPut, "/products/999", token, `{"name":"x"}`).Code)
}

func TestApplyStockChange(t *testing.T) {
	r, token := setup(t)

	w := do(t, r, http.MethodPost, "/products/2/stock", token, `{"type":"Sale","quantity":-20,"reference":"SO-1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[handlers.StockChangeResponse](t, w)
	assert.Equal(t, 5, resp.Product.StockQuantity)
	assert.True(t, resp.Product.IsLowStock)
	assert.Equal(t, models.TransactionSale, resp.Transaction.Type)
	assert.Equal(t, -20, resp.Transaction.Quantity)
	assert.Equal(t, "warehouse", resp.Transaction.PerformedBy)
	assert.Equal(t, "EKTORP-001", resp.Transaction.ProductSKU)

	// insufficient stock leaves the product untouched
	w = do(t, r, http.MethodPost, "/products/2/stock", token, `{"type":"Sale","quantity":-6}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient stock")

	w = do(t, r, http.MethodPost, "/products/2/stock", token, `{"type":"Purchase","quantity":-1}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "invalid delta type")

	w = do(t, r, http.MethodPost, "/products/2/stock", token, `{"type":"Purchase","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/products/999/stock", token, `{"type":"Purchase","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/products/2", "", "")
	assert.Equal(t, 5, decode[handlers.ProductResponse](t, w).StockQuantity)

	w = do(t, r, http.MethodGet, "/products/2/transactions", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[handlers.TransactionsSearchResult](t, w)
	assert.Equal(t, 1, history.Meta.TotalCount)
}

func TestAdjustStock_LegacyDelta(t *testing.T) {
	r, token := setup(t)

	w := do(t, r, http.MethodPatch, "/products/1/stock", token, `50`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[handlers.StockChangeResponse](t, w)
	assert.Equal(t, 200, resp.Product.StockQuantity)
	assert.Equal(t, models.TransactionPurchase, resp.Transaction.Type)

	w = do(t, r, http.MethodPatch, "/products/1/stock", token, `-10`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.TransactionAdjustment, decode[handlers.StockChangeResponse](t, w).Transaction.Type)

	w = do(t, r, http.MethodPatch, "/products/1/stock", token, `"ten"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	r, token := setup(t)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/products/3/stock", token, `{"type":"Sale","quantity":-1}`).Code)
	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodDelete, "/products/3", token, "").Code)

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/products/4", token, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/products/4", "", "").Code)
}

func TestFilterProducts(t *testing.T) {
	r, _ := setup(t)

	w := do(t, r, http.MethodGet, "/products/filter?category=Storage", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[handlers.ProductsSearchResult](t, w)
	assert.Equal(t, 1, res.Meta.TotalCount)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "BILLY-001", res.Data[0].SKU)

	w = do(t, r, http.MethodGet, "/products/filter?limit=2&offset=0", "", "")
	res = decode[handlers.ProductsSearchResult](t, w)
	assert.Equal(t, 4, res.Meta.TotalCount)
	assert.Len(t, res.Data, 2)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/products/filter?limit=0", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/products/filter?offset=-1", "", "").Code)
}

func TestLowStockAndReorderSuggestions(t *testing.T) {
	r, token := setup(t)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/products/4/stock", token, `{"type":"Sale","quantity":-15}`).Code)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/products/2/stock", token, `{"type":"Sale","quantity":-23}`).Code)

	w := do(t, r, http.MethodGet, "/products/low-stock", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]handlers.ProductResponse](t, w), 2)

	w = do(t, r, http.MethodGet, "/reorder-suggestions", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	suggestions := decode[[]handlers.ReorderSuggestionResponse](t, w)
	require.Len(t, suggestions, 2)

	assert.Equal(t, "MALM-001", suggestions[0].SKU)
	assert.Equal(t, reorder.PriorityCritical, suggestions[0].Priority)
	assert.Equal(t, 10, suggestions[0].Deficit)
	assert.Equal(t, 20, suggestions[0].SuggestedOrderQuantity)
	require.NotNil(t, suggestions[0].Supplier)
	assert.Equal(t, "Baltic Wood Supplies", suggestions[0].Supplier.Name)

	assert.Equal(t, "EKTORP-001", suggestions[1].SKU)
	assert.Equal(t, reorder.PriorityHigh, suggestions[1].Priority)
	assert.Equal(t, 3, suggestions[1].Deficit)
}

func TestTransactionsAndExport(t *testing.T) {
	r, token := setup(t)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/products/1/stock", token, `{"type":"Purchase","quantity":50}`).Code)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/products/3/stock", token, `{"type":"Return","quantity":2,"notes":"damaged box"}`).Code)

	w := do(t, r, http.MethodGet, "/transactions", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[handlers.TransactionsSearchResult](t, w)
	assert.Equal(t, 2, all.Meta.TotalCount)
	assert.Equal(t, "LACK-001", all.Data[0].ProductSKU)

	w = do(t, r, http.MethodGet, "/transactions?type=Purchase", "", "")
	assert.Equal(t, 1, decode[handlers.TransactionsSearchResult](t, w).Meta.TotalCount)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/transactions?type=Gift", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/transactions?since=yesterday", "", "").Code)

	w = do(t, r, http.MethodGet, "/transactions/export", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID,Date,SKU"))

	w = do(t, r, http.MethodGet, "/transactions/export?format=json", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]handlers.TransactionResponse](t, w), 2)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/transactions/export?format=xml", "", "").Code)
}

func TestExportProducts(t *testing.T) {
	r, token := setup(t)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPut, "/products/3", token, `{"isActive":false}`).Code)

	w := do(t, r, http.MethodGet, "/products/export", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "SKU,Name,Category,Price,Stock,Minimum Stock,Supplier,Location,Status\n"))
	assert.Contains(t, body, "BILLY-001,BILLY Bookcase,Storage,79.99,150,20,Scandinavian Furniture Co.,Warehouse A-1,Active")
	assert.Contains(t, body, "LACK-001,LACK Coffee Table,Tables,49.99,200,30,Baltic Wood Supplies,Warehouse A-2,Inactive")
}

func TestImportProducts(t *testing.T) {
	r, token := setup(t)

	csv := "SKU,Name,Category,Price,Stock,Minimum Stock,Supplier,Location,Status\n" +
		"BILLY-001,BILLY Bookcase,Storage,79.99,140,20,Scandinavian Furniture Co.,Warehouse A-1,Active\n" +
		"KALLAX-001,KALLAX Shelf,Storage,89.00,40,10,Baltic Wood Supplies,Warehouse A-4,Active\n" +
		"BAD-001,Broken,Storage,abc,1,1,Baltic Wood Supplies,,Active\n"

	send := func(mode string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mpw := multipart.NewWriter(&buf)
		part, err := mpw.CreateFormFile("file", "products.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(csv))
		require.NoError(t, err)
		require.NoError(t, mpw.Close())

		req := httptest.NewRequest(http.MethodPost, "/products/import?mode="+mode, &buf)
		req.Header.Set("Content-Type", mpw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send("skip")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[handlers.ImportProductsResult](t, w)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, res.Errors, 1)

	w = send("update")
	require.Equal(t, http.StatusOK, w.Code)
	res = decode[handlers.ImportProductsResult](t, w)
	assert.Equal(t, 2, res.Updated)

	w = do(t, r, http.MethodGet, "/products/1", "", "")
	assert.Equal(t, 140, decode[handlers.ProductResponse](t, w).StockQuantity)

	w = do(t, r, http.MethodGet, "/products/1/transactions", "", "")
	history := decode[handlers.TransactionsSearchResult](t, w)
	require.Equal(t, 1, history.Meta.TotalCount)
	assert.Equal(t, models.TransactionAdjustment, history.Data[0].Type)
	assert.Equal(t, -10, history.Data[0].Quantity)
	assert.Equal(t, "csv-import", history.Data[0].Reference)
}

func TestSuppliers(t *testing.T) {
	r, token := setup(t)

	w := do(t, r, http.MethodPost, "/suppliers", token, `{"name":"Nordic Textiles","email":"sales@nordic.example"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[handlers.SupplierResponse](t, w)
	assert.True(t, created.IsActive)

	w = do(t, r, http.MethodGet, "/suppliers", "", "")
	assert.Len(t, decode[[]handlers.SupplierResponse](t, w), 3)

	w = do(t, r, http.MethodPut, "/suppliers/1", token, `{"phone":"+46-000"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "+46-000", decode[handlers.SupplierResponse](t, w).Phone)

	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodDelete, "/suppliers/1", token, "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/suppliers/3", token, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/suppliers/3", "", "").Code)
}

func TestDashboardMetrics(t *testing.T) {
	r, token := setup(t)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/products/4/stock", token, `{"type":"Sale","quantity":-5}`).Code)

	w := do(t, r, http.MethodGet, "/metrics/dashboard", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	m := decode[handlers.MetricsResponse](t, w)
	assert.Equal(t, 4, m.TotalProducts)
	assert.Equal(t, 150+25+200+10, m.TotalItems)
	assert.Equal(t, 1, m.LowStockCount)
	assert.Equal(t, 1, m.TotalTransactions)
	assert.Equal(t, "MALM Bed Frame", m.MostMovedProduct.Name)
}

func TestHealth(t *testing.T) {
	r, _ := setup(t)

	w := do(t, r, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[handlers.HealthResponse](t, w).Status)
	assert.NotEmpty(t, w.Header().Get(mw.RequestIDHeader))
}
