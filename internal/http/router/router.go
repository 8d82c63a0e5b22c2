package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/handlers"
	mw "github.com/rogerio-castellano/warehouse-inventory/internal/http/middleware"
	rl "github.com/rogerio-castellano/warehouse-inventory/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// NewRouter wires every route. visitors may be nil to disable rate limiting.
func NewRouter(logger *zap.Logger, visitors *rl.Visitors) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(mw.RequestIDMiddleware)
	r.Use(mw.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	if visitors != nil {
		r.Use(mw.RateLimit(visitors))
	}

	r.Get("/health", handlers.HealthHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Post("/register", handlers.RegisterHandler)
	r.Post("/login", handlers.LoginHandler)

	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/filter", handlers.FilterProductsHandler)
	r.Get("/products/low-stock", handlers.LowStockProductsHandler)
	r.Get("/products/export", handlers.ExportProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Get("/products/{id}/transactions", handlers.GetProductTransactionsHandler)

	r.Get("/transactions", handlers.GetTransactionsHandler)
	r.Get("/transactions/export", handlers.ExportTransactionsHandler)

	r.Get("/suppliers", handlers.GetSuppliersHandler)
	r.Get("/suppliers/{id}", handlers.GetSupplierByIDHandler)

	r.Get("/reorder-suggestions", handlers.ReorderSuggestionsHandler)
	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware)

		r.Post("/products", handlers.CreateProductHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Post("/products/{id}/stock", handlers.ApplyStockChangeHandler)
		r.Patch("/products/{id}/stock", handlers.AdjustStockHandler)

		r.Post("/suppliers", handlers.CreateSupplierHandler)
		r.Put("/suppliers/{id}", handlers.UpdateSupplierHandler)
		r.Delete("/suppliers/{id}", handlers.DeleteSupplierHandler)
	})

	return r
}
