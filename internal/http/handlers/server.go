package handlers

import (
	"github.com/rogerio-castellano/warehouse-inventory/internal/auth"
	"github.com/rogerio-castellano/warehouse-inventory/internal/catalog"
	"github.com/rogerio-castellano/warehouse-inventory/internal/reorder"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"github.com/rogerio-castellano/warehouse-inventory/internal/stock"
	"go.uber.org/zap"
)

var (
	productService  *catalog.ProductService
	supplierService *catalog.SupplierService
	historyService  *catalog.HistoryService
	importer        *catalog.Importer
	ledger          *stock.Ledger
	reorderService  *reorder.Service
	metricsRepo     repo.MetricsRepository
	authService     *auth.AuthService
	healthChecks    []HealthCheck

	logger = zap.NewNop()
)

func SetProductService(s *catalog.ProductService) {
	productService = s
}

func SetSupplierService(s *catalog.SupplierService) {
	supplierService = s
}

func SetHistoryService(s *catalog.HistoryService) {
	historyService = s
}

func SetImporter(i *catalog.Importer) {
	importer = i
}

func SetLedger(l *stock.Ledger) {
	ledger = l
}

func SetReorderService(s *reorder.Service) {
	reorderService = s
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetAuthService(s *auth.AuthService) {
	authService = s
}

func SetHealthChecks(checks ...HealthCheck) {
	healthChecks = checks
}

func SetLogger(l *zap.Logger) {
	logger = l
}
