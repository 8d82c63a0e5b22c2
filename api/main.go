package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rogerio-castellano/warehouse-inventory/docs"
	"github.com/rogerio-castellano/warehouse-inventory/internal/alerts"
	"github.com/rogerio-castellano/warehouse-inventory/internal/auth"
	"github.com/rogerio-castellano/warehouse-inventory/internal/catalog"
	"github.com/rogerio-castellano/warehouse-inventory/internal/config"
	"github.com/rogerio-castellano/warehouse-inventory/internal/db"
	"github.com/rogerio-castellano/warehouse-inventory/internal/events"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/handlers"
	mw "github.com/rogerio-castellano/warehouse-inventory/internal/http/middleware"
	rl "github.com/rogerio-castellano/warehouse-inventory/internal/http/rate_limiter"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/router"
	"github.com/rogerio-castellano/warehouse-inventory/internal/logger"
	"github.com/rogerio-castellano/warehouse-inventory/internal/redissvc"
	"github.com/rogerio-castellano/warehouse-inventory/internal/reorder"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"github.com/rogerio-castellano/warehouse-inventory/internal/stock"
	"go.uber.org/zap"
)

type repositories struct {
	products     repo.ProductRepository
	suppliers    repo.SupplierRepository
	transactions repo.TransactionRepository
	users        repo.UserRepository
	metrics      repo.MetricsRepository
}

func postgresRepositories(database *sql.DB) repositories {
	products := repo.NewPostgresProductRepository(database)
	transactions := repo.NewPostgresTransactionRepository(database)
	return repositories{
		products:     products,
		suppliers:    repo.NewPostgresSupplierRepository(database),
		transactions: transactions,
		users:        repo.NewPostgresUserRepository(database),
		metrics:      repo.NewPostgresMetricsRepository(database),
	}
}

func memoryRepositories() repositories {
	transactions := repo.NewInMemoryTransactionRepository()
	products := repo.NewInMemoryProductRepository(transactions)
	return repositories{
		products:     products,
		suppliers:    repo.NewInMemorySupplierRepository(),
		transactions: transactions,
		users:        repo.NewInMemoryUserRepository(),
		metrics:      repo.NewInMemoryMetricsRepository(products, transactions),
	}
}

// @title Warehouse Inventory API
// @version 1.0
// @description REST API for managing products, suppliers, stock transactions and reorder suggestions.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var checks []handlers.HealthCheck

	var repos repositories
	if cfg.Database.URL != "" {
		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("could not connect to database: %w", err)
		}
		defer database.Close()

		if err := db.EnsureSchema(ctx, database); err != nil {
			return err
		}
		repos = postgresRepositories(database)
		checks = append(checks, handlers.HealthCheck{Name: "postgres", Probe: database.PingContext})
		log.Info("using postgres store")
	} else {
		repos = memoryRepositories()
		log.Warn("database.url not set, using in-memory store")
	}

	if cfg.Database.Seed {
		seeded, err := db.Seed(ctx, repos.suppliers, repos.products)
		if err != nil {
			return err
		}
		if seeded {
			log.Info("seeded demo catalog")
		}
	}

	var alertStore alerts.Store = alerts.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		rs, err := redissvc.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}
		defer rs.Close()
		alertStore = alerts.NewRedisStore(rs)
		checks = append(checks, handlers.HealthCheck{Name: "redis", Probe: rs.Ping})
	}

	var publisher events.Publisher = events.NewLogPublisher(log)
	if cfg.Kafka.Enabled {
		kp, err := events.NewKafkaPublisher(cfg.Kafka, log)
		if err != nil {
			return fmt.Errorf("could not create kafka producer: %w", err)
		}
		publisher = kp
	}
	defer publisher.Close()

	ledger := stock.NewLedger(repos.products, log,
		events.NewStockObserver(publisher),
		alerts.NewRecorder(alertStore),
	)
	productService := catalog.NewProductService(repos.products, repos.suppliers, repos.transactions, log)
	planner := reorder.NewPlanner(reorder.Policy{
		BufferUnits:      cfg.Reorder.BufferUnits,
		BufferFactor:     cfg.Reorder.BufferFactor,
		HighDeficitRatio: cfg.Reorder.HighDeficitRatio,
	})
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)

	handlers.SetLogger(log)
	handlers.SetProductService(productService)
	handlers.SetSupplierService(catalog.NewSupplierService(repos.suppliers, repos.products, log))
	handlers.SetHistoryService(catalog.NewHistoryService(repos.transactions, repos.products))
	handlers.SetImporter(catalog.NewImporter(productService, ledger, log))
	handlers.SetLedger(ledger)
	handlers.SetReorderService(reorder.NewService(repos.products, repos.suppliers, planner))
	handlers.SetMetricsRepo(repos.metrics)
	handlers.SetAuthService(auth.NewAuthService(repos.users, tokens))
	handlers.SetHealthChecks(checks...)
	mw.SetTokenIssuer(tokens)

	if cfg.Alerts.Enabled {
		digest := alerts.NewDigest(alertStore, alerts.NewSMTPSender(cfg.Alerts), log)
		go alerts.StartDailyDigest(ctx, digest, cfg.Alerts.DigestInterval)
	}

	visitors := rl.NewVisitors(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go visitors.StartVisitorCleanupLoop(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router.NewRouter(log, visitors),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", srv.Addr), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
