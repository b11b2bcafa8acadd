package cmd

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"commerce/api"
	apicatalog "commerce/api/catalog"
	"commerce/api/health"
	apiorder "commerce/api/order"
	catalogapp "commerce/application/catalog"
	orderapp "commerce/application/order"
	"commerce/config"
	"commerce/domain/catalog"
	"commerce/domain/order"
	"commerce/domain/shared"
	"commerce/infrastructure/persistence/memory"
	"commerce/infrastructure/persistence/mysql"
	"commerce/infrastructure/persistence/retry"
	"commerce/pkg/logger"

	"go.uber.org/zap"
)

// App assembled application.
type App struct {
	config *config.Config
	router *api.Router
	sqlDB  *sql.DB
}

// NewApp wires the whole application from configuration: persistence,
// unit of work, application services, the cross-context gateway and the
// HTTP layer.
func NewApp(cfg *config.Config) (*App, error) {
	var (
		productRepo catalog.Repository
		orderRepo   order.Repository
		uowFactory  shared.UnitOfWorkFactory
		sqlDB       *sql.DB
	)

	switch cfg.Database.Type {
	case "mysql":
		dbConfig := &mysql.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			Username:        cfg.Database.Username,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Log.Level,
		}

		db, err := dbConfig.Connect()
		if err != nil {
			return nil, err
		}
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, err
		}
		sqlDB, err = db.DB()
		if err != nil {
			return nil, err
		}

		productRepo = mysql.NewProductRepository(db)
		orderRepo = mysql.NewOrderRepository(db)
		uowFactory = mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg))

		logger.Info("Using MySQL persistence layer")
	default:
		store := memory.NewStore()
		productRepo = memory.NewProductRepository(store)
		orderRepo = memory.NewOrderRepository(store)
		uowFactory = memory.NewUnitOfWorkFactory(store)

		logger.Info("Using in-memory persistence layer")
	}

	catalogService := catalogapp.NewApplicationService(productRepo, uowFactory)
	inventoryGateway := orderapp.NewCatalogInventoryGateway(catalogService)
	orderService := orderapp.NewApplicationService(orderRepo, inventoryGateway, uowFactory)

	healthController := health.NewController(cfg, sqlDB)
	catalogController := apicatalog.NewController(catalogService)
	orderController := apiorder.NewController(orderService)

	router := api.NewRouter(cfg, healthController, catalogController, orderController)
	router.SetupRoutes()

	return &App{
		config: cfg,
		router: router,
		sqlDB:  sqlDB,
	}, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	server := &http.Server{
		Addr:         ":" + a.config.Server.Port,
		Handler:      a.router.GetEngine(),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("port", a.config.Server.Port),
			zap.String("env", a.config.App.Env))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	if a.sqlDB != nil {
		if err := a.sqlDB.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
	return nil
}
