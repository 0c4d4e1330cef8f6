package app

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"billiardsone/backend/services/billing-service/internal/config"
	"billiardsone/backend/services/billing-service/internal/db"
	httpserver "billiardsone/backend/services/billing-service/internal/http"
	"billiardsone/backend/services/billing-service/internal/http/handlers"
	"billiardsone/backend/services/billing-service/internal/repository"
	"billiardsone/backend/services/billing-service/internal/service"
)

// App wires billing service dependencies.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	logger *zap.Logger
}

// New constructs application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	paymentRepo := repository.NewPaymentRepository(sqlDB)
	paymentService := service.NewPaymentService(paymentRepo, location, logger)
	paymentsHandler := handlers.NewPaymentsHandler(paymentService, logger)

	routes := httpserver.Routes{
		PaymentCreate: paymentsHandler.HandleCreate,
		PaymentsToday: paymentsHandler.HandleToday,
		Health:        handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     sqlDB,
		logger: logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
