package app

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"billiardsone/backend/libs/auth"
	appconfig "billiardsone/backend/services/auth-service/internal/config"
	"billiardsone/backend/services/auth-service/internal/db"
	httpserver "billiardsone/backend/services/auth-service/internal/http"
	"billiardsone/backend/services/auth-service/internal/http/handlers"
	"billiardsone/backend/services/auth-service/internal/password"
	"billiardsone/backend/services/auth-service/internal/repository"
	"billiardsone/backend/services/auth-service/internal/service"
)

// App wires dependencies for the auth service.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	logger *zap.Logger
}

// New builds application graph.
func New(cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	accountRepo := repository.NewAccountRepository(sqlDB)
	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	tokenSvc := auth.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())
	authSvc := service.NewAuthService(accountRepo, hasher, tokenSvc, logger)

	routes := httpserver.Routes{
		Login:  handlers.NewLoginHandler(authSvc, logger),
		Health: handlers.NewHealthHandler(sqlDB),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     sqlDB,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
