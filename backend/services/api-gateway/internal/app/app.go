package app

import (
	"context"

	"go.uber.org/zap"

	"billiardsone/backend/libs/auth"
	"billiardsone/backend/services/api-gateway/internal/clients"
	"billiardsone/backend/services/api-gateway/internal/config"
	httpserver "billiardsone/backend/services/api-gateway/internal/http"
	"billiardsone/backend/services/api-gateway/internal/http/handlers"
	"billiardsone/backend/services/api-gateway/internal/http/middleware"
)

// App wires API gateway dependencies.
type App struct {
	server *httpserver.Server
	logger *zap.Logger
}

// New constructs application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sessionsURL, err := cfg.SessionsURL()
	if err != nil {
		return nil, err
	}

	httpClient := clients.NewDefaultHTTPClient(cfg.HTTPTimeout())
	authClient := clients.NewAuthClient(cfg.Services.AuthURL, httpClient)
	sessionsClient := clients.NewSessionsClient(cfg.Services.SessionsURL, httpClient)
	billingClient := clients.NewBillingClient(cfg.Services.BillingURL, httpClient)

	// Validation only; expiry is read from each token.
	tokens := auth.NewTokenService(cfg.JWT.Secret, 0)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Login:      handlers.NewLoginHandler(authClient, logger),
		Sessions:   handlers.NewProxyHandler("sessions", sessionsClient, logger),
		Billing:    handlers.NewProxyHandler("billing", billingClient, logger),
		TablesFeed: handlers.NewTablesFeedProxy(sessionsURL, logger),
		Health:     handlers.NewHealthHandler(),
	}, middleware.AuthMiddleware(tokens, false), middleware.AuthMiddleware(tokens, true))

	server := httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources (none yet).
func (a *App) Close() {}
