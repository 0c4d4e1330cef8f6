package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libredis "billiardsone/backend/libs/redis"
	"billiardsone/backend/services/sessions-service/internal/config"
	"billiardsone/backend/services/sessions-service/internal/db"
	httpserver "billiardsone/backend/services/sessions-service/internal/http"
	"billiardsone/backend/services/sessions-service/internal/http/handlers"
	redisstore "billiardsone/backend/services/sessions-service/internal/redis"
	"billiardsone/backend/services/sessions-service/internal/repository"
	"billiardsone/backend/services/sessions-service/internal/service"
	"billiardsone/backend/services/sessions-service/internal/ws"
)

// App wires sessions-service dependencies.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	redisClient, err := libredis.NewRedisClient(libredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	store := txStore{store: repository.NewStore(sqlDB)}
	activeStore := redisstore.NewStore(redisClient, cfg.Redis.TTL)
	hub := ws.NewHub(logger)
	sessionsService := service.NewSessionsService(store, activeStore, hub, logger)

	sessionsHandler := handlers.NewSessionsHandler(sessionsService, logger)
	wsServer := ws.NewServer(hub, handlers.CafeFromRequest, cfg.Websocket.WriteTimeout, cfg.Websocket.PingInterval, logger)

	routes := httpserver.Routes{
		SessionStart:   sessionsHandler.HandleStart,
		SessionPlayers: sessionsHandler.HandlePlayers,
		SessionEnd:     sessionsHandler.HandleEnd,
		SessionGet:     sessionsHandler.HandleGet,
		TableStatus:    sessionsHandler.HandleTableStatus,
		Dashboard:      sessionsHandler.HandleDashboard,
		TablesFeed:     wsServer.HandleWS,
		Health:         handlers.NewHealthHandler(sqlDB),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)
	server.OnShutdown(hub.CloseAll)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
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
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
