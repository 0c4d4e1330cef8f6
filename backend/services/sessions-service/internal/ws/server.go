package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// CafeResolver extracts the caller's cafe from an authenticated request.
type CafeResolver func(r *http.Request) (string, bool)

// Server upgrades dashboard requests to websockets.
type Server struct {
	hub          *Hub
	resolveCafe  CafeResolver
	logger       *zap.Logger
	writeTimeout time.Duration
	pingInterval time.Duration
	upgrader     websocket.Upgrader
}

// NewServer builds ws server.
func NewServer(hub *Hub, resolveCafe CafeResolver, writeTimeout, pingInterval time.Duration, logger *zap.Logger) *Server {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Server{
		hub:          hub,
		resolveCafe:  resolveCafe,
		logger:       logger,
		writeTimeout: writeTimeout,
		pingInterval: pingInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWS is the handler for GET /ws/tables.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	cafeID, ok := s.resolveCafe(r)
	if !ok {
		http.Error(w, "missing cafe identity", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	connection := NewConnection(uuid.NewString(), cafeID, conn, s.writeTimeout, s.pingInterval, s.logger, func(c *Connection) {
		s.hub.Remove(c)
		cancel()
	})
	s.hub.Add(connection)

	go connection.Start(ctx)
	s.logger.Info("dashboard connected", zap.String("cafe_id", cafeID), zap.String("conn_id", connection.ID()))
}
