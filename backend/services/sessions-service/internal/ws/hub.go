// Package ws pushes committed table changes to live staff dashboards.
package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"billiardsone/backend/services/sessions-service/internal/models"
)

// Hub tracks dashboard connections grouped by cafe.
type Hub struct {
	mu     sync.RWMutex
	byCafe map[string]map[string]*Connection
	logger *zap.Logger
}

// NewHub builds an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		byCafe: make(map[string]map[string]*Connection),
		logger: logger,
	}
}

// Add registers a connection.
func (h *Hub) Add(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.byCafe[conn.CafeID()]
	if !ok {
		conns = make(map[string]*Connection)
		h.byCafe[conn.CafeID()] = conns
	}
	conns[conn.ID()] = conn
}

// Remove unregisters a connection.
func (h *Hub) Remove(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.byCafe[conn.CafeID()]
	delete(conns, conn.ID())
	if len(conns) == 0 {
		delete(h.byCafe, conn.CafeID())
	}
}

// Subscribers counts the connections of a cafe.
func (h *Hub) Subscribers(cafeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byCafe[cafeID])
}

// Publish sends event to every dashboard of its cafe.
func (h *Hub) Publish(event models.TableEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode table event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.byCafe[event.CafeID.String()] {
		conn.Send(payload)
	}
}

// CloseAll disconnects every dashboard.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	var conns []*Connection
	for _, byID := range h.byCafe {
		for _, conn := range byID {
			conns = append(conns, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.Close()
	}
}
