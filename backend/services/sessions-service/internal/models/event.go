package models

import (
	"time"

	"github.com/google/uuid"
)

// TableEventType names a change pushed to live dashboards.
type TableEventType string

const (
	EventSessionOpened  TableEventType = "session_opened"
	EventPlayersChanged TableEventType = "players_changed"
	EventSessionClosed  TableEventType = "session_closed"
	EventStatusChanged  TableEventType = "status_changed"
)

// TableEvent is published after a committed state change.
type TableEvent struct {
	Type      TableEventType `json:"type"`
	CafeID    uuid.UUID      `json:"cafe_id"`
	TableID   uuid.UUID      `json:"table_id"`
	SessionID *uuid.UUID     `json:"session_id,omitempty"`
	Status    TableStatus    `json:"status"`
	Players   int            `json:"players,omitempty"`
	At        time.Time      `json:"at"`
}
