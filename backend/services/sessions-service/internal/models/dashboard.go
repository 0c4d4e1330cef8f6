package models

import (
	"time"

	"github.com/google/uuid"
)

// TableView is one row of the staff dashboard.
type TableView struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	Category         TableCategory `json:"category"`
	Status           TableStatus   `json:"status"`
	CurrentSessionID *uuid.UUID    `json:"current_session_id,omitempty"`
	StartTime        *time.Time    `json:"start_time,omitempty"`
	ElapsedTime      string        `json:"elapsed_time,omitempty"`
	CurrentPlayers   int           `json:"current_players,omitempty"`
}

// Dashboard is the live state of one cafe.
type Dashboard struct {
	CafeID       uuid.UUID     `json:"cafe_id"`
	CafeName     string        `json:"cafe_name"`
	Tables       []TableView   `json:"tables"`
	PricingRules []PricingRule `json:"pricing_rules"`
}
