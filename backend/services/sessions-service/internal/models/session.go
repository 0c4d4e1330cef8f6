package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one continuous occupancy of a table. It is open while EndTime is nil.
type Session struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	TableID         uuid.UUID  `db:"table_id" json:"table_id"`
	StaffID         uuid.UUID  `db:"staff_id" json:"staff_id"`
	StartTime       time.Time  `db:"start_time" json:"start_time"`
	EndTime         *time.Time `db:"end_time" json:"end_time,omitempty"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes,omitempty"`
}

// Open reports whether the session has not been ended yet.
func (s *Session) Open() bool {
	return s.EndTime == nil
}

// PlayerChange is one entry of a session's append-only player-count ledger.
type PlayerChange struct {
	ID          uuid.UUID `db:"id" json:"id"`
	SessionID   uuid.UUID `db:"session_id" json:"session_id"`
	ChangedAt   time.Time `db:"changed_at" json:"changed_at"`
	PlayerCount int       `db:"player_count" json:"player_count"`
}

// LatestChange returns the entry with the greatest timestamp. On equal
// timestamps the one appended later wins.
func LatestChange(changes []PlayerChange) (PlayerChange, bool) {
	var latest PlayerChange
	found := false
	for _, c := range changes {
		if !found || !c.ChangedAt.Before(latest.ChangedAt) {
			latest = c
			found = true
		}
	}
	return latest, found
}

// SessionDetails is a session together with its ledger.
type SessionDetails struct {
	Session
	Table          Table          `json:"table"`
	PlayerChanges  []PlayerChange `json:"player_changes"`
	CurrentPlayers int            `json:"current_players"`
}
