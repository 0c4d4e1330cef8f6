package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	libdb "billiardsone/backend/libs/db"
	"billiardsone/backend/services/sessions-service/internal/models"
)

// PlayerChangeRepository appends to and reads the player-count ledger.
// Rows are never updated.
type PlayerChangeRepository struct {
	db libdb.DBTX
}

// NewPlayerChangeRepository returns repository.
func NewPlayerChangeRepository(db libdb.DBTX) *PlayerChangeRepository {
	return &PlayerChangeRepository{db: db}
}

// Append inserts a ledger entry.
func (r *PlayerChangeRepository) Append(ctx context.Context, change *models.PlayerChange) error {
	const query = `
		INSERT INTO player_changes (id, session_id, changed_at, player_count)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, change.ID, change.SessionID, change.ChangedAt, change.PlayerCount); err != nil {
		return fmt.Errorf("insert player change: %w", mapErr(err))
	}
	return nil
}

// Latest returns the entry with the greatest timestamp. Equal timestamps
// resolve to the later append.
func (r *PlayerChangeRepository) Latest(ctx context.Context, sessionID uuid.UUID) (*models.PlayerChange, error) {
	const query = `
		SELECT id, session_id, changed_at, player_count
		FROM player_changes
		WHERE session_id = $1
		ORDER BY changed_at DESC, seq DESC
		LIMIT 1
	`
	var c models.PlayerChange
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&c.ID, &c.SessionID, &c.ChangedAt, &c.PlayerCount)
	if err != nil {
		return nil, mapErr(err)
	}
	c.ChangedAt = c.ChangedAt.UTC()
	return &c, nil
}

// ListBySession returns the ledger in timestamp order.
func (r *PlayerChangeRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.PlayerChange, error) {
	const query = `
		SELECT id, session_id, changed_at, player_count
		FROM player_changes
		WHERE session_id = $1
		ORDER BY changed_at, seq
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []models.PlayerChange
	for rows.Next() {
		var c models.PlayerChange
		if err := rows.Scan(&c.ID, &c.SessionID, &c.ChangedAt, &c.PlayerCount); err != nil {
			return nil, err
		}
		c.ChangedAt = c.ChangedAt.UTC()
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return changes, nil
}
