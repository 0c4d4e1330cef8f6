package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	libdb "billiardsone/backend/libs/db"
	"billiardsone/backend/services/sessions-service/internal/models"
)

// SessionRepository handles persistence of game sessions.
type SessionRepository struct {
	db libdb.DBTX
}

// NewSessionRepository returns repository.
func NewSessionRepository(db libdb.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, table_id, staff_id, start_time, end_time, duration_minutes`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		s        models.Session
		endTime  sql.NullTime
		duration sql.NullInt32
	)
	if err := row.Scan(&s.ID, &s.TableID, &s.StaffID, &s.StartTime, &endTime, &duration); err != nil {
		return nil, err
	}
	if endTime.Valid {
		end := endTime.Time.UTC()
		s.EndTime = &end
	}
	if duration.Valid {
		minutes := int(duration.Int32)
		s.DurationMinutes = &minutes
	}
	s.StartTime = s.StartTime.UTC()
	return &s, nil
}

// Create inserts an open session.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	const query = `
		INSERT INTO game_sessions (id, table_id, staff_id, start_time)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, session.ID, session.TableID, session.StaffID, session.StartTime); err != nil {
		return fmt.Errorf("insert session: %w", mapErr(err))
	}
	return nil
}

// Get returns a session without locking it.
func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return r.get(ctx, `SELECT `+sessionColumns+` FROM game_sessions WHERE id = $1`, id)
}

// GetForUpdate returns a session holding an exclusive row lock.
func (r *SessionRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return r.get(ctx, `SELECT `+sessionColumns+` FROM game_sessions WHERE id = $1 FOR UPDATE`, id)
}

// GetForShare returns a session holding a shared row lock, which blocks a
// concurrent close but not other readers or ledger appends.
func (r *SessionRepository) GetForShare(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return r.get(ctx, `SELECT `+sessionColumns+` FROM game_sessions WHERE id = $1 FOR SHARE`, id)
}

func (r *SessionRepository) get(ctx context.Context, query string, id uuid.UUID) (*models.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return s, nil
}

// Complete stamps the end of an open session. ErrNotFound means the session
// was already closed (or never existed).
func (r *SessionRepository) Complete(ctx context.Context, id uuid.UUID, endTime time.Time, durationMinutes int) error {
	const query = `
		UPDATE game_sessions
		SET end_time = $2,
		    duration_minutes = $3
		WHERE id = $1 AND end_time IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, id, endTime, durationMinutes)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// OpenForTable returns the open session on a table.
func (r *SessionRepository) OpenForTable(ctx context.Context, tableID uuid.UUID) (*models.Session, error) {
	const query = `SELECT ` + sessionColumns + ` FROM game_sessions WHERE table_id = $1 AND end_time IS NULL`
	return r.get(ctx, query, tableID)
}
