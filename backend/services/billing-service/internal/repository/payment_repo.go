package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	libdb "billiardsone/backend/libs/db"
	"billiardsone/backend/services/billing-service/internal/models"
)

// PaymentRepository persists payments.
type PaymentRepository struct {
	db libdb.DBTX
}

// NewPaymentRepository returns repository.
func NewPaymentRepository(db libdb.DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Session loads a game session together with its table's cafe.
func (r *PaymentRepository) Session(ctx context.Context, id uuid.UUID) (*models.SessionRecord, error) {
	const query = `
		SELECT s.id, t.cafe_id, s.staff_id, t.name, s.end_time, s.duration_minutes
		FROM game_sessions s
		JOIN tables t ON t.id = s.table_id
		WHERE s.id = $1
	`
	var (
		rec      models.SessionRecord
		endTime  sql.NullTime
		duration sql.NullInt32
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.CafeID,
		&rec.StaffID,
		&rec.TableName,
		&endTime,
		&duration,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	if endTime.Valid {
		end := endTime.Time.UTC()
		rec.EndTime = &end
	}
	if duration.Valid {
		minutes := int(duration.Int32)
		rec.DurationMinutes = &minutes
	}
	return &rec, nil
}

// Create inserts a payment unless the session already has one, in which
// case ErrAlreadyPaid is returned. The unique session_id constraint makes
// this safe under concurrent attempts.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	const query = `
		INSERT INTO payments (id, session_id, total_amount, minutes_played, payment_method, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id) DO NOTHING
		RETURNING paid_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.ID,
		p.SessionID,
		p.TotalAmount,
		p.MinutesPlayed,
		string(p.PaymentMethod),
		p.PaidAt,
	).Scan(&p.PaidAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAlreadyPaid
	}
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	p.PaidAt = p.PaidAt.UTC()
	return nil
}

// ListByStaffSince returns payments for sessions run by staffID that were
// paid at or after since, newest first.
func (r *PaymentRepository) ListByStaffSince(ctx context.Context, staffID uuid.UUID, since time.Time) ([]models.PaymentWithTable, error) {
	const query = `
		SELECT p.id, p.session_id, p.total_amount, p.minutes_played, p.payment_method, p.paid_at, t.name
		FROM payments p
		JOIN game_sessions s ON s.id = p.session_id
		JOIN tables t ON t.id = s.table_id
		WHERE s.staff_id = $1 AND p.paid_at >= $2
		ORDER BY p.paid_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, staffID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.PaymentWithTable
	for rows.Next() {
		var p models.PaymentWithTable
		if err := rows.Scan(
			&p.ID,
			&p.SessionID,
			&p.TotalAmount,
			&p.MinutesPlayed,
			&p.PaymentMethod,
			&p.PaidAt,
			&p.TableName,
		); err != nil {
			return nil, err
		}
		p.PaidAt = p.PaidAt.UTC()
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
