package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billiardsone/backend/services/billing-service/internal/models"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestPaymentRepository_CreateRejectsSecondPayment(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPaymentRepository(db)
	paidAt := time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC)
	payment := &models.Payment{
		ID:            uuid.New(),
		SessionID:     uuid.New(),
		TotalAmount:   decimal.RequireFromString("450"),
		MinutesPlayed: 45,
		PaymentMethod: models.PaymentCash,
		PaidAt:        paidAt,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (session_id) DO NOTHING`)).
		WillReturnRows(sqlmock.NewRows([]string{"paid_at"}).AddRow(paidAt))
	require.NoError(t, repo.Create(context.Background(), payment))

	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (session_id) DO NOTHING`)).
		WillReturnRows(sqlmock.NewRows([]string{"paid_at"}))
	assert.ErrorIs(t, repo.Create(context.Background(), payment), ErrAlreadyPaid)
}

func TestPaymentRepository_Session(t *testing.T) {
	db, mock := newMock(t)
	id, cafeID, staffID := uuid.New(), uuid.New(), uuid.New()
	end := time.Date(2025, 5, 1, 18, 45, 0, 0, time.UTC)
	columns := []string{"id", "cafe_id", "staff_id", "name", "end_time", "duration_minutes"}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM game_sessions s`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id.String(), cafeID.String(), staffID.String(), "Pool 1", end, int64(45)))

	rec, err := NewPaymentRepository(db).Session(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, rec.Closed())
	assert.Equal(t, cafeID, rec.CafeID)
	require.NotNil(t, rec.DurationMinutes)
	assert.Equal(t, 45, *rec.DurationMinutes)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM game_sessions s`)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)
	_, err = NewPaymentRepository(db).Session(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaymentRepository_ListByStaffSince(t *testing.T) {
	db, mock := newMock(t)
	staffID := uuid.New()
	since := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	paidAt := since.Add(19 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.staff_id = $1 AND p.paid_at >= $2`)).
		WithArgs(staffID, since).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "total_amount", "minutes_played", "payment_method", "paid_at", "name"}).
			AddRow(uuid.NewString(), uuid.NewString(), "450.00", int64(45), "online", paidAt, "Pool 1"))

	payments, err := NewPaymentRepository(db).ListByStaffSince(context.Background(), staffID, since)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, models.PaymentOnline, payments[0].PaymentMethod)
	assert.Equal(t, "Pool 1", payments[0].TableName)
	assert.True(t, decimal.NewFromInt(450).Equal(payments[0].TotalAmount))
}
