package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"billiardsone/backend/libs/apperr"
	"billiardsone/backend/services/billing-service/internal/models"
	"billiardsone/backend/services/billing-service/internal/repository"
)

// PaymentRepository is the storage the recorder needs.
type PaymentRepository interface {
	Session(ctx context.Context, id uuid.UUID) (*models.SessionRecord, error)
	Create(ctx context.Context, payment *models.Payment) error
	ListByStaffSince(ctx context.Context, staffID uuid.UUID, since time.Time) ([]models.PaymentWithTable, error)
}

// PaymentService records payments for closed sessions.
type PaymentService struct {
	repo     PaymentRepository
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

// RecordPaymentInput is a staff member confirming a bill was paid.
type RecordPaymentInput struct {
	SessionID uuid.UUID
	Amount    decimal.Decimal
	Method    models.PaymentMethod
}

// NewPaymentService builds service. location defines "today"; nil means UTC.
func NewPaymentService(repo PaymentRepository, location *time.Location, logger *zap.Logger) *PaymentService {
	if location == nil {
		location = time.UTC
	}
	return &PaymentService{
		repo:     repo,
		logger:   logger,
		location: location,
		now:      time.Now,
	}
}

// RecordPayment stores the payment of a closed session. A second payment for
// the same session fails with a conflict.
func (s *PaymentService) RecordPayment(ctx context.Context, staff models.StaffIdentity, input RecordPaymentInput) (*models.Payment, error) {
	if input.Amount.IsNegative() {
		return nil, apperr.InvalidInput("amount must not be negative")
	}
	if !input.Method.Valid() {
		return nil, apperr.InvalidInput("payment method must be %s or %s", models.PaymentCash, models.PaymentOnline)
	}

	session, err := s.repo.Session(ctx, input.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("session %s not found in this cafe", input.SessionID)
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session.CafeID != staff.CafeID {
		return nil, apperr.NotFound("session %s not found in this cafe", input.SessionID)
	}
	if !session.Closed() {
		return nil, apperr.Conflict("session %s is still open", session.ID)
	}

	minutes := 0
	if session.DurationMinutes != nil {
		minutes = *session.DurationMinutes
	}
	payment := &models.Payment{
		ID:            uuid.New(),
		SessionID:     session.ID,
		TotalAmount:   input.Amount,
		MinutesPlayed: minutes,
		PaymentMethod: input.Method,
		PaidAt:        s.now().UTC(),
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrAlreadyPaid) {
			return nil, apperr.Conflict("session %s has already been paid for", session.ID)
		}
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("session_id", session.ID.String()),
		zap.String("staff_id", staff.StaffID.String()),
		zap.String("amount", payment.TotalAmount.String()),
		zap.String("method", string(payment.PaymentMethod)),
	)
	return payment, nil
}

// PaymentsToday lists the payments for sessions the staff member ran since
// local midnight, newest first, with daily totals.
func (s *PaymentService) PaymentsToday(ctx context.Context, staff models.StaffIdentity) (*models.PaymentsToday, error) {
	since := StartOfDay(s.now(), s.location)
	payments, err := s.repo.ListByStaffSince(ctx, staff.StaffID, since)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []models.PaymentWithTable{}
	}
	return &models.PaymentsToday{
		Since:    since,
		Payments: payments,
		Summary:  Summarize(payments),
	}, nil
}

// Summarize totals payments by method and counts distinct sessions.
func Summarize(payments []models.PaymentWithTable) models.DailySummary {
	summary := models.DailySummary{
		TotalRevenue:    decimal.Zero,
		CashCollected:   decimal.Zero,
		OnlineCollected: decimal.Zero,
	}
	sessions := make(map[uuid.UUID]struct{}, len(payments))
	for _, p := range payments {
		summary.TotalRevenue = summary.TotalRevenue.Add(p.TotalAmount)
		sessions[p.SessionID] = struct{}{}
		switch p.PaymentMethod {
		case models.PaymentCash:
			summary.CashCollected = summary.CashCollected.Add(p.TotalAmount)
		case models.PaymentOnline:
			summary.OnlineCollected = summary.OnlineCollected.Add(p.TotalAmount)
		}
	}
	summary.SessionsManaged = len(sessions)
	return summary
}

// StartOfDay returns midnight of t's day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
