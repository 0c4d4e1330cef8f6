package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a bill was settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// Valid reports whether m is a known method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentOnline
}

// Payment is proof that a closed session was paid. At most one per session.
type Payment struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	SessionID     uuid.UUID       `db:"session_id" json:"session_id"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	MinutesPlayed int             `db:"minutes_played" json:"minutes_played"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"payment_method"`
	PaidAt        time.Time       `db:"paid_at" json:"paid_at"`
}

// PaymentWithTable is a payment listed together with the table it was played on.
type PaymentWithTable struct {
	Payment
	TableName string `db:"table_name" json:"table_name"`
}

// StaffIdentity is the authenticated staff member acting on a request.
type StaffIdentity struct {
	StaffID uuid.UUID
	CafeID  uuid.UUID
}

// SessionRecord is the slice of a game session the recorder needs.
type SessionRecord struct {
	ID              uuid.UUID
	CafeID          uuid.UUID
	StaffID         uuid.UUID
	TableName       string
	EndTime         *time.Time
	DurationMinutes *int
}

// Closed reports whether the session has ended.
func (s *SessionRecord) Closed() bool {
	return s.EndTime != nil
}

// DailySummary totals the payments a staff member collected today.
type DailySummary struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	SessionsManaged int             `json:"sessions_managed"`
	CashCollected   decimal.Decimal `json:"cash_collected"`
	OnlineCollected decimal.Decimal `json:"online_collected"`
}

// PaymentsToday is the staff member's payment list for the current day.
type PaymentsToday struct {
	Since    time.Time          `json:"since"`
	Payments []PaymentWithTable `json:"payments"`
	Summary  DailySummary       `json:"summary"`
}
