package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billiardsone/backend/libs/billing"
)

// Cafe carries the billing strategy as stored. It is parsed when a session
// closes so that a corrupt value surfaces as a configuration error.
type Cafe struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	BillingStrategy string    `db:"billing_strategy" json:"billing_strategy"`
}

// StaffIdentity is the authenticated staff member acting on a request.
type StaffIdentity struct {
	StaffID uuid.UUID
	CafeID  uuid.UUID
}

// PricingRule is the rate sheet for one category in one cafe.
type PricingRule struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	CafeID           uuid.UUID       `db:"cafe_id" json:"cafe_id"`
	Category         TableCategory   `db:"category" json:"category"`
	HourPrice        decimal.Decimal `db:"hour_price" json:"hour_price"`
	HalfHourPrice    decimal.Decimal `db:"half_hour_price" json:"half_hour_price"`
	ExtraPlayerPrice decimal.Decimal `db:"extra_player_price" json:"extra_player_price"`
}

// Rates converts the rule into billing input.
func (p *PricingRule) Rates() billing.Rates {
	return billing.Rates{
		HourPrice:        p.HourPrice,
		HalfHourPrice:    p.HalfHourPrice,
		ExtraPlayerPrice: p.ExtraPlayerPrice,
	}
}

// Bill is the result of closing a session.
type Bill struct {
	SessionID uuid.UUID `json:"session_id"`
	billing.Breakdown
}
