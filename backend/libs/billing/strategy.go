// Package billing turns a played duration, a cafe's rate sheet and the final
// player count into an itemized bill. Every function here is pure.
package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"billiardsone/backend/libs/apperr"
)

// Strategy selects how time is charged. Fixed per cafe at creation.
type Strategy string

const (
	StrategyProRata   Strategy = "pro_rata"
	StrategyPerMinute Strategy = "per_minute"
	StrategyFixedHour Strategy = "fixed_hour"
)

// FreePlayers is the number of players included in the table price.
const FreePlayers = 2

const halfHourMinutes = 30

var minutesPerHour = decimal.NewFromInt(60)

// Rates is the rate sheet for one table category within one cafe.
type Rates struct {
	HourPrice        decimal.Decimal
	HalfHourPrice    decimal.Decimal
	ExtraPlayerPrice decimal.Decimal
}

// Breakdown is the itemized bill. Every strategy fills every field so callers
// can treat bills uniformly.
type Breakdown struct {
	Strategy           Strategy        `json:"strategy"`
	TotalMinutesPlayed int             `json:"total_minutes_played"`
	BaseCharge         decimal.Decimal `json:"base_charge"`
	ExtraMinutesPlayed int             `json:"extra_minutes_played"`
	PerMinuteRate      decimal.Decimal `json:"per_minute_rate"`
	OvertimeCharge     decimal.Decimal `json:"overtime_charge"`
	TimeBasedCost      decimal.Decimal `json:"time_based_cost"`
	FinalPlayerCount   int             `json:"final_player_count"`
	ExtraPlayerCost    decimal.Decimal `json:"extra_player_cost"`
	TotalAmountDue     decimal.Decimal `json:"total_amount_due"`
}

// Func is the contract shared by all strategies.
type Func func(minutes int, rates Rates, players int) Breakdown

// ParseStrategy accepts the stored enum value. Legacy capitalized spellings
// ("Pro_Rata") are accepted too.
func ParseStrategy(raw string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(raw))) {
	case StrategyProRata:
		return StrategyProRata, nil
	case StrategyPerMinute:
		return StrategyPerMinute, nil
	case StrategyFixedHour:
		return StrategyFixedHour, nil
	default:
		return "", apperr.Configuration("billing: unrecognized strategy %q", raw)
	}
}

// For resolves the function implementing s.
func For(s Strategy) (Func, error) {
	switch s {
	case StrategyProRata:
		return ProRata, nil
	case StrategyPerMinute:
		return PerMinute, nil
	case StrategyFixedHour:
		return FixedHour, nil
	default:
		return nil, apperr.Configuration("billing: unrecognized strategy %q", string(s))
	}
}

// Calculate resolves the strategy and applies it.
func Calculate(s Strategy, minutes int, rates Rates, players int) (Breakdown, error) {
	fn, err := For(s)
	if err != nil {
		return Breakdown{}, err
	}
	bill := fn(minutes, rates, players)
	bill.Strategy = s
	return bill, nil
}

// ExtraPlayerCost charges every player beyond FreePlayers.
func ExtraPlayerCost(rates Rates, players int) decimal.Decimal {
	if players <= FreePlayers {
		return decimal.Zero
	}
	return rates.ExtraPlayerPrice.Mul(decimal.NewFromInt(int64(players - FreePlayers)))
}

// PerMinuteRate is the hourly price spread over sixty minutes.
func PerMinuteRate(rates Rates) decimal.Decimal {
	return rates.HourPrice.Div(minutesPerHour)
}

// minutesAtHourlyRate multiplies before dividing so rates divisible by sixty
// stay exact.
func minutesAtHourlyRate(rates Rates, minutes int) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	return rates.HourPrice.Mul(decimal.NewFromInt(int64(minutes))).Div(minutesPerHour)
}

func finish(b Breakdown, rates Rates, players int) Breakdown {
	b.FinalPlayerCount = players
	b.ExtraPlayerCost = ExtraPlayerCost(rates, players)
	b.TotalAmountDue = b.TimeBasedCost.Add(b.ExtraPlayerCost)
	return b
}
