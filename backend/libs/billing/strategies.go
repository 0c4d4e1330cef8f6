package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProRata charges the half-hour price for the first thirty minutes and the
// per-minute rate for every minute after that.
func ProRata(minutes int, rates Rates, players int) Breakdown {
	b := Breakdown{
		TotalMinutesPlayed: minutes,
		BaseCharge:         rates.HalfHourPrice,
		PerMinuteRate:      PerMinuteRate(rates),
		OvertimeCharge:     decimal.Zero,
	}
	if minutes > halfHourMinutes {
		b.ExtraMinutesPlayed = minutes - halfHourMinutes
		b.OvertimeCharge = minutesAtHourlyRate(rates, b.ExtraMinutesPlayed)
	}
	b.TimeBasedCost = b.BaseCharge.Add(b.OvertimeCharge)
	return finish(b, rates, players)
}

// PerMinute charges every minute at the per-minute rate from minute zero.
// The whole time cost is reported as overtime.
func PerMinute(minutes int, rates Rates, players int) Breakdown {
	cost := minutesAtHourlyRate(rates, minutes)
	b := Breakdown{
		TotalMinutesPlayed: minutes,
		BaseCharge:         decimal.Zero,
		ExtraMinutesPlayed: minutes,
		PerMinuteRate:      PerMinuteRate(rates),
		OvertimeCharge:     cost,
		TimeBasedCost:      cost,
	}
	return finish(b, rates, players)
}

// FixedHour charges the half-hour price for short games when one is set,
// otherwise whole hours rounded up with a one hour minimum.
func FixedHour(minutes int, rates Rates, players int) Breakdown {
	var cost decimal.Decimal
	if minutes <= halfHourMinutes && rates.HalfHourPrice.IsPositive() {
		cost = rates.HalfHourPrice
	} else {
		cost = rates.HourPrice.Mul(decimal.NewFromInt(int64(HoursBilled(minutes))))
	}
	b := Breakdown{
		TotalMinutesPlayed: minutes,
		BaseCharge:         cost,
		PerMinuteRate:      PerMinuteRate(rates),
		OvertimeCharge:     decimal.Zero,
		TimeBasedCost:      cost,
	}
	return finish(b, rates, players)
}

// HoursBilled rounds minutes up to whole hours, never less than one.
func HoursBilled(minutes int) int {
	hours := (minutes + 59) / 60
	if hours < 1 {
		return 1
	}
	return hours
}

// BillableMinutes rounds the elapsed time up to whole minutes. A negative
// interval (clock skew) bills as zero.
func BillableMinutes(start, end time.Time) int {
	elapsed := end.Sub(start)
	if elapsed <= 0 {
		return 0
	}
	return int((elapsed + time.Minute - 1) / time.Minute)
}
