package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"billiardsone/backend/libs/billing"
)

type quoteOptions struct {
	strategy         string
	minutes          int
	start            string
	end              string
	hourPrice        string
	halfHourPrice    string
	extraPlayerPrice string
	players          int
}

func newQuoteCmd() *cobra.Command {
	opts := quoteOptions{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a session without touching the database",
		Example: `  billiardsctl quote --strategy pro_rata --minutes 45 --hour-price 600 --half-hour-price 200 --extra-player-price 50 --players 4
  billiardsctl quote --strategy fixed_hour --start 2025-05-01T18:00:00Z --end 2025-05-01T19:01:00Z --hour-price 600`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bill, err := opts.quote()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(bill)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.strategy, "strategy", string(billing.StrategyProRata), "pro_rata, per_minute or fixed_hour")
	flags.IntVar(&opts.minutes, "minutes", 0, "Minutes played")
	flags.StringVar(&opts.start, "start", "", "Session start (RFC 3339); used with --end instead of --minutes")
	flags.StringVar(&opts.end, "end", "", "Session end (RFC 3339)")
	flags.StringVar(&opts.hourPrice, "hour-price", "0", "Price of one hour")
	flags.StringVar(&opts.halfHourPrice, "half-hour-price", "0", "Price of the first half hour")
	flags.StringVar(&opts.extraPlayerPrice, "extra-player-price", "0", "Price per player beyond two")
	flags.IntVar(&opts.players, "players", billing.FreePlayers, "Final player count")

	return cmd
}

func (o quoteOptions) quote() (billing.Breakdown, error) {
	strategy, err := billing.ParseStrategy(o.strategy)
	if err != nil {
		return billing.Breakdown{}, err
	}

	minutes := o.minutes
	if o.start != "" || o.end != "" {
		start, err := time.Parse(time.RFC3339, o.start)
		if err != nil {
			return billing.Breakdown{}, fmt.Errorf("--start: %w", err)
		}
		end, err := time.Parse(time.RFC3339, o.end)
		if err != nil {
			return billing.Breakdown{}, fmt.Errorf("--end: %w", err)
		}
		minutes = billing.BillableMinutes(start, end)
	}
	if minutes < 0 {
		return billing.Breakdown{}, errors.New("--minutes must not be negative")
	}
	if o.players < 0 {
		return billing.Breakdown{}, errors.New("--players must not be negative")
	}

	var rates billing.Rates
	for _, p := range []struct {
		flag string
		raw  string
		dst  *decimal.Decimal
	}{
		{"--hour-price", o.hourPrice, &rates.HourPrice},
		{"--half-hour-price", o.halfHourPrice, &rates.HalfHourPrice},
		{"--extra-player-price", o.extraPlayerPrice, &rates.ExtraPlayerPrice},
	} {
		v, err := decimal.NewFromString(p.raw)
		if err != nil {
			return billing.Breakdown{}, fmt.Errorf("%s: %w", p.flag, err)
		}
		if v.IsNegative() {
			return billing.Breakdown{}, fmt.Errorf("%s must not be negative", p.flag)
		}
		*p.dst = v
	}

	return billing.Calculate(strategy, minutes, rates, o.players)
}
