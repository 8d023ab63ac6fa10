package core

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/edvin/customer-api/internal/model"
)

var (
	platinumSpend = decimal.NewFromInt(10000)
	goldSpend     = decimal.NewFromInt(1000)
)

const (
	platinumWindowMonths = 6
	goldWindowMonths     = 12
)

// ClassifyTier derives the loyalty tier of c as of today.
//
// Platinum needs spend >= 10000 and a purchase within the last 6 months.
// Gold needs 1000 <= spend < 10000 and a purchase within the last 12 months.
// Everything else, including a missing spend or purchase date, is Silver.
func ClassifyTier(c *model.Customer, today civil.Date) model.Tier {
	if c.AnnualSpend == nil {
		return model.TierSilver
	}
	spend := *c.AnnualSpend
	last := c.LastPurchaseDate

	if spend.GreaterThanOrEqual(platinumSpend) &&
		last != nil && last.After(minusMonths(today, platinumWindowMonths)) {
		return model.TierPlatinum
	}
	if spend.GreaterThanOrEqual(goldSpend) && spend.LessThan(platinumSpend) &&
		last != nil && last.After(minusMonths(today, goldWindowMonths)) {
		return model.TierGold
	}
	return model.TierSilver
}

// minusMonths steps back n calendar months, clamping the day to the end of the
// target month (Aug 31 minus 6 months is Feb 28 or 29).
func minusMonths(d civil.Date, n int) civil.Date {
	total := d.Year*12 + int(d.Month) - 1 - n
	year, month := total/12, time.Month(total%12+1)
	day := d.Day
	if last := daysIn(year, month); day > last {
		day = last
	}
	return civil.Date{Year: year, Month: month, Day: day}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
