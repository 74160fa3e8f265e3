package utils

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DayCount identifies a day count convention.
type DayCount string

const (
	Act360     DayCount = "ACT/360"
	Act365F    DayCount = "ACT/365F"
	ActActISDA DayCount = "ACT/ACT"
	Thirty360  DayCount = "30/360"
	ThirtyE    DayCount = "30E/360"
)

var (
	d360 = decimal.NewFromInt(360)
	d365 = decimal.NewFromInt(365)
	d366 = decimal.NewFromInt(366)
)

// Validate rejects conventions outside the supported set.
func (dc DayCount) Validate() error {
	switch dc {
	case Act360, Act365F, ActActISDA, Thirty360, ThirtyE:
		return nil
	default:
		return fmt.Errorf("unsupported day count %q", string(dc))
	}
}

// YearFraction computes the accrual fraction between two dates.
//
// Unknown conventions fall back to ACT/365F.
func (dc DayCount) YearFraction(start, end time.Time) decimal.Decimal {
	switch dc {
	case Act360:
		return decimal.NewFromInt(int64(Days(start, end))).Div(d360)
	case ActActISDA:
		return actActISDA(start, end)
	case Thirty360:
		// 30/360 US bond basis: D2 is capped only when D1 is.
		d1, d2 := start.Day(), end.Day()
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 && d1 == 30 {
			d2 = 30
		}
		return thirty360(start, end, d1, d2)
	case ThirtyE:
		d1, d2 := start.Day(), end.Day()
		if d1 > 30 {
			d1 = 30
		}
		if d2 > 30 {
			d2 = 30
		}
		return thirty360(start, end, d1, d2)
	default:
		return decimal.NewFromInt(int64(Days(start, end))).Div(d365)
	}
}

func thirty360(start, end time.Time, d1, d2 int) decimal.Decimal {
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return decimal.NewFromInt(int64(360*(y2-y1) + 30*(m2-m1) + (d2 - d1))).Div(d360)
}

// actActISDA splits the period at year boundaries and weights each piece by
// the length of its own year.
func actActISDA(start, end time.Time) decimal.Decimal {
	if !end.After(start) {
		return decimal.Zero
	}
	total := decimal.Zero
	cur := DateOf(start)
	last := DateOf(end)
	for cur.Before(last) {
		yearEnd := Date(cur.Year()+1, time.January, 1)
		if yearEnd.After(last) {
			yearEnd = last
		}
		basis := d365
		if IsLeapYear(cur.Year()) {
			basis = d366
		}
		total = total.Add(decimal.NewFromInt(int64(Days(cur, yearEnd))).Div(basis))
		cur = yearEnd
	}
	return total
}
