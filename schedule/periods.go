package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fischedule/utils"
)

// Period is the accrual period between two consecutive schedule dates.
type Period struct {
	Start        time.Time
	End          time.Time
	Days         int
	YearFraction decimal.Decimal
}

// Periods splits the schedule into accrual periods measured with dc.
func (s *Schedule) Periods(dc utils.DayCount) ([]Period, error) {
	if err := dc.Validate(); err != nil {
		return nil, &ArgumentError{Field: "DayCount", Value: string(dc), Err: err}
	}
	dates, err := s.Flows()
	if err != nil {
		return nil, fmt.Errorf("Periods: %w", err)
	}
	if len(dates) < 2 {
		return []Period{}, nil
	}
	out := make([]Period, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		out = append(out, Period{
			Start:        dates[i-1],
			End:          dates[i],
			Days:         utils.Days(dates[i-1], dates[i]),
			YearFraction: dc.YearFraction(dates[i-1], dates[i]),
		})
	}
	return out, nil
}
