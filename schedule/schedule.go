package schedule

import (
	"fmt"
	"time"

	"github.com/meenmo/fischedule/calendar"
	"github.com/meenmo/fischedule/config"
	"github.com/meenmo/fischedule/utils"
)

// Params are the inputs of a schedule. Zero values select the market
// defaults: annual frequency, weekend-only calendar, following adjustment,
// backward generation and adjust-after-step.
type Params struct {
	StartDate    time.Time
	EndDate      time.Time
	Frequency    Frequency
	Calendar     calendar.CalendarID
	BusDayAdjust calendar.BusDayAdjustType
	DateGenRule  DateGenRule
	Strategy     Strategy
}

func (p Params) withDefaults() Params {
	if p.Frequency == 0 {
		p.Frequency = Annual
	}
	if p.Calendar == "" {
		p.Calendar = calendar.WEEKEND
	}
	if p.BusDayAdjust == "" {
		p.BusDayAdjust = calendar.Following
	}
	if p.DateGenRule == "" {
		p.DateGenRule = Backward
	}
	if p.Strategy == "" {
		p.Strategy = AdjustAfterStep
	}
	return p
}

// Schedule is a sequence of coupon dates generated from Params. Element 0 is
// the previous coupon date (PCD) and element 1 the next coupon date (NCD).
//
// A Schedule is not safe for concurrent Generate calls.
type Schedule struct {
	startDate    time.Time
	endDate      time.Time
	frequency    Frequency
	calendarID   calendar.CalendarID
	busDayAdjust calendar.BusDayAdjustType
	dateGenRule  DateGenRule
	strategy     Strategy

	cal           *calendar.Calendar
	numMonths     int
	adjustedDates []time.Time
}

// New validates p and generates the schedule with the selected strategy.
// Invalid input yields an error matching ErrInvalidArgument and no Schedule.
func New(p Params) (*Schedule, error) {
	p = p.withDefaults()

	if p.StartDate.IsZero() {
		return nil, &ArgumentError{Field: "StartDate", Value: p.StartDate, Reason: "is required"}
	}
	if p.EndDate.IsZero() {
		return nil, &ArgumentError{Field: "EndDate", Value: p.EndDate, Reason: "is required"}
	}
	months, err := p.Frequency.Months()
	if err != nil {
		return nil, err
	}
	cal, err := calendar.Get(p.Calendar)
	if err != nil {
		return nil, &ArgumentError{Field: "Calendar", Value: string(p.Calendar), Err: err}
	}
	if err := p.BusDayAdjust.Validate(); err != nil {
		return nil, &ArgumentError{Field: "BusDayAdjust", Value: string(p.BusDayAdjust), Err: err}
	}
	if err := p.DateGenRule.validate(); err != nil {
		return nil, err
	}
	if err := p.Strategy.validate(); err != nil {
		return nil, err
	}

	s := &Schedule{
		startDate:    utils.DateOf(p.StartDate),
		endDate:      utils.DateOf(p.EndDate),
		frequency:    p.Frequency,
		calendarID:   p.Calendar,
		busDayAdjust: p.BusDayAdjust,
		dateGenRule:  p.DateGenRule,
		strategy:     p.Strategy,
		cal:          cal,
		numMonths:    months,
	}

	switch s.strategy {
	case AdjustBeforeStep:
		_, err = s.GenerateAlternative()
	default:
		_, err = s.Generate()
	}
	if err != nil {
		return nil, fmt.Errorf("schedule.New: %w", err)
	}
	return s, nil
}

// NewWithDefaults builds an annual, weekend-calendar, following, backward schedule.
func NewWithDefaults(start, end time.Time) (*Schedule, error) {
	return New(Params{StartDate: start, EndDate: end})
}

// Generate steps on unadjusted dates and adjusts each one on output, then
// caches and returns the result.
//
// Backward: dates are stepped from the end date until one is on or before
// the start date; that last one is the PCD. Every date, the end date
// included, is adjusted.
//
// Forward: dates are stepped from the start date while they are before the
// end date. The start date and the stepped dates are adjusted; the end date is
// appended as given, unadjusted.
func (s *Schedule) Generate() ([]time.Time, error) {
	if s.cal == nil {
		return nil, ErrNotReady
	}
	maxDates := config.GetConfig().MaxDates

	var dates []time.Time
	switch s.dateGenRule {
	case Backward:
		unadjusted := []time.Time{}
		next := s.endDate
		for next.After(s.startDate) {
			unadjusted = append(unadjusted, next)
			if len(unadjusted) >= maxDates {
				return nil, fmt.Errorf("%w: limit %d", ErrTooManyDates, maxDates)
			}
			next = utils.AddMonth(next, -s.numMonths)
		}
		// Previous coupon date
		unadjusted = append(unadjusted, next)

		dates = make([]time.Time, 0, len(unadjusted))
		for i := len(unadjusted) - 1; i >= 0; i-- {
			dt, err := s.cal.Adjust(unadjusted[i], s.busDayAdjust)
			if err != nil {
				return nil, err
			}
			dates = append(dates, dt)
		}

	case Forward:
		// unadjusted[0] is dropped from the output; the literal end date takes its place.
		unadjusted := []time.Time{s.startDate}
		next := s.startDate
		for next.Before(s.endDate) {
			unadjusted = append(unadjusted, next)
			if len(unadjusted)-1 >= maxDates {
				return nil, fmt.Errorf("%w: limit %d", ErrTooManyDates, maxDates)
			}
			next = utils.AddMonth(next, s.numMonths)
		}

		dates = make([]time.Time, 0, len(unadjusted))
		for _, d := range unadjusted[1:] {
			dt, err := s.cal.Adjust(d, s.busDayAdjust)
			if err != nil {
				return nil, err
			}
			dates = append(dates, dt)
		}
		dates = append(dates, s.endDate)

	default:
		return nil, &ArgumentError{Field: "DateGenRule", Value: string(s.dateGenRule)}
	}

	s.adjustedDates = dates
	s.strategy = AdjustAfterStep
	return s.Flows()
}

// GenerateAlternative adjusts each stepped date before stepping again, so a
// holiday shift carries into every later period. The date the stepping
// starts from (end date backward, start date forward) is not adjusted, and
// forward generation still finishes on the literal end date.
func (s *Schedule) GenerateAlternative() ([]time.Time, error) {
	if s.cal == nil {
		return nil, ErrNotReady
	}
	maxDates := config.GetConfig().MaxDates

	var dates []time.Time
	switch s.dateGenRule {
	case Backward:
		unadjusted := []time.Time{}
		next := s.endDate
		for next.After(s.startDate) {
			unadjusted = append(unadjusted, next)
			if len(unadjusted) >= maxDates {
				return nil, fmt.Errorf("%w: limit %d", ErrTooManyDates, maxDates)
			}
			var err error
			next, err = s.cal.Adjust(utils.AddMonth(next, -s.numMonths), s.busDayAdjust)
			if err != nil {
				return nil, err
			}
		}
		// Previous coupon date
		unadjusted = append(unadjusted, next)

		dates = make([]time.Time, 0, len(unadjusted))
		for i := len(unadjusted) - 1; i >= 0; i-- {
			dates = append(dates, unadjusted[i])
		}

	case Forward:
		// unadjusted[0] is dropped from the output; the literal end date takes its place.
		unadjusted := []time.Time{s.startDate}
		next := s.startDate
		for next.Before(s.endDate) {
			unadjusted = append(unadjusted, next)
			if len(unadjusted)-1 >= maxDates {
				return nil, fmt.Errorf("%w: limit %d", ErrTooManyDates, maxDates)
			}
			var err error
			next, err = s.cal.Adjust(utils.AddMonth(next, s.numMonths), s.busDayAdjust)
			if err != nil {
				return nil, err
			}
		}

		dates = make([]time.Time, 0, len(unadjusted))
		dates = append(dates, unadjusted[1:]...)
		dates = append(dates, s.endDate)

	default:
		return nil, &ArgumentError{Field: "DateGenRule", Value: string(s.dateGenRule)}
	}

	s.adjustedDates = dates
	s.strategy = AdjustBeforeStep
	return s.Flows()
}

// Flows returns a copy of the generated dates.
func (s *Schedule) Flows() ([]time.Time, error) {
	if s.adjustedDates == nil {
		return nil, ErrNotReady
	}
	out := make([]time.Time, len(s.adjustedDates))
	copy(out, s.adjustedDates)
	return out, nil
}

// PreviousCouponDate returns element 0 of the schedule.
func (s *Schedule) PreviousCouponDate() (time.Time, error) {
	if len(s.adjustedDates) < 1 {
		return time.Time{}, ErrNotReady
	}
	return s.adjustedDates[0], nil
}

// NextCouponDate returns element 1 of the schedule.
func (s *Schedule) NextCouponDate() (time.Time, error) {
	if len(s.adjustedDates) < 2 {
		return time.Time{}, ErrNotReady
	}
	return s.adjustedDates[1], nil
}

// CouponPeriod returns the schedule dates bracketing t. Dates outside the
// schedule map to the first or last period.
func (s *Schedule) CouponPeriod(t time.Time) (time.Time, time.Time, error) {
	if len(s.adjustedDates) < 2 {
		return time.Time{}, time.Time{}, ErrNotReady
	}
	prev, next := utils.AdjacentDates(utils.DateOf(t), s.adjustedDates)
	return prev, next, nil
}

func (s *Schedule) StartDate() time.Time                    { return s.startDate }
func (s *Schedule) EndDate() time.Time                      { return s.endDate }
func (s *Schedule) Frequency() Frequency                    { return s.frequency }
func (s *Schedule) Calendar() calendar.CalendarID           { return s.calendarID }
func (s *Schedule) BusDayAdjust() calendar.BusDayAdjustType { return s.busDayAdjust }
func (s *Schedule) DateGenRule() DateGenRule                { return s.dateGenRule }

// Strategy reports the algorithm that produced the cached dates.
func (s *Schedule) Strategy() Strategy { return s.strategy }
