package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/meenmo/fischedule/utils"
)

// Observance moves a holiday that falls on a weekend.
type Observance string

const (
	// ObserveNone keeps the holiday on its calendar date only.
	ObserveNone       Observance = "none"
	// ObserveNearest moves Saturday to Friday and Sunday to Monday.
	ObserveNearest    Observance = "nearest"
	// ObserveNextFree moves a weekend holiday to the next weekday that is not
	// already a holiday.
	ObserveNextFree   Observance = "next_free"
	// ObserveSubstitute moves a Sunday holiday to the next day that is not
	// already a holiday.
	ObserveSubstitute Observance = "substitute"
)

func (o Observance) validate() error {
	switch o {
	case "", ObserveNone, ObserveNearest, ObserveNextFree, ObserveSubstitute:
		return nil
	default:
		return fmt.Errorf("unknown observance %q", string(o))
	}
}

// Rule generates at most a few holidays per year.
//
// Exactly one of Month/Day, RRule or compute is set. RRule is an RFC 5545
// recurrence without DTSTART, e.g. "FREQ=YEARLY;BYMONTH=1;BYDAY=+3MO" or
// "FREQ=YEARLY;BYEASTER=-2".
type Rule struct {
	Name       string
	Month      time.Month
	Day        int
	RRule      string
	Observance Observance
	FromYear   int
	ToYear     int

	compute func(year int) (time.Time, bool)
	opt     *rrule.ROption
}

func fixed(name string, month time.Month, day int, obs Observance) Rule {
	return Rule{Name: name, Month: month, Day: day, Observance: obs}
}

func recurring(name, rule string, obs Observance) Rule {
	return Rule{Name: name, RRule: rule, Observance: obs}
}

func computed(name string, fn func(year int) (time.Time, bool), obs Observance) Rule {
	return Rule{Name: name, compute: fn, Observance: obs}
}

func (r Rule) since(year int) Rule {
	r.FromYear = year
	return r
}

// compile validates the rule and parses its recurrence once.
func (r *Rule) compile() error {
	if err := r.Observance.validate(); err != nil {
		return fmt.Errorf("rule %q: %w", r.Name, err)
	}
	if r.Observance == "" {
		r.Observance = ObserveNone
	}
	kinds := 0
	if r.Month != 0 || r.Day != 0 {
		kinds++
		if r.Month < time.January || r.Month > time.December || r.Day < 1 || r.Day > 31 {
			return fmt.Errorf("rule %q: invalid month/day %d/%d", r.Name, r.Month, r.Day)
		}
	}
	if strings.TrimSpace(r.RRule) != "" {
		kinds++
		opt, err := rrule.StrToROption(strings.ToUpper(strings.TrimSpace(r.RRule)))
		if err != nil {
			return fmt.Errorf("rule %q: %w", r.Name, err)
		}
		r.opt = opt
	}
	if r.compute != nil {
		kinds++
	}
	if kinds != 1 {
		return fmt.Errorf("rule %q: need exactly one of month/day, rrule or computed date", r.Name)
	}
	return nil
}

func (r Rule) activeIn(year int) bool {
	if r.FromYear != 0 && year < r.FromYear {
		return false
	}
	if r.ToYear != 0 && year > r.ToYear {
		return false
	}
	return true
}

// occurrences returns the unshifted dates of the rule inside year.
func (r Rule) occurrences(year int) []time.Time {
	if !r.activeIn(year) {
		return nil
	}
	switch {
	case r.opt != nil:
		opt := *r.opt
		opt.Dtstart = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		opt.Until = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		opt.Count = 0
		rr, err := rrule.NewRRule(opt)
		if err != nil {
			return nil
		}
		out := rr.All()
		for i := range out {
			out[i] = utils.DateOf(out[i])
		}
		return out
	case r.compute != nil:
		if d, ok := r.compute(year); ok {
			return []time.Time{d}
		}
		return nil
	default:
		if r.Day > utils.DaysInMonth(year, r.Month) {
			return nil
		}
		return []time.Time{time.Date(year, r.Month, r.Day, 0, 0, 0, 0, time.UTC)}
	}
}

// vernalEquinox and autumnalEquinox use the Japanese Cabinet Office
// approximation valid for 1980-2099.
func vernalEquinox(year int) (time.Time, bool) {
	if year < 1980 || year > 2099 {
		return time.Time{}, false
	}
	y := float64(year - 1980)
	day := int(20.8431+0.242194*y) - (year-1980)/4
	return time.Date(year, time.March, day, 0, 0, 0, 0, time.UTC), true
}

func autumnalEquinox(year int) (time.Time, bool) {
	if year < 1980 || year > 2099 {
		return time.Time{}, false
	}
	y := float64(year - 1980)
	day := int(23.2488+0.242194*y) - (year-1980)/4
	return time.Date(year, time.September, day, 0, 0, 0, 0, time.UTC), true
}

var (
	targetRules = []Rule{
		fixed("New Year's Day", time.January, 1, ObserveNone),
		recurring("Good Friday", "FREQ=YEARLY;BYEASTER=-2", ObserveNone),
		recurring("Easter Monday", "FREQ=YEARLY;BYEASTER=1", ObserveNone),
		fixed("Labour Day", time.May, 1, ObserveNone),
		fixed("Christmas Day", time.December, 25, ObserveNone),
		fixed("Christmas Holiday", time.December, 26, ObserveNone),
	}

	usdRules = []Rule{
		fixed("New Year's Day", time.January, 1, ObserveNearest),
		recurring("Martin Luther King Jr. Day", "FREQ=YEARLY;BYMONTH=1;BYDAY=+3MO", ObserveNone).since(1986),
		recurring("Washington's Birthday", "FREQ=YEARLY;BYMONTH=2;BYDAY=+3MO", ObserveNone),
		recurring("Memorial Day", "FREQ=YEARLY;BYMONTH=5;BYDAY=-1MO", ObserveNone),
		fixed("Juneteenth", time.June, 19, ObserveNearest).since(2022),
		fixed("Independence Day", time.July, 4, ObserveNearest),
		recurring("Labor Day", "FREQ=YEARLY;BYMONTH=9;BYDAY=+1MO", ObserveNone),
		recurring("Columbus Day", "FREQ=YEARLY;BYMONTH=10;BYDAY=+2MO", ObserveNone),
		fixed("Veterans Day", time.November, 11, ObserveNearest),
		recurring("Thanksgiving Day", "FREQ=YEARLY;BYMONTH=11;BYDAY=+4TH", ObserveNone),
		fixed("Christmas Day", time.December, 25, ObserveNearest),
	}

	gbpRules = []Rule{
		fixed("New Year's Day", time.January, 1, ObserveNextFree),
		recurring("Good Friday", "FREQ=YEARLY;BYEASTER=-2", ObserveNone),
		recurring("Easter Monday", "FREQ=YEARLY;BYEASTER=1", ObserveNone),
		recurring("Early May Bank Holiday", "FREQ=YEARLY;BYMONTH=5;BYDAY=+1MO", ObserveNone),
		recurring("Spring Bank Holiday", "FREQ=YEARLY;BYMONTH=5;BYDAY=-1MO", ObserveNone),
		recurring("Summer Bank Holiday", "FREQ=YEARLY;BYMONTH=8;BYDAY=-1MO", ObserveNone),
		fixed("Christmas Day", time.December, 25, ObserveNextFree),
		fixed("Boxing Day", time.December, 26, ObserveNextFree),
	}

	jpnRules = []Rule{
		fixed("New Year's Day", time.January, 1, ObserveSubstitute),
		fixed("Bank Holiday", time.January, 2, ObserveNone),
		fixed("Bank Holiday", time.January, 3, ObserveNone),
		recurring("Coming of Age Day", "FREQ=YEARLY;BYMONTH=1;BYDAY=+2MO", ObserveNone),
		fixed("National Foundation Day", time.February, 11, ObserveSubstitute),
		fixed("Emperor's Birthday", time.February, 23, ObserveSubstitute).since(2020),
		computed("Vernal Equinox Day", vernalEquinox, ObserveSubstitute),
		fixed("Showa Day", time.April, 29, ObserveSubstitute),
		fixed("Constitution Memorial Day", time.May, 3, ObserveSubstitute),
		fixed("Greenery Day", time.May, 4, ObserveSubstitute),
		fixed("Children's Day", time.May, 5, ObserveSubstitute),
		recurring("Marine Day", "FREQ=YEARLY;BYMONTH=7;BYDAY=+3MO", ObserveNone),
		fixed("Mountain Day", time.August, 11, ObserveSubstitute).since(2016),
		recurring("Respect for the Aged Day", "FREQ=YEARLY;BYMONTH=9;BYDAY=+3MO", ObserveNone),
		computed("Autumnal Equinox Day", autumnalEquinox, ObserveSubstitute),
		recurring("Sports Day", "FREQ=YEARLY;BYMONTH=10;BYDAY=+2MO", ObserveNone),
		fixed("Culture Day", time.November, 3, ObserveSubstitute),
		fixed("Labor Thanksgiving Day", time.November, 23, ObserveSubstitute),
		fixed("Bank Holiday", time.December, 31, ObserveNone),
	}
)
