package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/meenmo/fischedule/utils"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	// NONE treats every day as a business day.
	NONE    CalendarID = "NONE"
	// WEEKEND treats Saturday and Sunday as the only non-business days.
	WEEKEND CalendarID = "WEEKEND"
	TARGET  CalendarID = "TARGET"
	USD     CalendarID = "USD"
	GBP     CalendarID = "GBP"
	JPN     CalendarID = "JPN"
)

var (
	ErrUnknownCalendar   = errors.New("unknown calendar")
	ErrUnknownAdjustment = errors.New("unknown business day adjustment")
	ErrNoBusinessDay     = errors.New("no business day within search window")
)

// maxRollDays bounds the search for a business day.
const maxRollDays = 366

// Calendar decides which days are business days.
type Calendar struct {
	id      CalendarID
	weekend map[time.Weekday]bool
	rules   []Rule
	dates   map[string]struct{}

	mu    sync.Mutex
	years map[int]map[string]struct{}
}

func dateKey(t time.Time) string {
	return t.Format(utils.DateLayout)
}

func satSun() map[time.Weekday]bool {
	return map[time.Weekday]bool{time.Saturday: true, time.Sunday: true}
}

// New builds a calendar from holiday rules and explicit holiday dates.
// A nil weekend means Saturday and Sunday.
func New(id CalendarID, weekend []time.Weekday, rules []Rule, dates []time.Time) (*Calendar, error) {
	id = CalendarID(strings.ToUpper(strings.TrimSpace(string(id))))
	if id == "" {
		return nil, fmt.Errorf("calendar.New: id is required")
	}
	c := &Calendar{
		id:    id,
		dates: make(map[string]struct{}, len(dates)),
		years: make(map[int]map[string]struct{}),
	}
	if weekend == nil {
		c.weekend = satSun()
	} else {
		c.weekend = make(map[time.Weekday]bool, len(weekend))
		for _, wd := range weekend {
			c.weekend[wd] = true
		}
		if len(c.weekend) == 7 {
			return nil, fmt.Errorf("calendar.New %s: every weekday is a weekend day: %w", id, ErrNoBusinessDay)
		}
	}
	c.rules = make([]Rule, len(rules))
	copy(c.rules, rules)
	for i := range c.rules {
		if err := c.rules[i].compile(); err != nil {
			return nil, fmt.Errorf("calendar.New %s: %w", id, err)
		}
	}
	for _, d := range dates {
		c.dates[dateKey(utils.DateOf(d))] = struct{}{}
	}
	return c, nil
}

func mustBuiltin(id CalendarID, weekend []time.Weekday, rules []Rule) *Calendar {
	c, err := New(id, weekend, rules, nil)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	registryMu sync.RWMutex
	registry   = map[CalendarID]*Calendar{}
)

func init() {
	for _, c := range []*Calendar{
		mustBuiltin(NONE, []time.Weekday{}, nil),
		mustBuiltin(WEEKEND, nil, nil),
		mustBuiltin(TARGET, nil, targetRules),
		mustBuiltin(USD, nil, usdRules),
		mustBuiltin(GBP, nil, gbpRules),
		mustBuiltin(JPN, nil, jpnRules),
	} {
		registry[c.id] = c
	}
}

// Register makes c available through Get under its ID. Built-in calendars
// cannot be replaced.
func Register(c *Calendar) error {
	if c == nil {
		return fmt.Errorf("calendar.Register: nil calendar")
	}
	if IsBuiltin(c.id) {
		return fmt.Errorf("calendar.Register: %s is a built-in calendar", c.id)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[c.id] = c
	return nil
}

// IsBuiltin reports whether id names one of the calendars shipped with the package.
func IsBuiltin(id CalendarID) bool {
	switch id {
	case NONE, WEEKEND, TARGET, USD, GBP, JPN:
		return true
	default:
		return false
	}
}

// Get returns the calendar registered under id.
func Get(id CalendarID) (*Calendar, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalendar, string(id))
	}
	return c, nil
}

// IDs lists every registered calendar in name order.
func IDs() []CalendarID {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]CalendarID, 0, len(registry))
	for id := range registry {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ID returns the calendar identifier.
func (c *Calendar) ID() CalendarID {
	return c.id
}

// IsWeekend reports whether t falls on one of the calendar's weekend days.
func (c *Calendar) IsWeekend(t time.Time) bool {
	return c.weekend[t.Weekday()]
}

// IsHoliday reports whether t is a holiday (weekends excluded).
func (c *Calendar) IsHoliday(t time.Time) bool {
	key := dateKey(utils.DateOf(t))
	if _, ok := c.dates[key]; ok {
		return true
	}
	_, ok := c.yearSet(t.Year())[key]
	return ok
}

// IsBusinessDay checks weekends and holiday sets.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	return !c.IsWeekend(t) && !c.IsHoliday(t)
}

// Holidays returns the sorted holidays falling in year.
func (c *Calendar) Holidays(year int) []time.Time {
	set := c.yearSet(year)
	out := make([]time.Time, 0, len(set)+len(c.dates))
	seen := make(map[string]struct{}, len(set))
	for key := range set {
		seen[key] = struct{}{}
		out = append(out, utils.DateParser(key))
	}
	for key := range c.dates {
		if _, dup := seen[key]; dup {
			continue
		}
		d := utils.DateParser(key)
		if d.Year() == year {
			out = append(out, d)
		}
	}
	utils.SortDates(out)
	return out
}

func (c *Calendar) yearSet(year int) map[string]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.years[year]; ok {
		return set
	}
	set := make(map[string]struct{})
	// Observed dates can cross a year boundary (e.g. Jan 1 on a Saturday
	// observed on Dec 31), so neighbouring years are evaluated too.
	for y := year - 1; y <= year+1; y++ {
		for key := range c.ruleDates(y) {
			if strings.HasPrefix(key, fmt.Sprintf("%04d-", year)) {
				set[key] = struct{}{}
			}
		}
	}
	c.years[year] = set
	return set
}

// ruleDates evaluates every rule for one year: raw dates first, then the
// observed substitutes in rule order.
func (c *Calendar) ruleDates(year int) map[string]struct{} {
	set := make(map[string]struct{})
	raw := make([][]time.Time, len(c.rules))
	for i, r := range c.rules {
		raw[i] = r.occurrences(year)
		for _, d := range raw[i] {
			set[dateKey(d)] = struct{}{}
		}
	}
	for i, r := range c.rules {
		for _, d := range raw[i] {
			if obs, ok := c.observed(d, r.Observance, set); ok {
				set[dateKey(obs)] = struct{}{}
			}
		}
	}
	return set
}

func (c *Calendar) observed(d time.Time, obs Observance, taken map[string]struct{}) (time.Time, bool) {
	isTaken := func(t time.Time) bool {
		_, ok := taken[dateKey(t)]
		return ok
	}
	switch obs {
	case ObserveNearest:
		switch d.Weekday() {
		case time.Saturday:
			return d.AddDate(0, 0, -1), true
		case time.Sunday:
			return d.AddDate(0, 0, 1), true
		}
	case ObserveNextFree:
		if !c.IsWeekend(d) {
			return time.Time{}, false
		}
		next := d.AddDate(0, 0, 1)
		for c.IsWeekend(next) || isTaken(next) {
			next = next.AddDate(0, 0, 1)
		}
		return next, true
	case ObserveSubstitute:
		if d.Weekday() != time.Sunday {
			return time.Time{}, false
		}
		next := d.AddDate(0, 0, 1)
		for isTaken(next) {
			next = next.AddDate(0, 0, 1)
		}
		return next, true
	}
	return time.Time{}, false
}

// Adjust moves t onto a business day according to rule.
func (c *Calendar) Adjust(t time.Time, rule BusDayAdjustType) (time.Time, error) {
	switch rule {
	case NoAdjustment:
		return t, nil
	case Following:
		return c.roll(t, 1)
	case Preceding:
		return c.roll(t, -1)
	case ModifiedFollowing:
		adj, err := c.roll(t, 1)
		if err != nil || adj.Month() == t.Month() {
			return adj, err
		}
		return c.roll(t, -1)
	case ModifiedPreceding:
		adj, err := c.roll(t, -1)
		if err != nil || adj.Month() == t.Month() {
			return adj, err
		}
		return c.roll(t, 1)
	default:
		return time.Time{}, fmt.Errorf("calendar.Adjust: %w: %q", ErrUnknownAdjustment, string(rule))
	}
}

func (c *Calendar) roll(t time.Time, step int) (time.Time, error) {
	for i := 0; i <= maxRollDays; i++ {
		if c.IsBusinessDay(t) {
			return t, nil
		}
		t = t.AddDate(0, 0, step)
	}
	return time.Time{}, fmt.Errorf("calendar %s: %w", c.id, ErrNoBusinessDay)
}

// AddBusinessDays advances n business days (n can be negative). It fails with
// ErrNoBusinessDay when no business day is found within maxRollDays.
func (c *Calendar) AddBusinessDays(t time.Time, n int) (time.Time, error) {
	step := 1
	if n < 0 {
		step = -1
	}
	skipped := 0
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if c.IsBusinessDay(t) {
			n -= step
			skipped = 0
			continue
		}
		if skipped++; skipped > maxRollDays {
			return time.Time{}, fmt.Errorf("calendar %s: %w", c.id, ErrNoBusinessDay)
		}
	}
	return t, nil
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func (c *Calendar) LastBusinessDayOfMonth(t time.Time) (time.Time, error) {
	nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return c.AddBusinessDays(nextMonth, -1)
}

// IsEndOfMonth checks if t is the last business day of its month.
func (c *Calendar) IsEndOfMonth(t time.Time) (bool, error) {
	last, err := c.LastBusinessDayOfMonth(t)
	if err != nil {
		return false, err
	}
	return utils.DateOf(t).Equal(last), nil
}

// Adjust looks up cal and moves t onto one of its business days.
func Adjust(cal CalendarID, t time.Time, rule BusDayAdjustType) (time.Time, error) {
	c, err := Get(cal)
	if err != nil {
		return time.Time{}, err
	}
	return c.Adjust(t, rule)
}

// IsBusinessDay looks up cal and checks t against it.
func IsBusinessDay(cal CalendarID, t time.Time) (bool, error) {
	c, err := Get(cal)
	if err != nil {
		return false, err
	}
	return c.IsBusinessDay(t), nil
}

// ParseCalendarID normalizes s and checks that a calendar is registered under it.
func ParseCalendarID(s string) (CalendarID, error) {
	id := CalendarID(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := Get(id); err != nil {
		return "", err
	}
	return id, nil
}
