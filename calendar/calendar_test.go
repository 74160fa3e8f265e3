package calendar_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fischedule/calendar"
	"github.com/meenmo/fischedule/utils"
)

func d(s string) time.Time {
	return utils.DateParser(s)
}

func TestAdjust_Rules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cal  calendar.CalendarID
		in   string
		rule calendar.BusDayAdjustType
		want string
	}{
		{"business day untouched", calendar.WEEKEND, "2021-10-29", calendar.Following, "2021-10-29"},
		{"none keeps weekend", calendar.WEEKEND, "2021-10-31", calendar.NoAdjustment, "2021-10-31"},
		{"following crosses month", calendar.WEEKEND, "2021-10-31", calendar.Following, "2021-11-01"},
		{"modified following stays in month", calendar.WEEKEND, "2021-10-31", calendar.ModifiedFollowing, "2021-10-29"},
		{"preceding crosses month", calendar.WEEKEND, "2021-05-01", calendar.Preceding, "2021-04-30"},
		{"modified preceding stays in month", calendar.WEEKEND, "2021-05-01", calendar.ModifiedPreceding, "2021-05-03"},
		{"target easter following", calendar.TARGET, "2021-04-02", calendar.Following, "2021-04-06"},
		{"target easter preceding", calendar.TARGET, "2021-04-05", calendar.Preceding, "2021-04-01"},
		{"no calendar never moves", calendar.NONE, "2021-10-31", calendar.Following, "2021-10-31"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := calendar.Adjust(tc.cal, d(tc.in), tc.rule)
			require.NoError(t, err)
			assert.Equal(t, d(tc.want), got)
		})
	}
}

func TestAdjust_UnknownInputs(t *testing.T) {
	t.Parallel()

	_, err := calendar.Adjust("MARS", d("2021-01-01"), calendar.Following)
	assert.ErrorIs(t, err, calendar.ErrUnknownCalendar)

	_, err = calendar.Adjust(calendar.WEEKEND, d("2021-01-01"), "SIDEWAYS")
	assert.ErrorIs(t, err, calendar.ErrUnknownAdjustment)
}

func TestHolidays_Target(t *testing.T) {
	t.Parallel()

	c, err := calendar.Get(calendar.TARGET)
	require.NoError(t, err)

	want := []time.Time{
		d("2021-01-01"), d("2021-04-02"), d("2021-04-05"),
		d("2021-05-01"), d("2021-12-25"), d("2021-12-26"),
	}
	assert.Equal(t, want, c.Holidays(2021))
}

func TestHolidays_USDObservance(t *testing.T) {
	t.Parallel()

	c, err := calendar.Get(calendar.USD)
	require.NoError(t, err)

	for _, s := range []string{
		"2021-01-01", "2021-01-18", "2021-02-15", "2021-05-31", "2021-07-05",
		"2021-09-06", "2021-10-11", "2021-11-11", "2021-11-25", "2021-12-24",
		// New Year's Day 2022 falls on a Saturday.
		"2021-12-31",
	} {
		assert.True(t, c.IsHoliday(d(s)), s)
		assert.False(t, c.IsBusinessDay(d(s)), s)
	}
	assert.False(t, c.IsHoliday(d("2021-06-18")), "juneteenth starts in 2022")
	assert.True(t, c.IsHoliday(d("2022-06-20")), "juneteenth 2022 observed on monday")
	assert.True(t, c.IsBusinessDay(d("2021-07-06")))
}

func TestHolidays_GBPBoxingDayChain(t *testing.T) {
	t.Parallel()

	c, err := calendar.Get(calendar.GBP)
	require.NoError(t, err)

	assert.True(t, c.IsHoliday(d("2021-12-27")))
	assert.True(t, c.IsHoliday(d("2021-12-28")))
	assert.True(t, c.IsBusinessDay(d("2021-12-29")))
	assert.True(t, c.IsHoliday(d("2021-05-31")), "spring bank holiday")
}

func TestHolidays_JPN(t *testing.T) {
	t.Parallel()

	c, err := calendar.Get(calendar.JPN)
	require.NoError(t, err)

	assert.True(t, c.IsHoliday(d("2020-03-20")), "vernal equinox")
	assert.True(t, c.IsHoliday(d("2020-09-22")), "autumnal equinox")
	assert.True(t, c.IsHoliday(d("2020-05-06")), "substitute for constitution day")
	assert.True(t, c.IsHoliday(d("2020-12-31")))
	assert.False(t, c.IsHoliday(d("2020-05-07")))
}

func TestBusinessDayHelpers(t *testing.T) {
	t.Parallel()

	c, err := calendar.Get(calendar.TARGET)
	require.NoError(t, err)

	next, err := c.AddBusinessDays(d("2021-04-01"), 1)
	require.NoError(t, err)
	assert.Equal(t, d("2021-04-06"), next)
	prev, err := c.AddBusinessDays(d("2021-04-06"), -1)
	require.NoError(t, err)
	assert.Equal(t, d("2021-04-01"), prev)

	last, err := c.LastBusinessDayOfMonth(d("2021-12-10"))
	require.NoError(t, err)
	assert.Equal(t, d("2021-12-31"), last)
	last, err = c.LastBusinessDayOfMonth(d("2021-10-01"))
	require.NoError(t, err)
	assert.Equal(t, d("2021-10-29"), last)

	eom, err := c.IsEndOfMonth(d("2021-10-29"))
	require.NoError(t, err)
	assert.True(t, eom)
	eom, err = c.IsEndOfMonth(d("2021-10-28"))
	require.NoError(t, err)
	assert.False(t, eom)

	ok, err := calendar.IsBusinessDay(calendar.WEEKEND, d("2021-12-25"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoBusinessDay(t *testing.T) {
	t.Parallel()

	_, err := calendar.LoadYAML(strings.NewReader("id: closed-week\nweekend: [MON, TUE, WED, THU, FRI, SAT, SUN]\n"))
	assert.ErrorIs(t, err, calendar.ErrNoBusinessDay)

	c, err := calendar.LoadYAML(strings.NewReader("id: closed-daily\nrules:\n  - name: closed\n    rrule: FREQ=DAILY\n"))
	require.NoError(t, err)

	_, err = c.Adjust(d("2021-01-04"), calendar.Following)
	assert.ErrorIs(t, err, calendar.ErrNoBusinessDay)
	_, err = c.AddBusinessDays(d("2021-01-04"), 1)
	assert.ErrorIs(t, err, calendar.ErrNoBusinessDay)
	_, err = c.LastBusinessDayOfMonth(d("2021-01-04"))
	assert.ErrorIs(t, err, calendar.ErrNoBusinessDay)
	_, err = c.IsEndOfMonth(d("2021-01-04"))
	assert.ErrorIs(t, err, calendar.ErrNoBusinessDay)
}

func TestParseIdentifiers(t *testing.T) {
	t.Parallel()

	id, err := calendar.ParseCalendarID(" target ")
	require.NoError(t, err)
	assert.Equal(t, calendar.TARGET, id)

	_, err = calendar.ParseCalendarID("ATLANTIS")
	assert.ErrorIs(t, err, calendar.ErrUnknownCalendar)

	rule, err := calendar.ParseBusDayAdjustType("modified-following")
	require.NoError(t, err)
	assert.Equal(t, calendar.ModifiedFollowing, rule)

	_, err = calendar.ParseBusDayAdjustType("nearest")
	assert.ErrorIs(t, err, calendar.ErrUnknownAdjustment)
}

func TestRegisterRejectsBuiltins(t *testing.T) {
	t.Parallel()

	c, err := calendar.New(calendar.TARGET, nil, nil, nil)
	require.NoError(t, err)
	assert.Error(t, calendar.Register(c))
	assert.Error(t, calendar.Register(nil))
}
