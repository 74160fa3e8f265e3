package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fischedule/utils"
)

func TestAddMonth_ClampsToMonthEnd(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		in     time.Time
		months int
		want   time.Time
	}{
		{"plain", utils.Date(2020, 1, 15), 3, utils.Date(2020, 4, 15)},
		{"leap february", utils.Date(2020, 1, 31), 1, utils.Date(2020, 2, 29)},
		{"non-leap february", utils.Date(2021, 1, 31), 1, utils.Date(2021, 2, 28)},
		{"backward into short month", utils.Date(2020, 5, 31), -1, utils.Date(2020, 4, 30)},
		{"backward across year", utils.Date(2021, 1, 1), -3, utils.Date(2020, 10, 1)},
		{"thirty first to thirty first", utils.Date(2020, 3, 31), -3, utils.Date(2019, 12, 31)},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, utils.AddMonth(tc.in, tc.months))
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := utils.ParseDate(" 2020-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, utils.Date(2020, 2, 29), d)

	_, err = utils.ParseDate("2021-02-29")
	assert.Error(t, err)

	assert.Panics(t, func() { utils.DateParser("not a date") })
}

func TestAdjacentDates(t *testing.T) {
	t.Parallel()

	dates := []time.Time{
		utils.Date(2020, 7, 1),
		utils.Date(2020, 1, 1),
		utils.Date(2020, 4, 1),
	}
	utils.SortDates(dates)
	require.Equal(t, utils.Date(2020, 1, 1), dates[0])

	lo, hi := utils.AdjacentDates(utils.Date(2020, 5, 5), dates)
	assert.Equal(t, utils.Date(2020, 4, 1), lo)
	assert.Equal(t, utils.Date(2020, 7, 1), hi)

	lo, hi = utils.AdjacentDates(utils.Date(2019, 1, 1), dates)
	assert.Equal(t, dates[0], lo)
	assert.Equal(t, dates[1], hi)

	lo, hi = utils.AdjacentDates(utils.Date(2030, 1, 1), dates)
	assert.Equal(t, dates[1], lo)
	assert.Equal(t, dates[2], hi)
}

func TestDaysIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	start := time.Date(2020, 1, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 3, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, utils.Days(start, end))
	assert.True(t, utils.IsLeapYear(2024))
	assert.False(t, utils.IsLeapYear(2100))
}
