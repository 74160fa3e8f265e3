package utils_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/meenmo/fischedule/utils"
)

func TestYearFraction(t *testing.T) {
	t.Parallel()

	cases := []struct {
		dc    utils.DayCount
		start string
		end   string
		want  string
	}{
		{utils.Act360, "2020-01-01", "2020-03-31", "0.25"},
		{utils.Act365F, "2021-01-01", "2022-01-01", "1"},
		{utils.Thirty360, "2020-01-31", "2020-07-31", "0.5"},
		{utils.ThirtyE, "2020-01-30", "2020-07-31", "0.5"},
		{utils.ActActISDA, "2020-01-01", "2021-01-01", "1"},
		{utils.DayCount("BUS/252"), "2021-01-01", "2022-01-01", "1"},
	}
	for _, tc := range cases {
		got := tc.dc.YearFraction(utils.DateParser(tc.start), utils.DateParser(tc.end))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"%s %s..%s: got %s want %s", tc.dc, tc.start, tc.end, got, tc.want)
	}
}

func TestYearFraction_ActActSpansYearEnd(t *testing.T) {
	t.Parallel()

	// 2019-07-01..2020-01-01 is 184/365, 2020-01-01..2020-07-01 is 182/366.
	got := utils.ActActISDA.YearFraction(utils.DateParser("2019-07-01"), utils.DateParser("2020-07-01"))
	want := 184.0/365.0 + 182.0/366.0
	assert.InDelta(t, want, got.InexactFloat64(), 1e-12)

	assert.True(t, utils.ActActISDA.YearFraction(utils.DateParser("2020-07-01"), utils.DateParser("2020-07-01")).IsZero())
}

func TestDayCountValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, utils.Act360.Validate())
	assert.Error(t, utils.DayCount("ACT/364").Validate())
}
