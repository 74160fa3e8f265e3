package calendar_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fischedule/calendar"
)

const acmeYAML = `
id: acme
base: TARGET
holidays:
  - 2021-03-15
rules:
  - name: Founders Day
    month: 6
    day: 1
    observance: nearest
  - name: Harvest Friday
    rrule: FREQ=YEARLY;BYMONTH=10;BYDAY=+2FR
`

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	c, err := calendar.LoadYAML(strings.NewReader(acmeYAML))
	require.NoError(t, err)
	assert.Equal(t, calendar.CalendarID("ACME"), c.ID())

	assert.True(t, c.IsHoliday(d("2021-03-15")), "explicit date")
	assert.True(t, c.IsHoliday(d("2021-06-01")), "fixed rule")
	assert.True(t, c.IsHoliday(d("2021-10-08")), "rrule rule")
	assert.True(t, c.IsHoliday(d("2021-04-05")), "inherited easter monday")
	assert.True(t, c.IsWeekend(d("2021-10-31")), "inherited weekend")

	adj, err := c.Adjust(d("2021-03-13"), calendar.Following)
	require.NoError(t, err)
	assert.Equal(t, d("2021-03-16"), adj)
}

func TestLoadYAML_CustomWeekend(t *testing.T) {
	t.Parallel()

	c, err := calendar.LoadYAML(strings.NewReader("id: gulf\nweekend: [fri, saturday]\n"))
	require.NoError(t, err)
	assert.True(t, c.IsWeekend(d("2021-10-29")))
	assert.True(t, c.IsWeekend(d("2021-10-30")))
	assert.True(t, c.IsBusinessDay(d("2021-10-31")))
}

func TestLoadYAML_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing id":     "holidays: [2021-01-01]\n",
		"bad date":       "id: x\nholidays: [2021-13-01]\n",
		"bad rrule":      "id: x\nrules:\n  - name: r\n    rrule: BYMONTH=1\n",
		"two kinds":      "id: x\nrules:\n  - name: r\n    month: 1\n    day: 1\n    rrule: FREQ=YEARLY\n",
		"bad observance": "id: x\nrules:\n  - name: r\n    month: 1\n    day: 1\n    observance: never\n",
		"unknown base":   "id: x\nbase: MARS\n",
		"unknown field":  "id: x\nholiday: [2021-01-01]\n",
		"bad weekend":    "id: x\nweekend: [funday]\n",
		"impossible day": "id: x\nrules:\n  - name: r\n    month: 2\n    day: 32\n",
	}
	for name, src := range cases {
		_, err := calendar.LoadYAML(strings.NewReader(src))
		assert.Error(t, err, name)
	}
}

const bankICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//holidays//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:h1\r\n" +
	"DTSTAMP:20200101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20210701\r\n" +
	"DTEND;VALUE=DATE:20210703\r\n" +
	"SUMMARY:Two day closure\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:h2\r\n" +
	"DTSTAMP:20200101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20211231\r\n" +
	"SUMMARY:Year end\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestLoadICS(t *testing.T) {
	t.Parallel()

	c, err := calendar.LoadICS("bank", strings.NewReader(bankICS))
	require.NoError(t, err)
	assert.Equal(t, calendar.CalendarID("BANK"), c.ID())

	assert.True(t, c.IsBusinessDay(d("2021-06-30")))
	assert.True(t, c.IsHoliday(d("2021-07-01")))
	assert.True(t, c.IsHoliday(d("2021-07-02")))
	assert.False(t, c.IsHoliday(d("2021-07-03")), "DTEND is exclusive")
	assert.True(t, c.IsHoliday(d("2021-12-31")))

	adj, err := c.Adjust(d("2021-07-01"), calendar.Following)
	require.NoError(t, err)
	assert.Equal(t, d("2021-07-05"), adj)
}

func TestRegisterCustomCalendar(t *testing.T) {
	t.Parallel()

	c, err := calendar.LoadYAML(strings.NewReader("id: registered-test\nholidays: [2021-03-15]\n"))
	require.NoError(t, err)
	require.NoError(t, calendar.Register(c))

	got, err := calendar.Get("REGISTERED-TEST")
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.Contains(t, calendar.IDs(), calendar.CalendarID("REGISTERED-TEST"))
}
