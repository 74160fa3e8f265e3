package schedule

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/meenmo/fischedule/utils"
)

// eventLabel names the i-th date the same way the text report does.
func eventLabel(i int) string {
	switch i {
	case 0:
		return "PCD"
	case 1:
		return "NCD"
	default:
		return fmt.Sprintf("CPN %d", i)
	}
}

// ICalendar converts the schedule into an iCalendar document with one all-day
// event per date. stamp is written as DTSTAMP; a zero stamp uses the current time.
func (s *Schedule) ICalendar(name string, stamp time.Time) (*ical.Calendar, error) {
	dates, err := s.Flows()
	if err != nil {
		return nil, fmt.Errorf("ICalendar: %w", err)
	}
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("%s %s %s", s.frequency, s.startDate.Format(utils.DateLayout), s.endDate.Format(utils.DateLayout))
	}

	cal := ical.NewCalendarFor("fischedule")
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName(name)
	for i, d := range dates {
		uid := fmt.Sprintf("%s-%s-%03d@fischedule",
			s.startDate.Format("20060102"), s.endDate.Format("20060102"), i)
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(d)
		ev.SetAllDayEndAt(d.AddDate(0, 0, 1))
		ev.SetSummary(eventLabel(i))
	}
	return cal, nil
}

// WriteICS serializes the schedule as an iCalendar stream.
func (s *Schedule) WriteICS(w io.Writer, name string) error {
	cal, err := s.ICalendar(name, time.Time{})
	if err != nil {
		return err
	}
	return cal.SerializeTo(w)
}
