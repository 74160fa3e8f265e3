package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/fischedule/utils"
)

// RuleDefinition is the YAML form of a Rule.
type RuleDefinition struct {
	Name       string `yaml:"name"`
	Month      int    `yaml:"month,omitempty"`
	Day        int    `yaml:"day,omitempty"`
	RRule      string `yaml:"rrule,omitempty"`
	Observance string `yaml:"observance,omitempty"`
	From       int    `yaml:"from,omitempty"`
	To         int    `yaml:"to,omitempty"`
}

// Definition is the YAML form of a custom calendar.
//
//	id: ACME
//	base: TARGET
//	weekend: [SAT, SUN]
//	holidays: [2021-03-15]
//	rules:
//	  - name: Founders Day
//	    month: 6
//	    day: 1
//	    observance: nearest
//	  - name: Harvest Friday
//	    rrule: FREQ=YEARLY;BYMONTH=10;BYDAY=+2FR
type Definition struct {
	ID       string           `yaml:"id"`
	Base     string           `yaml:"base,omitempty"`
	Weekend  []string         `yaml:"weekend,omitempty"`
	Holidays []string         `yaml:"holidays,omitempty"`
	Rules    []RuleDefinition `yaml:"rules,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"SUN": time.Sunday, "MON": time.Monday, "TUE": time.Tuesday, "WED": time.Wednesday,
	"THU": time.Thursday, "FRI": time.Friday, "SAT": time.Saturday,
}

func parseWeekday(s string) (time.Weekday, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if len(key) > 3 {
		key = key[:3]
	}
	wd, ok := weekdayNames[key]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return wd, nil
}

// Build turns the definition into a Calendar. Rules of the base calendar, if
// any, are evaluated before the definition's own rules.
func (s Definition) Build() (*Calendar, error) {
	var rules []Rule
	var dates []time.Time
	var weekend []time.Weekday

	if strings.TrimSpace(s.Base) != "" {
		base, err := Get(CalendarID(strings.ToUpper(strings.TrimSpace(s.Base))))
		if err != nil {
			return nil, fmt.Errorf("calendar %s: base: %w", s.ID, err)
		}
		rules = append(rules, base.rules...)
		for key := range base.dates {
			dates = append(dates, utils.DateParser(key))
		}
		for wd := range base.weekend {
			weekend = append(weekend, wd)
		}
		if weekend == nil {
			weekend = []time.Weekday{}
		}
	}
	if s.Weekend != nil {
		weekend = make([]time.Weekday, 0, len(s.Weekend))
		for _, name := range s.Weekend {
			wd, err := parseWeekday(name)
			if err != nil {
				return nil, fmt.Errorf("calendar %s: %w", s.ID, err)
			}
			weekend = append(weekend, wd)
		}
	}
	for _, raw := range s.Holidays {
		d, err := utils.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("calendar %s: holiday: %w", s.ID, err)
		}
		dates = append(dates, d)
	}
	for _, rs := range s.Rules {
		rules = append(rules, Rule{
			Name:       rs.Name,
			Month:      time.Month(rs.Month),
			Day:        rs.Day,
			RRule:      rs.RRule,
			Observance: Observance(strings.ToLower(strings.TrimSpace(rs.Observance))),
			FromYear:   rs.From,
			ToYear:     rs.To,
		})
	}
	return New(CalendarID(s.ID), weekend, rules, dates)
}

// LoadYAML reads a calendar Definition from r and builds it. The calendar is not registered.
func LoadYAML(r io.Reader) (*Calendar, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("calendar.LoadYAML: %w", err)
	}
	return def.Build()
}

// LoadICS builds a weekend calendar whose holidays are the start dates of
// every VEVENT in the iCalendar stream. Multi-day all-day events mark every
// day up to, but excluding, DTEND.
func LoadICS(id CalendarID, r io.Reader) (*Calendar, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("calendar.LoadICS: %w", err)
	}
	var dates []time.Time
	for _, ev := range cal.Events() {
		start, err := ev.GetAllDayStartAt()
		if err != nil {
			return nil, fmt.Errorf("calendar.LoadICS: event %q: %w", eventUID(ev), err)
		}
		start = utils.Date(start.Year(), start.Month(), start.Day())
		dates = append(dates, start)

		end, err := ev.GetAllDayEndAt()
		if err != nil {
			continue
		}
		end = utils.Date(end.Year(), end.Month(), end.Day())
		for d := start.AddDate(0, 0, 1); d.Before(end); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
	}
	return New(id, nil, nil, dates)
}

func eventUID(ev *ical.VEvent) string {
	if p := ev.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		return p.Value
	}
	return ""
}
