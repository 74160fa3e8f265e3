package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/fischedule/calendar"
	"github.com/meenmo/fischedule/config"
	"github.com/meenmo/fischedule/schedule"
	"github.com/meenmo/fischedule/utils"
)

type scheduleInput struct {
	TaskID       string `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	StartDate    string `json:"start_date" yaml:"start_date"`
	EndDate      string `json:"end_date" yaml:"end_date"`
	Frequency    string `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Calendar     string `json:"calendar,omitempty" yaml:"calendar,omitempty"`
	BusDayAdjust string `json:"bus_day_adjust,omitempty" yaml:"bus_day_adjust,omitempty"`
	DateGenRule  string `json:"date_gen_rule,omitempty" yaml:"date_gen_rule,omitempty"`
	Strategy     string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	DayCount     string `json:"day_count,omitempty" yaml:"day_count,omitempty"`
}

// UnmarshalJSON accepts frequency as either a name or a periods-per-year number.
func (in *scheduleInput) UnmarshalJSON(b []byte) error {
	type plain scheduleInput
	var aux struct {
		plain
		Frequency json.RawMessage `json:"frequency,omitempty"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*in = scheduleInput(aux.plain)
	raw := bytes.TrimSpace(aux.Frequency)
	switch {
	case len(raw) == 0 || string(raw) == "null":
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &in.Frequency); err != nil {
			return err
		}
	default:
		in.Frequency = string(raw)
	}
	return nil
}

type periodJSON struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	Days         int    `json:"days"`
	YearFraction string `json:"year_fraction"`
}

type scheduleOutput struct {
	TaskID       string       `json:"task_id,omitempty"`
	StartDate    string       `json:"start_date,omitempty"`
	EndDate      string       `json:"end_date,omitempty"`
	Frequency    string       `json:"frequency,omitempty"`
	Calendar     string       `json:"calendar,omitempty"`
	BusDayAdjust string       `json:"bus_day_adjust,omitempty"`
	DateGenRule  string       `json:"date_gen_rule,omitempty"`
	Strategy     string       `json:"strategy,omitempty"`
	PCD          string       `json:"pcd,omitempty"`
	NCD          string       `json:"ncd,omitempty"`
	Dates        []string     `json:"dates,omitempty"`
	DayCount     string       `json:"day_count,omitempty"`
	Periods      []periodJSON `json:"periods,omitempty"`
	Error        string       `json:"error,omitempty"`
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// params resolves the request against the configured defaults.
func (in scheduleInput) params(def config.Defaults) (schedule.Params, error) {
	var p schedule.Params
	var err error

	if p.StartDate, err = utils.ParseDate(in.StartDate); err != nil {
		return p, fmt.Errorf("invalid start_date: %w", err)
	}
	if p.EndDate, err = utils.ParseDate(in.EndDate); err != nil {
		return p, fmt.Errorf("invalid end_date: %w", err)
	}
	if p.Frequency, err = schedule.ParseFrequency(orDefault(in.Frequency, def.Frequency)); err != nil {
		return p, err
	}
	p.Calendar = calendar.CalendarID(strings.ToUpper(strings.TrimSpace(orDefault(in.Calendar, def.Calendar))))
	if p.BusDayAdjust, err = calendar.ParseBusDayAdjustType(orDefault(in.BusDayAdjust, def.BusDayAdjust)); err != nil {
		return p, err
	}
	if p.DateGenRule, err = schedule.ParseDateGenRule(orDefault(in.DateGenRule, def.DateGenRule)); err != nil {
		return p, err
	}
	if p.Strategy, err = schedule.ParseStrategy(orDefault(in.Strategy, def.Strategy)); err != nil {
		return p, err
	}
	return p, nil
}

func process(in scheduleInput, def config.Defaults) (*schedule.Schedule, *scheduleOutput, error) {
	p, err := in.params(def)
	if err != nil {
		return nil, nil, err
	}
	s, err := schedule.New(p)
	if err != nil {
		return nil, nil, err
	}

	dc := utils.DayCount(strings.ToUpper(strings.TrimSpace(orDefault(in.DayCount, def.DayCount))))
	periods, err := s.Periods(dc)
	if err != nil {
		return nil, nil, err
	}
	dates, err := s.Flows()
	if err != nil {
		return nil, nil, err
	}

	out := &scheduleOutput{
		TaskID:       in.TaskID,
		StartDate:    s.StartDate().Format(utils.DateLayout),
		EndDate:      s.EndDate().Format(utils.DateLayout),
		Frequency:    s.Frequency().String(),
		Calendar:     string(s.Calendar()),
		BusDayAdjust: string(s.BusDayAdjust()),
		DateGenRule:  string(s.DateGenRule()),
		Strategy:     string(s.Strategy()),
		DayCount:     string(dc),
		Dates:        make([]string, 0, len(dates)),
		Periods:      make([]periodJSON, 0, len(periods)),
	}
	for _, d := range dates {
		out.Dates = append(out.Dates, d.Format(utils.DateLayout))
	}
	if pcd, err := s.PreviousCouponDate(); err == nil {
		out.PCD = pcd.Format(utils.DateLayout)
	}
	if ncd, err := s.NextCouponDate(); err == nil {
		out.NCD = ncd.Format(utils.DateLayout)
	}
	for _, pr := range periods {
		out.Periods = append(out.Periods, periodJSON{
			Start:        pr.Start.Format(utils.DateLayout),
			End:          pr.End.Format(utils.DateLayout),
			Days:         pr.Days,
			YearFraction: pr.YearFraction.StringFixed(10),
		})
	}
	return s, out, nil
}

// parseInputs accepts JSON (object or array) or YAML (mapping or sequence).
func parseInputs(raw []byte) ([]scheduleInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	switch trimmed[0] {
	case '[':
		var inputs []scheduleInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	case '{':
		var input scheduleInput
		if err := json.Unmarshal(trimmed, &input); err != nil {
			return nil, false, err
		}
		return []scheduleInput{input}, false, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, false, err
	}
	if len(doc.Content) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var inputs []scheduleInput
		if err := root.Decode(&inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input scheduleInput
	if err := root.Decode(&input); err != nil {
		return nil, false, err
	}
	return []scheduleInput{input}, false, nil
}
