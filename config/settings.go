package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults are the schedule conventions applied to requests that leave a
// field empty. Values use the same spelling as request files.
type Defaults struct {
	Frequency    string `yaml:"frequency" json:"frequency"`
	Calendar     string `yaml:"calendar" json:"calendar"`
	BusDayAdjust string `yaml:"bus_day_adjust" json:"bus_day_adjust"`
	DateGenRule  string `yaml:"date_gen_rule" json:"date_gen_rule"`
	Strategy     string `yaml:"strategy" json:"strategy"`
	DayCount     string `yaml:"day_count" json:"day_count"`
}

// Settings is the CLI configuration file.
type Settings struct {
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat selects "console" (human readable) or "json" output on stderr.
	LogFormat string `yaml:"log_format" json:"log_format"`

	// MaxDates overrides Config.MaxDates when positive.
	MaxDates int `yaml:"max_dates" json:"max_dates"`

	// Calendars lists custom calendar files (.yaml/.yml or .ics) registered
	// before requests are processed.
	Calendars []string `yaml:"calendars" json:"calendars"`

	Defaults Defaults `yaml:"defaults" json:"defaults"`
}

// DefaultSettings returns an in-memory default configuration.
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:  "info",
		LogFormat: "console",
		MaxDates:  DefaultConfig.MaxDates,
		Calendars: []string{},
		Defaults: Defaults{
			Frequency:    "ANNUAL",
			Calendar:     "WEEKEND",
			BusDayAdjust: "FOLLOWING",
			DateGenRule:  "BACKWARD",
			Strategy:     "ADJUST_AFTER_STEP",
			DayCount:     "ACT/365F",
		},
	}
}

// Normalize fills in missing/zero values so that partially-filled files
// still behave like the defaults.
func (s *Settings) Normalize() {
	def := DefaultSettings()
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if s.LogLevel == "" {
		s.LogLevel = def.LogLevel
	}
	s.LogFormat = strings.ToLower(strings.TrimSpace(s.LogFormat))
	switch s.LogFormat {
	case "console", "json":
	default:
		s.LogFormat = def.LogFormat
	}
	if s.MaxDates <= 0 {
		s.MaxDates = def.MaxDates
	}
	if s.Calendars == nil {
		s.Calendars = []string{}
	}
	fill := func(dst *string, v string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = v
		}
	}
	fill(&s.Defaults.Frequency, def.Defaults.Frequency)
	fill(&s.Defaults.Calendar, def.Defaults.Calendar)
	fill(&s.Defaults.BusDayAdjust, def.Defaults.BusDayAdjust)
	fill(&s.Defaults.DateGenRule, def.Defaults.DateGenRule)
	fill(&s.Defaults.Strategy, def.Defaults.Strategy)
	fill(&s.Defaults.DayCount, def.Defaults.DayCount)
}

// Config returns the generator limits carried by the settings.
func (s *Settings) Config() Config {
	return Config{MaxDates: s.MaxDates}
}

// Load reads settings from a YAML file. An empty path yields the defaults.
func Load(path string) (*Settings, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultSettings(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: %s does not exist", path)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	s := &Settings{}
	if err := yaml.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	s.Normalize()
	return s, nil
}
