package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Frequency is the number of coupon periods per year.
type Frequency int

const (
	Annual     Frequency = 1
	SemiAnnual Frequency = 2
	TriAnnual  Frequency = 3
	Quarterly  Frequency = 4
	Monthly    Frequency = 12
)

var frequencyNames = map[Frequency]string{
	Annual:     "ANNUAL",
	SemiAnnual: "SEMI_ANNUAL",
	TriAnnual:  "TRI_ANNUAL",
	Quarterly:  "QUARTERLY",
	Monthly:    "MONTHLY",
}

// PeriodsPerYear returns the raw period count.
func (f Frequency) PeriodsPerYear() int {
	return int(f)
}

// Months returns the length of one period in calendar months. The period
// count must be positive and divide 12 exactly.
func (f Frequency) Months() (int, error) {
	n := f.PeriodsPerYear()
	if n <= 0 || 12%n != 0 {
		return 0, &ArgumentError{Field: "Frequency", Value: n, Reason: "periods per year must be a positive divisor of 12"}
	}
	return 12 / n, nil
}

func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return "Frequency(" + strconv.Itoa(int(f)) + ")"
}

// ParseFrequency accepts a frequency name (ANNUAL, SEMI_ANNUAL, QUARTERLY, ...)
// or a periods-per-year integer.
func ParseFrequency(s string) (Frequency, error) {
	key := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
	for f, name := range frequencyNames {
		if name == key {
			return f, nil
		}
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, &ArgumentError{Field: "Frequency", Value: s, Reason: "unknown frequency"}
	}
	f := Frequency(n)
	if _, err := f.Months(); err != nil {
		return 0, err
	}
	return f, nil
}

// DateGenRule selects the stepping direction.
type DateGenRule string

const (
	// Backward steps from the end date toward the start date.
	Backward DateGenRule = "BACKWARD"
	// Forward steps from the start date toward the end date.
	Forward DateGenRule = "FORWARD"
)

func (r DateGenRule) validate() error {
	switch r {
	case Backward, Forward:
		return nil
	default:
		return &ArgumentError{Field: "DateGenRule", Value: string(r), Reason: "must be BACKWARD or FORWARD"}
	}
}

// ParseDateGenRule accepts BACKWARD or FORWARD in any case.
func ParseDateGenRule(s string) (DateGenRule, error) {
	r := DateGenRule(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Strategy selects when stepped dates are moved onto business days.
type Strategy string

const (
	// AdjustAfterStep steps on unadjusted dates and adjusts the whole
	// sequence on output.
	AdjustAfterStep Strategy = "ADJUST_AFTER_STEP"
	// AdjustBeforeStep adjusts every stepped date before it is used as the
	// base of the next step.
	AdjustBeforeStep Strategy = "ADJUST_BEFORE_STEP"
)

func (s Strategy) validate() error {
	switch s {
	case AdjustAfterStep, AdjustBeforeStep:
		return nil
	default:
		return &ArgumentError{Field: "Strategy", Value: string(s), Reason: "must be ADJUST_AFTER_STEP or ADJUST_BEFORE_STEP"}
	}
}

// ParseStrategy accepts the strategy names with '_' or '-' separators.
func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_"))
	if err := st.validate(); err != nil {
		return "", err
	}
	return st, nil
}

func describeValue(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	default:
		return fmt.Sprint(x)
	}
}
