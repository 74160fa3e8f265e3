package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a schedule input is malformed or
	// outside its enumeration.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotReady is returned when dates are requested before generation.
	ErrNotReady = errors.New("schedule dates have not been generated")

	// ErrTooManyDates is returned when generation exceeds config.Config.MaxDates.
	ErrTooManyDates = errors.New("schedule exceeds maximum number of dates")
)

// ArgumentError names the offending input. It matches ErrInvalidArgument and,
// when set, the underlying cause.
type ArgumentError struct {
	Field  string
	Value  any
	Reason string
	Err    error
}

func (e *ArgumentError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", ErrInvalidArgument, e.Field, describeValue(e.Value))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ArgumentError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidArgument}
	}
	return []error{ErrInvalidArgument, e.Err}
}
