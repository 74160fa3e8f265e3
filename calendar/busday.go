package calendar

import (
	"fmt"
	"strings"
)

// BusDayAdjustType selects how a non-business day is moved onto a business day.
type BusDayAdjustType string

const (
	NoAdjustment      BusDayAdjustType = "NONE"
	Following         BusDayAdjustType = "FOLLOWING"
	ModifiedFollowing BusDayAdjustType = "MODIFIED_FOLLOWING"
	Preceding         BusDayAdjustType = "PRECEDING"
	ModifiedPreceding BusDayAdjustType = "MODIFIED_PRECEDING"
)

// Validate rejects values outside the closed set above.
func (r BusDayAdjustType) Validate() error {
	switch r {
	case NoAdjustment, Following, ModifiedFollowing, Preceding, ModifiedPreceding:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAdjustment, string(r))
	}
}

// ParseBusDayAdjustType accepts the canonical names case-insensitively,
// with either '_' or '-' as the separator.
func ParseBusDayAdjustType(s string) (BusDayAdjustType, error) {
	r := BusDayAdjustType(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_"))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}
