package config

// Config holds schedule generation limits.
type Config struct {
	// MaxDates is the maximum number of dates a single schedule may hold,
	// including the previous coupon date (BACKWARD) or the literal end date
	// (FORWARD). It also bounds the stepping loop when inputs are far apart.
	// 1201 supports 100Y with monthly frequency in either direction.
	MaxDates int
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	MaxDates: 1201,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration. Non-positive limits fall back
// to the defaults.
func SetConfig(c Config) {
	if c.MaxDates <= 0 {
		c.MaxDates = DefaultConfig.MaxDates
	}
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}
