package board

// Config carries the board's tunables.
type Config struct {
	// EnforceNonOverlap rejects placements and moves that would overlap
	// an existing assignment on the same technician and day. The
	// reference board allows overlapping bars, so this is off by
	// default.
	EnforceNonOverlap bool `json:"enforce_non_overlap"`

	// DefaultStartHour is used when a drop carries no vertical position
	// and the day is still empty. Also the fallback start hour on moves.
	DefaultStartHour float64 `json:"default_start_hour"`

	// DefaultDayStart and DefaultDayEnd size the timeline grid when the
	// filtered technician set is empty.
	DefaultDayStart float64 `json:"default_day_start"`
	DefaultDayEnd   float64 `json:"default_day_end"`
}

// SetDefaults fills the zero values with the board defaults.
func (c *Config) SetDefaults() {
	if c.DefaultStartHour == 0 {
		c.DefaultStartHour = 8
	}
	if c.DefaultDayStart == 0 {
		c.DefaultDayStart = 8
	}
	if c.DefaultDayEnd == 0 {
		c.DefaultDayEnd = 18
	}
}
