package model

import "time"

// AssignmentStatus is the lifecycle state of a scheduled visit.
// The only modeled transition is planned -> completed; completed is terminal.
type AssignmentStatus string

const (
	StatusPlanned   AssignmentStatus = "planned"
	StatusCompleted AssignmentStatus = "completed"
)

// Assignment binds a visit target to one technician, one date and one
// start hour. TargetID references either an asset or, when IsPackage is
// set, a work package from the catalog. Date is day-granular; the board
// normalizes it to UTC midnight.
type Assignment struct {
	ID           string           `json:"id"`
	TargetID     string           `json:"target_id"`
	IsPackage    bool             `json:"is_package,omitempty"`
	CustomName   string           `json:"custom_name,omitempty"`
	TechnicianID string           `json:"technician_id"`
	Date         time.Time        `json:"date"`
	Duration     float64          `json:"duration"`
	StartHour    float64          `json:"start_hour"`
	Status       AssignmentStatus `json:"status"`
}

// End returns the hour the assignment finishes.
func (a Assignment) End() float64 { return a.StartHour + a.Duration }

// Overlaps reports whether two assignments occupy intersecting intervals
// on the same technician and day.
func (a Assignment) Overlaps(b Assignment) bool {
	if a.TechnicianID != b.TechnicianID || !a.Date.Equal(b.Date) {
		return false
	}
	return a.StartHour < b.End() && b.StartHour < a.End()
}

// WorkPackage is a reusable, asset-independent duration block (travel,
// paperwork) that can be scheduled like a visit.
type WorkPackage struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
}

// ServiceConfig maps a machine's service size to a visit length in hours.
type ServiceConfig struct {
	S float64 `json:"s"`
	M float64 `json:"m"`
	L float64 `json:"l"`
}

// SetDefaults fills the standard visit lengths: 2h small, 4h medium,
// 8h large.
func (c *ServiceConfig) SetDefaults() {
	if c.S == 0 {
		c.S = 2
	}
	if c.M == 0 {
		c.M = 4
	}
	if c.L == 0 {
		c.L = 8
	}
}

// DurationFor resolves the visit duration for a service size. Unknown or
// empty sizes fall back to M.
func (c ServiceConfig) DurationFor(size ServiceSize) float64 {
	switch size {
	case SizeS:
		return c.S
	case SizeL:
		return c.L
	default:
		return c.M
	}
}

// Day truncates t to UTC midnight; the board and backlog compare dates at
// day granularity only.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
