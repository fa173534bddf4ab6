package model

// Technician is a field worker that assignments can be scheduled on.
// WorkDayStart and WorkDayEnd are hours of day on a 24-hour scale;
// half hours are expressed as fractions (8.5 means 08:30).
type Technician struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Location     string  `json:"location"`
	MaxHours     float64 `json:"max_hours"`
	WorkDayStart float64 `json:"work_day_start"`
	WorkDayEnd   float64 `json:"work_day_end"`
}

// WorksAt reports whether hour falls inside the technician's working window.
func (t Technician) WorksAt(hour float64) bool {
	return hour >= t.WorkDayStart && hour < t.WorkDayEnd
}
