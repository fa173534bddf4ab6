package report

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/fieldops/planboard/core/model"
)

// Utilization summarizes one technician's load over a date range.
type Utilization struct {
	TechnicianID   string  `json:"technician_id"`
	Name           string  `json:"name"`
	ScheduledHours float64 `json:"scheduled_hours"`
	CapacityHours  float64 `json:"capacity_hours"`
	Load           float64 `json:"load"`
}

// Summary is the fleet-wide utilization report shown on the reporting
// view.
type Summary struct {
	From          time.Time     `json:"from"`
	To            time.Time     `json:"to"`
	PerTechnician []Utilization `json:"per_technician"`
	MeanLoad      float64       `json:"mean_load"`
	StdDevLoad    float64       `json:"std_dev_load"`
}

// Utilize computes scheduled hours against capacity for every technician
// over [from, to]. Capacity counts MaxHours per weekday in the range;
// weekends carry no capacity. Load is scheduled over capacity, zero when
// there is no capacity.
func Utilize(technicians []model.Technician, assignments []model.Assignment, from, to time.Time) Summary {
	from, to = model.Day(from), model.Day(to)
	workdays := countWeekdays(from, to)

	scheduled := make(map[string]float64, len(technicians))
	for _, a := range assignments {
		d := model.Day(a.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		scheduled[a.TechnicianID] += a.Duration
	}

	s := Summary{From: from, To: to}
	loads := make([]float64, 0, len(technicians))
	for _, t := range technicians {
		u := Utilization{
			TechnicianID:   t.ID,
			Name:           t.Name,
			ScheduledHours: scheduled[t.ID],
			CapacityHours:  t.MaxHours * float64(workdays),
		}
		if u.CapacityHours > 0 {
			u.Load = u.ScheduledHours / u.CapacityHours
		}
		loads = append(loads, u.Load)
		s.PerTechnician = append(s.PerTechnician, u)
	}
	if len(loads) > 0 {
		s.MeanLoad = stat.Mean(loads, nil)
	}
	if len(loads) > 1 {
		s.StdDevLoad = stat.StdDev(loads, nil)
	}
	return s
}

func countWeekdays(from, to time.Time) int {
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}
