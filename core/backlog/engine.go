package backlog

import (
	"fmt"
	"time"

	"github.com/fieldops/planboard/core/calendar"
	"github.com/fieldops/planboard/core/model"
)

// Window is the planning horizon the dispatcher is currently looking at.
// Boundaries are day-granular: From is normalized to start of day, To to
// end of day.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the day of t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	d := model.Day(t)
	return !d.Before(model.Day(w.From)) && !d.After(model.Day(w.To))
}

// Engine computes which machines need an unscheduled visit. It operates
// on snapshots of the asset and assignment stores; callers pass now
// explicitly so results are reproducible.
type Engine struct {
	Assets      []model.Asset
	Assignments []model.Assignment

	// Reminder window: a machine surfaces as a task while its due date is
	// between OverdueDays overdue and HorizonDays out. Zero values fall
	// back to 10 and 30.
	OverdueDays int
	HorizonDays int
}

// Due returns the machines that need scheduling now, in stable store
// order. A machine is due when it has a due-triggering health status or a
// next service date, no non-package assignment on or after today, and its
// due date is either overdue or inside the window.
func (e Engine) Due(now time.Time, w Window) []model.Asset {
	today := model.Day(now)
	var out []model.Asset
	for _, a := range e.Assets {
		if a.Category != model.CategoryMachine {
			continue
		}
		due, hasDue := a.NextServiceDue()
		if !hasDue && !a.NeedsAttention() {
			continue
		}
		if e.hasFutureAssignment(a.ID, today) {
			continue
		}
		if !hasDue {
			// health-triggered, nothing to window against
			out = append(out, a)
			continue
		}
		if model.Day(due).Before(today) {
			// overdue machines surface regardless of the window
			out = append(out, a)
			continue
		}
		if w.Contains(due) {
			out = append(out, a)
		}
	}
	return out
}

// hasFutureAssignment reports whether the machine already has a visit on
// the board today or later. Completed past visits do not count.
func (e Engine) hasFutureAssignment(assetID string, today time.Time) bool {
	for _, a := range e.Assignments {
		if a.IsPackage || a.TargetID != assetID {
			continue
		}
		if !model.Day(a.Date).Before(today) {
			return true
		}
	}
	return false
}

// ReminderType classifies a task list entry.
type ReminderType string

const (
	ReminderOverdue  ReminderType = "warning"
	ReminderUpcoming ReminderType = "reminder"
	ReminderPlanning ReminderType = "planning"
	ReminderCapacity ReminderType = "info"
)

// Reminder is one entry of the dispatcher's task list.
type Reminder struct {
	ID           string       `json:"id"`
	Type         ReminderType `json:"type"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	RelatedID    string       `json:"related_id,omitempty"`
	DaysUntilDue int          `json:"days_until_due,omitempty"`
}

// Reminders builds the task list: one entry per machine whose due date is
// between OverdueDays overdue and HorizonDays out and that has no future
// assignment, plus one entry per technician with an empty board for the
// next working week.
func (e Engine) Reminders(now time.Time, technicians []model.Technician) []Reminder {
	overdue := e.OverdueDays
	if overdue == 0 {
		overdue = 10
	}
	horizon := e.HorizonDays
	if horizon == 0 {
		horizon = 30
	}
	today := model.Day(now)

	var list []Reminder
	for _, a := range e.Assets {
		if a.Category != model.CategoryMachine {
			continue
		}
		due, ok := a.NextServiceDue()
		if !ok {
			continue
		}
		days := int(model.Day(due).Sub(today).Hours() / 24)
		if days <= -overdue || days >= horizon {
			continue
		}
		if e.hasFutureAssignment(a.ID, today) {
			continue
		}
		r := Reminder{
			ID:           "rem_" + a.ID,
			RelatedID:    a.ID,
			DaysUntilDue: days,
		}
		if days < 0 {
			r.Type = ReminderOverdue
			r.Title = "Wartung überfällig"
			r.Description = fmt.Sprintf("%s ist seit %d Tagen überfällig", a.Name, -days)
		} else {
			r.Type = ReminderUpcoming
			r.Title = "Wartungserinnerung"
			r.Description = fmt.Sprintf("%s ist in %d Tagen fällig", a.Name, days)
		}
		list = append(list, r)
	}

	// Technicians with nothing planned for next Monday through Friday.
	weekStart := model.Day(calendar.AddWeeks(calendar.MondayOf(now), 1))
	weekEnd := weekStart.AddDate(0, 0, 4)
	for _, t := range technicians {
		if e.hasAssignmentsBetween(t.ID, weekStart, weekEnd) {
			continue
		}
		list = append(list, Reminder{
			ID:          "plan_" + t.ID,
			Type:        ReminderPlanning,
			Title:       "Planung erforderlich",
			Description: fmt.Sprintf("%s hat nächste Woche keine Einsätze", t.Name),
			RelatedID:   t.ID,
		})
	}

	// Technicians with more than four spare hours on the upcoming Friday.
	friday := today.AddDate(0, 0, (5+7-int(today.Weekday()))%7)
	for _, t := range technicians {
		var used float64
		for _, a := range e.Assignments {
			if a.TechnicianID == t.ID && model.Day(a.Date).Equal(friday) {
				used += a.Duration
			}
		}
		left := (t.WorkDayEnd - t.WorkDayStart) - used
		if left <= 4 {
			continue
		}
		list = append(list, Reminder{
			ID:          "cap_" + t.ID,
			Type:        ReminderCapacity,
			Title:       "Freie Kapazität",
			Description: fmt.Sprintf("%s hat am Freitag (%s) noch %g Stunden frei", t.Name, friday.Format(calendar.DateFormat), left),
			RelatedID:   t.ID,
		})
	}
	return list
}

func (e Engine) hasAssignmentsBetween(technicianID string, from, to time.Time) bool {
	for _, a := range e.Assignments {
		if a.TechnicianID != technicianID {
			continue
		}
		d := model.Day(a.Date)
		if !d.Before(from) && !d.After(to) {
			return true
		}
	}
	return false
}
