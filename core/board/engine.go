package board

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fieldops/planboard/core/logger"
	"github.com/fieldops/planboard/core/model"
	"github.com/fieldops/planboard/core/store"
	"github.com/fieldops/planboard/internal/eventbus"
)

// Engine turns place/move/remove commands into assignment records. It
// derives durations from the work package catalog or the service size
// configuration and start hours from the drop position or auto-stacking.
// All operations are synchronous transforms over the stores it is given;
// the caller serializes mutating calls.
type Engine struct {
	cfg     Config
	service model.ServiceConfig
	state   store.State
	log     logger.Logger
	bus     *eventbus.TypedBus[Event]
	newID   func() string
}

// New creates a board engine. log and bus may be nil when no consumer
// cares about board events.
func New(cfg Config, service model.ServiceConfig, state store.State, log logger.Logger, bus *eventbus.TypedBus[Event]) *Engine {
	cfg.SetDefaults()
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Engine{
		cfg:     cfg,
		service: service,
		state:   state,
		log:     log,
		bus:     bus,
		newID:   uuid.NewString,
	}
}

// PlaceCommand describes dropping a backlog item or a work package onto
// a technician/day slot. StartHourSet distinguishes an explicit vertical
// drop position from an auto-stacked placement.
type PlaceCommand struct {
	TargetID     string
	IsPackage    bool
	TechnicianID string
	Date         time.Time
	StartHour    float64
	StartHourSet bool
}

// MoveCommand retargets an existing assignment to a new technician, date
// and start hour. Duration and target are preserved. Without an explicit
// hour the assignment lands at the default start hour; the new
// technician's working window is deliberately not consulted, a moved
// assignment may render as off-hours.
type MoveCommand struct {
	AssignmentID string
	TechnicianID string
	Date         time.Time
	StartHour    float64
	StartHourSet bool
}

// Place creates a new planned assignment from cmd. It fails with
// ErrUnknownTarget when the target resolves to neither an asset nor a
// package, and with ErrNotFound when the technician is not registered.
func (e *Engine) Place(cmd PlaceCommand) (model.Assignment, error) {
	if _, ok := e.state.Technicians.Get(cmd.TechnicianID); !ok {
		return model.Assignment{}, fmt.Errorf("technician %q: %w", cmd.TechnicianID, ErrNotFound)
	}

	var duration float64
	var customName string
	if cmd.IsPackage {
		pkg, ok := e.state.Packages.Get(cmd.TargetID)
		if !ok {
			return model.Assignment{}, fmt.Errorf("package %q: %w", cmd.TargetID, ErrUnknownTarget)
		}
		duration = pkg.Duration
		customName = pkg.Name
	} else {
		asset, ok := e.state.Assets.Get(cmd.TargetID)
		if !ok {
			return model.Assignment{}, fmt.Errorf("asset %q: %w", cmd.TargetID, ErrUnknownTarget)
		}
		duration = e.service.DurationFor(asset.Size())
	}

	day := model.Day(cmd.Date)
	start := e.cfg.DefaultStartHour
	if cmd.StartHourSet {
		start = cmd.StartHour
	} else if existing := e.state.Assignments.ForDay(cmd.TechnicianID, day); len(existing) > 0 {
		sort.SliceStable(existing, func(i, j int) bool { return existing[i].StartHour < existing[j].StartHour })
		last := existing[len(existing)-1]
		start = last.StartHour + last.Duration
	}

	a := model.Assignment{
		ID:           e.newID(),
		TargetID:     cmd.TargetID,
		IsPackage:    cmd.IsPackage,
		CustomName:   customName,
		TechnicianID: cmd.TechnicianID,
		Date:         day,
		Duration:     duration,
		StartHour:    start,
		Status:       model.StatusPlanned,
	}
	if e.cfg.EnforceNonOverlap {
		if err := e.checkOverlap(a, ""); err != nil {
			return model.Assignment{}, err
		}
	}
	e.state.Assignments.Put(a)
	e.log.Debugf("placed %s on %s at %.1fh for %.1fh", a.TargetID, day.Format("2006-01-02"), a.StartHour, a.Duration)
	e.publish(Event{Kind: EventPlaced, Assignment: a})
	return a, nil
}

// Move mutates technician, date and start hour of an existing assignment.
func (e *Engine) Move(cmd MoveCommand) (model.Assignment, error) {
	a, ok := e.state.Assignments.Get(cmd.AssignmentID)
	if !ok {
		return model.Assignment{}, fmt.Errorf("assignment %q: %w", cmd.AssignmentID, ErrNotFound)
	}
	if _, ok := e.state.Technicians.Get(cmd.TechnicianID); !ok {
		return model.Assignment{}, fmt.Errorf("technician %q: %w", cmd.TechnicianID, ErrNotFound)
	}
	a.TechnicianID = cmd.TechnicianID
	a.Date = model.Day(cmd.Date)
	a.StartHour = e.cfg.DefaultStartHour
	if cmd.StartHourSet {
		a.StartHour = cmd.StartHour
	}
	if e.cfg.EnforceNonOverlap {
		if err := e.checkOverlap(a, a.ID); err != nil {
			return model.Assignment{}, err
		}
	}
	e.state.Assignments.Put(a)
	e.publish(Event{Kind: EventMoved, Assignment: a})
	return a, nil
}

// Remove deletes an assignment. Removing an absent id is a no-op:
// dragging a bar back to the tray may race a direct delete and must not
// fail.
func (e *Engine) Remove(id string) {
	a, ok := e.state.Assignments.Get(id)
	if !ok {
		return
	}
	e.state.Assignments.Delete(id)
	e.publish(Event{Kind: EventRemoved, Assignment: a})
}

// RouteFor returns the technician's assignments for a day ordered by
// start hour. This is a display ordering only; no travel computation
// happens here.
func (e *Engine) RouteFor(technicianID string, date time.Time) []model.Assignment {
	route := e.state.Assignments.ForDay(technicianID, date)
	sort.SliceStable(route, func(i, j int) bool { return route[i].StartHour < route[j].StartHour })
	return route
}

// DayWindow sizes the timeline grid for a technician set: the earliest
// work day start and the latest work day end. An empty set falls back to
// the configured defaults.
func (e *Engine) DayWindow(technicians []model.Technician) (minHour, maxHour float64) {
	if len(technicians) == 0 {
		return e.cfg.DefaultDayStart, e.cfg.DefaultDayEnd
	}
	minHour = technicians[0].WorkDayStart
	maxHour = technicians[0].WorkDayEnd
	for _, t := range technicians[1:] {
		if t.WorkDayStart < minHour {
			minHour = t.WorkDayStart
		}
		if t.WorkDayEnd > maxHour {
			maxHour = t.WorkDayEnd
		}
	}
	return minHour, maxHour
}

// checkOverlap rejects a candidate whose interval intersects any other
// assignment on the same technician and day. exclude skips the candidate
// itself on moves.
func (e *Engine) checkOverlap(candidate model.Assignment, exclude string) error {
	for _, other := range e.state.Assignments.ForDay(candidate.TechnicianID, candidate.Date) {
		if other.ID == exclude {
			continue
		}
		if candidate.Overlaps(other) {
			return fmt.Errorf("%.1fh-%.1fh collides with %s: %w",
				candidate.StartHour, candidate.End(), other.ID, ErrSlotConflict)
		}
	}
	return nil
}

func (e *Engine) publish(ev Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}
