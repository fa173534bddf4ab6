package board

import (
	"sync"
	"time"

	"github.com/fieldops/planboard/core/model"
)

// Origin says where a dragged item was picked up.
type Origin string

const (
	OriginTray  Origin = "tray"  // backlog item or package from the side tray
	OriginBoard Origin = "board" // existing assignment bar
)

// PickUp is the immutable payload captured when a drag starts. For tray
// items ID is the asset or package id; for board items it is the
// assignment id.
type PickUp struct {
	ID        string
	IsPackage bool
	Origin    Origin
}

// Slot is the drop coordinate on the board. HourSet marks an explicit
// vertical drop position on the timeline.
type Slot struct {
	TechnicianID string
	Date         time.Time
	Hour         float64
	HourSet      bool
}

// Gesture models the two-phase drag protocol: Begin captures a payload,
// a single terminal drop resolves to exactly one Place or Move. A drop
// with no pending payload is a no-op, and abandoning the gesture mutates
// nothing.
type Gesture struct {
	mu      sync.Mutex
	engine  *Engine
	pending *PickUp
}

// NewGesture creates a gesture coordinator bound to a board engine.
func NewGesture(engine *Engine) *Gesture {
	return &Gesture{engine: engine}
}

// Begin captures the drag payload, replacing any earlier unfinished one.
func (g *Gesture) Begin(p PickUp) {
	g.mu.Lock()
	g.pending = &p
	g.mu.Unlock()
}

// DropOnSlot terminates the gesture on a technician/day slot. It returns
// the resulting assignment and ok=true when a mutation happened; a drop
// without a matching pick-up returns ok=false and no error.
func (g *Gesture) DropOnSlot(s Slot) (model.Assignment, bool, error) {
	p := g.take()
	if p == nil {
		return model.Assignment{}, false, nil
	}
	if p.Origin == OriginBoard {
		a, err := g.engine.Move(MoveCommand{
			AssignmentID: p.ID,
			TechnicianID: s.TechnicianID,
			Date:         s.Date,
			StartHour:    s.Hour,
			StartHourSet: s.HourSet,
		})
		return a, err == nil, err
	}
	a, err := g.engine.Place(PlaceCommand{
		TargetID:     p.ID,
		IsPackage:    p.IsPackage,
		TechnicianID: s.TechnicianID,
		Date:         s.Date,
		StartHour:    s.Hour,
		StartHourSet: s.HourSet,
	})
	return a, err == nil, err
}

// DropOnTray terminates the gesture over the backlog tray. Only bars
// picked up from the board are removed; tray items dropped back are a
// no-op.
func (g *Gesture) DropOnTray() bool {
	p := g.take()
	if p == nil || p.Origin != OriginBoard {
		return false
	}
	g.engine.Remove(p.ID)
	return true
}

// Abandon discards the pending payload without touching any store.
func (g *Gesture) Abandon() {
	g.mu.Lock()
	g.pending = nil
	g.mu.Unlock()
}

func (g *Gesture) take() *PickUp {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.pending
	g.pending = nil
	return p
}
