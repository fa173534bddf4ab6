package store

import (
	"errors"
	"time"

	"github.com/fieldops/planboard/core/model"
)

// ErrTechnicianAssigned rejects deleting a technician that still has
// assignments on the board.
var ErrTechnicianAssigned = errors.New("technician still has assignments")

// AssetStore exposes the asset hierarchy. All returns the assets in
// insertion order; the backlog and hierarchy engines rely on that order
// being stable.
type AssetStore interface {
	All() []model.Asset
	Get(id string) (model.Asset, bool)
	Put(a model.Asset)
}

// TechnicianStore is the technician registry.
type TechnicianStore interface {
	All() []model.Technician
	Get(id string) (model.Technician, bool)
	Put(t model.Technician)
	Delete(id string) error
}

// PackageStore is the read-mostly work package catalog.
type PackageStore interface {
	All() []model.WorkPackage
	Get(id string) (model.WorkPackage, bool)
	Put(p model.WorkPackage)
}

// AssignmentStore holds the scheduling units. The board engine is the
// only legitimate mutator besides administrative deletion.
type AssignmentStore interface {
	All() []model.Assignment
	Get(id string) (model.Assignment, bool)
	Put(a model.Assignment)
	Delete(id string)
	ForDay(technicianID string, date time.Time) []model.Assignment
}

// State bundles the four stores the engines operate on. The surrounding
// application serializes mutating calls; the engines take State as an
// exclusive snapshot for the duration of one call.
type State struct {
	Assets      AssetStore
	Technicians TechnicianStore
	Packages    PackageStore
	Assignments AssignmentStore
}

// DeleteTechnician removes a technician from the registry. It fails with
// ErrTechnicianAssigned while any assignment still references the
// technician, so the board never holds dangling references.
func (s State) DeleteTechnician(id string) error {
	for _, a := range s.Assignments.All() {
		if a.TechnicianID == id {
			return ErrTechnicianAssigned
		}
	}
	return s.Technicians.Delete(id)
}
