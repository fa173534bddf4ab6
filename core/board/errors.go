package board

import "errors"

var (
	// ErrNotFound is returned when a referenced assignment or technician
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnknownTarget is returned when a placement references neither a
	// stored asset nor a catalog package.
	ErrUnknownTarget = errors.New("unknown placement target")

	// ErrSlotConflict is returned from Place and Move when overlap
	// enforcement is enabled and the requested interval intersects an
	// existing assignment of the same technician and day.
	ErrSlotConflict = errors.New("slot conflict")
)
