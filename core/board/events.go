package board

import "github.com/fieldops/planboard/core/model"

// EventKind names a board mutation.
type EventKind string

const (
	EventPlaced  EventKind = "placed"
	EventMoved   EventKind = "moved"
	EventRemoved EventKind = "removed"
)

// Event is published on the event bus after every successful board
// mutation. Consumers (metrics, technician notifications) must not block.
type Event struct {
	Kind       EventKind        `json:"kind"`
	Assignment model.Assignment `json:"assignment"`
}
