// Package board converts drag-and-drop commands into assignment records:
// placing backlog items and work packages on a technician/day slot,
// moving bars across the board, and removing them. Durations come from
// the package catalog or the service size configuration, start hours
// from the drop position or auto-stacking behind the day's last
// assignment.
package board
