// Package calendar provides the ISO week arithmetic and national holiday
// tables the planning board uses for navigation and risk highlighting.
// All functions are pure; no state, no I/O.
package calendar
