// Package backlog decides which machines need an unscheduled maintenance
// visit. It feeds the board's tray as well as the dispatcher task list.
package backlog
