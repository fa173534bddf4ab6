package logger

import corelogger "github.com/fieldops/planboard/core/logger"

// Logger mirrors the core logger interface for convenience.
type Logger = corelogger.Logger

// NopLogger re-exports the core no-op implementation.
type NopLogger = corelogger.NopLogger

// New returns a Logger for the given component. The environment is
// detected via the APP_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
