// Package logging provides a small structured-logging abstraction so the
// rest of the application is not coupled to a specific logging framework.
package logging

// Logger is the structured logging interface used throughout the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached.
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached.
	WithField(key string, value interface{}) Logger

	// Fatal logs a fatal-level message and exits the program.
	Fatal(msg string, fields ...Field)
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

// Standardized field names so log output stays easy to filter.
const (
	FieldSource = "source"
	FieldCount  = "count"
	FieldLine   = "line"
	FieldPeriod = "period"
	FieldReason = "reason"
	FieldFile   = "file_path"
)
