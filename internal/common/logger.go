package common

// Logger defines the narrow logging interface injected into the library
// packages under internal/. These messages go to the log sink only, never to
// the user's terminal.
type Logger interface {
	// Debug logs a diagnostic message
	Debug(format string, args ...interface{})

	// Info logs an informational message
	Info(format string, args ...interface{})

	// Warning logs a warning message
	Warning(format string, args ...interface{})

	// Error logs an error message
	Error(format string, args ...interface{})
}

// NopLogger discards every message. Packages fall back to it when no logger
// is injected.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{})   {}
func (NopLogger) Info(string, ...interface{})    {}
func (NopLogger) Warning(string, ...interface{}) {}
func (NopLogger) Error(string, ...interface{})   {}
