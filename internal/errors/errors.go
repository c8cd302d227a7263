package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors that can be used with errors.Is() for error type checking
var (
	// ErrLockUnavailable indicates another instance already holds the named lock
	ErrLockUnavailable = errors.New("already in use")

	// ErrLockFailed indicates the OS refused the lock for a reason other than contention
	ErrLockFailed = errors.New("failed to acquire lock")

	// ErrLockNotHeld indicates Release was called on a lock that is not held
	ErrLockNotHeld = errors.New("lock is not held")

	// ErrInvalidLockName indicates a lock name the backend cannot represent
	ErrInvalidLockName = errors.New("invalid lock name")

	// ErrCommandFailed indicates a shell command could not be run or exited non-zero
	ErrCommandFailed = errors.New("command failed")

	// ErrInvalidConfiguration indicates an invalid or conflicting user configuration
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrConfigNotFound indicates the YAML config file does not exist
	ErrConfigNotFound = errors.New("config file not found")

	// ErrUnexpectedPingOutput indicates ping produced output we could not classify
	ErrUnexpectedPingOutput = errors.New("unexpected results from ping")

	// ErrMailFailed indicates an email could not be built or delivered
	ErrMailFailed = errors.New("failed to send email")

	// ErrNotifyFailed indicates a direct message could not be delivered
	ErrNotifyFailed = errors.New("failed to send notification")
)

// New creates a new error with the given message.
// This is a convenience function that wraps errors.New.
func New(message string) error {
	return errors.New(message)
}

// Errorf creates a new formatted error.
// This is a convenience function that wraps fmt.Errorf.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Wrap wraps an error with a message for better context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message for better context.
func Wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether target is in err's chain.
// This is a convenience function that wraps errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience function that wraps errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err, if any.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// LockError represents a failure to claim or free a named single-instance lock.
// It carries the lock name, the backend that was used and, when known, the PID
// and process name of the current holder.
type LockError struct {
	Name    string
	Backend string
	PID     int
	Holder  string
	Err     error
}

// Error implements the error interface with details about the lock and its holder.
func (e *LockError) Error() string {
	switch {
	case e.PID > 0 && e.Holder != "":
		return fmt.Sprintf("lock %s (held by %s, PID: %d): %v", e.Name, e.Holder, e.PID, e.Err)
	case e.PID > 0:
		return fmt.Sprintf("lock %s (PID: %d): %v", e.Name, e.PID, e.Err)
	default:
		return fmt.Sprintf("lock %s: %v", e.Name, e.Err)
	}
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *LockError) Unwrap() error {
	return e.Err
}

// NewLockError creates a new LockError with the given parameters.
func NewLockError(name, backend string, pid int, err error) *LockError {
	return &LockError{
		Name:    name,
		Backend: backend,
		PID:     pid,
		Err:     err,
	}
}

// CommandError represents a shell command that could not be started or that
// exited with a non-zero status.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

// Error implements the error interface with a detailed, user-friendly error message.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q failed", e.Command)
	if e.ExitCode != 0 {
		msg = fmt.Sprintf("%s with exit code %d", msg, e.ExitCode)
	}
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError with the given parameters.
func NewCommandError(command string, exitCode int, stderr string, err error) *CommandError {
	return &CommandError{
		Command:  command,
		ExitCode: exitCode,
		Stderr:   stderr,
		Err:      err,
	}
}

// ConfigError represents an error in the application configuration.
// It includes the parameter name, its value if available, and the underlying error.
type ConfigError struct {
	Parameter string
	Value     interface{}
	Err       error
}

// Error implements the error interface with details about the invalid configuration.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("configuration error for %s = %v: %v", e.Parameter, e.Value, e.Err)
	}
	return fmt.Sprintf("configuration error for %s: %v", e.Parameter, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError with the given parameters.
func NewConfigError(parameter string, value interface{}, err error) *ConfigError {
	return &ConfigError{
		Parameter: parameter,
		Value:     value,
		Err:       err,
	}
}

// ExitError pairs an error with the process exit code a script should use
// when the error reaches main.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the message of the wrapped error.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// WithExitCode wraps err so that main exits with code. A nil err stays nil.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode returns the exit code carried by err, 0 for nil and 1 when err
// carries no explicit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}
