// Package errors provides error handling utilities for scriptkit.
//
// This package implements the sentinel errors and typed errors shared by the
// scriptkit packages. It keeps compatibility with the standard library errors
// package so callers can branch with errors.Is and errors.As instead of
// parsing message strings.
//
// # Features
//
//   - Sentinel errors for every expected failure kind (lock contention,
//     command failure, missing config, ...)
//   - Typed errors carrying context (LockError, CommandError, ConfigError)
//   - ExitError to carry a process exit code up to main
//   - Error wrapping with context
//
// # Usage
//
// Branching on lock contention:
//
//	l, err := lock.Acquire("nightly-report")
//	if errors.Is(err, errors.ErrLockUnavailable) {
//	    // another instance is already running
//	    return nil
//	}
//
// Choosing an exit code:
//
//	return errors.WithExitCode(err, 2)
//
// # Error Wrapping
//
// The package uses standard error wrapping conventions, allowing errors to be
// unwrapped and inspected using errors.Is and errors.As.
//
// # Thread Safety
//
// All types and functions in this package are safe for concurrent use
// by multiple goroutines.
package errors
