package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/bashhack/scriptkit/internal/common"
)

// Mode selects where log records go. The numeric values match the --debug
// flag of the scripts built on this package.
type Mode int

const (
	// ModeOff disables the log sink entirely.
	ModeOff Mode = 0
	// ModeStderr writes log records to stderr.
	ModeStderr Mode = 1
	// ModeFile writes log records to the log file at info level.
	ModeFile Mode = 2
	// ModeFileDebug writes log records to the log file at debug level.
	ModeFileDebug Mode = 9
)

// TimeFormat is the timestamp layout used for every log record.
const TimeFormat = "01/02/2006 15:04:05"

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeOff, ModeStderr, ModeFile, ModeFileDebug:
		return true
	}
	return false
}

// Logger defines the logging interface used by the scriptkit command.
// It embeds the sink-only methods of common.Logger and adds user-facing
// messages which are always written to stdout.
type Logger interface {
	common.Logger

	// InfoToUser logs an informational message intended for users.
	// These messages are always shown to users and also reach the log sink.
	InfoToUser(format string, args ...interface{})

	// WarningToUser logs a warning message intended for users.
	WarningToUser(format string, args ...interface{})

	// Success logs a success message to the user.
	Success(format string, args ...interface{})

	// StatusMessage prints a plain status line to the user. It is not logged.
	StatusMessage(format string, args ...interface{})

	// Close flushes and closes the log file, if any.
	Close() error
}

// DefaultLogger implements Logger on top of zerolog.
type DefaultLogger struct {
	mu      sync.Mutex
	zl      zerolog.Logger
	mode    Mode
	runID   string
	logFile string
	stdout  io.Writer
	stderr  io.Writer
	file    *os.File
}

// New creates a logger writing user messages to the process stdout.
func New(mode Mode, logFile string) Logger {
	return NewWithOutput(mode, logFile, os.Stdout, os.Stderr)
}

// NewWithOutput creates a DefaultLogger with custom output writers
func NewWithOutput(mode Mode, logFile string, stdout, stderr io.Writer) *DefaultLogger {
	l := &DefaultLogger{
		mode:    mode,
		runID:   uuid.NewString(),
		logFile: logFile,
		stdout:  stdout,
		stderr:  stderr,
		zl:      zerolog.Nop(),
	}

	level := zerolog.InfoLevel
	if mode == ModeFileDebug {
		level = zerolog.DebugLevel
	}

	switch mode {
	case ModeStderr:
		l.zl = newZerolog(stderr, isTerminal(stderr), level, l.runID)
	case ModeFile, ModeFileDebug:
		if dir := filepath.Dir(logFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				_, _ = fmt.Fprintf(stderr, "⚠️ Failed to create log directory: %v\n", err)
			}
		}

		// Each run starts a fresh log file.
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "⚠️ Failed to open log file: %v, using stderr instead\n", err)
			l.zl = newZerolog(stderr, isTerminal(stderr), level, l.runID)
			break
		}
		l.file = f
		l.zl = newZerolog(f, false, level, l.runID)
	}

	return l
}

func newZerolog(w io.Writer, color bool, level zerolog.Level, runID string) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !color,
		TimeFormat: TimeFormat,
	}
	return zerolog.New(cw).Level(level).With().Timestamp().Str("run", runID).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// log emits one record. It must be called directly from the public method so
// the caller frame points at the code that logged.
func (l *DefaultLogger) log(level zerolog.Level, msg string) {
	l.zl.WithLevel(level).Caller(2).Msg(msg)
}

// RunID returns the identifier attached to every record of this run.
func (l *DefaultLogger) RunID() string {
	return l.runID
}

// Enabled reports whether a log sink is configured.
func (l *DefaultLogger) Enabled() bool {
	return l.mode != ModeOff
}

// Debug logs a diagnostic message (sink only, ModeFileDebug)
func (l *DefaultLogger) Debug(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.log(zerolog.DebugLevel, fmt.Sprintf(format, args...))
}

// Info logs an informational message (sink only)
func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.log(zerolog.InfoLevel, fmt.Sprintf(format, args...))
}

// Warning logs a warning message (sink only)
func (l *DefaultLogger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.log(zerolog.WarnLevel, fmt.Sprintf(format, args...))
}

// Error logs an error message (sink only). Callers print user-facing errors
// themselves.
func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.log(zerolog.ErrorLevel, fmt.Sprintf(format, args...))
}

// InfoToUser logs an informational message to both sink and stdout
func (l *DefaultLogger) InfoToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	l.log(zerolog.InfoLevel, msg)
	_, _ = fmt.Fprintf(l.stdout, "ℹ️  %s\n", msg)
}

// WarningToUser logs a warning message to both sink and stdout
func (l *DefaultLogger) WarningToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	l.log(zerolog.WarnLevel, msg)
	_, _ = fmt.Fprintf(l.stdout, "⚠️  %s\n", msg)
}

// Success logs a success message to both sink and stdout
func (l *DefaultLogger) Success(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	l.log(zerolog.InfoLevel, msg)
	_, _ = fmt.Fprintf(l.stdout, "✅ %s\n", msg)
}

// StatusMessage prints a status message to stdout only (no logging)
func (l *DefaultLogger) StatusMessage(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(l.stdout, msg)
}

// Close ensures any buffered data is written and closes open log file handles
func (l *DefaultLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	// Sync ensures any buffered data is flushed to disk before closing
	if err := l.file.Sync(); err != nil {
		return err
	}
	err := l.file.Close()
	l.file = nil
	l.zl = zerolog.Nop()
	return err
}

// SetStdout sets a custom writer for user-facing stdout messages only.
// NOTE: This does not affect where log records are directed.
func (l *DefaultLogger) SetStdout(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stdout = w
}
