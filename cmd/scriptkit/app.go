package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bashhack/scriptkit/internal/config"
	skErrors "github.com/bashhack/scriptkit/internal/errors"
	"github.com/bashhack/scriptkit/internal/lock"
	"github.com/bashhack/scriptkit/internal/logger"
	"github.com/bashhack/scriptkit/internal/mail"
	"github.com/bashhack/scriptkit/internal/netcheck"
	"github.com/bashhack/scriptkit/internal/notify"
	"github.com/bashhack/scriptkit/internal/shell"
)

// Exit codes returned to the calling shell
const (
	ExitFailure        = 1
	ExitConfigNotFound = 2
	ExitLockBusy       = 3
)

// Locker guards a script against concurrent copies of itself
type Locker interface {
	Acquire() error
	Release() error
	Held() bool
}

// Pinger checks host reachability
type Pinger interface {
	Ping(ctx context.Context, host string, count int) (bool, error)
}

// Mailer sends email
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// NotifierFactory builds a notifier for the named channel
type NotifierFactory func(kind string, file *config.File) (notify.Notifier, error)

// AppOptions contains app configuration and dependencies.
// Nil optional fields are filled with defaults during Initialize.
type AppOptions struct {
	// Config holds the application configuration settings (required).
	Config *config.Config

	// Optional components

	// Logger receives log records and user-facing messages.
	Logger logger.Logger

	// Locker is the single-instance lock. Built from Config on first use.
	Locker Locker

	// Executor runs shell commands.
	Executor shell.Executor

	// Pinger checks reachability. Defaults to netcheck over Executor.
	Pinger Pinger

	// Mailer sends email. Defaults to an SMTP sender using the config file.
	Mailer Mailer

	// Notifiers builds chat notifiers. Defaults to notify.New.
	Notifiers NotifierFactory

	// LoadFile reads the YAML config file. Defaults to config.LoadFile.
	LoadFile func(path string) (*config.File, error)

	// I/O dependencies
	Stdout io.Writer
	Stderr io.Writer

	// Exit terminates the process. Defaults to os.Exit.
	Exit func(code int)
}

// App is the scriptkit application. It owns the logger, the config file and
// the single-instance lock for the lifetime of one command.
type App struct {
	Config *config.Config
	Logger logger.Logger
	Locker Locker

	// File is the parsed config file, nil when it does not exist.
	File *config.File

	Executor  shell.Executor
	Pinger    Pinger
	Mailer    Mailer
	Notifiers NotifierFactory

	// I/O streams
	Stdout io.Writer
	Stderr io.Writer

	exit     func(code int)
	loadFile func(path string) (*config.File, error)

	// fileErr is the load error for File, reported by commands that need it.
	fileErr     error
	initialized bool
}

// NewDefaultApp creates an App with standard dependencies.
// It loads SCRIPTKIT_ environment variables into a new Config.
func NewDefaultApp(versionInfo config.VersionInfo) *App {
	cfg := config.New()
	cfg.VersionInfo = versionInfo
	cfg.LoadFromEnvironment()

	return NewApp(AppOptions{
		Config: cfg,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Exit:   os.Exit,
	})
}

// NewApp creates an App with custom dependencies specified in opts.
// It panics if opts.Config is nil.
func NewApp(opts AppOptions) *App {
	if opts.Config == nil {
		panic("Config is required in AppOptions")
	}

	app := &App{
		Config:    opts.Config,
		Logger:    opts.Logger,
		Locker:    opts.Locker,
		Executor:  opts.Executor,
		Pinger:    opts.Pinger,
		Mailer:    opts.Mailer,
		Notifiers: opts.Notifiers,
		Stdout:    opts.Stdout,
		Stderr:    opts.Stderr,
		exit:      opts.Exit,
		loadFile:  opts.LoadFile,
	}

	// Set defaults for nil dependencies
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.exit == nil {
		app.exit = os.Exit
	}
	if app.loadFile == nil {
		app.loadFile = config.LoadFile
	}

	return app
}

// Initialize validates the config, opens the log and reads the config file.
// A missing config file is not an error here; commands that need it call
// requireFile.
func (a *App) Initialize() error {
	if a.initialized {
		return nil
	}

	if err := a.Config.Finalize(); err != nil {
		if skErrors.Is(err, skErrors.ErrInvalidConfiguration) {
			return err
		}
		return skErrors.Wrap(skErrors.ErrInvalidConfiguration, err.Error())
	}

	if a.Logger == nil {
		a.Logger = logger.New(a.Config.LogMode(), a.Config.LogFile)
	}

	if a.Config.Option1 {
		a.Logger.Info("option1 is true")
	}

	a.File, a.fileErr = a.loadFile(a.Config.ConfigFile)
	if a.fileErr != nil {
		if skErrors.Is(a.fileErr, skErrors.ErrConfigNotFound) {
			a.Logger.Debug("No config file: %v", a.fileErr)
		} else {
			a.Logger.Warning("Config file unusable: %v", a.fileErr)
		}
	} else {
		a.File.LogTo(a.Logger)
		a.Config.ApplyFile(a.File)
	}

	if a.Executor == nil {
		a.Executor = shell.NewExecutor(a.Logger)
	}
	if a.Pinger == nil {
		a.Pinger = netcheck.NewPinger(a.Executor, a.Logger)
	}
	if a.Notifiers == nil {
		a.Notifiers = func(kind string, file *config.File) (notify.Notifier, error) {
			return notify.New(kind, file, a.Logger)
		}
	}

	a.Logger.Info("%s starting with these args: %s", a.Config.ScriptName(), strings.Join(os.Args, " "))
	a.initialized = true
	return nil
}

// requireFile returns the config file or the error that prevented loading it
func (a *App) requireFile() (*config.File, error) {
	if a.fileErr != nil {
		if skErrors.Is(a.fileErr, skErrors.ErrConfigNotFound) {
			return nil, skErrors.WithExitCode(a.fileErr, ExitConfigNotFound)
		}
		return nil, a.fileErr
	}
	return a.File, nil
}

// AcquireLock takes the single-instance lock named by the config.
// Contention exits with ExitLockBusy.
func (a *App) AcquireLock() error {
	if a.Locker == nil {
		name, opts, err := a.Config.LockOptions()
		if err != nil {
			return err
		}
		opts = append(opts, lock.WithLogger(a.Logger))

		locker, err := lock.New(name, opts...)
		if err != nil {
			return skErrors.Wrap(err, "failed to initialize lock")
		}
		a.Locker = locker
	}

	if err := a.Locker.Acquire(); err != nil {
		if skErrors.Is(err, skErrors.ErrLockUnavailable) {
			return skErrors.WithExitCode(err, ExitLockBusy)
		}
		return err
	}
	return nil
}

// mailer returns the configured Mailer, building the SMTP sender on first use
func (a *App) mailer() (Mailer, error) {
	if a.Mailer != nil {
		return a.Mailer, nil
	}
	file, err := a.requireFile()
	if err != nil {
		return nil, err
	}
	a.Mailer = mail.NewSender(mail.SettingsFromFile(file), a.Logger)
	return a.Mailer, nil
}

// ShowVersion displays version information
func (a *App) ShowVersion() {
	_, _ = fmt.Fprintf(a.Stdout, "scriptkit %s (%s) built on %s\n",
		a.Config.VersionInfo.Version,
		a.Config.VersionInfo.Commit,
		a.Config.VersionInfo.Date)
}

// ReportError prints err the way scripts have always reported failures and
// returns the exit code for it.
func (a *App) ReportError(err error) int {
	if err == nil {
		return 0
	}

	msg := err.Error()
	if a.Config.Debug != 0 {
		msg = fmt.Sprintf("%T: %s", rootCause(err), describeChain(err))
	}

	if a.Logger != nil {
		a.Logger.Error("Error: %s", msg)
	}
	_, _ = fmt.Fprintf(a.Stderr, "Error: %s\n", msg)

	return skErrors.ExitCode(err)
}

// Close releases the lock if held and closes the logger
func (a *App) Close() error {
	var errs []error

	if a.Locker != nil && a.Locker.Held() {
		if err := a.Locker.Release(); err != nil {
			if a.Logger != nil {
				a.Logger.Error("Failed to release lock during cleanup: %v", err)
			} else {
				_, _ = fmt.Fprintf(a.Stderr, "Failed to release lock during cleanup: %v\n", err)
			}
			errs = append(errs, err)
		}
	}

	if a.Logger != nil {
		if a.initialized {
			a.Logger.Info("%s exiting", a.Config.ScriptName())
		}
		if err := a.Logger.Close(); err != nil {
			_, _ = fmt.Fprintf(a.Stderr, "Failed to close logger: %v\n", err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return skErrors.Join(errs...)
	}
	return nil
}

// rootCause follows Unwrap to the innermost error
func rootCause(err error) error {
	for {
		next := skErrors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// describeChain renders every distinct message along the Unwrap chain
func describeChain(err error) string {
	var parts []string
	for e := err; e != nil; e = skErrors.Unwrap(e) {
		parts = append(parts, fmt.Sprintf("[%T] %s", e, e.Error()))
	}
	return strings.Join(parts, "\n  caused by: ")
}
