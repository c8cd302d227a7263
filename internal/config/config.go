package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bashhack/scriptkit/internal/errors"
	"github.com/bashhack/scriptkit/internal/lock"
	"github.com/bashhack/scriptkit/internal/logger"
)

const (
	// EnvPrefix prefixes every environment variable read by LoadFromEnvironment
	EnvPrefix = "SCRIPTKIT_"

	// LogFileSuffix is appended to the program path to form the default log file
	LogFileSuffix = ".log"

	// ConfigFileSuffix is appended to the program path to form the default config file
	ConfigFileSuffix = ".yaml"
)

// Config holds the settings shared by every scriptkit command.
// Values come from defaults, then environment variables, then command-line
// flags, then (for lock settings only) the YAML config file.
type Config struct {
	// Program is the path the script was invoked as. Default file names are
	// derived from it.
	Program string

	// Logging

	// Debug selects the log sink: 0 off, 1 stderr, 2 log file, 9 log file
	// with debug records.
	Debug int

	// LogFile is where records go for Debug 2 and 9.
	// Defaults to <Program>.log.
	LogFile string

	// ConfigFile is the YAML file loaded at startup.
	// Defaults to <Program>.yaml.
	ConfigFile string

	// Single-instance lock

	// LockName identifies the contention domain. Defaults to the base name
	// of Program, so two copies of the same script exclude each other.
	LockName string

	// LockBackend is "auto", "socket" or "flock". Empty means not set by
	// flag or environment, so the config file may choose; otherwise auto.
	LockBackend string

	// LockDir holds flock files. Defaults to the system temp directory.
	LockDir string

	// Script options

	// Option1 is a sample boolean switch for scripts built from this template.
	Option1 bool

	// Build metadata
	VersionInfo VersionInfo
}

// VersionInfo contains build-time version metadata
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// New creates a new Config with default values
func New() *Config {
	program := "scriptkit"
	if len(os.Args) > 0 && os.Args[0] != "" {
		program = os.Args[0]
	}

	return &Config{
		Program: program,
		Debug:   int(logger.ModeOff),

		// Default version info, will be overridden if provided
		VersionInfo: VersionInfo{
			Version: "dev",
			Commit:  "unknown",
			Date:    "unknown",
		},
	}
}

// LoadFromEnvironment updates config from environment variables
func (c *Config) LoadFromEnvironment() {
	c.Debug = getEnvInt(EnvPrefix+"DEBUG", c.Debug)
	c.LogFile = getEnvString(EnvPrefix+"LOG_FILE", c.LogFile)
	c.ConfigFile = getEnvString(EnvPrefix+"CONFIG", c.ConfigFile)
	c.LockName = getEnvString(EnvPrefix+"LOCK_NAME", c.LockName)
	c.LockBackend = getEnvString(EnvPrefix+"LOCK_BACKEND", c.LockBackend)
	c.LockDir = getEnvString(EnvPrefix+"LOCK_DIR", c.LockDir)
	c.Option1 = getEnvBool(EnvPrefix+"OPTION1", c.Option1)
}

// SetupFlags registers command-line flags that override config values
func (c *Config) SetupFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.Debug, "debug", c.Debug, "0=no debug, 1=STDERR, 2=log file, 9=log file with debug records")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Path to log file (default: <program>.log)")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Path to YAML config file (default: <program>.yaml)")
	fs.StringVar(&c.LockName, "lock-name", c.LockName, "Single-instance lock name (default: program name)")
	fs.StringVar(&c.LockBackend, "lock-backend", c.LockBackend, "Lock backend: auto, socket or flock (default: auto)")
	fs.StringVar(&c.LockDir, "lock-dir", c.LockDir, "Directory for flock lock files (default: system temp dir)")
	fs.BoolVarP(&c.Option1, "option1", "o", c.Option1, "Sample switch for scripts built from this template")
}

// Finalize validates the configuration and fills in defaults derived from
// Program.
func (c *Config) Finalize() error {
	if !logger.Mode(c.Debug).Valid() {
		return errors.NewConfigError("debug", c.Debug, errors.Wrap(errors.ErrInvalidConfiguration, "must be 0, 1, 2 or 9"))
	}

	if _, err := lock.ParseBackend(c.LockBackend); err != nil {
		return errors.NewConfigError("lock-backend", c.LockBackend, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}

	if c.Program == "" {
		return errors.NewConfigError("program", "", errors.Wrap(errors.ErrInvalidConfiguration, "program path is empty"))
	}

	if c.LogFile == "" {
		c.LogFile = c.Program + LogFileSuffix
	}

	if c.ConfigFile == "" {
		c.ConfigFile = c.Program + ConfigFileSuffix
	}

	return nil
}

// ApplyFile copies lock settings from the config file into fields that were
// not set by flags or the environment.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if c.LockName == "" {
		c.LockName = f.Lock.Name
	}
	if c.LockBackend == "" {
		c.LockBackend = f.Lock.Backend
	}
	if c.LockDir == "" {
		c.LockDir = f.Lock.Dir
	}
}

// LogMode returns Debug as a logger.Mode
func (c *Config) LogMode() logger.Mode {
	return logger.Mode(c.Debug)
}

// ScriptName returns the base name of Program
func (c *Config) ScriptName() string {
	return filepath.Base(c.Program)
}

// LockOptions resolves the lock name and options for lock.New.
func (c *Config) LockOptions() (string, []lock.Option, error) {
	name := c.LockName
	if name == "" {
		name = c.ScriptName()
	}

	backend, err := lock.ParseBackend(c.LockBackend)
	if err != nil {
		return "", nil, errors.NewConfigError("lock-backend", c.LockBackend, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}

	opts := []lock.Option{lock.WithBackend(backend)}
	if c.LockDir != "" {
		opts = append(opts, lock.WithDir(c.LockDir))
	}
	return name, opts, nil
}

// getEnvString returns an environment variable string or a default value
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as int or a default value
func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

// getEnvBool returns an environment variable as bool or a default value
func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		valueLower := strings.ToLower(valueStr)
		if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
			return true
		}
		if valueLower == "false" || valueLower == "0" || valueLower == "no" {
			return false
		}
		// For any other value, fall back to default
	}
	return defaultValue
}
