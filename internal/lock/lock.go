package lock

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bashhack/scriptkit/internal/common"
	skerrors "github.com/bashhack/scriptkit/internal/errors"
)

// Backend selects the OS primitive used to claim a lock name.
type Backend int

const (
	// BackendAuto uses BackendSocket on Linux and BackendFlock elsewhere.
	BackendAuto Backend = iota
	// BackendSocket binds an abstract-namespace unix datagram socket to the
	// lock name. Linux only.
	BackendSocket
	// BackendFlock takes flock(2) on a file derived from the lock name.
	BackendFlock
)

// maxSocketName is sun_path minus the leading NUL of an abstract address.
const maxSocketName = 107

// String returns the backend name used in config files and flags
func (b Backend) String() string {
	switch b {
	case BackendSocket:
		return "socket"
	case BackendFlock:
		return "flock"
	default:
		return "auto"
	}
}

// ParseBackend converts a backend name into a Backend. The empty string is
// treated as "auto".
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return BackendAuto, nil
	case "socket":
		return BackendSocket, nil
	case "flock":
		return BackendFlock, nil
	}
	return BackendAuto, fmt.Errorf("unknown lock backend %q (want auto, socket or flock)", s)
}

func (b Backend) resolve() Backend {
	if b != BackendAuto {
		return b
	}
	if runtime.GOOS == "linux" {
		return BackendSocket
	}
	return BackendFlock
}

// claim is the OS-level resource behind a Locker
type claim interface {
	// tryClaim makes one non-blocking attempt. It reports false, nil when
	// another holder owns the name.
	tryClaim() (bool, error)
	// holderPID returns the PID of the current holder, or 0 if unknown.
	holderPID() int
	free() error
}

// Option configures a Locker
type Option func(*Locker)

// WithBackend selects the OS primitive
func WithBackend(b Backend) Option {
	return func(l *Locker) {
		l.backend = b
	}
}

// WithDir sets the directory holding flock files (default os.TempDir())
func WithDir(dir string) Option {
	return func(l *Locker) {
		l.dir = dir
	}
}

// WithLogger sets the logger that receives acquisition outcomes
func WithLogger(logger common.Logger) Option {
	return func(l *Locker) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Locker owns the exclusive claim on one lock name
type Locker struct {
	name    string
	backend Backend
	dir     string
	logger  common.Logger
	claim   claim
	held    bool
}

// New validates name and prepares a Locker for it. No OS resource is
// touched until Acquire.
func New(name string, opts ...Option) (*Locker, error) {
	l := &Locker{
		name:   name,
		dir:    os.TempDir(),
		logger: common.NopLogger{},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.backend = l.backend.resolve()

	if err := validateName(name, l.backend); err != nil {
		return nil, skerrors.NewLockError(name, l.backend.String(), 0, err)
	}

	switch l.backend {
	case BackendSocket:
		l.claim = newSocketClaim(name)
	case BackendFlock:
		l.claim = newFileClaim(l.lockFilePath(), l.logger)
	}

	return l, nil
}

// Acquire is New followed by (*Locker).Acquire. The returned Locker is the
// handle to pass to Release.
func Acquire(name string, opts ...Option) (*Locker, error) {
	l, err := New(name, opts...)
	if err != nil {
		return nil, err
	}
	if err := l.Acquire(); err != nil {
		return nil, err
	}
	return l, nil
}

func validateName(name string, backend Backend) error {
	if name == "" {
		return skerrors.Wrap(skerrors.ErrInvalidLockName, "name is empty")
	}
	if strings.ContainsRune(name, 0) {
		return skerrors.Wrap(skerrors.ErrInvalidLockName, "name contains a NUL byte")
	}
	if backend == BackendSocket && len(name) > maxSocketName {
		return skerrors.Wrapf(skerrors.ErrInvalidLockName, "name is %d bytes, socket names are limited to %d", len(name), maxSocketName)
	}
	return nil
}

func (l *Locker) lockFilePath() string {
	nameHash := fmt.Sprintf("%x", sha256.Sum256([]byte(l.name)))[:16]
	return filepath.Join(l.dir, fmt.Sprintf("scriptkit-%s.lock", nameHash))
}

// Acquire makes a single, non-blocking attempt to claim the lock name.
// If another holder owns the name it returns a *errors.LockError wrapping
// errors.ErrLockUnavailable. Calling Acquire on a Locker that already holds
// the lock is a no-op.
func (l *Locker) Acquire() error {
	if l.held {
		return nil
	}

	ok, err := l.claim.tryClaim()
	if err != nil {
		l.logger.Error("Lock %s could not be obtained: %v", l.name, err)
		return skerrors.NewLockError(l.name, l.backend.String(), 0,
			skerrors.Wrap(skerrors.ErrLockFailed, err.Error()))
	}

	if !ok {
		l.logger.Info("Lock %s exists so another script must have it.", l.name)
		lockErr := skerrors.NewLockError(l.name, l.backend.String(), l.claim.holderPID(), skerrors.ErrLockUnavailable)
		if lockErr.PID > 0 {
			lockErr.Holder = processName(lockErr.PID)
		}
		return lockErr
	}

	l.held = true
	l.logger.Info("Lock %s successfully obtained.", l.name)
	return nil
}

// Release frees the claim so the name can be acquired again, by this or any
// other process. Releasing a Locker that does not hold the lock returns a
// *errors.LockError wrapping errors.ErrLockNotHeld.
func (l *Locker) Release() error {
	if !l.held {
		return skerrors.NewLockError(l.name, l.backend.String(), 0, skerrors.ErrLockNotHeld)
	}

	l.held = false
	if err := l.claim.free(); err != nil {
		return skerrors.NewLockError(l.name, l.backend.String(), os.Getpid(),
			skerrors.Wrap(err, "failed to release lock"))
	}

	l.logger.Debug("Lock %s released.", l.name)
	return nil
}

// Held reports whether this Locker currently owns the claim
func (l *Locker) Held() bool {
	return l.held
}

// Name returns the lock name
func (l *Locker) Name() string {
	return l.name
}

// Backend returns the resolved backend
func (l *Locker) Backend() Backend {
	return l.backend
}

func (l *Locker) String() string {
	return fmt.Sprintf("%s (%s)", l.name, l.backend)
}
