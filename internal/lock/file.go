package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/bashhack/scriptkit/internal/common"
)

// pidRecordLen is the fixed size of the PID record. Every holder writes
// exactly this many bytes so a reader never sees an empty or mixed record.
const pidRecordLen = 20

// fileClaim takes an exclusive, non-blocking flock on path. The lock file
// is never removed: unlinking it on release would let a waiter lock the old
// inode while a newcomer creates a fresh one.
type fileClaim struct {
	path   string
	fl     *flock.Flock
	logger common.Logger
}

func newFileClaim(path string, logger common.Logger) *fileClaim {
	return &fileClaim{path: path, logger: logger}
}

func (f *fileClaim) tryClaim() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return false, err
	}

	fl := flock.New(f.path, flock.SetFlag(os.O_CREATE|os.O_RDWR), flock.SetPermissions(0644))
	locked, err := fl.TryLock()
	if err != nil {
		return false, err
	}
	if !locked {
		return false, nil
	}

	f.fl = fl

	// The PID is informational only; contenders use it to name the holder.
	if err := writePID(fl.Fh(), os.Getpid()); err != nil {
		f.logger.Debug("Could not record PID in %s: %v", f.path, err)
	}
	return true, nil
}

// writePID overwrites the record through the locked handle in one write,
// then trims anything a longer stale record left behind.
func writePID(fh *os.File, pid int) error {
	if fh == nil {
		return fmt.Errorf("lock file is not open")
	}
	record := fmt.Sprintf("%-*d\n", pidRecordLen-1, pid)
	if _, err := fh.WriteAt([]byte(record), 0); err != nil {
		return err
	}
	return fh.Truncate(pidRecordLen)
}

func (f *fileClaim) holderPID() int {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0
	}
	return pid
}

func (f *fileClaim) free() error {
	if f.fl == nil {
		return nil
	}
	_ = os.Truncate(f.path, 0)

	err := f.fl.Unlock()
	f.fl = nil
	return err
}

// processName resolves pid to a process name, or "" when the process is
// gone or cannot be inspected.
func processName(pid int) string {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return ""
	}
	name, err := p.Name()
	if err != nil {
		return ""
	}
	return name
}
