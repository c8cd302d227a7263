// Package lock provides a named, system-wide single-instance lock for scripts.
//
// Only one process can hold a given lock name at a time. Acquisition is a
// single atomic claim delegated to the operating system, never a
// check-then-create sequence, so there is no window in which two instances
// both believe they won. Acquisition never blocks: it either succeeds at once
// or fails at once with errors.ErrLockUnavailable.
//
// # Backends
//
//   - BackendSocket (default on Linux) binds an abstract-namespace unix
//     datagram socket to "\0"+name. Scripts in other languages that bind the
//     same address contend with scriptkit scripts.
//   - BackendFlock (default elsewhere) takes flock(2) on
//     <dir>/scriptkit-<hash>.lock and records the holder PID in it, which lets
//     a losing contender report who holds the lock.
//
// With both backends the kernel drops the claim when the holding process
// exits for any reason, so there is no stale lock to clean up after a crash.
//
// # Usage
//
//	l, err := lock.Acquire("nightly-report", lock.WithLogger(log))
//	if errors.Is(err, errors.ErrLockUnavailable) {
//	    // another instance is already running
//	    return err
//	}
//	if err != nil {
//	    return err
//	}
//	defer l.Release()
//
// # Multiple Locks
//
// Each Locker is an independent handle, so one process may hold several
// different names at once. Two Lockers for the same name contend even inside
// one process.
//
// # Thread Safety
//
// A Locker is not designed to be used concurrently by multiple goroutines.
// Use one Locker per goroutine; the OS arbitrates between them.
package lock
