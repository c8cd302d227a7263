// Package scriptkit is a toolbox for cron-style maintenance scripts.
//
// A maintenance script usually needs the same handful of things: make sure
// only one copy of it runs at a time, log somewhere useful, read a small YAML
// config file, run shell commands, check that a host is up, and tell a human
// when something happened. scriptkit provides each of these as a small
// package under internal/ and ships a sample command, cmd/scriptkit, that
// wires them together.
//
// # Quick Start
//
//	# Refuse to run twice: the second copy exits with status 3
//	scriptkit lock nightly-backup --hold 30s &
//	scriptkit lock nightly-backup
//
//	# Sample script: print config options, take the lock, list a path
//	scriptkit --debug 2 run /var/backups
//
// # Single-Instance Lock
//
// Locks are named. On Linux the default backend binds an abstract-namespace
// Unix socket named after the lock, so the kernel releases it the moment the
// holder exits, including on SIGKILL, and no file is ever left behind. The
// flock backend holds flock(2) on a file in the temp directory and works on
// every Unix; it records the holder's PID so a refused caller can report who
// holds the lock.
//
// # Packages
//
//   - internal/lock: named single-instance locks
//   - internal/logger: --debug aware log sink built on zerolog
//   - internal/config: flags, SCRIPTKIT_ environment variables and the YAML file
//   - internal/shell: run sh -c commands and capture their output
//   - internal/netcheck: ping a host
//   - internal/mail: send email through an SMTP relay
//   - internal/notify: direct messages through Telegram or Discord
//   - internal/errors: sentinel errors and typed errors with exit codes
package scriptkit
