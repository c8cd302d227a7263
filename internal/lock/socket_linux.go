//go:build linux

package lock

import (
	"errors"

	"golang.org/x/sys/unix"
)

// socketClaim binds an AF_UNIX datagram socket to "\0"+name. The kernel
// refuses a second bind of the same abstract address and drops the address
// when the last descriptor closes, including on process death.
type socketClaim struct {
	name string
	fd   int
}

func newSocketClaim(name string) *socketClaim {
	return &socketClaim{name: name, fd: -1}
}

func (s *socketClaim) tryClaim() (bool, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return false, err
	}

	// A leading '@' makes x/sys/unix emit an abstract address.
	if err := unix.Bind(fd, &unix.SockaddrUnix{Name: "@" + s.name}); err != nil {
		_ = unix.Close(fd)
		if errors.Is(err, unix.EADDRINUSE) {
			return false, nil
		}
		return false, err
	}

	s.fd = fd
	return true, nil
}

// holderPID is unknown for abstract sockets.
func (s *socketClaim) holderPID() int {
	return 0
}

func (s *socketClaim) free() error {
	fd := s.fd
	s.fd = -1

	// Unconnected datagram sockets may report ENOTCONN; the close below is
	// what drops the address.
	shutdownErr := unix.Shutdown(fd, unix.SHUT_RDWR)
	if shutdownErr != nil && errors.Is(shutdownErr, unix.ENOTCONN) {
		shutdownErr = nil
	}

	if err := unix.Close(fd); err != nil {
		return err
	}
	return shutdownErr
}
