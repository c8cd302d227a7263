//go:build !linux

package lock

import (
	skerrors "github.com/bashhack/scriptkit/internal/errors"
)

type socketClaim struct{}

func newSocketClaim(string) *socketClaim {
	return &socketClaim{}
}

func (s *socketClaim) tryClaim() (bool, error) {
	return false, skerrors.New("abstract socket locks are only available on Linux, use the flock backend")
}

func (s *socketClaim) holderPID() int {
	return 0
}

func (s *socketClaim) free() error {
	return nil
}
