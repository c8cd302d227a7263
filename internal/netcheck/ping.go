package netcheck

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/bashhack/scriptkit/internal/common"
	"github.com/bashhack/scriptkit/internal/errors"
	"github.com/bashhack/scriptkit/internal/shell"
)

const (
	// DefaultCount is the number of echo requests sent per check
	DefaultCount = 2

	// DefaultBinary is the ping executable
	DefaultBinary = "/bin/ping"
)

// hostPattern admits host names, IPv4 and IPv6 literals. It keeps shell
// metacharacters out of the command line, and a leading '-' so a host can
// never be read as a ping option.
var hostPattern = regexp.MustCompile(`^[A-Za-z0-9._:%][A-Za-z0-9._:%-]*$`)

// unreachableMarkers appear in ping output when the host did not answer or
// could not be resolved.
var unreachableMarkers = []string{
	" 100% packet loss",
	"unknown host",
	"Name or service not known",
	"Temporary failure in name resolution",
	"cannot resolve",
}

// Pinger checks host reachability with the system ping command
type Pinger struct {
	exec   shell.Executor
	binary string
	logger common.Logger
}

// NewPinger creates a Pinger running DefaultBinary through exec
func NewPinger(exec shell.Executor, logger common.Logger) *Pinger {
	if logger == nil {
		logger = common.NopLogger{}
	}
	return &Pinger{
		exec:   exec,
		binary: DefaultBinary,
		logger: logger,
	}
}

// Ping sends count echo requests to host. It reports false when every
// request was lost or the host name does not resolve, and true when ping
// completed its run with at least one reply. Output that matches neither
// yields an error wrapping errors.ErrUnexpectedPingOutput.
func (p *Pinger) Ping(ctx context.Context, host string, count int) (bool, error) {
	if !hostPattern.MatchString(host) {
		return false, errors.Wrapf(errors.ErrInvalidConfiguration, "invalid host %q", host)
	}
	if count < 1 {
		count = DefaultCount
	}

	cmd := fmt.Sprintf("%s -c%d %s", p.binary, count, host)
	res, err := p.exec.Run(ctx, cmd)
	if err != nil {
		return false, err
	}

	combined := res.Stdout + res.Stderr
	for _, marker := range unreachableMarkers {
		if strings.Contains(combined, marker) {
			p.logger.Info("ping %s: unreachable", host)
			return false, nil
		}
	}

	if strings.Contains(res.Stdout, fmt.Sprintf("%d packets transmitted", count)) {
		p.logger.Info("ping %s: reachable", host)
		return true, nil
	}

	return false, errors.NewCommandError(cmd, res.ExitCode, strings.TrimSpace(res.Stderr),
		errors.Wrap(errors.ErrUnexpectedPingOutput, strings.TrimSpace(res.Stdout)))
}
