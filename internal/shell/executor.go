package shell

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/bashhack/scriptkit/internal/common"
	"github.com/bashhack/scriptkit/internal/errors"
)

// DefaultShell runs every command string
const DefaultShell = "/bin/sh"

// Result holds the outcome of a command that ran to completion
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Lines splits stdout into lines without the trailing newline
func (r Result) Lines() []string {
	out := strings.TrimRight(r.Stdout, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Err converts a non-zero exit code into a *errors.CommandError
func (r Result) Err(command string) error {
	if r.ExitCode == 0 {
		return nil
	}
	return errors.NewCommandError(command, r.ExitCode, strings.TrimSpace(r.Stderr), errors.ErrCommandFailed)
}

// Executor runs shell command strings
type Executor interface {
	// Run executes command through the shell. A non-zero exit status is
	// reported in Result.ExitCode, not as an error. An error means the
	// command could not be run at all or ctx ended first.
	Run(ctx context.Context, command string) (Result, error)
}

// ExecExecutor is the default implementation of Executor
// that delegates to the os/exec package
type ExecExecutor struct {
	shell  string
	logger common.Logger
}

// NewExecutor creates an ExecExecutor using DefaultShell
func NewExecutor(logger common.Logger) *ExecExecutor {
	if logger == nil {
		logger = common.NopLogger{}
	}
	return &ExecExecutor{
		shell:  DefaultShell,
		logger: logger,
	}
}

// Run implements Executor.Run
func (e *ExecExecutor) Run(ctx context.Context, command string) (Result, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, e.shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("exec: %s", command)
	err := cmd.Run()

	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.ExitCode = -1
		return res, errors.NewCommandError(command, res.ExitCode, "", errors.Wrap(errors.ErrCommandFailed, ctxErr.Error()))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		e.logger.Debug("exec: %q exited with %d", command, res.ExitCode)
		return res, nil
	}

	if err != nil {
		wrappedErr := errors.Wrap(errors.ErrCommandFailed, err.Error())
		return res, errors.NewCommandError(command, -1, "", wrappedErr)
	}

	return res, nil
}
