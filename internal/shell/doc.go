// Package shell runs shell command strings and captures their output.
//
// Commands are passed to /bin/sh -c, so anything the shell accepts works,
// including pipes and redirections. A command that runs and exits non-zero is
// not an error: its status is returned in Result.ExitCode alongside stdout and
// stderr, and Result.Err converts it into an *errors.CommandError when the
// caller wants to fail on it.
//
//	res, err := shell.NewExecutor(log).Run(ctx, "ls -l /var/log")
//	if err != nil {
//	    return err
//	}
//	if err := res.Err("ls -l /var/log"); err != nil {
//	    return err
//	}
//	for _, line := range res.Lines() {
//	    fmt.Println("line:", line)
//	}
//
// The Executor interface can be replaced for testing.
package shell
