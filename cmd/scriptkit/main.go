package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bashhack/scriptkit/internal/config"
)

// Version information - injected at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	versionInfo := config.VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	app := NewDefaultApp(versionInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, app, os.Args[1:])
	stop()

	app.exit(code)
}

// run executes the command line against app and returns the exit code.
// The lock and logger are released before it returns.
func run(ctx context.Context, app *App, args []string) int {
	root := NewRootCommand(app)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	code := app.ReportError(err)

	if closeErr := app.Close(); closeErr != nil && code == 0 {
		code = ExitFailure
	}
	return code
}
