package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bashhack/scriptkit/internal/mail"
	"github.com/bashhack/scriptkit/internal/netcheck"
)

// NewRootCommand builds the scriptkit command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "scriptkit",
		Short:         "Utilities for single-instance maintenance scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Initialize()
		},
	}
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	app.Config.SetupFlags(root.PersistentFlags())

	root.AddCommand(
		newRunCommand(app),
		newLockCommand(app),
		newExecCommand(app),
		newPingCommand(app),
		newMailCommand(app),
		newNotifyCommand(app),
		newVersionCommand(app),
	)

	return root
}

func newRunCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run <required> [optional] [rest...]",
		Short: "Sample script: print config options and list a path under the lock",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			required := args[0]
			if len(args) > 1 {
				app.Logger.Info("myoptionalarg: %s", args[1])
			}
			if len(args) > 2 {
				app.Logger.Info("myremainingoptionalargs: %v", args[2:])
			}

			file, err := app.requireFile()
			if err != nil {
				return err
			}
			for _, key := range []string{"simpleoption", "listoption", "dictoption"} {
				if v, ok := file.Option(key); ok {
					_, _ = fmt.Fprintf(app.Stdout, "%s: %v\n", key, v)
				}
			}

			if err := app.AcquireLock(); err != nil {
				return err
			}

			command := "/bin/ls -l " + shellQuote(required)
			res, err := app.Executor.Run(cmd.Context(), command)
			if err != nil {
				return err
			}
			if err := res.Err(command); err != nil {
				return err
			}
			for _, line := range res.Lines() {
				_, _ = fmt.Fprintf(app.Stdout, "line: %s\n", line)
			}
			return nil
		},
	}
}

func newLockCommand(app *App) *cobra.Command {
	var hold time.Duration

	cmd := &cobra.Command{
		Use:   "lock <name>",
		Short: "Acquire a named single-instance lock, hold it, then release it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Config.LockName = args[0]
			if err := app.AcquireLock(); err != nil {
				return err
			}
			app.Logger.Success("Lock %s obtained", args[0])

			if hold > 0 {
				app.Logger.StatusMessage("Holding lock %s for %s", args[0], hold)
				timer := time.NewTimer(hold)
				defer timer.Stop()
				select {
				case <-timer.C:
				case <-cmd.Context().Done():
					app.Logger.WarningToUser("Interrupted, releasing lock %s", args[0])
				}
			}

			if err := app.Locker.Release(); err != nil {
				return err
			}
			app.Logger.InfoToUser("Lock %s released", args[0])
			return nil
		},
	}
	cmd.Flags().DurationVar(&hold, "hold", 0, "How long to hold the lock before releasing it")
	return cmd
}

func newExecCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command>",
		Short: "Run a shell command and print its return code and output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")
			res, err := app.Executor.Run(cmd.Context(), command)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(app.Stdout, "returncode = %d. stdout = %s. stderr = %s.\n",
				res.ExitCode, res.Stdout, res.Stderr)
			return nil
		},
	}
}

func newPingCommand(app *App) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "ping <host>",
		Short: "Report whether a host answers ping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := app.Pinger.Ping(cmd.Context(), args[0], count)
			if err != nil {
				return err
			}
			if ok {
				_, _ = fmt.Fprintf(app.Stdout, "%s is reachable\n", args[0])
			} else {
				_, _ = fmt.Fprintf(app.Stdout, "%s is unreachable\n", args[0])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", netcheck.DefaultCount, "Number of echo requests")
	return cmd
}

func newMailCommand(app *App) *cobra.Command {
	var msg mail.Message

	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Send an email with optional HTML body and attachment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.mailer()
			if err != nil {
				return err
			}
			if err := m.Send(cmd.Context(), msg); err != nil {
				return err
			}
			app.Logger.Success("Email sent to %s", msg.To)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&msg.To, "to", "", "Recipient address")
	flags.StringVar(&msg.Subject, "subject", "", "Subject line")
	flags.StringVar(&msg.Text, "body", "", "Plain-text body")
	flags.StringVar(&msg.HTML, "html", "", "HTML alternative body")
	flags.StringVar(&msg.AttachmentPath, "attach", "", "File to attach")
	flags.StringVar(&msg.From, "from", "", "Sender address (default: donotreply@<hostname>)")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newNotifyCommand(app *App) *cobra.Command {
	var via, to, attach string

	cmd := &cobra.Command{
		Use:   "notify <message>",
		Short: "Send a direct message through Telegram or Discord",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := app.requireFile()
			if err != nil {
				return err
			}
			n, err := app.Notifiers(via, file)
			if err != nil {
				return err
			}
			if err := n.Notify(cmd.Context(), to, strings.Join(args, " "), attach); err != nil {
				return err
			}
			app.Logger.Success("Message sent to %s via %s", to, via)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&via, "via", "telegram", "Channel: telegram or discord")
	flags.StringVar(&to, "to", "", "Recipient chat ID (telegram) or user ID (discord)")
	flags.StringVar(&attach, "attach", "", "File to send with the message")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.ShowVersion()
			return nil
		},
	}
}

// shellQuote wraps s in single quotes for sh
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
