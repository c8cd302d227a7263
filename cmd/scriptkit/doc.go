// Scriptkit is a toolbox for cron-style maintenance scripts.
//
// Every subcommand shares the same plumbing: a log sink selected with
// --debug, a per-script YAML config file, and a single-instance lock that
// keeps two copies of the same script from running at once.
//
// # Usage
//
//	scriptkit [global flags] <command> [args]
//
// # Commands
//
//	run <required> [optional] [rest...]
//	    Print simpleoption, listoption and dictoption from the config file,
//	    take the lock, then list <required> with /bin/ls -l.
//	lock <name> [--hold 30s]
//	    Take the named lock, hold it, release it.
//	exec <command>
//	    Run a shell command and print its return code and output.
//	ping <host> [--count 2]
//	    Report whether the host answers ping.
//	mail --to ADDR --subject TEXT [--body TEXT] [--html HTML] [--attach FILE]
//	    Send an email through the sendEmail relay.
//	notify --via telegram|discord --to ID [--attach FILE] <message>
//	    Send a direct message through a chat bot.
//	version
//	    Print version information.
//
// # Global Flags
//
//	--debug int            0=no debug, 1=STDERR, 2=log file, 9=log file with debug records
//	--log-file string      Log file (default: <program>.log)
//	--config string        YAML config file (default: <program>.yaml)
//	--lock-name string     Lock name (default: program name)
//	--lock-backend string  auto, socket or flock
//	--lock-dir string      Directory for flock lock files
//	-o, --option1          Sample switch
//
// Each flag can also be set with a SCRIPTKIT_ environment variable, for
// example SCRIPTKIT_DEBUG=2 or SCRIPTKIT_LOCK_BACKEND=flock.
//
// # Exit Codes
//
//	0  success
//	1  failure
//	2  config file not found
//	3  another copy holds the lock
//
// Failures are printed to stderr as "Error: <message>". With --debug set,
// the full chain of wrapped errors is printed instead.
package main
