// Package logger provides logging facilities for scriptkit scripts.
//
// The logger separates records meant for the log sink (Debug, Info, Warning,
// Error) from messages meant for the person running the script (InfoToUser,
// WarningToUser, Success, StatusMessage). Records are produced with zerolog
// and rendered by its console writer so that log lines read like
//
//	10/19/2026 14:03:11 INF lock/lock.go:88 > Lock nightly successfully obtained. run=5b0c...
//
// # Modes
//
// The sink is selected with a Mode whose values match the scripts' --debug flag:
//
//   - 0 (ModeOff): no log records at all
//   - 1 (ModeStderr): records on stderr, coloured when stderr is a terminal
//   - 2 (ModeFile): records in the log file, info level and above
//   - 9 (ModeFileDebug): records in the log file, debug level and above
//
// The log file is truncated at the start of every run. Every record carries a
// "run" field holding a UUID unique to the process.
//
// # Usage
//
//	log := logger.New(logger.ModeFile, "/var/tmp/report.log")
//	defer log.Close()
//
//	log.Info("starting with args %v", os.Args)
//	log.Success("report sent")
package logger
