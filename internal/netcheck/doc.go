// Package netcheck answers "is this host up?" for scripts.
//
// Pinger runs the system ping binary through a shell.Executor and classifies
// its output. Running the real binary keeps the script free of raw-socket
// privileges and matches what an operator would type by hand.
package netcheck
