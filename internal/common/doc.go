// Package common provides shared interfaces used throughout scriptkit.
//
// # Logger Interface
//
// Logger is the minimal contract that library packages depend on. The full
// application logger in package logger satisfies it, and tests can supply a
// recording implementation without pulling in any log sink.
//
//	type Pinger struct {
//	    logger common.Logger
//	}
//
//	func (p *Pinger) Ping(host string) {
//	    p.logger.Info("pinging %s", host)
//	}
//
// NopLogger is the zero-cost fallback used when no logger is injected.
//
// The common package has no dependencies on other internal packages.
package common
