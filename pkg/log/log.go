// Package log wraps a single process-wide zap logger, initialized once
// by the CLI entry point and read by every pipeline stage thereafter.
package log

import "go.uber.org/zap"

var logger *zap.Logger

// Init builds the process-wide logger: zap's production JSON encoder
// when prod is true, its human-readable development encoder otherwise.
// Calling Init again after a successful call is a no-op.
func Init(prod bool) error {
	if logger != nil {
		return nil
	}
	var err error
	if prod {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	return err
}

// L returns the process-wide logger. Panics if Init hasn't run yet.
func L() *zap.Logger {
	if logger == nil {
		panic("logger not initialized")
	}
	return logger
}

// Sync flushes any buffered log entries; call it on process exit. Errors
// from Sync on a console-backed logger (e.g. ENOTTY on stderr) are
// expected and intentionally swallowed rather than surfaced as a fault.
func Sync() {
	if logger == nil {
		return
	}
	_ = logger.Sync()
}
