// Package logging provides the package-level structured-logging seam used
// throughout the enhancer and rule-engine packages. It is additive
// instrumentation only: no core algorithm's return value depends on it, and
// a caller that never touches this package still gets a working no-op-safe
// default logger.
package logging

import "go.uber.org/zap"

var current = newDefault()

func newDefault() *zap.SugaredLogger {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar()
}

// L returns the current process-wide logger.
func L() *zap.SugaredLogger {
	return current
}

// SetLogger replaces the process-wide logger, e.g. with a development or
// test configuration. Safe to call once at startup; not safe to call
// concurrently with in-flight logging calls.
func SetLogger(l *zap.SugaredLogger) {
	current = l
}
