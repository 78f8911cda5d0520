// Package logx is a thin wrapper around the standard log package for ad
// hoc diagnostics, rather than pulling in a structured-logging dependency.
package logx

import (
	"log"
	"os"
)

var std = log.New(os.Stderr, "", log.LstdFlags)

// SetOutput lets callers redirect log output, mainly for tests.
func SetOutput(l *log.Logger) {
	std = l
}

// Warnf logs a warning-level message, matching the parser's non-fatal
// "skip and keep going" diagnostics.
func Warnf(format string, args ...any) {
	std.Printf("WARN "+format, args...)
}

// Errorf logs an error-level message.
func Errorf(format string, args ...any) {
	std.Printf("ERROR "+format, args...)
}

// Infof logs an informational message.
func Infof(format string, args ...any) {
	std.Printf("INFO "+format, args...)
}
