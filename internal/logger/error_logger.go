// Package logger is a package-level slog surface: call sites log through
// LogInfo/LogWarn/LogError instead of importing log/slog directly, so the
// output format and level plumbing live in one place.
package logger

import (
	"fmt"
	"log/slog"
)

// LogInfo logs an informational message, normally pipeline-stage entry/exit.
func LogInfo(msg string, args ...any) {
	slog.Info(msg, args...)
}

// LogWarn logs a warning, normally a stage that attached a warning code to
// its result rather than failing outright.
func LogWarn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// LogError logs an error message to stderr.
func LogError(format string, args ...interface{}) {
	slog.Error(fmt.Sprintf(format, args...))
}
