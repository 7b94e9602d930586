// Package logger provides structured logging for the application.
//
// It uses Go's standard library log/slog package with JSON output and carries
// request-scoped loggers in context.Context.
package logger
