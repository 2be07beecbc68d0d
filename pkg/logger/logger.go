// Package logger provides the structured logging contract for the bomsight
// service. The zap-backed implementation lives in
// internal/infrastructure/monitoring; this package only defines the
// interface so domain and application code never import zap directly.
package logger

import "context"

// Fields is a set of key-value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger defines the interface for structured, context-aware logging.
type Logger interface {
	// Debug logs a debug message.
	Debug(ctx context.Context, msg string, fields ...Fields)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, fields ...Fields)

	// Warn logs a warning message.
	Warn(ctx context.Context, msg string, fields ...Fields)

	// Error logs an error message.
	Error(ctx context.Context, msg string, err error, fields ...Fields)

	// Fatal logs a fatal message and exits the application.
	Fatal(ctx context.Context, msg string, err error, fields ...Fields)

	// WithFields creates a derived logger with additional base fields.
	WithFields(fields Fields) Logger
}
