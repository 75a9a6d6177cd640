// Package logging defines the structured-logging interface the server and
// its handlers log through. The backing implementation wraps log/slog; the
// interface keeps services and transport code untied to a concrete logger.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs:
//
//	log.Info(ctx, "Starting HTTP server", "address", addr)
type Logger interface {
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures, such as request handling faults.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs, used to tag a component ("module", "http_server").
	With(args ...any) Logger
}
