// Package logging wraps log/slog behind a small context-aware interface so
// services can log without knowing the handler configuration.
package logging

import "context"

// Logger is a structured logger. The variadic args are key-value pairs:
//
//	logger.Warn(ctx, "enrichment failed", "brand", brand, "error", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
