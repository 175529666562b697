// Package logger wraps log/slog with a process-wide logger and request-scoped attributes.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger = New(os.Stdout, os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))

func init() {
	slog.SetDefault(defaultLogger)
}

// New builds a logger writing JSON in production and text elsewhere. An empty or
// unknown level logs at info in production and debug elsewhere.
func New(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(env, level)}
	if env == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Configure replaces the process-wide logger once configuration is loaded.
func Configure(env, level string) *slog.Logger {
	defaultLogger = New(os.Stdout, env, level)
	slog.SetDefault(defaultLogger)
	return defaultLogger
}

func parseLevel(env, level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if env == "production" {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// Logger returns the default logger
func Logger() *slog.Logger {
	return defaultLogger
}

type attrsKey struct{}

// Attribute names carried through contexts.
const (
	KeyRequestID = "request_id"
	KeyUploadID  = "upload_id"
	KeyBankID    = "bank_id"
)

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return With(ctx, KeyRequestID, requestID)
}

// WithUploadID tags the context with the spreadsheet upload being processed
func WithUploadID(ctx context.Context, uploadID string) context.Context {
	return With(ctx, KeyUploadID, uploadID)
}

// WithBankID adds bank ID to context
func WithBankID(ctx context.Context, bankID string) context.Context {
	return With(ctx, KeyBankID, bankID)
}

// With returns a context whose loggers carry key=value. Empty values are skipped
// and a repeated key replaces the earlier value.
func With(ctx context.Context, key, value string) context.Context {
	if value == "" {
		return ctx
	}
	prev := attrs(ctx)
	next := make([]slog.Attr, 0, len(prev)+1)
	for _, a := range prev {
		if a.Key != key {
			next = append(next, a)
		}
	}
	next = append(next, slog.String(key, value))
	return context.WithValue(ctx, attrsKey{}, next)
}

func attrs(ctx context.Context) []slog.Attr {
	a, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return a
}

// FromContext returns the default logger with the context's attributes attached
func FromContext(ctx context.Context) *slog.Logger {
	return withAttrs(ctx, defaultLogger)
}

func withAttrs(ctx context.Context, l *slog.Logger) *slog.Logger {
	a := attrs(ctx)
	if len(a) == 0 {
		return l
	}
	args := make([]any, len(a))
	for i := range a {
		args[i] = a[i]
	}
	return l.With(args...)
}

// Convenience functions

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}
