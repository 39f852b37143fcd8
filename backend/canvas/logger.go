package canvas

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the package logger used by display objects and
// by engines created without their own logger. Nil restores silence.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l.With("engine", "canvas"))
}

// Logger returns the engine's logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// scoped tags l with the engine name, keeping nil as nil.
func scoped(l *slog.Logger) *slog.Logger {
	if l == nil {
		return nil
	}
	return l.With("engine", "canvas")
}
