package blit

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the package logger. Accessed atomically so SetLogger can
// race with blits on other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by blit and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by blit:
//   - [slog.LevelDebug]: routing decisions (two-stage fallback, missing routes)
//   - [slog.LevelInfo]: default table tier selection
//   - [slog.LevelWarn]: invalid format ids passed to a blit
//
// Example:
//
//	blit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
// The pipeline package and cmd/pixconv share it through this accessor.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
