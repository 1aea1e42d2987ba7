package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record and reports itself disabled, so callers
// skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by the engine. The engine is silent
// by default; pass nil to restore that.
//
// Levels:
//   - Debug: per-frame timings and input queue activity
//   - Info: lifecycle transitions (prepared, started, paused)
//   - Error: fatal errors surfaced by Prepare, Start or Tick
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current engine logger. Device packages use it so one
// SetLogger call configures the whole process.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
