package pixcore

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/pixcore/internal/blit"
	"github.com/gogpu/pixcore/surface"
)

// discard reports every level as disabled, so callers never build records.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var silent = slog.New(discard{})

var current atomic.Pointer[slog.Logger]

// Packages below pixcore keep their own logger; SetLogger fans out to them.
var loggerSinks = []func(*slog.Logger){
	surface.SetLogger,
	blit.SetLogger,
}

func init() { current.Store(silent) }

// SetLogger routes pixcore's diagnostics to l. A nil l silences them,
// which is also the initial state. It may be called at any time from any
// goroutine.
//
// Debug records describe which drawing path was taken (line and arc fast
// paths, interop blits, texture uploads). Warn records report recoverable
// failures such as a presenter falling back to software.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
	for _, sink := range loggerSinks {
		sink(l)
	}
}

// Logger returns the logger installed by SetLogger. present and cmd code
// log through it.
func Logger() *slog.Logger { return current.Load() }
