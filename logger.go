package imagelib

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/AlanRace/go-imagelib/image"
)

// nopHandler discards every record. Enabled returns false so callers skip
// building attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger used by imagelib and its format backends. By
// default nothing is logged. Passing nil restores the silent default.
//
// Backends log each decode and encode at [slog.LevelDebug] with the format,
// image size, max value and layout.
//
// Example:
//
//	imagelib.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// LogImage logs a decode or encode of img at debug level.
func LogImage(msg, format string, img *image.Image) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug(msg,
		slog.String("format", format),
		slog.Int("width", img.Width),
		slog.Int("height", img.Height),
		slog.Int("max_val", img.MaxVal),
		slog.String("layout", img.Kind().String()),
	)
}
