package gradient

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the structured logging surface the animator writes to. Its
// methods take slog-style alternating key/value arguments.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter lets a *slog.Logger serve as a Logger.
//
//	opts := gradient.DefaultOptions()
//	opts.Logger = gradient.NewSlogAdapter(slog.Default())
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger, or slog.Default() when logger is nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Slog returns the wrapped logger.
func (s *SlogAdapter) Slog() *slog.Logger { return s.logger }

// Debug logs msg at slog.LevelDebug.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.logger.Debug(msg, args...) }

// Info logs msg at slog.LevelInfo.
func (s *SlogAdapter) Info(msg string, args ...any) { s.logger.Info(msg, args...) }

// Warn logs msg at slog.LevelWarn.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.logger.Warn(msg, args...) }

// Error logs msg at slog.LevelError.
func (s *SlogAdapter) Error(msg string, args ...any) { s.logger.Error(msg, args...) }

// DefaultLogger writes Info and above as text to stderr.
func DefaultLogger() Logger {
	return textLogger(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
}

// DebugLogger writes everything as text to stderr with source positions.
func DebugLogger() Logger {
	return textLogger(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true})
}

// JSONLogger writes records at level and above as JSON lines to w, or to
// stderr when w is nil.
func JSONLogger(w io.Writer, level slog.Level) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &SlogAdapter{logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))}
}

func textLogger(w io.Writer, opts *slog.HandlerOptions) Logger {
	return &SlogAdapter{logger: slog.New(slog.NewTextHandler(w, opts))}
}

// NopLogger drops every record.
func NopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// slogFor returns the *slog.Logger behind l for hosts that take one.
// Loggers that are not slog-backed get a discarding logger.
func slogFor(l Logger) *slog.Logger {
	if sa, ok := l.(*SlogAdapter); ok {
		return sa.logger
	}
	return slog.New(slog.DiscardHandler)
}
