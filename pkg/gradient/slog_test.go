package gradient

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	tests := []struct {
		name string
		log  func()
		want []string
	}{
		{"debug", func() { adapter.Debug("debug message", "key", "value") }, []string{"level=DEBUG", "debug message", "key=value"}},
		{"info", func() { adapter.Info("info message", "count", 42) }, []string{"level=INFO", "info message", "count=42"}},
		{"warn", func() { adapter.Warn("warn message") }, []string{"level=WARN", "warn message"}},
		{"error", func() { adapter.Error("error message", "cycle", 3) }, []string{"level=ERROR", "cycle=3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output = %q, missing %q", buf.String(), want)
				}
			}
		})
	}
}

func TestNewSlogAdapterNil(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	if adapter == nil || adapter.Slog() == nil {
		t.Fatal("NewSlogAdapter(nil) should wrap slog.Default()")
	}
}

func TestDefaultAndDebugLogger(t *testing.T) {
	for _, logger := range []Logger{DefaultLogger(), DebugLogger()} {
		if logger == nil {
			t.Fatal("logger is nil")
		}
		logger.Debug("test debug")
		logger.Info("test info")
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := JSONLogger(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("json test", "field", "value")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("JSONLogger logged below its level: %s", output)
	}
	if !strings.Contains(output, `"msg":"json test"`) || !strings.Contains(output, `"field":"value"`) {
		t.Errorf("JSONLogger did not produce JSON output, got: %s", output)
	}

	if JSONLogger(nil, slog.LevelInfo) == nil {
		t.Error("JSONLogger(nil) returned nil")
	}
}

func TestNopLogger(t *testing.T) {
	var _ Logger = NopLogger()
	var _ Logger = (*SlogAdapter)(nil)

	l := NopLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}

func TestSlogFor(t *testing.T) {
	base := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	if got := slogFor(NewSlogAdapter(base)); got != base {
		t.Error("slogFor(SlogAdapter) did not return the wrapped logger")
	}
	if got := slogFor(NopLogger()); got == nil {
		t.Error("slogFor(NopLogger) = nil, want a discarding logger")
	}
}
