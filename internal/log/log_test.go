package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelDebug})

	logger.Debug("hello", "key", "value")

	got := buf.String()
	if !strings.Contains(got, "hello") {
		t.Errorf("log output = %q, want it to contain %q", got, "hello")
	}
	if !strings.Contains(got, "key=value") {
		t.Errorf("log output = %q, want it to contain %q", got, "key=value")
	}
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{JSON: true})

	logger.Info("structured")

	got := buf.String()
	if !strings.Contains(got, `"msg":"structured"`) {
		t.Errorf("log output = %q, want JSON with msg field", got)
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelWarn})

	logger.Info("suppressed")
	logger.Warn("emitted")

	got := buf.String()
	if strings.Contains(got, "suppressed") {
		t.Errorf("log output = %q, info should be filtered at warn level", got)
	}
	if !strings.Contains(got, "emitted") {
		t.Errorf("log output = %q, warn should pass at warn level", got)
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	// Must not panic; output is discarded.
	logger.Error("ignored", "key", "value")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
		{"  info  ", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
