package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/onree/internal/config"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"WARNING", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(buf.String()), "\n")
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "test"})

	logger.WithComponent("editor").WithField("row", 3).Info("saved %s: %d bytes", "a.c", 12)

	line := buf.String()
	checks := map[string]string{
		"level":     "info",
		"app":       "test",
		"component": "editor",
		"row":       "3",
		"message":   "saved a.c: 12 bytes",
	}
	for field, want := range checks {
		if got := gjson.Get(line, field).String(); got != want {
			t.Errorf("%s = %q, want %q (line %s)", field, got, want, line)
		}
	}
	if !gjson.Get(line, "time").Exists() {
		t.Error("expected a time field")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	got := lines(&buf)
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(got), got)
	}
	if gjson.Get(got[0], "level").String() != "warn" || gjson.Get(got[1], "level").String() != "error" {
		t.Errorf("unexpected levels: %v", got)
	}

	buf.Reset()
	logger.SetLevel(LogLevelDebug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevel(debug) should enable debug output")
	}
	if logger.Level() != LogLevelDebug {
		t.Errorf("Level() = %v", logger.Level())
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})

	logger.Disable()
	logger.Error("hidden")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}

	logger.Enable()
	logger.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("enabled logger should write")
	}
}

func TestLogger_WithFieldsIsolated(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	child := base.WithFields(map[string]any{"file": "x.c"})

	base.Info("base")
	child.Info("child")

	got := lines(&buf)
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %v", got)
	}
	if gjson.Get(got[0], "file").Exists() {
		t.Error("parent logger should not carry child fields")
	}
	if gjson.Get(got[1], "file").String() != "x.c" {
		t.Errorf("child line = %s", got[1])
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Error("nothing %d", 1)
	NullLogger.WithComponent("x").Info("still nothing")
}

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "onree.log")

	logger, closer, err := NewFileLogger(config.LoggingConfig{
		Level:      "debug",
		File:       path,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	logger.Debug("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := gjson.GetBytes(data, "message").String(); got != "to file" {
		t.Errorf("message = %q", got)
	}
}

func TestNewFileLogger_Disabled(t *testing.T) {
	logger, closer, err := NewFileLogger(config.LoggingConfig{Level: "info"})
	if err != nil {
		t.Fatal(err)
	}
	if logger != NullLogger {
		t.Error("empty file should give NullLogger")
	}
	if err := closer.Close(); err != nil {
		t.Error(err)
	}
}
