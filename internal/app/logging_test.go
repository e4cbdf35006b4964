package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
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
		if result := tt.level.String(); result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
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
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"verbose", LogLevelInfo}, // Default
		{"", LogLevelInfo},        // Default
	}

	for _, tt := range tests {
		if result := ParseLogLevel(tt.input); result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	logger.Warn("warn %d", 3)
	logger.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("messages below Warn were written: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn 3") {
		t.Errorf("missing warn line in %q", out)
	}
	if !strings.Contains(out, "[ERROR] error 4") {
		t.Errorf("missing error line in %q", out)
	}
}

func TestLogger_PrefixAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "seqview"})

	logger.WithComponent("session").WithField("seq", "chr1").Info("loaded")

	out := buf.String()
	if !strings.Contains(out, "[INFO] seqview: loaded") {
		t.Errorf("missing prefix in %q", out)
	}
	if !strings.Contains(out, "{component=session, seq=chr1}") {
		t.Errorf("fields not sorted into %q", out)
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	_ = parent.WithField("k", "v")

	parent.Info("plain")
	if strings.Contains(buf.String(), "k=v") {
		t.Errorf("parent logger gained child field: %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic or write anywhere.
	NullLogger.Error("dropped %s", "message")
	NullLogger.WithComponent("x").Warn("dropped")
}

func TestOpenLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := openLogger("debug", "", &buf)
	if err != nil {
		t.Fatalf("openLogger() failed: %v", err)
	}
	logger.Debug("to buffer")
	if err := closer.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "to buffer") {
		t.Errorf("buffer = %q", buf.String())
	}
	if logger.Level() != LogLevelDebug {
		t.Errorf("Level() = %s, want DEBUG", logger.Level())
	}
}

func TestOpenLogger_File(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "seqview.log")

	logger, closer, err := openLogger("info", path, &buf)
	if err != nil {
		t.Fatalf("openLogger() failed: %v", err)
	}
	logger.Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q", data)
	}
	if buf.Len() != 0 {
		t.Errorf("output received %q while a file was set", buf.String())
	}
}

func TestOpenLogger_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "seqview.log")
	if _, _, err := openLogger("info", path, nil); err == nil {
		t.Error("openLogger() succeeded for an unwritable path")
	}
}
