package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type logRecord struct {
	Level string `json:"level"`
	Msg   string `json:"msg"`
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	// Use JSON handler for easier parsing in tests
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	testLogger := slog.New(handler)

	originalLogger := Logger
	Logger = testLogger
	defer func() { Logger = originalLogger }()

	tests := []struct {
		name  string
		fn    func(msg string, args ...any)
		level string
		msg   string
	}{
		{"Info", Info, "INFO", "info message"},
		{"Error", Error, "ERROR", "error message"},
		{"Warn", Warn, "WARN", "warn message"},
		{"Debug", Debug, "DEBUG", "debug message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn(tt.msg)

			var rec logRecord
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("failed to unmarshal log output: %v", err)
			}

			if rec.Msg != tt.msg {
				t.Errorf("expected msg %q, got %q", tt.msg, rec.Msg)
			}
			if rec.Level != tt.level {
				t.Errorf("expected level %q, got %q", tt.level, rec.Level)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	if Logger == nil {
		t.Error("Logger should be initialized")
	}
}

func TestSetup_File(t *testing.T) {
	originalLogger := Logger
	defer func() { Logger = originalLogger }()

	path := filepath.Join(t.TempDir(), "bikeshare.log")
	cleanup, err := Setup(slog.LevelInfo, path)
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	Debug("hidden")
	Info("dataset loaded", "rows", 12)
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "dataset loaded") || !strings.Contains(out, "rows=12") {
		t.Errorf("log file missing info record: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug record should be filtered at info level")
	}
}

func TestSetup_BadPath(t *testing.T) {
	originalLogger := Logger
	defer func() { Logger = originalLogger }()

	path := filepath.Join(t.TempDir(), "missing", "dir", "x.log")
	if _, err := Setup(slog.LevelInfo, path); err == nil {
		t.Error("Setup() should fail for an unwritable path")
	}
}
