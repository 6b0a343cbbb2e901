package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromEnvWithoutFileDiscards(t *testing.T) {
	t.Setenv(EnvFile, "")
	logger, closeFn, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Fatalf("discard logger should not be enabled")
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}
}

func TestFromEnvWritesJSONRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textdiff.log")
	t.Setenv(EnvFile, path)
	t.Setenv(EnvLevel, "warn")

	logger, closeFn, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	logger.Info("dropped")
	logger.Warn("clipboard failed", "error", "no clipboard")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("log has %d records want 1: %q", len(lines), data)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if rec["msg"] != "clipboard failed" || rec["level"] != "WARN" {
		t.Fatalf("record=%v", rec)
	}
}

func TestFromEnvRejectsUnknownLevel(t *testing.T) {
	t.Setenv(EnvFile, filepath.Join(t.TempDir(), "x.log"))
	t.Setenv(EnvLevel, "loud")
	if _, _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q)=%v,%v want %v", in, got, err, want)
		}
	}
}
