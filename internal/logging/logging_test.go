package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn := New(&buf, Options{Level: "info", Format: "json"})
	defer closeFn()

	log.Debug("hidden")
	log.Info("upload accepted", "filename", "notes.txt")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("expected JSON record: %v", err)
	}
	if rec["msg"] != "upload accepted" || rec["filename"] != "notes.txt" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestNew_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn := New(&buf, Options{Level: "debug", Format: "text"})
	defer closeFn()

	log.Debug("scanning", "query", "cell")
	if !strings.Contains(buf.String(), "level=DEBUG") || !strings.Contains(buf.String(), "query=cell") {
		t.Errorf("unexpected text output %q", buf.String())
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studynotes.log")
	var buf bytes.Buffer
	log, closeFn := New(&buf, Options{File: path})
	log.Warn("queue nearly full")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "queue nearly full") {
		t.Errorf("log file missing record: %q", data)
	}
	if !strings.Contains(buf.String(), "queue nearly full") {
		t.Errorf("stdout missing record: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
