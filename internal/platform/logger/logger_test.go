package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesServiceFieldToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New("stickynotes-test", false, path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Infow("note added", "id", "note-1")
	log.Debugw("hidden at info level")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one entry, got %d: %q", len(lines), raw)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["service"] != "stickynotes-test" || entry["id"] != "note-1" || entry["msg"] != "note added" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	log, err := New("stickynotes-test", true, path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Debugw("scheduling", "id", "note-1")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"scheduling"`) {
		t.Fatalf("expected debug entry, got %q", raw)
	}
}
