package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if !cfg.Reminders.Enabled || cfg.Reminders.DesktopNotifications {
		t.Fatalf("unexpected reminder defaults: %+v", cfg.Reminders)
	}
	if cfg.Reminders.SchedulerBuffer != 64 {
		t.Fatalf("unexpected scheduler buffer: %d", cfg.Reminders.SchedulerBuffer)
	}
	if cfg.Defaults.Color != "yellow" || cfg.Defaults.Emoji != "😊" {
		t.Fatalf("unexpected note defaults: %+v", cfg.Defaults)
	}
	if cfg.Storage.Backend != "memory" || cfg.Storage.PingTimeout != 2*time.Second {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.HTTP.Port != "8080" || cfg.HTTP.IdleTimeout != 120*time.Second {
		t.Fatalf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if cfg.Dispatch.TopicURL != "mem://reminders" || cfg.Dispatch.MaxWorkers != 4 {
		t.Fatalf("unexpected dispatch defaults: %+v", cfg.Dispatch)
	}
	if cfg.UI.StartGallery != "general" || !cfg.UI.SeedSamples {
		t.Fatalf("unexpected ui defaults: %+v", cfg.UI)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.HTTP.Port)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
reminders:
  enabled: false
  scheduler_buffer: 16
defaults:
  color: mint
  emoji: "📝"
storage:
  backend: sqlite
  dsn: notes.db
http:
  read_timeout: 3s
ui:
  start_gallery: travel
  seed_samples: false
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Reminders.Enabled || cfg.Reminders.SchedulerBuffer != 16 {
		t.Fatalf("unexpected reminders: %+v", cfg.Reminders)
	}
	if cfg.Defaults.Color != "mint" || cfg.Defaults.Emoji != "📝" {
		t.Fatalf("unexpected defaults: %+v", cfg.Defaults)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.DSN != "notes.db" {
		t.Fatalf("unexpected storage: %+v", cfg.Storage)
	}
	if cfg.HTTP.ReadTimeout != 3*time.Second || cfg.HTTP.Port != "8080" {
		t.Fatalf("unexpected http: %+v", cfg.HTTP)
	}
	if cfg.UI.StartGallery != "travel" || cfg.UI.SeedSamples {
		t.Fatalf("unexpected ui: %+v", cfg.UI)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("STICKYNOTES_REMINDERS_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("STICKYNOTES_HTTP_PORT", "9090")
	t.Setenv("STICKYNOTES_DISPATCH_MAX_WORKERS", "8")
	t.Setenv("STICKYNOTES_STORAGE_BACKEND", "redis")
	t.Setenv("STICKYNOTES_STORAGE_DSN", "localhost:6379")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Reminders.DesktopNotifications {
		t.Fatal("expected desktop notifications true from env")
	}
	if cfg.HTTP.Port != "9090" || cfg.Dispatch.MaxWorkers != 8 {
		t.Fatalf("unexpected env overrides: http=%+v dispatch=%+v", cfg.HTTP, cfg.Dispatch)
	}
	if cfg.Storage.Backend != "redis" || cfg.Storage.DSN != "localhost:6379" {
		t.Fatalf("unexpected storage override: %+v", cfg.Storage)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"STICKYNOTES_STORAGE_BACKEND":            "etcd",
		"STICKYNOTES_DEFAULTS_COLOR":             "beige",
		"STICKYNOTES_UI_START_GALLERY":           "attic",
		"STICKYNOTES_DISPATCH_MAX_WORKERS":       "0",
		"STICKYNOTES_REMINDERS_SCHEDULER_BUFFER": "-1",
	}
	for env, value := range cases {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, value)
			if _, err := Load(""); err == nil {
				t.Fatalf("expected %s=%s to be rejected", env, value)
			}
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("reminders: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected malformed yaml to fail")
	}
}
