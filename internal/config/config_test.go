package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("Listen = %q, want :8080", cfg.Listen)
	}
	if cfg.LaneCount != 3 {
		t.Errorf("LaneCount = %d, want 3", cfg.LaneCount)
	}
	if !cfg.KnownLocation("aula-lantai-1") {
		t.Error("default locations missing aula-lantai-1")
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
listen: ":9090"
session_ttl: 5m
tokens:
  - token: secret-1
    id: u1
    name: Alice
    role: admin
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":9090" {
		t.Errorf("Listen = %q, want :9090", cfg.Listen)
	}
	if cfg.SessionTTL.Std() != 5*time.Minute {
		t.Errorf("SessionTTL = %v, want 5m", cfg.SessionTTL.Std())
	}
	// Unspecified fields fall back to defaults.
	if cfg.ReminderCron != "*/10 * * * *" {
		t.Errorf("ReminderCron = %q, want default", cfg.ReminderCron)
	}
	if len(cfg.Tokens) != 1 || cfg.Tokens[0].ID != "u1" {
		t.Errorf("Tokens = %+v, want one entry for u1", cfg.Tokens)
	}
}

func TestLoadRejectsIncompleteToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
tokens:
  - name: NoToken
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for token entry without token or id")
	}
}

func TestKnownLocation(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.KnownLocation("gudang") {
		t.Error("unexpected venue accepted")
	}
	if !cfg.KnownLocation("aula-lantai-2") {
		t.Error("configured venue rejected")
	}
}
