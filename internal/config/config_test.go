package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(configFile, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Remote.BaseURL != "http://localhost:5116" {
		t.Errorf("expected default base url, got %q", cfg.Remote.BaseURL)
	}
	if cfg.Remote.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.Remote.Timeout)
	}
	if cfg.Sync.SingleFlight || cfg.Sync.KeepDraftOnFailure {
		t.Errorf("expected sync options off by default, got %+v", cfg.Sync)
	}
	if cfg.Store.Addr != ":5116" || cfg.Console.Addr != ":8081" {
		t.Errorf("unexpected listen addresses %q %q", cfg.Store.Addr, cfg.Console.Addr)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(configFile, "")
	t.Setenv("INVENTORY_REMOTE_BASE_URL", "http://store:9000")
	t.Setenv("INVENTORY_REMOTE_TIMEOUT", "2s")
	t.Setenv("INVENTORY_SYNC_SINGLE_FLIGHT", "true")
	t.Setenv("INVENTORY_REDIS_JOURNAL_MAX", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Remote.BaseURL != "http://store:9000" {
		t.Errorf("expected base url from env, got %q", cfg.Remote.BaseURL)
	}
	if cfg.Remote.Timeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %v", cfg.Remote.Timeout)
	}
	if !cfg.Sync.SingleFlight {
		t.Error("expected single flight from env")
	}
	if cfg.Redis.JournalMax != 10 {
		t.Errorf("expected journal max 10, got %d", cfg.Redis.JournalMax)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	content := "remote:\n  base_url: http://file-store:7000\n  token: abc\nsync:\n  keep_draft_on_failure: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv(configFile, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Remote.BaseURL != "http://file-store:7000" || cfg.Remote.Token != "abc" {
		t.Errorf("unexpected remote config %+v", cfg.Remote)
	}
	if !cfg.Sync.KeepDraftOnFailure {
		t.Error("expected keep draft from file")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(configFile, filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
