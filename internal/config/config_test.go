package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_ExplicitDir(t *testing.T) {
	cfg, err := New("/tmp/custom")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != "/tmp/custom" {
		t.Errorf("expected dir /tmp/custom, got %q", cfg.Dir)
	}
	if cfg.Settings != DefaultSettings() {
		t.Errorf("expected default settings, got %+v", cfg.Settings)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/xdg", AppName) {
		t.Errorf("expected %q, got %q", filepath.Join("/xdg", AppName), got)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, _ := New(t.TempDir())
	if err := cfg.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Settings.API.BaseURL != DefaultBaseURL {
		t.Errorf("expected base url %q, got %q", DefaultBaseURL, cfg.Settings.API.BaseURL)
	}
	if cfg.Settings.API.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.Settings.API.Timeout)
	}
	if cfg.Settings.Storage.Kind != StorageFile {
		t.Errorf("expected file storage, got %q", cfg.Settings.Storage.Kind)
	}
	if !cfg.Settings.Session.ClearOnUnauthorized {
		t.Error("expected clear_on_unauthorized to default to true")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := "api:\n  base_url: http://localhost:3000\n  timeout: 3s\nstorage:\n  kind: sqlite\nsession:\n  clear_on_unauthorized: false\n"
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte(yaml), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, _ := New(dir)
	if err := cfg.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Settings.API.BaseURL != "http://localhost:3000" {
		t.Errorf("expected base url from file, got %q", cfg.Settings.API.BaseURL)
	}
	if cfg.Settings.API.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %s", cfg.Settings.API.Timeout)
	}
	if cfg.Settings.Storage.Kind != StorageSQLite {
		t.Errorf("expected sqlite storage, got %q", cfg.Settings.Storage.Kind)
	}
	if cfg.Settings.Session.ClearOnUnauthorized {
		t.Error("expected clear_on_unauthorized false from file")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "api:\n  base_url: http://from-file\n"
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte(yaml), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("TASKCLI_API_BASE_URL", "http://from-env")
	t.Setenv("TASKCLI_API_TIMEOUT", "2s")

	cfg, _ := New(dir)
	if err := cfg.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Settings.API.BaseURL != "http://from-env" {
		t.Errorf("expected env base url, got %q", cfg.Settings.API.BaseURL)
	}
	if cfg.Settings.API.Timeout != 2*time.Second {
		t.Errorf("expected 2s timeout from env, got %s", cfg.Settings.API.Timeout)
	}
}

func TestLoad_UnknownStorageKind(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte("storage:\n  kind: redis\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, _ := New(dir)
	if err := cfg.Load(); err == nil {
		t.Fatal("expected error for unknown storage kind")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte("api: [unclosed\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, _ := New(dir)
	if err := cfg.Load(); err == nil {
		t.Fatal("expected error for malformed config.yaml")
	}
}
