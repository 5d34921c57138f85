package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DBPath == "" {
		t.Fatal("expected default db path")
	}
	if cfg.ListenAddr != ":8787" {
		t.Fatalf("listen addr = %q, want :8787", cfg.ListenAddr)
	}
	if cfg.Debounce.Duration != 300*time.Millisecond {
		t.Fatalf("debounce = %v, want 300ms", cfg.Debounce.Duration)
	}
	if cfg.SuggestLimit != 5 {
		t.Fatalf("suggest limit = %d, want 5", cfg.SuggestLimit)
	}
}

func TestLoadConfigParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
db_path = "/tmp/test-content.db"
content_file = "/tmp/content.json"
listen_addr = ":9999"
default_limit = 25
suggest_limit = 8
debounce = "150ms"
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DBPath != "/tmp/test-content.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.ContentFile != "/tmp/content.json" {
		t.Fatalf("content file = %q", cfg.ContentFile)
	}
	if cfg.ListenAddr != ":9999" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.DefaultLimit != 25 || cfg.SuggestLimit != 8 {
		t.Fatalf("limits = %d/%d", cfg.DefaultLimit, cfg.SuggestLimit)
	}
	if cfg.Debounce.Duration != 150*time.Millisecond {
		t.Fatalf("debounce = %v", cfg.Debounce.Duration)
	}
}

func TestLoadConfigInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("db_path = [broken"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid toml")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := &Config{
		DBPath:     "/tmp/roundtrip.db",
		ListenAddr: ":8080",
		Debounce:   Duration{500 * time.Millisecond},
	}
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.DBPath != cfg.DBPath || loaded.ListenAddr != cfg.ListenAddr {
		t.Fatalf("round trip changed config: %+v", loaded)
	}
	if loaded.Debounce.Duration != 500*time.Millisecond {
		t.Fatalf("debounce = %v, want 500ms", loaded.Debounce.Duration)
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := &Config{DBPath: "/custom/content.db"}
	if err := cfg.SaveTemplateConfig(path); err != nil {
		t.Fatalf("save template failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading template: %v", err)
	}
	if !strings.Contains(string(data), "/custom/content.db") {
		t.Fatalf("template missing substituted db path:\n%s", data)
	}
}
