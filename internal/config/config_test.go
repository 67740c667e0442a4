package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	f := Flags()
	if err := f.Parse(nil); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Listen != ":8484" {
		t.Errorf("got listen %q, want \":8484\"", cfg.Listen)
	}
	if cfg.DBPath != "data/wortkarte.db" {
		t.Errorf("got db_path %q", cfg.DBPath)
	}
	if cfg.Import.DefaultCategory != "Word" {
		t.Errorf("got default category %q, want \"Word\"", cfg.Import.DefaultCategory)
	}
}

func TestLoadFlagOverride(t *testing.T) {
	f := Flags()
	if err := f.Parse([]string{"--listen", ":9000", "--db-path", "/tmp/test.db"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Listen != ":9000" {
		t.Errorf("got listen %q, want \":9000\"", cfg.Listen)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("got db_path %q, want \"/tmp/test.db\"", cfg.DBPath)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WORTKARTE_DEEPL_KEY", "secret")
	t.Setenv("WORTKARTE_LISTEN", ":7000")

	f := Flags()
	if err := f.Parse(nil); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DeepLKey != "secret" {
		t.Errorf("got deepl key %q, want \"secret\"", cfg.DeepLKey)
	}
	if cfg.Listen != ":7000" {
		t.Errorf("got listen %q, want \":7000\"", cfg.Listen)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "listen: \":6000\"\nimport:\n  default_category: Context\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f := Flags()
	if err := f.Parse([]string{"--config", path}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Listen != ":6000" {
		t.Errorf("got listen %q, want \":6000\"", cfg.Listen)
	}
	if cfg.Import.DefaultCategory != "Context" {
		t.Errorf("got default category %q, want \"Context\"", cfg.Import.DefaultCategory)
	}
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	t.Setenv("WORTKARTE_IMPORT__DEFAULT_CATEGORY", "Verb")

	f := Flags()
	if err := f.Parse(nil); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if _, err := Load(f); err == nil {
		t.Error("expected validation error for unknown default category")
	}
}
