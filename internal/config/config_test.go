package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SMARTIME_DB", "")
	t.Setenv("SMARTIME_EXPORT_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath == "" {
		t.Fatal("expected a default db path")
	}
	if cfg.ExportDir == "" {
		t.Fatal("expected a default export dir")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SMARTIME_DB", "/tmp/custom.db")
	t.Setenv("SMARTIME_EXPORT_DIR", "/tmp/exports")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("db path %q", cfg.DBPath)
	}
	if cfg.ExportDir != "/tmp/exports" {
		t.Fatalf("export dir %q", cfg.ExportDir)
	}
}
