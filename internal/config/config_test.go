package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `
debug: true
server:
  host: 0.0.0.0
  port: 9090
storage:
  driver: sqlite
  database_path: ./listings.db
data:
  dir: ./data
  watch_reload: true
search:
  default_limit: 20
scoring:
  title_term_score: 30
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Debug || cfg.Server.Port != 9090 {
		t.Errorf("explicit values lost: %+v", cfg)
	}
	if cfg.Storage.DatabasePath != filepath.Join(dir, "listings.db") {
		t.Errorf("database path not expanded: %q", cfg.Storage.DatabasePath)
	}
	if cfg.Data.Dir != filepath.Join(dir, "data") {
		t.Errorf("data dir not expanded: %q", cfg.Data.Dir)
	}
	if cfg.Search.DefaultLimit != 20 {
		t.Errorf("DefaultLimit = %d, want 20", cfg.Search.DefaultLimit)
	}
	// Unset fields pick up defaults.
	if cfg.Search.MaxLimit != 100 || cfg.Search.OverfetchFactor != 5 {
		t.Errorf("search defaults not applied: %+v", cfg.Search)
	}
	if cfg.Scoring.TitleTermScore != 30 || cfg.Scoring.CategoryScore != 15 {
		t.Errorf("scoring merge wrong: %+v", cfg.Scoring)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("default driver = %q, want sqlite", cfg.Storage.Driver)
	}
	if cfg.Search.MaxQueryTerms != 8 {
		t.Errorf("MaxQueryTerms = %d, want 8", cfg.Search.MaxQueryTerms)
	}
	if cfg.Scoring.NoiseThreshold != 10 {
		t.Errorf("NoiseThreshold = %v, want 10", cfg.Scoring.NoiseThreshold)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BUSCADOR_POSTGRES_DSN", "postgres://buscador:pw@localhost/buscador")
	t.Setenv("BUSCADOR_DEBUG", "true")

	cfg := Default()
	if cfg.Storage.Driver != "postgres" {
		t.Errorf("driver = %q, want postgres when DSN is set", cfg.Storage.Driver)
	}
	if cfg.Storage.PostgresDSN == "" {
		t.Error("DSN override lost")
	}
	if !cfg.Debug {
		t.Error("debug override lost")
	}
}
