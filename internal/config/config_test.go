package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "raven.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(cfg.ModulePaths) != 0 || cfg.Verbose {
		t.Fatalf("expected a zero-value config, got %+v", cfg)
	}
}

func TestLoadParsesModulePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raven.yaml")
	if err := os.WriteFile(path, []byte("module_paths:\n  - ./lib\n  - ./vendor\nverbose: true\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.ModulePaths) != 2 || cfg.ModulePaths[0] != "./lib" || cfg.ModulePaths[1] != "./vendor" {
		t.Fatalf("got %+v", cfg.ModulePaths)
	}
	if !cfg.Verbose {
		t.Fatal("expected verbose to be true")
	}
}
