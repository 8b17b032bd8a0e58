package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Version != "1" {
		t.Errorf("Expected version '1', got '%s'", cfg.Version)
	}

	if cfg.Server.Addr != ":3001" {
		t.Errorf("Expected addr ':3001', got '%s'", cfg.Server.Addr)
	}

	if cfg.Server.DatabaseURL != "" {
		t.Errorf("Expected empty database URL, got '%s'", cfg.Server.DatabaseURL)
	}

	if cfg.Server.SQLitePath != "mission-control.db" {
		t.Errorf("Expected sqlite path 'mission-control.db', got '%s'", cfg.Server.SQLitePath)
	}

	if cfg.Client.APIBase != "http://localhost:3001" {
		t.Errorf("Expected api base 'http://localhost:3001', got '%s'", cfg.Client.APIBase)
	}

	if !cfg.Randy.Enabled {
		t.Error("Expected randy to be enabled by default")
	}
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	if !strings.Contains(string(content), "api_base: http://localhost:3001") {
		t.Error("Expected api_base in config")
	}

	if !strings.Contains(string(content), "sqlite_path: mission-control.db") {
		t.Error("Expected sqlite_path in config")
	}
}

func TestWriteProjectDefault(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	if err := WriteProjectDefault(path); err != nil {
		t.Fatalf("WriteProjectDefault failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Config file not created: %v", err)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	content := `version: "1"
server:
  addr: ":4000"
client:
  api_base: http://example.com:3001
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg := DefaultConfig()
	if err := loadFile(path, cfg); err != nil {
		t.Fatalf("loadFile failed: %v", err)
	}

	if cfg.Server.Addr != ":4000" {
		t.Errorf("Expected addr ':4000', got '%s'", cfg.Server.Addr)
	}

	if cfg.Client.APIBase != "http://example.com:3001" {
		t.Errorf("Expected overridden api base, got '%s'", cfg.Client.APIBase)
	}

	// Untouched fields keep their defaults
	if cfg.Server.SQLitePath != "mission-control.db" {
		t.Errorf("Expected default sqlite path, got '%s'", cfg.Server.SQLitePath)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MC_ADDR", ":9999")
	t.Setenv("MC_PASSWORD", "hunter2")

	cfg := DefaultConfig()
	applyEnv(cfg)

	if cfg.Server.Addr != ":9999" {
		t.Errorf("Expected addr ':9999', got '%s'", cfg.Server.Addr)
	}

	if cfg.Server.Password != "hunter2" || cfg.Client.Password != "hunter2" {
		t.Error("Expected MC_PASSWORD to set both server and client passwords")
	}
}
