package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chunking.Size != 500 {
		t.Errorf("expected chunk size 500, got %d", cfg.Chunking.Size)
	}
	if cfg.Chunking.Overlap != 50 {
		t.Errorf("expected chunk overlap 50, got %d", cfg.Chunking.Overlap)
	}
	if cfg.Retrieve.TopK != 5 {
		t.Errorf("expected TopK=5, got %d", cfg.Retrieve.TopK)
	}
	if cfg.LLM.APIKeyEnv != "ANTHROPIC_API_KEY" {
		t.Errorf("expected ANTHROPIC_API_KEY, got %s", cfg.LLM.APIKeyEnv)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "logtriage.yaml")

	content := `
chunking:
  size: 256
  overlap: 25
retrieve:
  top_k: 10
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Chunking.Size != 256 {
		t.Errorf("expected chunk size 256, got %d", cfg.Chunking.Size)
	}
	if cfg.Chunking.Overlap != 25 {
		t.Errorf("expected overlap 25, got %d", cfg.Chunking.Overlap)
	}
	if cfg.Retrieve.TopK != 10 {
		t.Errorf("expected TopK=10, got %d", cfg.Retrieve.TopK)
	}
	// Untouched sections keep their defaults.
	if cfg.LLM.Model == "" {
		t.Error("expected default LLM model to survive partial config")
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "logtriage.yaml")

	content := `
server:
  port: 9999
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Server.Port)
	}
}

func TestDurationFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Retrieve.CacheTTL = "not a duration"
	if cfg.CacheTTLDuration() != 5*time.Minute {
		t.Errorf("expected TTL fallback of 5m, got %v", cfg.CacheTTLDuration())
	}
	cfg.LLM.Timeout = "90s"
	if cfg.LLMTimeoutDuration() != 90*time.Second {
		t.Errorf("expected 90s, got %v", cfg.LLMTimeoutDuration())
	}
}

func TestDocDBPath(t *testing.T) {
	path := DocDBPath("/home/user/project")
	expected := filepath.Join("/home/user/project", ".logtriage", "docs.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}
