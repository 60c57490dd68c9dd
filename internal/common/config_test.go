package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Store.MinSimilarity != 0.1 {
		t.Errorf("default min_similarity = %v, want 0.1", cfg.Store.MinSimilarity)
	}
	if cfg.Intent.ConfidenceThreshold != 0.7 {
		t.Errorf("default confidence_threshold = %v, want 0.7", cfg.Intent.ConfidenceThreshold)
	}
	if cfg.LLM.DefaultProvider != LLMProviderGemini {
		t.Errorf("default provider = %q, want gemini", cfg.LLM.DefaultProvider)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFilesMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hoidap.toml")
	content := `
[server]
port = 9090

[store]
index_file = "/tmp/docs.json"
min_similarity = 0.25
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(path)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090 from file", cfg.Server.Port)
	}
	if cfg.Store.MinSimilarity != 0.25 {
		t.Errorf("min_similarity = %v, want 0.25 from file", cfg.Store.MinSimilarity)
	}
	// Untouched sections keep their defaults
	if cfg.Gemini.Model == "" {
		t.Error("gemini model default should survive partial file")
	}
}

func TestLoadFromFilesEnvOverride(t *testing.T) {
	t.Setenv("HOIDAP_SERVER_PORT", "7070")
	t.Setenv("HOIDAP_LOG_LEVEL", "debug")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070 from env", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug from env", cfg.Logging.Level)
	}
}

func TestLoadFromFilesRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	content := `
[store]
index_file = ""
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFiles(path); err == nil {
		t.Error("empty index_file should fail validation")
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("45s", time.Minute); got != 45*time.Second {
		t.Errorf("ParseDuration(45s) = %v", got)
	}
	if got := ParseDuration("", time.Minute); got != time.Minute {
		t.Errorf("ParseDuration(empty) = %v, want fallback", got)
	}
	if got := ParseDuration("garbage", time.Minute); got != time.Minute {
		t.Errorf("ParseDuration(garbage) = %v, want fallback", got)
	}
}

func TestResolveAPIKeyPriority(t *testing.T) {
	t.Setenv("HOIDAP_GEMINI_API_KEY", "from-env")

	key, err := ResolveAPIKey(t.Context(), nil, "gemini_api_key", "from-config")
	if err != nil {
		t.Fatalf("ResolveAPIKey failed: %v", err)
	}
	if key != "from-env" {
		t.Errorf("key = %q, want env value to win", key)
	}
}

func TestResolveAPIKeyConfigFallback(t *testing.T) {
	t.Setenv("HOIDAP_CLAUDE_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	key, err := ResolveAPIKey(t.Context(), nil, "anthropic_api_key", "from-config")
	if err != nil {
		t.Fatalf("ResolveAPIKey failed: %v", err)
	}
	if key != "from-config" {
		t.Errorf("key = %q, want config fallback", key)
	}
}
