package common

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/ternarybob/hoidap/internal/interfaces"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Storage     StorageConfig    `toml:"storage"`
	Store       StoreConfig      `toml:"store"`
	Logging     LoggingConfig    `toml:"logging"`
	Gemini      GeminiConfig     `toml:"gemini"`
	Claude      ClaudeConfig     `toml:"claude"`
	LLM         LLMConfig        `toml:"llm"`
	Extractive  ExtractiveConfig `toml:"extractive"`
	Intent      IntentConfig     `toml:"intent"`
	Cache       CacheConfig      `toml:"cache"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gte=0,lte=65535"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration for the KV store
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// StoreConfig contains configuration for the document store
type StoreConfig struct {
	// IndexFile is the JSON file holding the full document collection.
	// Read once at startup, rewritten on every mutation.
	IndexFile string `toml:"index_file" validate:"required"`

	// MinSimilarity is the relevance floor for semantic search. Results at
	// or below this score are dropped.
	MinSimilarity float64 `toml:"min_similarity" validate:"gte=0,lte=1"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output []string `toml:"output"`                                      // "stdout", "file"
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key
	Model       string  `toml:"model"`       // Model for chat completions (default: "gemini-2.0-flash")
	Timeout     string  `toml:"timeout"`     // Per-call timeout as duration string (default: "30s")
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between calls (default: "4s" for 15 RPM)
	Temperature float32 `toml:"temperature"` // Chat completion temperature (default: 0.7)
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 1000)
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for chat completions (default: "claude-haiku-3-5-20241022")
	Timeout     string  `toml:"timeout"`     // Per-call timeout as duration string (default: "30s")
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between calls (default: "1s")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.7)
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 1000)
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	LLMProviderGemini LLMProvider = "gemini"
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains provider selection configuration
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider" validate:"oneof=gemini claude"` // Default provider: "gemini" or "claude"
}

// ExtractiveConfig contains configuration for the span-extraction QA backend
type ExtractiveConfig struct {
	BaseURL string `toml:"base_url"` // Inference server base URL
	Model   string `toml:"model"`    // Model identifier reported in results
	Timeout string `toml:"timeout"`  // Per-call timeout as duration string (default: "30s")
}

// IntentConfig contains configuration for intent analysis
type IntentConfig struct {
	// ConfidenceThreshold gates the extractive-grounded classification path.
	// Results at or below this confidence fall through to the generative
	// classifier.
	ConfidenceThreshold float64 `toml:"confidence_threshold" validate:"gte=0,lte=1"`
}

// CacheConfig contains configuration for the answer cache owned by the
// transport layer
type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	MaxEntries int    `toml:"max_entries" validate:"gte=0"` // Bounded capacity; oldest entry evicted when full
	TTL        string `toml:"ttl"`                          // Entry lifetime as duration string (default: "5m")
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability; only
// user-facing settings should be exposed in hoidap.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/badger",
				ResetOnStartup: false,
			},
		},
		Store: StoreConfig{
			IndexFile:     "./data/document_index.json",
			MinSimilarity: 0.1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.0-flash",
			Timeout:     "30s",
			RateLimit:   "4s",
			Temperature: 0.7,
			MaxTokens:   1000,
		},
		Claude: ClaudeConfig{
			Model:       "claude-haiku-3-5-20241022",
			Timeout:     "30s",
			RateLimit:   "1s",
			Temperature: 0.7,
			MaxTokens:   1000,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
		Extractive: ExtractiveConfig{
			BaseURL: "http://localhost:8500",
			Model:   "vi-mrc-large",
			Timeout: "30s",
		},
		Intent: IntentConfig{
			ConfidenceThreshold: 0.7,
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 256,
			TTL:        "5m",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2
// -> ... -> env. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against struct validation tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("HOIDAP_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("HOIDAP_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("HOIDAP_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if indexFile := os.Getenv("HOIDAP_STORE_INDEX_FILE"); indexFile != "" {
		config.Store.IndexFile = indexFile
	}
	if badgerPath := os.Getenv("HOIDAP_STORAGE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if level := os.Getenv("HOIDAP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if key := os.Getenv("HOIDAP_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if model := os.Getenv("HOIDAP_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if key := os.Getenv("HOIDAP_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if model := os.Getenv("HOIDAP_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if provider := os.Getenv("HOIDAP_LLM_DEFAULT_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}
	if url := os.Getenv("HOIDAP_EXTRACTIVE_BASE_URL"); url != "" {
		config.Extractive.BaseURL = url
	}
}

// ParseDuration parses a duration string from config, falling back to the
// given default on empty or malformed input.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// ResolveAPIKey resolves an API key by name with environment variable priority.
// Resolution order: environment variables -> KV store -> config fallback -> error.
func ResolveAPIKey(ctx context.Context, kvStorage interfaces.KeyValueStorage, name string, configFallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"gemini_api_key":    {"HOIDAP_GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_KEY"},
		"anthropic_api_key": {"HOIDAP_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	if kvStorage != nil {
		apiKey, err := kvStorage.Get(ctx, name)
		if err == nil && apiKey != "" {
			return apiKey, nil
		}
	}

	if configFallback != "" {
		return configFallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment, KV store, or config", name)
}
