package llm

import (
	"strings"

	"github.com/ternarybob/hoidap/internal/common"
	"github.com/ternarybob/hoidap/internal/interfaces"
)

// ProviderType identifies a generative backend. The set is closed: the
// fallback chain switches on this enum, so every provider is handled
// explicitly rather than looked up by free-form string.
type ProviderType string

const (
	// ProviderGemini uses the Google Gemini API
	ProviderGemini ProviderType = "gemini"
	// ProviderClaude uses the Anthropic Claude API
	ProviderClaude ProviderType = "claude"
)

// ParseProvider maps a request string to a provider type, falling back to the
// given default on empty or unrecognized input.
func ParseProvider(s string, fallback ProviderType) ProviderType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gemini", "google":
		return ProviderGemini
	case "claude", "anthropic":
		return ProviderClaude
	default:
		return fallback
	}
}

// Alternate returns the other configured provider, used as the first
// generative fallback.
func Alternate(p ProviderType) ProviderType {
	if p == ProviderGemini {
		return ProviderClaude
	}
	return ProviderGemini
}

// Providers holds one service per provider type plus the configured default.
type Providers struct {
	gemini          interfaces.GenerativeService
	claude          interfaces.GenerativeService
	defaultProvider ProviderType
}

// NewProviders wires the provider set from configuration.
func NewProviders(gemini, claude interfaces.GenerativeService, cfg *common.LLMConfig) *Providers {
	defaultProvider := ProviderGemini
	if cfg != nil && cfg.DefaultProvider == common.LLMProviderClaude {
		defaultProvider = ProviderClaude
	}
	return &Providers{
		gemini:          gemini,
		claude:          claude,
		defaultProvider: defaultProvider,
	}
}

// Default returns the configured default provider type.
func (p *Providers) Default() ProviderType {
	return p.defaultProvider
}

// Select returns the service for a provider type.
func (p *Providers) Select(t ProviderType) interfaces.GenerativeService {
	switch t {
	case ProviderClaude:
		return p.claude
	default:
		return p.gemini
	}
}
