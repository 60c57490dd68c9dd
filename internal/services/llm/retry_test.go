package llm

import (
	"errors"
	"testing"
	"time"
)

func TestIsRateLimitError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Nil error", nil, false},
		{"429 status", errors.New("Error 429: too many requests"), true},
		{"RESOURCE_EXHAUSTED", errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{"Quota message", errors.New("quota exceeded for model"), true},
		{"Unrelated error", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRateLimitError(tt.err); got != tt.expected {
				t.Errorf("IsRateLimitError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExtractRetryDelay(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected time.Duration
	}{
		{
			name:     "Please retry pattern",
			err:      errors.New("Error 429 ... Please retry in 45.5s., Status: RESOURCE_EXHAUSTED"),
			expected: 45500 * time.Millisecond,
		},
		{
			name:     "retryDelay pattern",
			err:      errors.New("retryDelay: 10s"),
			expected: 10 * time.Second,
		},
		{
			name:     "No delay present",
			err:      errors.New("some other error"),
			expected: 0,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractRetryDelay(tt.err); got != tt.expected {
				t.Errorf("ExtractRetryDelay(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	config := &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    2 * time.Second,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2,
	}

	t.Run("First attempt uses initial backoff", func(t *testing.T) {
		if got := config.CalculateBackoff(0, 0); got != 2*time.Second {
			t.Errorf("backoff = %v, want 2s", got)
		}
	})

	t.Run("Backoff grows with attempts", func(t *testing.T) {
		if got := config.CalculateBackoff(1, 0); got != 4*time.Second {
			t.Errorf("backoff = %v, want 4s", got)
		}
	})

	t.Run("API delay overrides base", func(t *testing.T) {
		if got := config.CalculateBackoff(0, 5*time.Second); got != 5*time.Second {
			t.Errorf("backoff = %v, want 5s", got)
		}
	})

	t.Run("Capped at maximum", func(t *testing.T) {
		if got := config.CalculateBackoff(5, 0); got != 10*time.Second {
			t.Errorf("backoff = %v, want cap 10s", got)
		}
	})
}

func TestParseProviderAndAlternate(t *testing.T) {
	if got := ParseProvider("claude", ProviderGemini); got != ProviderClaude {
		t.Errorf("ParseProvider(claude) = %v", got)
	}
	if got := ParseProvider("anthropic", ProviderGemini); got != ProviderClaude {
		t.Errorf("ParseProvider(anthropic) = %v", got)
	}
	if got := ParseProvider("", ProviderClaude); got != ProviderClaude {
		t.Errorf("ParseProvider(empty) = %v, want fallback", got)
	}
	if got := ParseProvider("nonsense", ProviderGemini); got != ProviderGemini {
		t.Errorf("ParseProvider(nonsense) = %v, want fallback", got)
	}

	if Alternate(ProviderGemini) != ProviderClaude {
		t.Error("Alternate(gemini) should be claude")
	}
	if Alternate(ProviderClaude) != ProviderGemini {
		t.Error("Alternate(claude) should be gemini")
	}
}
