package interfaces

import (
	"context"

	"github.com/ternarybob/hoidap/internal/models"
)

// ChatOptions carries per-call generation parameters.
type ChatOptions struct {
	// Temperature controls sampling randomness. Zero means use the
	// provider's configured default.
	Temperature float32

	// MaxTokens limits the response length. Zero means use the provider's
	// configured default.
	MaxTokens int
}

// ChatResult is a provider-agnostic generative completion.
type ChatResult struct {
	Answer string
}

// GenerativeService defines the interface for generative LLM backends
// (Gemini, Claude). Implementations call a cloud API with retry and rate
// limiting; a failed call returns an error which the orchestrator treats as a
// fallback trigger.
type GenerativeService interface {
	// Chat generates a completion for the conversation. Messages are in
	// chronological order; a "system" role message becomes the system
	// instruction where the provider supports one.
	Chat(ctx context.Context, messages []models.Message, opts ChatOptions) (*ChatResult, error)

	// SetModel overrides the model used for subsequent calls. Returns false
	// if the model name does not belong to this provider.
	SetModel(name string) bool

	// ModelName returns the model currently in use, for result reporting.
	ModelName() string
}

// ExtractiveResult is the outcome of a span-extraction QA call.
type ExtractiveResult struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Success    bool    `json:"success"`
}

// ExtractiveService defines the interface for extractive (machine reading
// comprehension) backends. Must be safe to call with an empty context: the
// backend degrades to "no answer" rather than erroring.
type ExtractiveService interface {
	// AnswerQuestion extracts an answer span for the question from the
	// supplied context passage.
	AnswerQuestion(ctx context.Context, question, passage string) (*ExtractiveResult, error)

	// ModelName returns the model identifier, for result reporting.
	ModelName() string

	// HealthCheck verifies the inference endpoint is reachable.
	HealthCheck(ctx context.Context) error
}
