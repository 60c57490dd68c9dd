package interfaces

import (
	"context"

	"github.com/ternarybob/hoidap/internal/models"
)

// AnswerRequest is the orchestrator's invocation contract.
type AnswerRequest struct {
	// Question is the raw user query. Required.
	Question string `json:"question" validate:"required"`

	// Provider selects the primary generative backend ("gemini" or
	// "claude"). Empty means the configured default.
	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=gemini claude"`

	// Model optionally overrides the provider's model.
	Model string `json:"model,omitempty"`

	// Temperature for generative calls. Zero means provider default.
	Temperature float32 `json:"temperature,omitempty" validate:"gte=0,lte=2"`
}

// AnswerService is the public entry point of the answering pipeline.
type AnswerService interface {
	// Answer runs the classify/retrieve/extract-or-generate state machine
	// and always returns a result; only total backend exhaustion yields a
	// result with Source == AnswerSourceError, and even then no error is
	// returned.
	Answer(ctx context.Context, req *AnswerRequest) *models.AnswerResult
}

// IntentService produces a structured intent for a query. Implementations
// never return an error: every failure degrades to an UNKNOWN intent.
type IntentService interface {
	Analyze(ctx context.Context, query string, provider, model string) *models.Intent
}
