package models

import "time"

// AnswerSource identifies which kind of backend produced an answer.
type AnswerSource string

const (
	// AnswerSourceExtractive means a span-extraction QA model answered from context
	AnswerSourceExtractive AnswerSource = "extractive"
	// AnswerSourceGenerative means a generative LLM produced the answer
	AnswerSourceGenerative AnswerSource = "generative"
	// AnswerSourceError means every backend in the fallback chain failed
	AnswerSourceError AnswerSource = "error"
)

// AnswerResult is the terminal result of one orchestrated answering call.
type AnswerResult struct {
	Answer string       `json:"answer"`
	Source AnswerSource `json:"source"`

	// Provider and Model identify the backend that produced the answer
	Provider string `json:"provider"`
	Model    string `json:"model"`

	// Confidence is reported by extractive backends only
	Confidence *float64 `json:"confidence,omitempty"`

	// HasContext is true when retrieval supplied grounding text
	HasContext bool `json:"has_context"`

	// ProcessingTime is wall-clock duration of the orchestrator call
	ProcessingTime time.Duration `json:"processing_time"`
}
