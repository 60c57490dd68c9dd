package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/hoidap/internal/interfaces"
	"github.com/ternarybob/hoidap/internal/models"
	"github.com/ternarybob/hoidap/internal/services/lexicon"
	"github.com/ternarybob/hoidap/internal/services/llm"
)

// Generation parameters for the classification call. Low temperature reduces
// format drift in the returned JSON.
const (
	classifyTemperature = 0.2
	classifyMaxTokens   = 500
)

// Analyzer implements interfaces.IntentService. It produces a richer,
// LLM-grounded intent than the cheap question classifier: type, confidence
// and extracted parameters (keywords, filters, entities).
//
// Classification runs through the extractive backend first when a grounding
// document exists, then falls back to a generative provider with one retry
// against the alternate provider. Every failure mode is absorbed: callers
// always get an Intent, at worst UNKNOWN with zero confidence.
type Analyzer struct {
	store      interfaces.DocumentService
	lex        *lexicon.Lexicon
	extractive interfaces.ExtractiveService
	providers  *llm.Providers
	threshold  float64
	logger     arbor.ILogger
}

// NewAnalyzer creates an intent analyzer.
func NewAnalyzer(
	store interfaces.DocumentService,
	lex *lexicon.Lexicon,
	extractive interfaces.ExtractiveService,
	providers *llm.Providers,
	confidenceThreshold float64,
	logger arbor.ILogger,
) *Analyzer {
	return &Analyzer{
		store:      store,
		lex:        lex,
		extractive: extractive,
		providers:  providers,
		threshold:  confidenceThreshold,
		logger:     logger,
	}
}

// Analyze implements interfaces.IntentService
func (a *Analyzer) Analyze(ctx context.Context, query string, provider, model string) *models.Intent {
	a.logger.Debug().Str("query", query).Msg("Analyzing intent")

	if intent := a.analyzeGrounded(ctx, query); intent != nil {
		a.logger.Info().
			Str("intent_type", string(intent.IntentType)).
			Str("confidence", fmt.Sprintf("%.2f", intent.ConfidenceScore)).
			Msg("Intent classified by grounded extractive path")
		return intent
	}

	return a.analyzeGenerative(ctx, query, provider, model)
}

// analyzeGrounded attempts classification through the extractive backend
// anchored in a retrieved document. Returns nil when no grounding document
// exists or the result does not clear the confidence threshold, letting the
// caller fall through to the generative path.
func (a *Analyzer) analyzeGrounded(ctx context.Context, query string) *models.Intent {
	if a.extractive == nil {
		return nil
	}

	docs := a.store.Search(query, 2)
	if len(docs) == 0 {
		if keywords := a.lex.ExtractKeywords(query); len(keywords) > 0 {
			docs = a.store.KeywordSearch(keywords, 2)
		}
	}
	if len(docs) == 0 {
		return nil
	}

	passage := docs[0].Content
	response, err := a.extractive.AnswerQuestion(ctx, groundedPrompt(passage, query), passage)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Grounded intent classification failed")
		return nil
	}
	if !response.Success || strings.TrimSpace(response.Answer) == "" {
		return nil
	}

	intent := ParseIntent(response.Answer)
	if intent.IntentType == models.IntentUnknown || intent.ConfidenceScore <= a.threshold {
		return nil
	}
	return intent
}

// analyzeGenerative classifies via a generative provider, retrying once
// against the alternate provider before giving up.
func (a *Analyzer) analyzeGenerative(ctx context.Context, query string, provider, model string) *models.Intent {
	prompt := classificationPrompt(query)
	messages := []models.Message{{Role: "user", Content: prompt}}
	opts := interfaces.ChatOptions{
		Temperature: classifyTemperature,
		MaxTokens:   classifyMaxTokens,
	}

	primary := llm.ParseProvider(provider, a.providers.Default())

	primarySvc := a.providers.Select(primary)
	if model != "" {
		primarySvc.SetModel(model)
	}

	result, err := primarySvc.Chat(ctx, messages, opts)
	if err == nil {
		return ParseIntent(result.Answer)
	}
	a.logger.Error().
		Err(err).
		Str("provider", string(primary)).
		Str("query", query).
		Msg("Intent classification failed, trying alternate provider")

	alternate := llm.Alternate(primary)
	result, err2 := a.providers.Select(alternate).Chat(ctx, messages, opts)
	if err2 == nil {
		return ParseIntent(result.Answer)
	}
	a.logger.Error().
		Err(err2).
		Str("provider", string(alternate)).
		Str("query", query).
		Msg("Alternate provider also failed for intent classification")

	return models.UnknownIntent(fmt.Sprintf("intent analysis failed: %v", err))
}
