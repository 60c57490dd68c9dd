package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/hoidap/internal/interfaces"
	"github.com/ternarybob/hoidap/internal/models"
	"github.com/ternarybob/hoidap/internal/services/lexicon"
	"github.com/ternarybob/hoidap/internal/services/llm"
)

const retrieveTopK = 2

// Orchestrator is the answering entry point. Per request it runs a fixed
// sequence: classify the question, retrieve grounding context, then answer
// through the extractive backend (factual questions with context) or a
// generative provider, degrading through an ordered fallback chain. Backends
// are tried sequentially, cheapest and most grounded first, never raced.
//
// Answer always returns a result. Only total backend exhaustion yields
// Source == AnswerSourceError, carrying the last failure's message.
type Orchestrator struct {
	store      interfaces.DocumentService
	lex        *lexicon.Lexicon
	extractive interfaces.ExtractiveService
	providers  *llm.Providers
	logger     arbor.ILogger
}

// NewOrchestrator wires the answering pipeline.
func NewOrchestrator(
	store interfaces.DocumentService,
	lex *lexicon.Lexicon,
	extractive interfaces.ExtractiveService,
	providers *llm.Providers,
	logger arbor.ILogger,
) interfaces.AnswerService {
	return &Orchestrator{
		store:      store,
		lex:        lex,
		extractive: extractive,
		providers:  providers,
		logger:     logger,
	}
}

// Answer implements interfaces.AnswerService
func (o *Orchestrator) Answer(ctx context.Context, req *interfaces.AnswerRequest) *models.AnswerResult {
	start := time.Now()

	questionType := o.lex.ClassifyQuestion(req.Question)
	passage := o.retrieve(req.Question)
	hasContext := passage != ""

	o.logger.Info().
		Str("question_type", string(questionType)).
		Bool("has_context", hasContext).
		Msg("Processing question")

	if questionType == lexicon.QuestionTypeFactual && hasContext {
		if result := o.tryExtract(ctx, req.Question, passage); result != nil {
			result.ProcessingTime = time.Since(start)
			return result
		}
	}

	result := o.generate(ctx, req, passage, questionType == lexicon.QuestionTypeAnalytical)
	result.HasContext = hasContext
	result.ProcessingTime = time.Since(start)
	return result
}

// retrieve finds grounding text for the question: term-weight search first,
// then keyword search over extracted keywords. The top result's content is
// the context; no result means answering proceeds ungrounded.
func (o *Orchestrator) retrieve(question string) string {
	docs := o.store.Search(question, retrieveTopK)
	if len(docs) == 0 {
		if keywords := o.lex.ExtractKeywords(question); len(keywords) > 0 {
			docs = o.store.KeywordSearch(keywords, retrieveTopK)
		}
	}
	if len(docs) == 0 {
		return ""
	}
	return docs[0].Content
}

// tryExtract runs the extractive backend against retrieved context. A failed
// call, an unsuccessful response or a blank answer all return nil so the
// caller continues to the generative path.
func (o *Orchestrator) tryExtract(ctx context.Context, question, passage string) *models.AnswerResult {
	if o.extractive == nil {
		return nil
	}

	res, err := o.extractive.AnswerQuestion(ctx, question, passage)
	if err != nil {
		o.logger.Warn().Err(err).Str("question", question).Msg("Extractive backend failed, continuing to generative path")
		return nil
	}
	if !res.Success || strings.TrimSpace(res.Answer) == "" {
		return nil
	}

	confidence := res.Confidence
	return &models.AnswerResult{
		Answer:     res.Answer,
		Source:     models.AnswerSourceExtractive,
		Provider:   "extractive",
		Model:      o.extractive.ModelName(),
		Confidence: &confidence,
		HasContext: true,
	}
}

// generate answers through the selected generative provider, falling back to
// the alternate provider and finally a context-free extractive attempt.
func (o *Orchestrator) generate(ctx context.Context, req *interfaces.AnswerRequest, passage string, analytical bool) *models.AnswerResult {
	messages := buildMessages(req.Question, passage, analytical)
	opts := interfaces.ChatOptions{Temperature: req.Temperature}

	primary := llm.ParseProvider(req.Provider, o.providers.Default())
	primarySvc := o.providers.Select(primary)
	if req.Model != "" {
		primarySvc.SetModel(req.Model)
	}

	result, err := primarySvc.Chat(ctx, messages, opts)
	if err == nil {
		return generativeResult(result.Answer, primary, primarySvc.ModelName())
	}
	o.logger.Error().
		Err(err).
		Str("provider", string(primary)).
		Str("question", req.Question).
		Msg("Primary provider failed, trying alternate")

	alternate := llm.Alternate(primary)
	alternateSvc := o.providers.Select(alternate)
	result, err2 := alternateSvc.Chat(ctx, messages, opts)
	if err2 == nil {
		return generativeResult(result.Answer, alternate, alternateSvc.ModelName())
	}
	o.logger.Error().
		Err(err2).
		Str("provider", string(alternate)).
		Str("question", req.Question).
		Msg("Alternate provider failed, trying context-free extractive")

	lastErr := err2
	if o.extractive != nil {
		res, err3 := o.extractive.AnswerQuestion(ctx, req.Question, "")
		if err3 == nil && res.Success && strings.TrimSpace(res.Answer) != "" {
			confidence := res.Confidence
			return &models.AnswerResult{
				Answer:     res.Answer,
				Source:     models.AnswerSourceExtractive,
				Provider:   "extractive",
				Model:      o.extractive.ModelName(),
				Confidence: &confidence,
			}
		}
		if err3 != nil {
			lastErr = err3
		}
	}

	o.logger.Error().Err(lastErr).Str("question", req.Question).Msg("All backends exhausted")
	return &models.AnswerResult{
		Answer:   fmt.Sprintf("Không thể xử lý yêu cầu do lỗi hệ thống: %s", lastErr.Error()),
		Source:   models.AnswerSourceError,
		Provider: string(primary),
		Model:    "none",
	}
}

// buildMessages assembles the generative conversation: a system message
// embedding the context when one exists, then the raw question.
func buildMessages(question, passage string, analytical bool) []models.Message {
	if passage == "" {
		return []models.Message{{Role: "user", Content: question}}
	}
	return []models.Message{
		{Role: "system", Content: contextInstruction(passage, analytical)},
		{Role: "user", Content: question},
	}
}

func generativeResult(answer string, provider llm.ProviderType, model string) *models.AnswerResult {
	return &models.AnswerResult{
		Answer:   answer,
		Source:   models.AnswerSourceGenerative,
		Provider: string(provider),
		Model:    model,
	}
}
