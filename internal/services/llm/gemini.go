package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/ternarybob/hoidap/internal/common"
	"github.com/ternarybob/hoidap/internal/interfaces"
	"github.com/ternarybob/hoidap/internal/models"
)

// GeminiService implements interfaces.GenerativeService against the Google
// Gemini API. The client is created lazily on first use so the service can be
// constructed before an API key is available.
type GeminiService struct {
	mu        sync.Mutex
	client    *genai.Client
	model     string
	config    *common.GeminiConfig
	kvStorage interfaces.KeyValueStorage
	limiter   *rate.Limiter
	timeout   time.Duration
	logger    arbor.ILogger
}

// NewGeminiService creates a Gemini-backed generative service.
func NewGeminiService(config *common.GeminiConfig, kvStorage interfaces.KeyValueStorage, logger arbor.ILogger) *GeminiService {
	interval := common.ParseDuration(config.RateLimit, 4*time.Second)
	return &GeminiService{
		model:     config.Model,
		config:    config,
		kvStorage: kvStorage,
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
		timeout:   common.ParseDuration(config.Timeout, 30*time.Second),
		logger:    logger,
	}
}

// getClient returns the Gemini client, creating one if necessary.
func (s *GeminiService) getClient(ctx context.Context) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	apiKey, err := common.ResolveAPIKey(ctx, s.kvStorage, "gemini_api_key", s.config.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve Gemini API key: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	s.client = client
	return client, nil
}

// Chat implements interfaces.GenerativeService
func (s *GeminiService) Chat(ctx context.Context, messages []models.Message, opts interfaces.ChatOptions) (*interfaces.ChatResult, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	contents, systemText := convertMessagesToGemini(messages)
	if len(contents) == 0 {
		return nil, fmt.Errorf("no user or assistant messages to send")
	}

	temp := opts.Temperature
	if temp <= 0 {
		temp = s.config.Temperature
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.config.MaxTokens
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temp),
		MaxOutputTokens: int32(maxTokens),
	}
	if systemText != "" {
		config.SystemInstruction = genai.NewContentFromText(systemText, genai.RoleUser)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	model := s.ModelName()

	var resp *genai.GenerateContentResponse
	var apiErr error
	retryConfig := NewDefaultRetryConfig()

	for attempt := 0; attempt <= retryConfig.MaxRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		resp, apiErr = client.Models.GenerateContent(callCtx, model, contents, config)
		cancel()
		if apiErr == nil {
			break
		}

		if attempt == retryConfig.MaxRetries {
			break
		}

		var backoff time.Duration
		if IsRateLimitError(apiErr) {
			backoff = retryConfig.CalculateBackoff(attempt, ExtractRetryDelay(apiErr))
		} else {
			backoff = time.Duration(attempt+1) * 2 * time.Second
		}

		s.logger.Warn().
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(apiErr).
			Msg("Retrying Gemini API call")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	if apiErr != nil {
		return nil, fmt.Errorf("Gemini API call failed after %d retries: %w", retryConfig.MaxRetries, apiErr)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini API")
	}
	responseText := resp.Text()
	if responseText == "" {
		return nil, fmt.Errorf("empty text in Gemini response")
	}

	return &interfaces.ChatResult{Answer: responseText}, nil
}

// SetModel implements interfaces.GenerativeService. Only Gemini model names
// are accepted.
func (s *GeminiService) SetModel(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || !strings.HasPrefix(strings.ToLower(name), "gemini-") {
		return false
	}
	s.mu.Lock()
	s.model = name
	s.mu.Unlock()
	return true
}

// ModelName implements interfaces.GenerativeService
func (s *GeminiService) ModelName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model != "" {
		return s.model
	}
	return s.config.Model
}

// convertMessagesToGemini converts chat messages to Gemini contents.
// System messages are accumulated into the system instruction text.
func convertMessagesToGemini(messages []models.Message) ([]*genai.Content, string) {
	var contents []*genai.Content
	var systemParts []string

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			systemParts = append(systemParts, msg.Content)
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	return contents, strings.Join(systemParts, "\n\n")
}
