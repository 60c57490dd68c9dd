package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/hoidap/internal/common"
	"github.com/ternarybob/hoidap/internal/interfaces"
	"github.com/ternarybob/hoidap/internal/models"
)

// ClaudeService implements interfaces.GenerativeService against the Anthropic
// Claude API.
type ClaudeService struct {
	mu          sync.Mutex
	client      anthropic.Client
	initialized bool
	model       string
	config      *common.ClaudeConfig
	kvStorage   interfaces.KeyValueStorage
	limiter     *rate.Limiter
	timeout     time.Duration
	logger      arbor.ILogger
}

// NewClaudeService creates a Claude-backed generative service.
func NewClaudeService(config *common.ClaudeConfig, kvStorage interfaces.KeyValueStorage, logger arbor.ILogger) *ClaudeService {
	interval := common.ParseDuration(config.RateLimit, time.Second)
	return &ClaudeService{
		model:     config.Model,
		config:    config,
		kvStorage: kvStorage,
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
		timeout:   common.ParseDuration(config.Timeout, 30*time.Second),
		logger:    logger,
	}
}

// getClient returns the Claude client, creating one if necessary.
func (s *ClaudeService) getClient(ctx context.Context) (anthropic.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return s.client, nil
	}

	apiKey, err := common.ResolveAPIKey(ctx, s.kvStorage, "anthropic_api_key", s.config.APIKey)
	if err != nil {
		return anthropic.Client{}, fmt.Errorf("failed to resolve Anthropic API key: %w", err)
	}

	s.client = anthropic.NewClient(option.WithAPIKey(apiKey))
	s.initialized = true
	return s.client, nil
}

// Chat implements interfaces.GenerativeService
func (s *ClaudeService) Chat(ctx context.Context, messages []models.Message, opts interfaces.ChatOptions) (*interfaces.ChatResult, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	claudeMessages, systemText := convertMessagesToClaude(messages)
	if len(claudeMessages) == 0 {
		return nil, fmt.Errorf("no user or assistant messages to send")
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.config.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.ModelName()),
		MaxTokens: int64(maxTokens),
		Messages:  claudeMessages,
	}

	temp := opts.Temperature
	if temp <= 0 {
		temp = s.config.Temperature
	}
	if temp > 0 {
		params.Temperature = anthropic.Float(float64(temp))
	}

	if systemText != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemText},
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var resp *anthropic.Message
	var apiErr error
	retryConfig := NewDefaultRetryConfig()

	for attempt := 0; attempt <= retryConfig.MaxRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		resp, apiErr = client.Messages.New(callCtx, params)
		cancel()
		if apiErr == nil {
			break
		}

		if attempt == retryConfig.MaxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * 2 * time.Second
		if IsRateLimitError(apiErr) {
			backoff = retryConfig.CalculateBackoff(attempt, 0)
		}

		s.logger.Warn().
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(apiErr).
			Msg("Retrying Claude API call")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	if apiErr != nil {
		return nil, fmt.Errorf("Claude API call failed after %d retries: %w", retryConfig.MaxRetries, apiErr)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("empty response from Claude API")
	}

	return &interfaces.ChatResult{Answer: text.String()}, nil
}

// SetModel implements interfaces.GenerativeService. Only Claude model names
// are accepted.
func (s *ClaudeService) SetModel(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || !strings.HasPrefix(strings.ToLower(name), "claude-") {
		return false
	}
	s.mu.Lock()
	s.model = name
	s.mu.Unlock()
	return true
}

// ModelName implements interfaces.GenerativeService
func (s *ClaudeService) ModelName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model != "" {
		return s.model
	}
	return s.config.Model
}

// convertMessagesToClaude converts chat messages to Claude message params.
// System messages are pulled out into the system text.
func convertMessagesToClaude(messages []models.Message) ([]anthropic.MessageParam, string) {
	var claudeMessages []anthropic.MessageParam
	var systemParts []string

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			systemParts = append(systemParts, msg.Content)
		case "assistant":
			claudeMessages = append(claudeMessages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			claudeMessages = append(claudeMessages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	return claudeMessages, strings.Join(systemParts, "\n\n")
}
