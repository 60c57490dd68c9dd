package extractive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/hoidap/internal/common"
	"github.com/ternarybob/hoidap/internal/interfaces"
)

// Client implements interfaces.ExtractiveService against a span-extraction
// (machine reading comprehension) inference server. The server answers by
// selecting a contiguous span from the supplied context passage and reports a
// confidence for the span.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     arbor.ILogger
}

// NewClient creates an extractive QA client.
func NewClient(config *common.ExtractiveConfig, logger arbor.ILogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: common.ParseDuration(config.Timeout, 30*time.Second),
		},
		logger: logger,
	}
}

type answerRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type answerResponse struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Success    bool    `json:"success"`
}

// AnswerQuestion implements interfaces.ExtractiveService. An empty passage is
// a legal input: the backend degrades to an unsuccessful result rather than
// erroring.
func (c *Client) AnswerQuestion(ctx context.Context, question, passage string) (*interfaces.ExtractiveResult, error) {
	body, err := json.Marshal(answerRequest{Question: question, Context: passage})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/answer", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extractive backend call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("extractive backend returned status %d: %s", resp.StatusCode, string(snippet))
	}

	var parsed answerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode extractive response: %w", err)
	}

	c.logger.Debug().
		Str("question", question).
		Str("confidence", fmt.Sprintf("%.2f", parsed.Confidence)).
		Str("success", fmt.Sprintf("%v", parsed.Success)).
		Msg("Extractive backend answered")

	return &interfaces.ExtractiveResult{
		Answer:     parsed.Answer,
		Confidence: parsed.Confidence,
		Success:    parsed.Success,
	}, nil
}

// ModelName implements interfaces.ExtractiveService
func (c *Client) ModelName() string {
	return c.model
}

// HealthCheck implements interfaces.ExtractiveService
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("extractive backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("extractive backend unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
