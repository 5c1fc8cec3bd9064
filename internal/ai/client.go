package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.perplexity.ai"

// ClientConfig holds the immutable settings for the Perplexity client.
// Credentials are passed in explicitly so the client stays testable
// without environment mutation.
type ClientConfig struct {
	APIKey        string
	BaseURL       string
	Model         string
	RecencyFilter string // "day", "week" or "month"
	Timeout       time.Duration
}

// Completion is the provider's raw answer: free text plus optional
// citation URLs. It is transient and never persisted.
type Completion struct {
	Content   string
	Citations []string
}

// Client issues single-shot chat-completion requests against the
// Perplexity API. It performs no retries of its own; the generation
// agent owns the retry policy.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
}

// NewClient constructs a client with sane defaults.
func NewClient(cfg ClientConfig, opts ...func(*Client)) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "sonar"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient overrides the internal HTTP client.
func WithHTTPClient(hc *http.Client) func(*Client) {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API base URL (useful for tests).
func WithBaseURL(url string) func(*Client) {
	return func(c *Client) {
		if url != "" {
			c.cfg.BaseURL = url
		}
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	Temperature         float64       `json:"temperature"`
	MaxTokens           int           `json:"max_tokens"`
	SearchRecencyFilter string        `json:"search_recency_filter,omitempty"`
	ReturnCitations     bool          `json:"return_citations"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

// Complete sends one chat-completion request and classifies failures into
// the typed error taxonomy: 429 becomes RateLimitError, 5xx becomes
// ServiceUnavailableError, other non-2xx become ModelHTTPError, and
// transport failures become ConnectionError.
func (c *Client) Complete(ctx context.Context, prompt string) (*Completion, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, fmt.Errorf("perplexity API key not configured")
	}

	body := chatRequest{
		Model:               c.cfg.Model,
		Messages:            []chatMessage{{Role: "user", Content: prompt}},
		Temperature:         0.2,
		MaxTokens:           2000,
		SearchRecencyFilter: c.cfg.RecencyFilter,
		ReturnCitations:     true,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.cfg.APIKey))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return nil, &RateLimitError{RetryAfter: retryAfter}
	case resp.StatusCode >= 500:
		return nil, &ServiceUnavailableError{StatusCode: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		return nil, &ModelHTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("parse perplexity response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("empty perplexity response")
	}

	content := chatResp.Choices[0].Message.Content
	slog.Debug("Perplexity request completed",
		"model", c.cfg.Model,
		"elapsed", time.Since(start),
		"citations", len(chatResp.Citations),
		"response_chars", len(content))

	return &Completion{Content: content, Citations: chatResp.Citations}, nil
}
