package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout   = 30 * time.Second
	defaultRetryAttempts = 3
	defaultRetryDelay    = 1 * time.Second
)

// Config captures the runtime settings required to talk to the translation
// model. The endpoint speaks the OpenAI chat completion protocol, so a local
// Ollama instance and hosted providers both work.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client wraps an OpenAI-compatible chat completion endpoint for segment
// translation.
type Client struct {
	cfg        Config
	httpClient *http.Client

	retryAttempts int
	retryDelay    time.Duration
	sleeper       func(time.Duration)
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetry overrides the retry count and delay between attempts.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retryAttempts = attempts
		}
		if delay >= 0 {
			c.retryDelay = delay
		}
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// NewClient constructs a translation client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			Model:          strings.TrimSpace(cfg.Model),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient:    &http.Client{Timeout: timeout},
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "http://localhost:11434/v1"
	}
	return client
}

// Request describes one segment translation.
type Request struct {
	Text          string
	SourceLang    string
	TargetLang    string
	BudgetSeconds float64
}

// Translate renders the segment text into the target language. Blank source
// text translates to blank output without touching the network.
func (c *Client) Translate(ctx context.Context, req Request) (string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", nil
	}
	if strings.TrimSpace(req.TargetLang) == "" {
		return "", errors.New("translate: target language required")
	}

	payload := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(req.SourceLang, req.TargetLang, req.BudgetSeconds)},
			{Role: "user", Content: text},
		},
		Temperature: 0.3,
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts(); attempt++ {
		content, retryable, err := c.sendOnce(ctx, payload)
		if err == nil {
			return cleanTranslation(content), nil
		}
		lastErr = err
		if !retryable || attempt == c.attempts() {
			break
		}
		if err := c.sleep(ctx, c.retryDelay); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("translate: %w", lastErr)
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) sendOnce(ctx context.Context, payload chatCompletionRequest) (string, bool, error) {
	endpoint, err := url.JoinPath(c.cfg.BaseURL, "chat", "completions")
	if err != nil {
		return "", false, fmt.Errorf("build url: %w", err)
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", false, fmt.Errorf("encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", false, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", false, err
		}
		return "", true, fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		retryable := resp.StatusCode == http.StatusTooManyRequests ||
			resp.StatusCode >= http.StatusInternalServerError
		return "", retryable, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	if completion.Error != nil {
		return "", false, fmt.Errorf("api error: %s", strings.TrimSpace(completion.Error.Message))
	}
	if len(completion.Choices) == 0 {
		return "", true, errors.New("empty choices")
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", true, errors.New("empty content")
	}
	return content, false, nil
}

func (c *Client) attempts() int {
	if c.retryAttempts <= 0 {
		return 1
	}
	return c.retryAttempts
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// cleanTranslation strips wrapping the model sometimes adds around the bare
// translation: code fences, surrounding quotes, and a leading label.
func cleanTranslation(content string) string {
	out := strings.TrimSpace(content)
	if strings.HasPrefix(out, "```") {
		out = strings.TrimPrefix(out, "```")
		if idx := strings.LastIndex(out, "```"); idx >= 0 {
			out = out[:idx]
		}
		out = strings.TrimSpace(out)
		if rest, ok := strings.CutPrefix(out, "json"); ok {
			out = strings.TrimSpace(rest)
		}
	}
	if len(out) >= 2 {
		if (out[0] == '"' && out[len(out)-1] == '"') || (out[0] == '\'' && out[len(out)-1] == '\'') {
			out = strings.TrimSpace(out[1 : len(out)-1])
		}
	}
	for _, label := range []string{"Translation:", "translation:"} {
		if strings.HasPrefix(out, label) {
			out = strings.TrimSpace(strings.TrimPrefix(out, label))
		}
	}
	return out
}
