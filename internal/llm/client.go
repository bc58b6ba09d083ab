// Package llm provides the completion client used to run product analyses.
// The Gemini client talks to the generateContent REST endpoint directly and
// always requests a JSON response body; downstream recovery handles whatever
// actually comes back.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNoAPIKey means the client was built without credentials. Callers show
// setup guidance instead of retrying.
var ErrNoAPIKey = errors.New("llm: API key not configured")

// Client is the completion surface the analyzer depends on.
type Client interface {
	// Complete sends a prompt and returns the raw completion text.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithSystem sends a prompt with a system instruction.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds the Gemini client settings.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	MaxOutputTokens int
}

// DefaultConfig returns sensible defaults. The flash-lite model keeps
// per-analysis cost low; 8192 output tokens covers a six-section analysis
// with headroom.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:          apiKey,
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		Model:           "gemini-2.5-flash-lite",
		Timeout:         2 * time.Minute,
		MaxOutputTokens: 8192,
	}
}

// GeminiClient implements Client against the Gemini REST API.
type GeminiClient struct {
	apiKey          string
	baseURL         string
	model           string
	maxOutputTokens int
	httpClient      *http.Client
	logger          *zap.Logger

	mu          sync.Mutex
	lastRequest time.Time
}

// NewGeminiClient creates a client with default settings.
func NewGeminiClient(apiKey string, logger *zap.Logger) *GeminiClient {
	return NewGeminiClientWithConfig(DefaultConfig(apiKey), logger)
}

// NewGeminiClientWithConfig creates a client with custom settings. Zero
// values in config fall back to the defaults.
func NewGeminiClientWithConfig(config Config, logger *zap.Logger) *GeminiClient {
	defaults := DefaultConfig(config.APIKey)
	if strings.TrimSpace(config.Model) == "" {
		config.Model = defaults.Model
	}
	if strings.TrimSpace(config.BaseURL) == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.MaxOutputTokens <= 0 {
		config.MaxOutputTokens = defaults.MaxOutputTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{
		apiKey:          config.APIKey,
		baseURL:         strings.TrimRight(config.BaseURL, "/"),
		model:           config.Model,
		maxOutputTokens: config.MaxOutputTokens,
		httpClient:      &http.Client{Timeout: config.Timeout},
		logger:          logger,
	}
}

// Model returns the model in use.
func (c *GeminiClient) Model() string { return c.model }

// Complete sends a prompt and returns the completion.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem sends a prompt with a system instruction. Requests are
// spaced at least 100ms apart; 429 responses retry with exponential backoff.
func (c *GeminiClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	// Auto-apply timeout if the context has no deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	start := time.Now()
	c.logger.Debug("gemini request",
		zap.String("model", c.model),
		zap.Int("system_len", len(systemPrompt)),
		zap.Int("user_len", len(userPrompt)))

	c.throttle()

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: userPrompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      1.0,
			MaxOutputTokens:  c.maxOutputTokens,
			ResponseMimeType: "application/json",
		},
	}
	if strings.TrimSpace(systemPrompt) != "" {
		reqBody.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	const maxRetries = 3
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(time.Duration(1<<uint(i-1)) * time.Second):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limit exceeded (429)")
			c.logger.Warn("gemini rate limited", zap.Int("attempt", i))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}

		var gr geminiResponse
		if err := json.Unmarshal(body, &gr); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}
		if gr.Error != nil {
			return "", fmt.Errorf("API error: %s", gr.Error.Message)
		}
		if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("no completion returned")
		}

		var out strings.Builder
		for _, part := range gr.Candidates[0].Content.Parts {
			out.WriteString(part.Text)
		}
		response := strings.TrimSpace(out.String())

		c.logger.Debug("gemini response",
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("response_len", len(response)),
			zap.String("finish_reason", gr.Candidates[0].FinishReason))
		return response, nil
	}

	c.logger.Error("gemini max retries exceeded",
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(lastErr))
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// throttle spaces requests at least 100ms apart.
func (c *GeminiClient) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elapsed := time.Since(c.lastRequest); elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
}
