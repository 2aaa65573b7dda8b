package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/watchdog/watchdog/internal/core"
)

const BaseURL = "https://openrouter.ai/api/v1"

// DefaultModel is used when no model is configured.
const DefaultModel = "mistralai/mistral-7b-instruct"

// parseContent parses API content that may be string, null, or array of parts (e.g. [{"type":"text","text":"..."}]).
func parseContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &parts); err == nil {
		var b strings.Builder
		for _, p := range parts {
			if p.Type == "text" || p.Type == "" {
				b.WriteString(p.Text)
			}
		}
		return b.String()
	}
	return ""
}

// Message represents a chat message (OpenRouter/OpenAI format).
type Message = core.Message

// ChatRequest is the request body for chat completions.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// ChatResponse is the response from chat completions.
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
			Role    string          `json:"role"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client calls the OpenRouter chat completions API.
type Client struct {
	APIKey  string
	Model   string
	BaseURL string
	HTTP    *http.Client

	// MaxRetries is the number of extra attempts after a 429, a 5xx or a network error.
	MaxRetries int
	// Backoff is the first retry delay; it doubles on each attempt.
	Backoff time.Duration

	health clientHealth
}

var _ core.LLMClient = (*Client)(nil)

// NewClient creates a client with the given API key and model.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    BaseURL,
		HTTP:       &http.Client{Timeout: 60 * time.Second},
		MaxRetries: 3,
		Backoff:    time.Second,
	}
}

// ChatCompletion sends messages and returns the assistant reply content.
func (c *Client) ChatCompletion(ctx context.Context, messages []Message) (string, error) {
	content, err := c.chatCompletion(ctx, messages)
	if err != nil {
		c.health.recordError(err)
		return "", err
	}
	c.health.recordSuccess()
	return content, nil
}

func (c *Client) chatCompletion(ctx context.Context, messages []Message) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("openrouter: API key not set")
	}
	if c.Model == "" {
		return "", fmt.Errorf("openrouter: model not set")
	}
	body := ChatRequest{Model: c.Model, Messages: messages, MaxTokens: 300, Temperature: 0.4}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	// Exponential backoff retry for network errors and rate limits
	var resp *http.Response
	var errDo error
	backoff := c.Backoff
	for i := 0; i <= c.MaxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(raw))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
		req.Header.Set("X-Title", "WatchDog")

		resp, errDo = c.HTTP.Do(req)
		if errDo != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		if (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) && i < c.MaxRetries {
			resp.Body.Close()
			continue
		}
		break
	}
	if errDo != nil {
		return "", errDo
	}
	if resp == nil {
		return "", fmt.Errorf("openrouter: request failed after retries")
	}

	defer resp.Body.Close()
	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openrouter: HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}
	var out ChatResponse
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return "", fmt.Errorf("openrouter: decode: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("openrouter: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openrouter: no choices in response")
	}
	return parseContent(out.Choices[0].Message.Content), nil
}
