package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultClaudeBaseURL = "https://api.anthropic.com"
	defaultClaudeModel   = "claude-sonnet-4-20250514"
	anthropicVersion     = "2023-06-01"
)

// Message is one turn of a conversation sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SendOptions tunes a single completion call.
type SendOptions struct {
	System    string
	MaxTokens int
}

// TokenUsage is the provider-reported token consumption.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Completion is a successful text response from the model.
type Completion struct {
	Text  string
	Model string
	Usage TokenUsage
}

// Completer is the text-completion capability consumed by the structured
// client. The Claude client is the production implementation; tests supply
// fakes.
type Completer interface {
	SendMessage(ctx context.Context, messages []Message, opts SendOptions) (*Completion, error)
}

// ClaudeConfig configures the Claude API client.
type ClaudeConfig struct {
	APIKey  string `envconfig:"CLAUDE_API_KEY"`
	BaseURL string `envconfig:"CLAUDE_BASE_URL"`
	Model   string `envconfig:"CLAUDE_MODEL"`
}

// ClaudeClient is a minimal client for the Anthropic Messages API.
type ClaudeClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewClaudeClient creates a Claude client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewClaudeClient(cfg *ClaudeConfig) *ClaudeClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("CLAUDE_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("CLAUDE_BASE_URL")
		if base == "" {
			base = defaultClaudeBaseURL
		}
	}

	model := defaultClaudeModel
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}

	return &ClaudeClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Model returns the model identifier used for completion calls.
func (c *ClaudeClient) Model() string {
	return c.model
}

// messagesRequest is the shape for Messages API requests
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

// messagesResponse is a minimal response shape
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model string     `json:"model"`
	Usage TokenUsage `json:"usage"`
}

// SendMessage sends the conversation to Claude and returns the text response.
// Any transport or provider failure, including rate limits and context
// cancellation, is returned as an *APIError.
func (c *ClaudeClient) SendMessage(ctx context.Context, messages []Message, opts SendOptions) (*Completion, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	reqBody := messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    opts.System,
		Messages:  messages,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &APIError{Message: "failed to encode request", Err: err}
	}

	endpoint := c.baseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, &APIError{Message: "failed to build request", Err: err}
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("claude returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var mr messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, &APIError{Message: "failed to decode response", Err: err}
	}

	text := ""
	for _, block := range mr.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, &APIError{Message: "empty response from claude"}
	}

	model := mr.Model
	if model == "" {
		model = c.model
	}

	return &Completion{Text: text, Model: model, Usage: mr.Usage}, nil
}
