// Package openai generates text through any OpenAI-compatible chat
// completions endpoint.
package openai

import (
	"context"

	"github.com/agentstation/zonemeta/internal/transport"
	"github.com/agentstation/zonemeta/pkg/errors"
)

const (
	// DefaultBaseURL is the OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"
)

// Config configures the backend.
type Config struct {
	Model      string
	APIKey     string
	BaseURL    string
	AuthScheme string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client implements enhancer.TextGenerator.
type Client struct {
	transport *transport.Client
	baseURL   string
	model     string
}

// New creates a Client.
func New(cfg Config, opts ...transport.Option) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		transport: transport.New("openai", transport.ParseAuth(cfg.AuthScheme), cfg.APIKey, opts...),
		baseURL:   baseURL,
		model:     model,
	}
}

// Name implements enhancer.TextGenerator.
func (c *Client) Name() string {
	return "openai"
}

// Generate implements enhancer.TextGenerator.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	req := chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	}

	resp, err := c.transport.PostJSON(ctx, transport.JoinURL(c.baseURL, "chat/completions"), req)
	if err != nil {
		return "", err
	}

	var out chatResponse
	if err := c.transport.DecodeResponse(resp, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", &errors.APIError{Provider: "openai", Message: "response has no choices"}
	}
	return out.Choices[0].Message.Content, nil
}
