// Package gemini generates text with Google's Gemini models through the genai
// SDK, using either the Gemini API (API key) or Vertex AI (project and
// location with Application Default Credentials).
package gemini

import (
	"context"
	"math"

	"google.golang.org/genai"

	"github.com/agentstation/zonemeta/pkg/errors"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Config configures the Gemini backend. Vertex AI is used when Project is set.
type Config struct {
	Model    string
	APIKey   string
	Project  string
	Location string
	BaseURL  string
}

// Client implements enhancer.TextGenerator.
type Client struct {
	client *genai.Client
	model  string
}

// New creates a Gemini client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	cc := &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	}
	if cfg.Project != "" {
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
		if cc.Location == "" {
			cc.Location = "us-central1"
		}
	} else {
		if cfg.APIKey == "" {
			return nil, &errors.ConfigError{
				Component: "gemini",
				Message:   "no valid configuration found - set GEMINI_API_KEY for the Gemini API or GOOGLE_CLOUD_PROJECT for Vertex AI",
			}
		}
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = cfg.APIKey
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, errors.NewConfigError("gemini", "failed to create genai client", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: client, model: model}, nil
}

// Name implements enhancer.TextGenerator.
func (c *Client) Name() string {
	return "gemini"
}

// Generate implements enhancer.TextGenerator.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	config := &genai.GenerateContentConfig{}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(min(maxTokens, math.MaxInt32))
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", errors.WrapAPI("gemini", 0, err)
	}
	return resp.Text(), nil
}
