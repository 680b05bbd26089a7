// Package textgen selects and builds the text-generation backend used by the
// metadata generator.
package textgen

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/agentstation/zonemeta/internal/textgen/bedrock"
	"github.com/agentstation/zonemeta/internal/textgen/gemini"
	"github.com/agentstation/zonemeta/internal/textgen/openai"
	"github.com/agentstation/zonemeta/pkg/enhancer"
	"github.com/agentstation/zonemeta/pkg/errors"
)

// Backend names.
const (
	BackendNone    = "none"
	BackendGemini  = "gemini"
	BackendBedrock = "bedrock"
	BackendOpenAI  = "openai"
)

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendNone, BackendGemini, BackendBedrock, BackendOpenAI}
}

// Config holds the settings of every backend; only those of the selected
// backend are read.
type Config struct {
	Backend string
	Model   string

	// Gemini
	GeminiAPIKey   string
	GoogleProject  string
	GoogleLocation string
	GeminiBaseURL  string

	// Bedrock
	AWS *aws.Config

	// OpenAI-compatible
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIAuthScheme string
}

// New returns the configured backend. The "none" backend yields a nil
// generator, which makes every generation fall back to defaults.
func New(ctx context.Context, cfg Config) (enhancer.TextGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendNone:
		return nil, nil
	case BackendGemini:
		client, err := gemini.New(ctx, gemini.Config{
			Model:    cfg.Model,
			APIKey:   cfg.GeminiAPIKey,
			Project:  cfg.GoogleProject,
			Location: cfg.GoogleLocation,
			BaseURL:  cfg.GeminiBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case BackendBedrock:
		if cfg.AWS == nil {
			return nil, &errors.ConfigError{Component: BackendBedrock, Message: "AWS configuration is required"}
		}
		return bedrock.NewFromConfig(*cfg.AWS, cfg.Model), nil
	case BackendOpenAI:
		return openai.New(openai.Config{
			Model:      cfg.Model,
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			AuthScheme: cfg.OpenAIAuthScheme,
		}), nil
	default:
		return nil, errors.NewValidationError("generator", cfg.Backend,
			"unknown backend, must be one of: "+strings.Join(Backends(), ", "))
	}
}
