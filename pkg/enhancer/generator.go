package enhancer

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/zonemeta/pkg/constants"
	"github.com/agentstation/zonemeta/pkg/logging"
)

// TextGenerator is an external text-generation backend. It receives a
// free-text instruction and an output-length budget and returns free text.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Suggestion is the business metadata proposed for one column.
type Suggestion struct {
	BusinessName string `json:"businessName"`
	Description  string `json:"description"`
}

// Fallback returns the deterministic suggestion used when generation fails.
func Fallback(columnName string) Suggestion {
	return Suggestion{BusinessName: columnName, Description: ""}
}

// Generator turns backend answers into Suggestions.
type Generator struct {
	backend   TextGenerator
	maxTokens int
	timeout   time.Duration
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithMaxTokens sets the output-length budget of each call.
func WithMaxTokens(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

// WithTimeout bounds each backend call. Zero disables the bound.
func WithTimeout(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		g.timeout = d
	}
}

// NewGenerator creates a Generator. A nil backend is allowed and makes every
// call return the fallback.
func NewGenerator(backend TextGenerator, opts ...GeneratorOption) *Generator {
	g := &Generator{
		backend:   backend,
		maxTokens: constants.DefaultMaxOutputTokens,
		timeout:   constants.GenerationTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Backend returns the name of the configured backend, or "none".
func (g *Generator) Backend() string {
	if g == nil || g.backend == nil {
		return "none"
	}
	return g.backend.Name()
}

// Generate returns a suggestion for one column. It never fails and always
// returns both fields; see Try for the reason behind a fallback.
func (g *Generator) Generate(ctx context.Context, columnName, contextText string) Suggestion {
	suggestion, err := g.Try(ctx, columnName, contextText)
	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("column", columnName).
			Str("backend", g.Backend()).
			Msg("Metadata generation fell back to defaults")
	}
	return suggestion
}

// Try is Generate with the fallback reason exposed. The returned suggestion
// is always usable; a non-nil error means it is the fallback.
func (g *Generator) Try(ctx context.Context, columnName, contextText string) (suggestion Suggestion, err error) {
	suggestion = Fallback(columnName)
	if g == nil || g.backend == nil {
		return suggestion, errNoBackend
	}

	defer func() {
		if r := recover(); r != nil {
			suggestion, err = Fallback(columnName), fmt.Errorf("backend %s panicked: %v", g.backend.Name(), r)
		}
	}()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.backend.Generate(ctx, BuildPrompt(columnName, contextText), g.maxTokens)
	if err != nil {
		return suggestion, err
	}

	parsed, err := Extract(text)
	if err != nil {
		return suggestion, err
	}
	logging.Ctx(ctx).Debug().
		Str("column", columnName).
		Str("business_name", parsed.BusinessName).
		Msg("Generated column metadata")
	return parsed, nil
}
