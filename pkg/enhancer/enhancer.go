// Package enhancer fills gaps in a merged column view. The main enhancer asks
// an external text-generation backend for a business name and description,
// and degrades to a deterministic default whenever the backend fails or
// answers with something that is not the expected JSON object.
package enhancer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agentstation/zonemeta/pkg/forms"
	"github.com/agentstation/zonemeta/pkg/logging"
)

// Enhancer defines the interface for column enrichment
type Enhancer interface {
	// Name returns the enhancer name
	Name() string

	// CanEnhance checks if this enhancer has work to do for a column
	CanEnhance(column forms.MergedColumn) bool

	// Enhance returns the enriched column
	Enhance(ctx context.Context, column forms.MergedColumn) (forms.MergedColumn, error)

	// Priority returns the priority of this enhancer (higher = applied first)
	Priority() int
}

// Pipeline manages a chain of enhancers
type Pipeline struct {
	enhancers []Enhancer
}

// NewPipeline creates a new enhancer pipeline
func NewPipeline(enhancers ...Enhancer) *Pipeline {
	sorted := make([]Enhancer, 0, len(enhancers))
	for _, e := range enhancers {
		if e != nil {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})
	return &Pipeline{enhancers: sorted}
}

// Len returns the number of enhancers in the pipeline
func (p *Pipeline) Len() int {
	return len(p.enhancers)
}

// Enhance applies all enhancers to every column, one column at a time and in
// table order. The input is not modified. A failing enhancer leaves the
// column as it was and the pipeline moves on; only context cancellation
// stops it.
func (p *Pipeline) Enhance(ctx context.Context, columns []forms.MergedColumn) ([]forms.MergedColumn, error) {
	out := forms.CloneColumns(columns)
	for i := range out {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, enhancer := range p.enhancers {
			if !enhancer.CanEnhance(out[i]) {
				continue
			}

			colCtx := logging.WithColumn(ctx, out[i].ColumnName)
			result, err := enhancer.Enhance(colCtx, out[i].Clone())
			if err != nil {
				logging.Ctx(colCtx).Warn().
					Err(err).
					Str("enhancer", enhancer.Name()).
					Msg("Enhancer failed for column")
				continue
			}
			if result.ColumnName != out[i].ColumnName {
				return nil, fmt.Errorf("enhancer %s renamed column %s to %s", enhancer.Name(), out[i].ColumnName, result.ColumnName)
			}
			out[i] = result
		}
	}
	return out, nil
}

// OverwritePolicy decides which columns the metadata enhancer regenerates.
type OverwritePolicy int

const (
	// FillMissing generates only for columns lacking a business name or a
	// description, and only replaces the missing field(s).
	FillMissing OverwritePolicy = iota
	// OverwriteAll regenerates every column and replaces both fields.
	OverwriteAll
)

// String returns the configuration name of the policy.
func (p OverwritePolicy) String() string {
	if p == OverwriteAll {
		return "always"
	}
	return "missing"
}

// ParseOverwritePolicy parses "missing" or "always".
func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "missing", "fill-missing":
		return FillMissing, nil
	case "always", "overwrite":
		return OverwriteAll, nil
	default:
		return FillMissing, fmt.Errorf("invalid overwrite policy %q: must be one of: missing, always", s)
	}
}

// MetadataEnhancer fills business names and descriptions using a Generator.
type MetadataEnhancer struct {
	generator   *Generator
	contextText string
	policy      OverwritePolicy
	priority    int
}

// NewMetadataEnhancer creates an enhancer that reuses contextText for every column.
func NewMetadataEnhancer(generator *Generator, contextText string, policy OverwritePolicy) *MetadataEnhancer {
	return &MetadataEnhancer{
		generator:   generator,
		contextText: contextText,
		policy:      policy,
		priority:    100,
	}
}

// Name returns the enhancer name
func (e *MetadataEnhancer) Name() string {
	return "metadata-generator"
}

// Priority returns the priority
func (e *MetadataEnhancer) Priority() int {
	return e.priority
}

// CanEnhance checks whether the column needs generated metadata
func (e *MetadataEnhancer) CanEnhance(column forms.MergedColumn) bool {
	if e.policy == OverwriteAll {
		return true
	}
	return !column.HasBusinessName() || !column.HasDescription()
}

// Enhance generates metadata for the column. It never fails: a backend
// failure yields the fallback suggestion.
func (e *MetadataEnhancer) Enhance(ctx context.Context, column forms.MergedColumn) (forms.MergedColumn, error) {
	suggestion := e.generator.Generate(ctx, column.ColumnName, e.contextText)

	if e.policy == OverwriteAll || !column.HasBusinessName() {
		column.BusinessName = forms.String(suggestion.BusinessName)
	}
	if e.policy == OverwriteAll || !column.HasDescription() {
		column.Description = forms.String(suggestion.Description)
	}
	return column, nil
}
