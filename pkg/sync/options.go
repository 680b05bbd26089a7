// Package sync holds the options and results of one asset synchronization run.
package sync

import (
	"time"

	"github.com/agentstation/zonemeta/pkg/edits"
	"github.com/agentstation/zonemeta/pkg/errors"
)

// Options controls one Manager.Sync run.
type Options struct {
	DryRun      bool          // Run everything except the publish call
	Generate    bool          // Ask the generator to fill business metadata
	ContextText string        // Free text describing the table, reused for every column
	Edits       *edits.File   // Overrides applied after generation
	Timeout     time.Duration // Timeout for the whole run of one asset (0 = none)
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Defaults returns the default sync options: generate, publish, no timeout.
func Defaults() *Options {
	return &Options{Generate: true}
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if s.Timeout < 0 {
		return errors.NewValidationError("timeout", s.Timeout, "timeout must not be negative")
	}
	return nil
}

// WithDryRun sets dry-run mode.
func WithDryRun(dryRun bool) Option {
	return func(s *Options) {
		s.DryRun = dryRun
	}
}

// WithGenerate enables or disables metadata generation.
func WithGenerate(generate bool) Option {
	return func(s *Options) {
		s.Generate = generate
	}
}

// WithContextText sets the table description passed to the generator.
func WithContextText(text string) Option {
	return func(s *Options) {
		s.ContextText = text
	}
}

// WithEdits sets the overrides applied before publishing.
func WithEdits(f *edits.File) Option {
	return func(s *Options) {
		s.Edits = f
	}
}

// WithTimeout sets the per-asset timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Options) {
		s.Timeout = timeout
	}
}
