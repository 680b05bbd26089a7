package zonemeta

import (
	"time"

	"github.com/agentstation/zonemeta/pkg/constants"
	"github.com/agentstation/zonemeta/pkg/enhancer"
	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/forms"
	"github.com/agentstation/zonemeta/pkg/reconcile"
)

// Option is a function that configures a Manager
type Option func(*config) error

type config struct {
	domainID       string
	generator      *enhancer.Generator
	overwrite      enhancer.OverwritePolicy
	duplicates     reconcile.DuplicatePolicy
	revisionPrefix string
	concurrency    int
	now            func() time.Time
	revisions      *forms.RevisionMap
}

func defaultConfig() *config {
	return &config{
		overwrite:      enhancer.FillMissing,
		duplicates:     reconcile.LastWins,
		revisionPrefix: constants.DefaultRevisionPrefix,
		concurrency:    constants.DefaultConcurrency,
		now:            time.Now,
	}
}

// WithDomain sets the catalog domain every operation runs in. Required.
func WithDomain(domainID string) Option {
	return func(c *config) error {
		if domainID == "" {
			return errors.NewValidationError("domain_id", domainID, "domain ID is required")
		}
		c.domainID = domainID
		return nil
	}
}

// WithGenerator sets the metadata generator. Without one, Sync never
// generates and columns without metadata get the split defaults.
func WithGenerator(g *enhancer.Generator) Option {
	return func(c *config) error {
		c.generator = g
		return nil
	}
}

// WithOverwritePolicy decides whether generation replaces existing metadata
func WithOverwritePolicy(p enhancer.OverwritePolicy) Option {
	return func(c *config) error {
		c.overwrite = p
		return nil
	}
}

// WithDuplicatePolicy sets how duplicate metadata entries are merged
func WithDuplicatePolicy(p reconcile.DuplicatePolicy) Option {
	return func(c *config) error {
		c.duplicates = p
		return nil
	}
}

// WithRevisionPrefix sets the text before the timestamp in revision names
func WithRevisionPrefix(prefix string) Option {
	return func(c *config) error {
		if prefix != "" {
			c.revisionPrefix = prefix
		}
		return nil
	}
}

// WithConcurrency bounds how many assets SyncAll processes at once
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewValidationError("concurrency", n, "concurrency must be at least 1")
		}
		c.concurrency = n
		return nil
	}
}

// WithClock sets the time source used for revision names
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		if now != nil {
			c.now = now
		}
		return nil
	}
}

// WithRevisions skips form type resolution and uses the given map
func WithRevisions(revisions forms.RevisionMap) Option {
	return func(c *config) error {
		c.revisions = &revisions
		return nil
	}
}
