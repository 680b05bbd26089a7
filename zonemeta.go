// Package zonemeta keeps the business metadata of data-catalog table assets
// in sync with their structure.
//
// An asset carries two independently versioned forms: the table form
// (columns and types) and the column business metadata form (business names
// and descriptions). A Manager fetches both, merges them into one view per
// column, optionally fills missing metadata with a text-generation backend,
// applies edits, splits the view back into the two forms and publishes them
// as one new asset revision.
//
// Form type revisions are resolved once when the Manager is created and
// shared read-only by every run.
package zonemeta

import (
	"context"

	"github.com/agentstation/zonemeta/pkg/catalog"
	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/forms"
	"github.com/agentstation/zonemeta/pkg/logging"
	"github.com/agentstation/zonemeta/pkg/reconcile"
)

// Manager runs metadata synchronization for the assets of one domain.
type Manager struct {
	config    *config
	revisions forms.RevisionMap
	fetcher   *catalog.Fetcher
	publisher *catalog.Publisher
	hooks     *hooks
}

// New creates a Manager and resolves the form type revisions of the domain.
func New(ctx context.Context, service catalog.Service, opts ...Option) (*Manager, error) {
	if service == nil {
		return nil, errors.NewValidationError("service", nil, "catalog service is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errors.NewConfigError("manager", "applying options", err)
		}
	}
	if cfg.domainID == "" {
		return nil, errors.NewConfigError("manager", "domain ID is required", nil)
	}

	m := &Manager{
		config:  cfg,
		fetcher: catalog.NewFetcher(service),
		publisher: catalog.NewPublisher(service,
			catalog.WithLabelPrefix(cfg.revisionPrefix),
			catalog.WithClock(cfg.now),
		),
		hooks: newHooks(),
	}

	if cfg.revisions != nil {
		m.revisions = *cfg.revisions
	} else {
		ctx = logging.WithDomain(ctx, cfg.domainID)
		m.revisions = catalog.NewResolver(service).Resolve(ctx, cfg.domainID)
	}

	logging.Ctx(ctx).Debug().
		Str("domain_id", cfg.domainID).
		Int("resolved_revisions", m.revisions.Len()).
		Str("generator", m.config.generator.Backend()).
		Msg("Manager ready")

	return m, nil
}

// DomainID returns the domain the manager works in.
func (m *Manager) DomainID() string {
	return m.config.domainID
}

// Revisions returns the form type revisions resolved at creation.
func (m *Manager) Revisions() forms.RevisionMap {
	return m.revisions
}

// OnColumnGenerated registers a callback for generated column metadata
func (m *Manager) OnColumnGenerated(fn ColumnGeneratedHook) {
	m.hooks.addColumnGenerated(fn)
}

// OnRevisionPublished registers a callback for published revisions
func (m *Manager) OnRevisionPublished(fn RevisionPublishedHook) {
	m.hooks.addRevisionPublished(fn)
}

// Content fetches an asset and returns its merged column view.
func (m *Manager) Content(ctx context.Context, assetID string) ([]forms.MergedColumn, error) {
	ctx = logging.WithAsset(logging.WithDomain(ctx, m.config.domainID), assetID)

	content, err := m.fetcher.Fetch(ctx, m.config.domainID, assetID)
	if err != nil {
		return nil, err
	}
	return reconcile.Merge(content.Table, content.Metadata, reconcile.WithDuplicatePolicy(m.config.duplicates))
}
