package zonemeta

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/zonemeta/pkg/differ"
	"github.com/agentstation/zonemeta/pkg/edits"
	"github.com/agentstation/zonemeta/pkg/enhancer"
	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/forms"
	"github.com/agentstation/zonemeta/pkg/logging"
	"github.com/agentstation/zonemeta/pkg/reconcile"
	pkgsync "github.com/agentstation/zonemeta/pkg/sync"
)

// Sync stages, reported in errors.SyncError.
const (
	StageFetch    = "fetch"
	StageMerge    = "merge"
	StageGenerate = "generate"
	StageEdit     = "edit"
	StageSplit    = "split"
	StagePublish  = "publish"
)

// Sync runs the pipeline for one asset: fetch, merge, generate, edit, split
// and publish. Failures are returned as *errors.SyncError naming the stage;
// the wrapped error keeps its kind, so errors.IsNotFound and friends work.
func (m *Manager) Sync(ctx context.Context, assetID string, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	options := pkgsync.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	domainID := m.config.domainID
	ctx = logging.WithAsset(logging.WithDomain(ctx, domainID), assetID)
	logger := logging.Ctx(ctx)

	// Step 1: fetch both forms
	content, err := m.fetcher.Fetch(ctx, domainID, assetID)
	if err != nil {
		return nil, errors.NewSyncError(assetID, StageFetch, err)
	}

	// Step 2: merge into the column view
	existing, err := reconcile.Merge(content.Table, content.Metadata, reconcile.WithDuplicatePolicy(m.config.duplicates))
	if err != nil {
		return nil, errors.NewSyncError(assetID, StageMerge, err)
	}

	result := &pkgsync.Result{AssetID: assetID, DryRun: options.DryRun}

	// Step 3: fill gaps with generated metadata
	columns := existing
	if options.Generate && m.config.generator != nil {
		columns, result.Generated, err = m.generate(ctx, assetID, existing, options.ContextText)
		if err != nil {
			return nil, errors.NewSyncError(assetID, StageGenerate, err)
		}
	}

	// Step 4: apply edits
	if options.Edits.Len() > 0 {
		columns, err = edits.Apply(columns, options.Edits)
		if err != nil {
			return nil, errors.NewSyncError(assetID, StageEdit, err)
		}
		result.Edited = options.Edits.Len()
	}

	result.Columns = columns
	result.Changeset = differ.Diff(existing, columns)

	// Step 5: split back into the two forms
	table, metadata, err := reconcile.SplitInto(columns, content.Table, content.Metadata)
	if err != nil {
		return nil, errors.NewSyncError(assetID, StageSplit, err)
	}

	if options.DryRun {
		logger.Info().
			Bool("dry_run", true).
			Str("changes", result.Changeset.String()).
			Msg("Dry run completed - no revision created")
		return result, nil
	}

	// Step 6: publish both forms in one revision
	handle, err := m.publisher.Publish(ctx, domainID, assetID, table, metadata, m.revisions)
	if err != nil {
		return nil, errors.NewSyncError(assetID, StagePublish, err)
	}
	result.Published = true
	result.Revision = handle.Revision
	result.Label = handle.Label
	m.hooks.revisionPublished(*handle)

	return result, nil
}

// generate runs the metadata enhancer over the view and fires hooks for
// every column it touched.
func (m *Manager) generate(ctx context.Context, assetID string, columns []forms.MergedColumn, contextText string) ([]forms.MergedColumn, int, error) {
	metadataEnhancer := enhancer.NewMetadataEnhancer(m.config.generator, contextText, m.config.overwrite)

	touched := 0
	for _, col := range columns {
		if metadataEnhancer.CanEnhance(col) {
			touched++
		}
	}
	if touched == 0 {
		return columns, 0, nil
	}

	logging.Ctx(ctx).Debug().
		Int("columns", touched).
		Str("backend", m.config.generator.Backend()).
		Msg("Generating column metadata")

	enhanced, err := enhancer.NewPipeline(metadataEnhancer).Enhance(ctx, columns)
	if err != nil {
		return nil, 0, err
	}
	for i := range columns {
		if metadataEnhancer.CanEnhance(columns[i]) {
			m.hooks.columnGenerated(assetID, columns[i], enhanced[i])
		}
	}
	return enhanced, touched, nil
}

// SyncAll runs Sync for every asset with bounded concurrency. Assets are
// independent: a failed asset is reported in the batch and does not stop the
// others. The returned error is non-nil only when ctx ends early.
func (m *Manager) SyncAll(ctx context.Context, assetIDs []string, opts ...pkgsync.Option) (*pkgsync.BatchResult, error) {
	results := make([]*pkgsync.Result, len(assetIDs))
	failures := make([]error, len(assetIDs))

	var g errgroup.Group
	g.SetLimit(m.config.concurrency)

	var mu sync.Mutex
	done := 0
	for i, assetID := range assetIDs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures[i] = errors.NewSyncError(assetID, "", err)
				return nil
			}
			res, err := m.Sync(ctx, assetID, opts...)
			if err != nil {
				logging.Ctx(ctx).Error().Err(err).Str("asset_id", assetID).Msg("Asset sync failed")
				failures[i] = err
				return nil
			}
			results[i] = res

			mu.Lock()
			done++
			logging.Ctx(ctx).Debug().Int("done", done).Int("total", len(assetIDs)).Msg("Asset synced")
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	batch := &pkgsync.BatchResult{}
	for i := range assetIDs {
		if results[i] != nil {
			batch.Results = append(batch.Results, results[i])
		}
		if failures[i] != nil {
			batch.Errors = append(batch.Errors, failures[i])
		}
	}

	logging.Ctx(ctx).Info().
		Int("assets", len(assetIDs)).
		Int("failed", batch.Failed()).
		Msg("Sync completed")

	return batch, ctx.Err()
}
