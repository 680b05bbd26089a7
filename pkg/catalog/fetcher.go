package catalog

import (
	"context"

	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/forms"
	"github.com/agentstation/zonemeta/pkg/logging"
)

// Fetcher reads an asset's table and metadata forms.
type Fetcher struct {
	service Service
}

// NewFetcher creates a Fetcher.
func NewFetcher(service Service) *Fetcher {
	return &Fetcher{service: service}
}

// Fetch returns the decoded content of the asset. A missing asset or a
// missing form yields a *errors.NotFoundError; transport and decoding
// failures yield a *errors.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, domainID, assetID string) (*forms.AssetContent, error) {
	logger := logging.Ctx(ctx)

	asset, err := f.service.GetAsset(ctx, domainID, assetID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("asset", assetID)
		}
		return nil, errors.NewFetchError(domainID, assetID, err)
	}

	tableForm, ok := asset.Form(forms.TableForm.Name)
	if !ok {
		return nil, errors.NewNotFoundError("form "+forms.TableForm.Name+" on asset", assetID)
	}
	metadataForm, ok := asset.Form(forms.MetadataForm.Name)
	if !ok {
		return nil, errors.NewNotFoundError("form "+forms.MetadataForm.Name+" on asset", assetID)
	}

	table, err := forms.DecodeTableDocument(tableForm.Content)
	if err != nil {
		return nil, errors.NewFetchError(domainID, assetID, err)
	}
	if err := table.Validate(); err != nil {
		return nil, errors.NewFetchError(domainID, assetID, err)
	}
	metadata, err := forms.DecodeMetadataDocument(metadataForm.Content)
	if err != nil {
		return nil, errors.NewFetchError(domainID, assetID, err)
	}

	logger.Debug().
		Str("asset_revision", asset.Revision).
		Int("columns", len(table.Columns)).
		Int("metadata_entries", len(metadata.Entries)).
		Msg("Fetched asset content")

	return &forms.AssetContent{
		AssetID:  assetID,
		Revision: asset.Revision,
		Table:    table,
		Metadata: metadata,
	}, nil
}
