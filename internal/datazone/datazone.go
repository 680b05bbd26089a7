// Package datazone implements catalog.Service on top of the AWS DataZone API.
package datazone

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/datazone"
	"github.com/aws/aws-sdk-go-v2/service/datazone/types"
	"github.com/aws/smithy-go"
	"github.com/aws/smithy-go/ptr"

	"github.com/agentstation/zonemeta/pkg/catalog"
	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/logging"
)

// API is the subset of the DataZone client used here.
type API interface {
	GetFormType(ctx context.Context, params *datazone.GetFormTypeInput, optFns ...func(*datazone.Options)) (*datazone.GetFormTypeOutput, error)
	GetAsset(ctx context.Context, params *datazone.GetAssetInput, optFns ...func(*datazone.Options)) (*datazone.GetAssetOutput, error)
	CreateAssetRevision(ctx context.Context, params *datazone.CreateAssetRevisionInput, optFns ...func(*datazone.Options)) (*datazone.CreateAssetRevisionOutput, error)
}

// Config selects the AWS region and an optional endpoint override.
type Config struct {
	Region      string
	EndpointURL string
}

// Client is a catalog.Service backed by DataZone.
type Client struct {
	api API
}

var _ catalog.Service = (*Client)(nil)

// LoadConfig loads the default AWS configuration chain (environment, shared
// config, instance roles), overriding the region when one is given.
func LoadConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, func(options *config.LoadOptions) error {
		if region != "" {
			options.Region = region
		}
		return nil
	})
	if err != nil {
		return aws.Config{}, errors.NewConfigError("aws", "failed to load AWS configuration", err)
	}
	return cfg, nil
}

// New loads AWS configuration and creates a Client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	awsCfg, err := LoadConfig(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(awsCfg, cfg.EndpointURL), nil
}

// NewFromConfig creates a Client from an already loaded AWS configuration.
func NewFromConfig(cfg aws.Config, endpointURL string) *Client {
	api := datazone.NewFromConfig(cfg, func(o *datazone.Options) {
		if endpointURL != "" {
			o.BaseEndpoint = ptr.String(endpointURL)
		}
	})
	return &Client{api: api}
}

// NewWithAPI wraps an existing API implementation.
func NewWithAPI(api API) *Client {
	return &Client{api: api}
}

// GetFormType implements catalog.Service.
func (c *Client) GetFormType(ctx context.Context, domainID, formTypeID string) (*catalog.FormType, error) {
	logging.Ctx(ctx).Debug().Str("form_type", formTypeID).Msg("DataZone GetFormType")

	out, err := c.api.GetFormType(ctx, &datazone.GetFormTypeInput{
		DomainIdentifier:   ptr.String(domainID),
		FormTypeIdentifier: ptr.String(formTypeID),
	})
	if err != nil {
		return nil, classify(err, "form type", formTypeID)
	}
	return &catalog.FormType{
		Identifier: formTypeID,
		Revision:   ptr.ToString(out.Revision),
	}, nil
}

// GetAsset implements catalog.Service.
func (c *Client) GetAsset(ctx context.Context, domainID, assetID string) (*catalog.Asset, error) {
	logging.Ctx(ctx).Debug().Str("asset_id", assetID).Msg("DataZone GetAsset")

	out, err := c.api.GetAsset(ctx, &datazone.GetAssetInput{
		DomainIdentifier: ptr.String(domainID),
		Identifier:       ptr.String(assetID),
	})
	if err != nil {
		return nil, classify(err, "asset", assetID)
	}

	asset := &catalog.Asset{
		ID:       ptr.ToString(out.Id),
		Name:     ptr.ToString(out.Name),
		Revision: ptr.ToString(out.Revision),
		Forms:    make([]catalog.Form, 0, len(out.FormsOutput)),
	}
	if asset.ID == "" {
		asset.ID = assetID
	}
	for _, f := range out.FormsOutput {
		asset.Forms = append(asset.Forms, fromFormOutput(f))
	}
	return asset, nil
}

// CreateAssetRevision implements catalog.Service.
func (c *Client) CreateAssetRevision(ctx context.Context, input *catalog.RevisionInput) (*catalog.RevisionOutput, error) {
	logging.Ctx(ctx).Debug().
		Str("asset_id", input.AssetID).
		Int("forms", len(input.Forms)).
		Msg("DataZone CreateAssetRevision")

	formsInput := make([]types.FormInput, 0, len(input.Forms))
	for _, f := range input.Forms {
		formsInput = append(formsInput, types.FormInput{
			FormName:       ptr.String(f.Name),
			Content:        ptr.String(f.Content),
			TypeIdentifier: ptr.String(f.TypeIdentifier),
			TypeRevision:   ptr.String(f.TypeRevision),
		})
	}

	params := &datazone.CreateAssetRevisionInput{
		DomainIdentifier: ptr.String(input.DomainID),
		Identifier:       ptr.String(input.AssetID),
		Name:             ptr.String(input.Name),
		FormsInput:       formsInput,
	}
	if input.ClientToken != "" {
		params.ClientToken = ptr.String(input.ClientToken)
	}

	out, err := c.api.CreateAssetRevision(ctx, params)
	if err != nil {
		return nil, classify(err, "asset", input.AssetID)
	}

	result := &catalog.RevisionOutput{
		AssetID:  ptr.ToString(out.Id),
		Revision: ptr.ToString(out.Revision),
	}
	if out.CreatedAt != nil {
		result.CreatedAt = *out.CreatedAt
	} else {
		result.CreatedAt = time.Now()
	}
	return result, nil
}

func fromFormOutput(f types.FormOutput) catalog.Form {
	return catalog.Form{
		Name:         ptr.ToString(f.FormName),
		Content:      ptr.ToString(f.Content),
		TypeRevision: ptr.ToString(f.TypeRevision),
	}
}

// classify maps DataZone failures onto the zonemeta error taxonomy.
func classify(err error, resource, id string) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return errors.NewNotFoundError(resource, id)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ResourceNotFoundException":
			return errors.NewNotFoundError(resource, id)
		case "ValidationException":
			return errors.NewValidationError(resource, id, apiErr.ErrorMessage())
		}
		status := 0
		if apiErr.ErrorCode() == "ThrottlingException" {
			status = 429
		}
		return &errors.APIError{
			Provider:   "datazone",
			StatusCode: status,
			Message:    apiErr.ErrorCode() + ": " + apiErr.ErrorMessage(),
			Err:        err,
		}
	}
	return err
}
