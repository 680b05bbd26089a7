package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/zonemeta/pkg/constants"
	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/forms"
	"github.com/agentstation/zonemeta/pkg/logging"
)

// RevisionLabel formats the human-readable name of a revision.
func RevisionLabel(prefix string, t time.Time) string {
	if prefix == "" {
		prefix = constants.DefaultRevisionPrefix
	}
	return fmt.Sprintf("%s - %s", prefix, t.Format(constants.RevisionTimeFormat))
}

// Publisher writes both forms of an asset as one revision.
type Publisher struct {
	service Service
	prefix  string
	now     func() time.Time
	token   func() string
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithLabelPrefix sets the text before the timestamp in revision labels.
func WithLabelPrefix(prefix string) PublisherOption {
	return func(p *Publisher) {
		if prefix != "" {
			p.prefix = prefix
		}
	}
}

// WithClock sets the time source used for revision labels.
func WithClock(now func() time.Time) PublisherOption {
	return func(p *Publisher) {
		if now != nil {
			p.now = now
		}
	}
}

// WithClientToken sets the idempotency token generator.
func WithClientToken(token func() string) PublisherOption {
	return func(p *Publisher) {
		if token != nil {
			p.token = token
		}
	}
}

// NewPublisher creates a Publisher.
func NewPublisher(service Service, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		service: service,
		prefix:  constants.DefaultRevisionPrefix,
		now:     time.Now,
		token:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish serializes both documents and submits them in a single
// create-revision call. Type revisions come from revisions, defaulting to
// "1". Any failure is returned as a *errors.PublishError.
func (p *Publisher) Publish(ctx context.Context, domainID, assetID string, table forms.TableDocument, metadata forms.MetadataDocument, revisions forms.RevisionMap) (*RevisionHandle, error) {
	tableContent, err := table.Encode()
	if err != nil {
		return nil, errors.NewPublishError(domainID, assetID, err)
	}
	metadataContent, err := metadata.Encode()
	if err != nil {
		return nil, errors.NewPublishError(domainID, assetID, err)
	}

	label := RevisionLabel(p.prefix, p.now())
	input := &RevisionInput{
		DomainID:    domainID,
		AssetID:     assetID,
		Name:        label,
		ClientToken: p.token(),
		Forms: []Form{
			{
				Name:           forms.TableForm.Name,
				Content:        tableContent,
				TypeIdentifier: forms.TableForm.TypeIdentifier,
				TypeRevision:   revisions.Get(forms.TableForm.Name),
			},
			{
				Name:           forms.MetadataForm.Name,
				Content:        metadataContent,
				TypeIdentifier: forms.MetadataForm.TypeIdentifier,
				TypeRevision:   revisions.Get(forms.MetadataForm.Name),
			},
		},
	}

	out, err := p.service.CreateAssetRevision(ctx, input)
	if err != nil {
		return nil, errors.NewPublishError(domainID, assetID, err)
	}
	if out == nil || out.Revision == "" {
		return nil, errors.NewPublishError(domainID, assetID, errors.New("catalog returned no revision"))
	}

	logging.Ctx(ctx).Info().
		Str("revision", out.Revision).
		Str("label", label).
		Msg("Published asset revision")

	handle := &RevisionHandle{
		DomainID:  domainID,
		AssetID:   assetID,
		Revision:  out.Revision,
		Label:     label,
		CreatedAt: out.CreatedAt,
	}
	return handle, nil
}
