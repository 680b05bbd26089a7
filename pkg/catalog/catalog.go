// Package catalog talks to the data-catalog service that owns assets and
// their forms. It resolves form-type revisions, fetches an asset's two forms
// as decoded documents, and publishes both forms back in a single revision.
//
// The service itself sits behind the Service interface; internal/datazone
// implements it against AWS DataZone and the memory subpackage implements it
// in-process.
package catalog

import (
	"context"
	"time"
)

// Service is the catalog boundary. Implementations report a missing asset or
// form type with an error matching errors.ErrNotFound.
type Service interface {
	// GetFormType returns the current revision of a form type.
	GetFormType(ctx context.Context, domainID, formTypeID string) (*FormType, error)

	// GetAsset returns an asset and the content of each of its forms.
	GetAsset(ctx context.Context, domainID, assetID string) (*Asset, error)

	// CreateAssetRevision writes all forms of the input as one new revision.
	CreateAssetRevision(ctx context.Context, input *RevisionInput) (*RevisionOutput, error)
}

// FormType is a form type as returned by the catalog.
type FormType struct {
	Identifier string
	Revision   string
}

// Form is one form instance on an asset. Content is the serialized document.
type Form struct {
	Name           string
	Content        string
	TypeIdentifier string
	TypeRevision   string
}

// Asset is an asset as returned by the catalog.
type Asset struct {
	ID       string
	Name     string
	Revision string
	Forms    []Form
}

// Form returns the form with the given name.
func (a *Asset) Form(name string) (Form, bool) {
	for _, f := range a.Forms {
		if f.Name == name {
			return f, true
		}
	}
	return Form{}, false
}

// RevisionInput is a create-revision request.
type RevisionInput struct {
	DomainID    string
	AssetID     string
	Name        string
	ClientToken string
	Forms       []Form
}

// RevisionOutput is the catalog's answer to a create-revision request.
type RevisionOutput struct {
	AssetID   string
	Revision  string
	CreatedAt time.Time
}

// RevisionHandle identifies a revision published by this package.
type RevisionHandle struct {
	DomainID  string
	AssetID   string
	Revision  string
	Label     string
	CreatedAt time.Time
}
