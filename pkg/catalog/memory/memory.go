// Package memory provides an in-process catalog.Service. It keeps assets and
// form types in maps, records every revision written to it and can be told
// to fail individual operations, which makes it the fake used by pipeline
// tests and by `zonemeta sync --dry-run` style experiments.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/agentstation/zonemeta/pkg/catalog"
	"github.com/agentstation/zonemeta/pkg/errors"
)

// Operation names accepted by FailOn.
const (
	OpGetFormType         = "GetFormType"
	OpGetAsset            = "GetAsset"
	OpCreateAssetRevision = "CreateAssetRevision"
)

type key struct {
	domain string
	id     string
}

// Service is an in-memory catalog. The zero value is not usable; call New.
type Service struct {
	mu        sync.RWMutex
	formTypes map[key]string
	assets    map[key]*catalog.Asset
	revisions []catalog.RevisionInput
	failures  map[string]error
	now       func() time.Time
}

var _ catalog.Service = (*Service)(nil)

// New creates an empty Service.
func New() *Service {
	return &Service{
		formTypes: make(map[key]string),
		assets:    make(map[key]*catalog.Asset),
		failures:  make(map[string]error),
		now:       time.Now,
	}
}

// PutFormType registers a form type revision.
func (s *Service) PutFormType(domainID, formTypeID, revision string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formTypes[key{domainID, formTypeID}] = revision
}

// PutAsset stores a copy of asset. An empty revision starts at "1".
func (s *Service) PutAsset(domainID string, asset catalog.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if asset.Revision == "" {
		asset.Revision = "1"
	}
	asset.Forms = append([]catalog.Form(nil), asset.Forms...)
	s.assets[key{domainID, asset.ID}] = &asset
}

// FailOn makes every call of op return err. A nil err clears the failure.
func (s *Service) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Revisions returns every create-revision request received, oldest first.
func (s *Service) Revisions() []catalog.RevisionInput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.RevisionInput(nil), s.revisions...)
}

// GetFormType implements catalog.Service.
func (s *Service) GetFormType(ctx context.Context, domainID, formTypeID string) (*catalog.FormType, error) {
	if err := s.check(ctx, OpGetFormType); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rev, ok := s.formTypes[key{domainID, formTypeID}]
	if !ok {
		return nil, errors.NewNotFoundError("form type", formTypeID)
	}
	return &catalog.FormType{Identifier: formTypeID, Revision: rev}, nil
}

// GetAsset implements catalog.Service.
func (s *Service) GetAsset(ctx context.Context, domainID, assetID string) (*catalog.Asset, error) {
	if err := s.check(ctx, OpGetAsset); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.assets[key{domainID, assetID}]
	if !ok {
		return nil, errors.NewNotFoundError("asset", assetID)
	}
	out := *asset
	out.Forms = append([]catalog.Form(nil), asset.Forms...)
	return &out, nil
}

// CreateAssetRevision implements catalog.Service. The submitted forms
// replace the forms of the same name; other forms are kept.
func (s *Service) CreateAssetRevision(ctx context.Context, input *catalog.RevisionInput) (*catalog.RevisionOutput, error) {
	if err := s.check(ctx, OpCreateAssetRevision); err != nil {
		return nil, err
	}
	if input == nil {
		return nil, errors.NewValidationError("input", nil, "revision input is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[key{input.DomainID, input.AssetID}]
	if !ok {
		return nil, errors.NewNotFoundError("asset", input.AssetID)
	}
	for _, f := range input.Forms {
		if f.TypeIdentifier == "" || f.TypeRevision == "" {
			return nil, errors.NewValidationError("formsInput", f.Name, "form type identifier and revision are required")
		}
	}

	for _, f := range input.Forms {
		replaced := false
		for i := range asset.Forms {
			if asset.Forms[i].Name == f.Name {
				asset.Forms[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			asset.Forms = append(asset.Forms, f)
		}
	}

	n, err := strconv.Atoi(asset.Revision)
	if err != nil {
		n = 0
	}
	asset.Revision = strconv.Itoa(n + 1)
	asset.Name = input.Name

	recorded := *input
	recorded.Forms = append([]catalog.Form(nil), input.Forms...)
	s.revisions = append(s.revisions, recorded)

	return &catalog.RevisionOutput{
		AssetID:   asset.ID,
		Revision:  asset.Revision,
		CreatedAt: s.now(),
	}, nil
}

func (s *Service) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failures[op]
}
