package catalog

import (
	"context"

	"github.com/agentstation/zonemeta/pkg/forms"
	"github.com/agentstation/zonemeta/pkg/logging"
)

// Resolver looks up the current revision of each known form type.
type Resolver struct {
	service Service
	forms   []forms.FormSpec
}

// NewResolver creates a Resolver for the known forms.
func NewResolver(service Service) *Resolver {
	return &Resolver{service: service, forms: forms.KnownForms()}
}

// Resolve returns the revision map for domainID. A failed lookup leaves its
// form out of the map; consumers default absent entries through
// RevisionMap.Get.
func (r *Resolver) Resolve(ctx context.Context, domainID string) forms.RevisionMap {
	logger := logging.Ctx(logging.WithDomain(ctx, domainID))

	revisions := make(map[string]string, len(r.forms))
	for _, spec := range r.forms {
		ft, err := r.service.GetFormType(ctx, domainID, spec.TypeIdentifier)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("form_type", spec.TypeIdentifier).
				Msg("Could not resolve form type revision")
			continue
		}
		if ft == nil || ft.Revision == "" {
			logger.Warn().
				Str("form_type", spec.TypeIdentifier).
				Msg("Form type returned without a revision")
			continue
		}
		revisions[spec.Name] = ft.Revision
		logger.Debug().
			Str("form", spec.Name).
			Str("revision", ft.Revision).
			Msg("Resolved form type revision")
	}
	return forms.NewRevisionMap(revisions)
}
