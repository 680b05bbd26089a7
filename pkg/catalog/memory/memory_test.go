package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/zonemeta/pkg/catalog"
	"github.com/agentstation/zonemeta/pkg/errors"
)

func TestServiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.PutFormType("dzd", "type.A", "7")
	s.PutAsset("dzd", catalog.Asset{ID: "a1", Forms: []catalog.Form{
		{Name: "TableForm", Content: "{}"},
		{Name: "Other", Content: "keep"},
	}})

	ft, err := s.GetFormType(ctx, "dzd", "type.A")
	require.NoError(t, err)
	assert.Equal(t, "7", ft.Revision)

	_, err = s.GetFormType(ctx, "other-domain", "type.A")
	assert.True(t, errors.IsNotFound(err))

	out, err := s.CreateAssetRevision(ctx, &catalog.RevisionInput{
		DomainID: "dzd",
		AssetID:  "a1",
		Name:     "rev",
		Forms: []catalog.Form{
			{Name: "TableForm", Content: `{"columns":[]}`, TypeIdentifier: "type.A", TypeRevision: "7"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2", out.Revision)

	asset, err := s.GetAsset(ctx, "dzd", "a1")
	require.NoError(t, err)
	assert.Equal(t, "2", asset.Revision)
	require.Len(t, asset.Forms, 2)
	f, ok := asset.Form("TableForm")
	require.True(t, ok)
	assert.Equal(t, `{"columns":[]}`, f.Content)
	f, _ = asset.Form("Other")
	assert.Equal(t, "keep", f.Content)

	require.Len(t, s.Revisions(), 1)
	assert.Equal(t, "rev", s.Revisions()[0].Name)
}

func TestServiceRejectsIncompleteForms(t *testing.T) {
	s := New()
	s.PutAsset("dzd", catalog.Asset{ID: "a1"})
	_, err := s.CreateAssetRevision(context.Background(), &catalog.RevisionInput{
		DomainID: "dzd",
		AssetID:  "a1",
		Forms:    []catalog.Form{{Name: "TableForm"}},
	})
	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, s.Revisions())
}

func TestServiceFailOn(t *testing.T) {
	s := New()
	s.PutAsset("dzd", catalog.Asset{ID: "a1"})
	boom := fmt.Errorf("boom")

	s.FailOn(OpGetAsset, boom)
	_, err := s.GetAsset(context.Background(), "dzd", "a1")
	assert.ErrorIs(t, err, boom)

	s.FailOn(OpGetAsset, nil)
	_, err = s.GetAsset(context.Background(), "dzd", "a1")
	assert.NoError(t, err)
}

func TestServiceHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().GetAsset(ctx, "dzd", "a1")
	assert.ErrorIs(t, err, context.Canceled)
}
