package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/zonemeta/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "form GlueTableForm",
			ID:       "asset-1",
		}
		assert.Equal(t, "form GlueTableForm with ID asset-1 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("asset", "a1")
		wrapped := fmt.Errorf("pipeline: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
		assert.False(t, pkgerrors.IsFetchError(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("columnName", "", "must not be empty")
		assert.Equal(t, "validation failed for field columnName: must not be empty", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "edits file is empty"}
		assert.Equal(t, "validation failed: edits file is empty", err.Error())
	})
}

func TestConflictError(t *testing.T) {
	err := pkgerrors.NewConflictError("ColumnBusinessMetadataForm", []string{"a", "b"})
	assert.Equal(t, "conflicting identifiers in ColumnBusinessMetadataForm: a, b", err.Error())
	assert.True(t, pkgerrors.IsConflict(err))
	assert.False(t, pkgerrors.IsValidationError(err))
}

func TestFetchAndPublishErrors(t *testing.T) {
	base := errors.New("connection reset")

	t.Run("fetch", func(t *testing.T) {
		err := pkgerrors.NewFetchError("dzd_1", "asset-1", base)
		assert.Contains(t, err.Error(), "asset-1")
		assert.Contains(t, err.Error(), "dzd_1")
		assert.True(t, pkgerrors.IsFetchError(err))
		assert.False(t, pkgerrors.IsPublishError(err))
		assert.False(t, pkgerrors.IsNotFound(err))
		assert.ErrorIs(t, err, base)
	})

	t.Run("publish", func(t *testing.T) {
		err := pkgerrors.NewPublishError("dzd_1", "asset-1", base)
		assert.True(t, pkgerrors.IsPublishError(err))
		assert.False(t, pkgerrors.IsFetchError(err))
		assert.Equal(t, base, err.Unwrap())
	})
}

func TestAPIError(t *testing.T) {
	t.Run("rate limited", func(t *testing.T) {
		err := pkgerrors.NewAPIError("openai", 429, "rate limit exceeded")
		assert.Contains(t, err.Error(), "429")
		assert.True(t, pkgerrors.IsRateLimited(err))
	})

	t.Run("server error", func(t *testing.T) {
		err := pkgerrors.NewAPIError("openai", 503, "unavailable")
		assert.True(t, pkgerrors.IsProviderUnavailable(err))
		assert.False(t, pkgerrors.IsRateLimited(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("boom")
		err := pkgerrors.WrapAPI("bedrock", 0, base)
		var apiErr *pkgerrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "bedrock", apiErr.Provider)
		assert.Equal(t, "API error from bedrock: boom", apiErr.Error())
		assert.Nil(t, pkgerrors.WrapAPI("bedrock", 0, nil))
	})
}

func TestSyncError(t *testing.T) {
	base := pkgerrors.NewNotFoundError("form GlueTableForm", "a1")
	err := pkgerrors.NewSyncError("a1", "fetch", base)
	assert.Equal(t, "sync error for asset a1 during fetch: form GlueTableForm with ID a1 not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))

	noStage := pkgerrors.NewSyncError("a2", "", errors.New("x"))
	assert.Equal(t, "sync error for asset a2: x", noStage.Error())
}

func TestWrapHelpers(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		err := pkgerrors.WrapParse("yaml", "edits.yaml", errors.New("bad indent"))
		var parseErr *pkgerrors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "parse error in yaml edits.yaml: bad indent", err.Error())
		assert.Nil(t, pkgerrors.WrapParse("yaml", "", nil))
	})

	t.Run("resource", func(t *testing.T) {
		err := pkgerrors.WrapResource("create", "client", "datazone", errors.New("no region"))
		var resErr *pkgerrors.ResourceError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "failed to create client datazone: no region", err.Error())
	})

	t.Run("config", func(t *testing.T) {
		err := pkgerrors.NewConfigError("generator", "unknown backend \"x\"", nil)
		assert.Equal(t, "configuration error in generator: unknown backend \"x\"", err.Error())
	})
}
