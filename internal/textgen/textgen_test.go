package textgen

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/zonemeta/pkg/errors"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	g, err := New(ctx, Config{})
	require.NoError(t, err)
	assert.Nil(t, g)

	g, err = New(ctx, Config{Backend: "None"})
	require.NoError(t, err)
	assert.Nil(t, g)

	g, err = New(ctx, Config{Backend: BackendOpenAI, OpenAIAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai", g.Name())

	g, err = New(ctx, Config{Backend: BackendBedrock, AWS: &aws.Config{Region: "us-east-1"}})
	require.NoError(t, err)
	assert.Equal(t, "bedrock", g.Name())

	g, err = New(ctx, Config{Backend: BackendGemini, GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", g.Name())
}

func TestNewErrors(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, Config{Backend: "llama"})
	assert.True(t, errors.IsValidationError(err))

	_, err = New(ctx, Config{Backend: BackendBedrock})
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = New(ctx, Config{Backend: BackendGemini})
	assert.ErrorAs(t, err, &cfgErr)
}
