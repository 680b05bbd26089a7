// Package bedrock generates text with Amazon Bedrock's Converse API.
package bedrock

import (
	"context"
	"math"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/agentstation/zonemeta/pkg/errors"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "anthropic.claude-3-haiku-20240307-v1:0"

// API is the subset of the Bedrock runtime client used here.
type API interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Client implements enhancer.TextGenerator.
type Client struct {
	api   API
	model string
}

// NewFromConfig creates a Client from loaded AWS configuration.
func NewFromConfig(cfg aws.Config, model string) *Client {
	return NewWithAPI(bedrockruntime.NewFromConfig(cfg), model)
}

// NewWithAPI wraps an existing API implementation.
func NewWithAPI(api API, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{api: api, model: model}
}

// Name implements enhancer.TextGenerator.
func (c *Client) Name() string {
	return "bedrock"
}

// Generate implements enhancer.TextGenerator. Text blocks of the reply are
// concatenated.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.model),
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: prompt},
				},
			},
		},
	}
	if maxTokens > 0 {
		input.InferenceConfig = &types.InferenceConfiguration{
			MaxTokens: aws.Int32(int32(min(maxTokens, math.MaxInt32))),
		}
	}

	out, err := c.api.Converse(ctx, input)
	if err != nil {
		return "", errors.WrapAPI("bedrock", 0, err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", &errors.APIError{Provider: "bedrock", Message: "response carries no message"}
	}
	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	return sb.String(), nil
}
