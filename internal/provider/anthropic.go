package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 4096

// AnthropicBackend executes generation calls against the Anthropic Messages
// API. It has no multimodal support; only Gemini reads documents.
type AnthropicBackend struct {
	client sdk.Client
}

// NewAnthropicBackend creates an Anthropic backend.
func NewAnthropicBackend(apiKey string) (*AnthropicBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &AnthropicBackend{
		client: sdk.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Generate implements Backend.
func (b *AnthropicBackend) Generate(ctx context.Context, model string, kind Kind, p Payload) (string, error) {
	if kind == KindMultimodal {
		return "", &GatewayError{
			Provider: model,
			Reason:   ReasonUnavailable,
			Cause:    fmt.Errorf("multimodal extraction not supported"),
		}
	}

	msg, err := b.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(model),
		MaxTokens:   anthropicMaxTokens,
		Temperature: sdk.Float(0.1),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(p.Prompt)),
		},
	})
	if err != nil {
		return "", classifyAnthropicError(model, err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", &GatewayError{
			Provider: model,
			Reason:   ReasonBadOutput,
			Cause:    fmt.Errorf("no text blocks in response"),
		}
	}

	return CleanJSONBlock(strings.Join(parts, "")), nil
}

// Close implements Backend. The SDK client holds no connections to release.
func (b *AnthropicBackend) Close() error { return nil }

func classifyAnthropicError(provider string, err error) *GatewayError {
	reason := ReasonUnavailable

	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 429 || apiErr.StatusCode == 529 {
			reason = ReasonRateLimited
		}
	} else if msg := strings.ToLower(err.Error()); strings.Contains(msg, "rate") || strings.Contains(msg, "overloaded") {
		reason = ReasonRateLimited
	}

	return &GatewayError{Provider: provider, Reason: reason, Cause: err}
}
