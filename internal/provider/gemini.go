package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiBackend executes generation calls against the Gemini API. It is the
// only backend with multimodal support.
type GeminiBackend struct {
	client *genai.Client
}

// NewGeminiBackend creates a Gemini backend.
func NewGeminiBackend(ctx context.Context, apiKey string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiBackend{client: client}, nil
}

// Generate implements Backend.
func (b *GeminiBackend) Generate(ctx context.Context, modelName string, kind Kind, p Payload) (string, error) {
	model := b.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	if kind != KindMultimodal {
		model.ResponseMIMEType = "application/json"
	}

	parts := []genai.Part{genai.Text(p.Prompt)}
	if len(p.FileData) > 0 {
		// File first, instructions after; matches how the extraction prompt
		// refers to "the provided document".
		parts = []genai.Part{
			genai.Blob{MIMEType: p.MIMEType, Data: p.FileData},
			genai.Text(p.Prompt),
		}
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", classifyGeminiError(modelName, err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", &GatewayError{Provider: modelName, Reason: ReasonBadOutput, Cause: err}
	}

	if kind == KindMultimodal {
		return strings.TrimSpace(text), nil
	}
	return CleanJSONBlock(text), nil
}

// Close releases the underlying client.
func (b *GeminiBackend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}

// classifyGeminiError maps transport errors onto the gateway taxonomy.
// HTTP status is authoritative when present; otherwise the message is
// sniffed the way upstream SDKs surface quota failures.
func classifyGeminiError(provider string, err error) *GatewayError {
	reason := ReasonUnavailable

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 {
			reason = ReasonRateLimited
		}
	} else {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "429") || strings.Contains(msg, "rate") || strings.Contains(msg, "quota") {
			reason = ReasonRateLimited
		}
	}

	return &GatewayError{Provider: provider, Reason: reason, Cause: err}
}

// extractText extracts text from a Gemini API response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
