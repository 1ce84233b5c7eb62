// Package genai wraps the generation service behind a small interface so the
// insight components can be tested against fakes.
package genai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Generator is the boundary to the text generation service
type Generator interface {
	// Generate sends a single text prompt and returns the raw response text
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateMultimodal sends a text instruction together with raw audio
	// bytes and returns the raw response text
	GenerateMultimodal(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error)
}

// OpenAIGenerator implements Generator against the OpenAI chat completions API
type OpenAIGenerator struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIGenerator creates a generator for the given API key and model.
// A non-zero timeout bounds every call; retries are left to the caller.
func NewOpenAIGenerator(apiKey, model string, timeout time.Duration) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generation API key is not set")
	}
	if model == "" {
		return nil, fmt.Errorf("generation model is not set")
	}

	return &OpenAIGenerator{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate sends a single text prompt and returns the raw response text
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateMultimodal sends a text instruction together with audio content
func (g *OpenAIGenerator) GenerateMultimodal(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("no audio data provided")
	}

	ctx, cancel := g.bound(ctx)
	defer cancel()

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(prompt),
		openai.InputAudioContentPart(openai.ChatCompletionContentPartInputAudioInputAudioParam{
			Data:   base64.StdEncoding.EncodeToString(audio),
			Format: audioFormat(mimeType),
		}),
	}

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
	})
	if err != nil {
		return "", fmt.Errorf("multimodal completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("multimodal completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// bound applies the configured timeout, if any, to the call context
func (g *OpenAIGenerator) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout > 0 {
		return context.WithTimeout(ctx, g.timeout)
	}
	return context.WithCancel(ctx)
}

// audioFormat maps a mime type to the wire format name the API expects
func audioFormat(mimeType string) string {
	if strings.Contains(strings.ToLower(mimeType), "wav") {
		return "wav"
	}
	return "mp3"
}
