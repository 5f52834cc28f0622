// Package openai reads token usage out of OpenAI API responses using the
// official SDK types. Chat completions and embedding responses are supported.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/davidbz/pricebook/internal/domain"
	"github.com/davidbz/pricebook/internal/observability"
)

const (
	vendorName = "openai"

	objectEmbeddingList = "list"
)

// Extractor implements the domain.UsageExtractor interface for OpenAI.
type Extractor struct{}

// NewExtractor creates a new OpenAI usage extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Vendor returns the vendor identifier.
func (e *Extractor) Vendor() string {
	return vendorName
}

// Extract parses a chat completion or embedding response body.
func (e *Extractor) Extract(ctx context.Context, body []byte) (domain.TokenUsage, error) {
	if len(body) == 0 {
		return domain.TokenUsage{}, fmt.Errorf("%w: response body cannot be empty", domain.ErrInvalidArgument)
	}

	var envelope struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.TokenUsage{}, fmt.Errorf("%w: malformed OpenAI response: %w", domain.ErrInvalidArgument, err)
	}

	var (
		usage domain.TokenUsage
		err   error
	)
	if envelope.Object == objectEmbeddingList {
		usage, err = fromEmbedding(body)
	} else {
		usage, err = fromChatCompletion(body)
	}
	if err != nil {
		return domain.TokenUsage{}, err
	}

	if usage.Model == "" {
		return domain.TokenUsage{}, fmt.Errorf("%w: OpenAI response has no model", domain.ErrInvalidArgument)
	}

	observability.FromContext(ctx).Debug("extracted OpenAI usage",
		observability.String("object", envelope.Object),
		observability.Float64("input_tokens", usage.InputTokens),
		observability.Float64("output_tokens", usage.OutputTokens),
	)

	return usage, nil
}

func fromChatCompletion(body []byte) (domain.TokenUsage, error) {
	var resp openai.ChatCompletion
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.TokenUsage{}, wrapDecodeError("chat completion", err)
	}

	return domain.TokenUsage{
		Model:        resp.Model,
		InputTokens:  float64(resp.Usage.PromptTokens),
		OutputTokens: float64(resp.Usage.CompletionTokens),
	}, nil
}

func fromEmbedding(body []byte) (domain.TokenUsage, error) {
	var resp openai.CreateEmbeddingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.TokenUsage{}, wrapDecodeError("embedding response", err)
	}

	return domain.TokenUsage{
		Model:        resp.Model,
		InputTokens:  float64(resp.Usage.PromptTokens),
		OutputTokens: 0,
	}, nil
}

func wrapDecodeError(kind string, err error) error {
	return fmt.Errorf("%w: malformed OpenAI %s: %w", domain.ErrInvalidArgument, kind, err)
}
