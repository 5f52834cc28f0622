// Package anthropic reads token usage out of Anthropic Messages API responses.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/davidbz/pricebook/internal/domain"
	"github.com/davidbz/pricebook/internal/observability"
)

const vendorName = "anthropic"

// Extractor implements the domain.UsageExtractor interface for Anthropic.
type Extractor struct{}

// NewExtractor creates a new Anthropic usage extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Vendor returns the vendor identifier.
func (e *Extractor) Vendor() string {
	return vendorName
}

// Extract parses a Messages API response body.
// Cache read and cache creation tokens have no rate in the price table and are not billed.
func (e *Extractor) Extract(ctx context.Context, body []byte) (domain.TokenUsage, error) {
	if len(body) == 0 {
		return domain.TokenUsage{}, fmt.Errorf("%w: response body cannot be empty", domain.ErrInvalidArgument)
	}

	var msg anthropic.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return domain.TokenUsage{}, fmt.Errorf("%w: malformed Anthropic message: %w", domain.ErrInvalidArgument, err)
	}

	if msg.Model == "" {
		return domain.TokenUsage{}, fmt.Errorf("%w: Anthropic message has no model", domain.ErrInvalidArgument)
	}

	logger := observability.FromContext(ctx)
	if msg.Usage.CacheReadInputTokens > 0 || msg.Usage.CacheCreationInputTokens > 0 {
		logger.Debug("ignoring Anthropic cache tokens",
			observability.Int("cache_read_input_tokens", int(msg.Usage.CacheReadInputTokens)),
			observability.Int("cache_creation_input_tokens", int(msg.Usage.CacheCreationInputTokens)),
		)
	}

	return domain.TokenUsage{
		Model:        string(msg.Model),
		InputTokens:  float64(msg.Usage.InputTokens),
		OutputTokens: float64(msg.Usage.OutputTokens),
	}, nil
}
