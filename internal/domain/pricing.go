package domain

import (
	"context"
	"errors"
)

// ErrInvalidArgument marks caller input that cannot be priced.
var ErrInvalidArgument = errors.New("invalid argument")

// PriceEntry contains model pricing information.
type PriceEntry struct {
	Input  float64 `json:"input"  yaml:"input"`  // USD per 1M input tokens
	Output float64 `json:"output" yaml:"output"` // USD per 1M output tokens
}

// CostBreakdown is the priced result of a single call.
type CostBreakdown struct {
	InputCostUSD  float64 `json:"input_cost_usd"`
	OutputCostUSD float64 `json:"output_cost_usd"`
	TotalCostUSD  float64 `json:"total_cost_usd"`
}

// PricingRegistry resolves a raw model name to its pricing.
type PricingRegistry interface {
	// GetModelPricing returns the entry for a model, or false when the model is unknown.
	GetModelPricing(ctx context.Context, model string) (PriceEntry, bool)
}

// CostCalculator calculates cost based on token usage.
type CostCalculator interface {
	// Calculate returns the cost breakdown for a given model and token counts.
	Calculate(ctx context.Context, model string, inputTokens, outputTokens float64) (CostBreakdown, error)

	// CalculateRerank approximates reranker cost for a number of search operations.
	CalculateRerank(ctx context.Context, model string, searchCount float64) (float64, error)
}

// ModelCatalog reports whether a model resolves to a price entry, without side effects.
type ModelCatalog interface {
	Has(model string) bool
}

// LookupObserver is notified of every pricing lookup outcome.
type LookupObserver interface {
	ObserveLookup(model string, found bool)
}
