package domain

import (
	"context"
	"fmt"
	"math"
	"strconv"
)

const (
	tokensPerMillion = 1_000_000.0

	// tokensPerSearch is the rough token volume of one rerank search.
	tokensPerSearch = 1000.0

	costDecimals = 6
)

// StandardCostCalculator implements standard token-based cost calculation.
type StandardCostCalculator struct {
	pricingRegistry PricingRegistry
}

// NewStandardCostCalculator creates a new cost calculator.
func NewStandardCostCalculator(registry PricingRegistry) *StandardCostCalculator {
	return &StandardCostCalculator{
		pricingRegistry: registry,
	}
}

// Calculate computes the cost breakdown based on token usage and model pricing.
// Token counts must be finite and non-negative. Unknown models cost nothing.
func (c *StandardCostCalculator) Calculate(
	ctx context.Context,
	model string,
	inputTokens float64,
	outputTokens float64,
) (CostBreakdown, error) {
	if err := validateTokens(inputTokens, outputTokens); err != nil {
		return CostBreakdown{}, err
	}

	pricing, found := c.pricingRegistry.GetModelPricing(ctx, model)
	if !found {
		return CostBreakdown{}, nil
	}

	inputCost := inputTokens / tokensPerMillion * pricing.Input
	outputCost := outputTokens / tokensPerMillion * pricing.Output
	totalCost := inputCost + outputCost

	return CostBreakdown{
		InputCostUSD:  roundCost(inputCost),
		OutputCostUSD: roundCost(outputCost),
		TotalCostUSD:  roundCost(totalCost),
	}, nil
}

// CalculateRerank estimates reranking cost, treating each search as 1000
// input tokens. Retained for callers that bill reranking per search.
func (c *StandardCostCalculator) CalculateRerank(
	ctx context.Context,
	model string,
	searchCount float64,
) (float64, error) {
	breakdown, err := c.Calculate(ctx, model, searchCount*tokensPerSearch, 0)
	if err != nil {
		return 0, err
	}

	return breakdown.TotalCostUSD, nil
}

func validateTokens(inputTokens, outputTokens float64) error {
	if !isFinite(inputTokens) || !isFinite(outputTokens) {
		return fmt.Errorf("%w: input_tokens/output_tokens must be finite numbers", ErrInvalidArgument)
	}

	if inputTokens < 0 || outputTokens < 0 {
		return fmt.Errorf("%w: input_tokens/output_tokens must be >= 0", ErrInvalidArgument)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundCost rounds the exact binary value to six decimals, ties to even.
// Scaling by 1e6 before rounding is not equivalent: it rounds twice.
func roundCost(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', costDecimals, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
