package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/davidbz/pricebook/internal/observability"
)

// EventCostCharged is published after every successful charge.
const EventCostCharged = "cost.charged"

// ErrLedgerDisabled is returned by Spend when no ledger is configured.
var ErrLedgerDisabled = errors.New("spend ledger disabled")

// BillingService prices usage and records charges.
type BillingService struct {
	calculator CostCalculator
	catalog    ModelCatalog
	ledger     SpendLedger
	recorder   CostRecorder
	publisher  EventPublisher
}

// NewBillingService creates a new billing service (DI constructor).
// Ledger, recorder and publisher are optional side channels. Without a
// catalog every charge is recorded as unpriced.
func NewBillingService(
	calculator CostCalculator,
	catalog ModelCatalog,
	ledger SpendLedger,
	recorder CostRecorder,
	publisher EventPublisher,
) *BillingService {
	return &BillingService{
		calculator: calculator,
		catalog:    catalog,
		ledger:     ledger,
		recorder:   recorder,
		publisher:  publisher,
	}
}

// Quote prices usage without recording it.
func (b *BillingService) Quote(ctx context.Context, usage TokenUsage) (CostBreakdown, error) {
	if usage.Model == "" {
		return CostBreakdown{}, fmt.Errorf("%w: model cannot be empty", ErrInvalidArgument)
	}

	ctx = observability.WithModel(ctx, usage.Model)

	return b.calculator.Calculate(ctx, usage.Model, usage.InputTokens, usage.OutputTokens)
}

// Charge prices usage and records it in the ledger and metrics.
// Ledger failures are logged and never fail the charge.
func (b *BillingService) Charge(ctx context.Context, usage TokenUsage) (CostBreakdown, error) {
	breakdown, err := b.Quote(ctx, usage)
	if err != nil {
		return CostBreakdown{}, err
	}

	ctx = observability.WithModel(ctx, usage.Model)
	logger := observability.FromContext(ctx)
	model := NormalizeModelName(usage.Model)

	if b.ledger != nil {
		recordErr := b.ledger.Record(ctx, SpendEntry{
			Model:        model,
			InputTokens:  usage.InputTokens,
			OutputTokens: usage.OutputTokens,
			TotalCostUSD: breakdown.TotalCostUSD,
			RequestCount: 1,
		})
		if recordErr != nil {
			logger.Warn("failed to record spend, continuing",
				observability.Error(recordErr))
		}
	}

	if b.recorder != nil {
		priced := b.catalog != nil && b.catalog.Has(usage.Model)
		b.recorder.RecordCost(model, priced, breakdown)
	}

	if b.publisher != nil {
		b.publisher.Publish(ctx, EventCostCharged, map[string]interface{}{
			"model":           model,
			"input_tokens":    usage.InputTokens,
			"output_tokens":   usage.OutputTokens,
			"input_cost_usd":  breakdown.InputCostUSD,
			"output_cost_usd": breakdown.OutputCostUSD,
			"total_cost_usd":  breakdown.TotalCostUSD,
		})
	}

	return breakdown, nil
}

// ChargeRerank prices a rerank call by search count and records it.
func (b *BillingService) ChargeRerank(ctx context.Context, model string, searchCount float64) (float64, error) {
	breakdown, err := b.Charge(ctx, TokenUsage{
		Model:        model,
		InputTokens:  searchCount * tokensPerSearch,
		OutputTokens: 0,
	})
	if err != nil {
		return 0, err
	}

	return breakdown.TotalCostUSD, nil
}

// Spend returns the ledger totals sorted by model.
func (b *BillingService) Spend(ctx context.Context) ([]SpendEntry, error) {
	if b.ledger == nil {
		return nil, ErrLedgerDisabled
	}

	entries, err := b.ledger.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read spend totals: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Model < entries[j].Model
	})

	return entries, nil
}
