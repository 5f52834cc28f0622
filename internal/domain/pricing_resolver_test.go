package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davidbz/pricebook/internal/domain"
	"github.com/davidbz/pricebook/internal/observability"
)

func TestPricingResolver_GetModelPricing(t *testing.T) {
	ctx := context.Background()
	resolver := domain.NewPricingResolver(newTestTable(t), nil)

	tests := []struct {
		name          string
		model         string
		expectFound   bool
		expectedInput float64
	}{
		{name: "exact match", model: "gpt-5-mini", expectFound: true, expectedInput: 0.25},
		{name: "openai date suffix", model: "gpt-5-mini-2025-08-07", expectFound: true, expectedInput: 0.25},
		{name: "anthropic snapshot", model: "claude-haiku-4-5-20251001", expectFound: true, expectedInput: 1},
		{name: "mistral snapshot", model: "mistral-large-2411", expectFound: true, expectedInput: 2},
		{name: "models prefix", model: "models/gemini-2.5-flash", expectFound: true, expectedInput: 0.3},
		{name: "qwen vendor path", model: "Qwen/Qwen3-Reranker-4B", expectFound: true, expectedInput: 0.025},
		{name: "exact match on non-canonical key", model: "MixedCase-Model", expectFound: true, expectedInput: 3},
		{name: "lowercase fallback when normalization strips too much", model: "GPT-4-0613", expectFound: true, expectedInput: 30},
		{name: "exact beats normalized", model: "snapshot-model-2411", expectFound: true, expectedInput: 7},
		{name: "normalized beats lowercase", model: "Snapshot-Model-2411", expectFound: true, expectedInput: 5},
		{name: "unknown model", model: "nonexistent-model-xyz", expectFound: false},
		{name: "metadata key is not a model", model: "_meta", expectFound: false},
		{name: "empty model", model: "", expectFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, found := resolver.GetModelPricing(ctx, tt.model)
			require.Equal(t, tt.expectFound, found)

			if !tt.expectFound {
				require.Equal(t, domain.PriceEntry{}, entry)
				return
			}

			require.InDelta(t, tt.expectedInput, entry.Input, 0.0001)
		})
	}
}

func TestPricingResolver_DateSuffixMatchesBareName(t *testing.T) {
	ctx := context.Background()
	resolver := domain.NewPricingResolver(newTestTable(t), nil)

	bare, found := resolver.GetModelPricing(ctx, "gpt-5-mini")
	require.True(t, found)

	dated, found := resolver.GetModelPricing(ctx, "gpt-5-mini-2025-08-07")
	require.True(t, found)

	require.Equal(t, bare, dated)
}

func TestPricingResolver_MissEmitsWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	observability.SetLogger(zap.New(core))
	t.Cleanup(func() { observability.SetLogger(nil) })

	resolver := domain.NewPricingResolver(newTestTable(t), nil)

	_, found := resolver.GetModelPricing(context.Background(), "nonexistent-model-xyz")
	require.False(t, found)

	entries := logs.FilterMessage("no pricing data for model").All()
	require.Len(t, entries, 1)
	require.Equal(t, zap.WarnLevel, entries[0].Level)
	require.Equal(t, "nonexistent-model-xyz", entries[0].ContextMap()["requested_model"])

	_, found = resolver.GetModelPricing(context.Background(), "gpt-5")
	require.True(t, found)
	require.Equal(t, 1, logs.Len())
}

func TestPricingResolver_NotifiesObserver(t *testing.T) {
	obs := &recordingObserver{}
	resolver := domain.NewPricingResolver(newTestTable(t), obs)

	resolver.GetModelPricing(context.Background(), "gpt-5")
	resolver.GetModelPricing(context.Background(), "unknown")

	require.Equal(t, []lookupCall{
		{model: "gpt-5", found: true},
		{model: "unknown", found: false},
	}, obs.calls)
}

func TestPricingResolver_ConcurrentReads(t *testing.T) {
	resolver := domain.NewPricingResolver(newTestTable(t), nil)

	done := make(chan bool)
	for i := 0; i < 16; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_, found := resolver.GetModelPricing(context.Background(), "claude-haiku-4-5-20251001")
				if !found {
					done <- false
					return
				}
			}
			done <- true
		}()
	}

	for i := 0; i < 16; i++ {
		require.True(t, <-done)
	}
}

func TestPricingResolver_Has(t *testing.T) {
	obs := &recordingObserver{}
	resolver := domain.NewPricingResolver(newTestTable(t), obs)

	require.True(t, resolver.Has("gpt-5"))
	require.True(t, resolver.Has("Mistral-Large-2411"))
	require.False(t, resolver.Has("nonexistent-model-xyz"))

	// Membership checks are not lookups.
	require.Empty(t, obs.calls)
}
