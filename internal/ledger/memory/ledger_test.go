package memory_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/pricebook/internal/domain"
	"github.com/davidbz/pricebook/internal/ledger/memory"
)

func TestLedger_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("should aggregate per model", func(t *testing.T) {
		ledger := memory.NewLedger()

		require.NoError(t, ledger.Record(ctx, domain.SpendEntry{
			Model: "gpt-5", InputTokens: 1000, OutputTokens: 500, TotalCostUSD: 0.00625, RequestCount: 1,
		}))
		require.NoError(t, ledger.Record(ctx, domain.SpendEntry{
			Model: "gpt-5", InputTokens: 2000, OutputTokens: 0, TotalCostUSD: 0.0025, RequestCount: 1,
		}))
		require.NoError(t, ledger.Record(ctx, domain.SpendEntry{
			Model: "claude-4.5-haiku", InputTokens: 10, TotalCostUSD: 0.00001, RequestCount: 1,
		}))

		entries, err := ledger.Totals(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		sort.Slice(entries, func(i, j int) bool { return entries[i].Model < entries[j].Model })

		require.Equal(t, "claude-4.5-haiku", entries[0].Model)
		require.Equal(t, int64(1), entries[0].RequestCount)

		require.Equal(t, "gpt-5", entries[1].Model)
		require.InDelta(t, 3000.0, entries[1].InputTokens, 0.0001)
		require.InDelta(t, 500.0, entries[1].OutputTokens, 0.0001)
		require.InDelta(t, 0.00875, entries[1].TotalCostUSD, 1e-9)
		require.Equal(t, int64(2), entries[1].RequestCount)
	})

	t.Run("should reject empty model", func(t *testing.T) {
		ledger := memory.NewLedger()

		err := ledger.Record(ctx, domain.SpendEntry{TotalCostUSD: 1})
		require.Error(t, err)
	})

	t.Run("should return copies", func(t *testing.T) {
		ledger := memory.NewLedger()
		require.NoError(t, ledger.Record(ctx, domain.SpendEntry{Model: "gpt-5", RequestCount: 1}))

		entries, err := ledger.Totals(ctx)
		require.NoError(t, err)
		entries[0].RequestCount = 100

		entries, err = ledger.Totals(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(1), entries[0].RequestCount)
	})

	t.Run("should be safe for concurrent use", func(t *testing.T) {
		ledger := memory.NewLedger()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = ledger.Record(ctx, domain.SpendEntry{Model: "gpt-5", InputTokens: 1, RequestCount: 1})
			}()
		}
		wg.Wait()

		entries, err := ledger.Totals(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, int64(50), entries[0].RequestCount)
	})
}
