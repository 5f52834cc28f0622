package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/pricebook/internal/domain"
)

// newTestTable builds a small price table shaped like the embedded one.
func newTestTable(t *testing.T) *domain.PriceTable {
	t.Helper()

	table, err := domain.NewPriceTable(map[string]domain.PriceEntry{
		"_meta":               {},
		"gpt-5":               {Input: 1.25, Output: 10},
		"gpt-5-mini":          {Input: 0.25, Output: 2},
		"gpt-5-nano":          {Input: 0.05, Output: 0.4},
		"claude-4.5-haiku":    {Input: 1, Output: 5},
		"mistral-large":       {Input: 2, Output: 6},
		"gemini-2.5-flash":    {Input: 0.3, Output: 2.5},
		"qwen3-reranker-4b":   {Input: 0.025, Output: 0},
		"MixedCase-Model":     {Input: 3, Output: 3},
		"gpt-4-0613":          {Input: 30, Output: 60},
		"snapshot-model":      {Input: 5, Output: 5},
		"snapshot-model-2411": {Input: 7, Output: 7},
	})
	require.NoError(t, err)

	return table
}

type lookupCall struct {
	model string
	found bool
}

// recordingObserver captures lookup outcomes.
type recordingObserver struct {
	calls []lookupCall
}

func (o *recordingObserver) ObserveLookup(model string, found bool) {
	o.calls = append(o.calls, lookupCall{model: model, found: found})
}
