package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// metadataPrefix marks keys that carry provenance rather than pricing.
const metadataPrefix = "_"

// PriceTable is an immutable model -> pricing mapping.
// It is never modified after construction, so reads need no locking.
type PriceTable struct {
	entries map[string]PriceEntry
}

// NewPriceTable builds a table from canonical model keys.
// Metadata keys are skipped. Entries with negative or non-finite rates are rejected.
func NewPriceTable(entries map[string]PriceEntry) (*PriceTable, error) {
	table := make(map[string]PriceEntry, len(entries))

	for model, entry := range entries {
		if strings.HasPrefix(model, metadataPrefix) {
			continue
		}

		if model == "" {
			return nil, errors.New("model cannot be empty")
		}

		if !validRate(entry.Input) || !validRate(entry.Output) {
			return nil, fmt.Errorf("invalid rates for model %s: input=%v output=%v", model, entry.Input, entry.Output)
		}

		table[model] = entry
	}

	return &PriceTable{entries: table}, nil
}

// Lookup returns the entry stored under an exact key.
func (t *PriceTable) Lookup(model string) (PriceEntry, bool) {
	entry, ok := t.entries[model]
	return entry, ok
}

// Len returns the number of priced models.
func (t *PriceTable) Len() int {
	return len(t.entries)
}

// Models returns all table keys in sorted order.
func (t *PriceTable) Models() []string {
	models := make([]string, 0, len(t.entries))
	for model := range t.entries {
		models = append(models, model)
	}
	sort.Strings(models)
	return models
}

func validRate(rate float64) bool {
	return !math.IsNaN(rate) && !math.IsInf(rate, 0) && rate >= 0
}
