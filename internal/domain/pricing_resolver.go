package domain

import (
	"context"
	"strings"

	"github.com/davidbz/pricebook/internal/observability"
)

// PricingResolver looks up model pricing in a shared, read-only price table.
type PricingResolver struct {
	table    *PriceTable
	observer LookupObserver
}

// NewPricingResolver creates a resolver over the given table (DI constructor).
// The observer is optional.
func NewPricingResolver(table *PriceTable, observer LookupObserver) *PricingResolver {
	return &PricingResolver{
		table:    table,
		observer: observer,
	}
}

// GetModelPricing returns pricing for a model.
//
// Lookup order, first hit wins: the raw name, the normalized name, the raw
// name lowercased. An unknown model is not an error: a warning is logged and
// false is returned.
func (r *PricingResolver) GetModelPricing(ctx context.Context, model string) (PriceEntry, bool) {
	entry, found := r.lookup(model)

	if r.observer != nil {
		r.observer.ObserveLookup(model, found)
	}

	if !found {
		observability.FromContext(ctx).Warn("no pricing data for model",
			observability.String("requested_model", model))
	}

	return entry, found
}

func (r *PricingResolver) lookup(model string) (PriceEntry, bool) {
	if entry, ok := r.table.Lookup(model); ok {
		return entry, true
	}

	if entry, ok := r.table.Lookup(NormalizeModelName(model)); ok {
		return entry, true
	}

	return r.table.Lookup(strings.ToLower(model))
}

// Has reports whether the model resolves, without logging or notifying the observer.
func (r *PricingResolver) Has(model string) bool {
	_, found := r.lookup(model)
	return found
}

// Models returns every model the resolver can price.
func (r *PricingResolver) Models() []string {
	return r.table.Models()
}
