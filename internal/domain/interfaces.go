package domain

import "context"

// SpendLedger accumulates priced usage per model.
type SpendLedger interface {
	// Record adds one charge to the model's running totals.
	Record(ctx context.Context, entry SpendEntry) error

	// Totals returns the accumulated spend for every model.
	Totals(ctx context.Context) ([]SpendEntry, error)
}

// CostRecorder receives every charged cost for metrics.
// priced is false when the model has no price entry.
type CostRecorder interface {
	RecordCost(model string, priced bool, breakdown CostBreakdown)
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

// UsageExtractor reads token usage out of a vendor API response body.
type UsageExtractor interface {
	// Extract parses a raw response payload.
	Extract(ctx context.Context, body []byte) (TokenUsage, error)

	// Vendor returns the vendor identifier.
	Vendor() string
}

// UsageExtractorRegistry manages available usage extractors.
type UsageExtractorRegistry interface {
	// Register adds an extractor to the registry.
	Register(ctx context.Context, extractor UsageExtractor) error

	// Get retrieves an extractor by vendor name.
	Get(ctx context.Context, vendor string) (UsageExtractor, error)

	// List returns all registered vendor names.
	List(ctx context.Context) ([]string, error)
}

// TokenCounter estimates how many tokens a text costs for a model.
type TokenCounter interface {
	CountText(model string, text string) int
}
