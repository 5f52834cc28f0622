package domain

// TokenUsage is the billable volume of one API call.
type TokenUsage struct {
	Model        string  `json:"model"`
	InputTokens  float64 `json:"input_tokens"`
	OutputTokens float64 `json:"output_tokens"`
}

// SpendEntry is one per-model spend bucket.
type SpendEntry struct {
	Model        string  `json:"model"`
	InputTokens  float64 `json:"input_tokens"`
	OutputTokens float64 `json:"output_tokens"`
	TotalCostUSD float64 `json:"total_cost_usd"`
	RequestCount int64   `json:"request_count"`
}
