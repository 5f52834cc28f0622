package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/davidbz/pricebook/internal/domain"
	"github.com/davidbz/pricebook/internal/observability"
	"github.com/davidbz/pricebook/internal/pricedata"
	"github.com/davidbz/pricebook/internal/usage"
)

const (
	maxBodyBytes = 4 << 20

	defaultSearchCount = 1
)

// Handler handles HTTP requests.
type Handler struct {
	billing    *domain.BillingService
	resolver   *domain.PricingResolver
	extractors domain.UsageExtractorRegistry
	counter    domain.TokenCounter
	catalog    *pricedata.Catalog
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	billing *domain.BillingService,
	resolver *domain.PricingResolver,
	extractors domain.UsageExtractorRegistry,
	counter domain.TokenCounter,
	catalog *pricedata.Catalog,
) *Handler {
	return &Handler{
		billing:    billing,
		resolver:   resolver,
		extractors: extractors,
		counter:    counter,
		catalog:    catalog,
	}
}

type pricingResponse struct {
	Model           string  `json:"model"`
	NormalizedModel string  `json:"normalized_model"`
	Input           float64 `json:"input"`
	Output          float64 `json:"output"`
}

type normalizeResponse struct {
	Model           string `json:"model"`
	NormalizedModel string `json:"normalized_model"`
}

type modelsResponse struct {
	Models   []string `json:"models"`
	Count    int      `json:"count"`
	Source   string   `json:"source,omitempty"`
	SyncedAt string   `json:"synced_at,omitempty"`
}

type costRequest struct {
	Model        string   `json:"model"`
	InputTokens  *float64 `json:"input_tokens"`
	OutputTokens *float64 `json:"output_tokens"`
}

type rerankRequest struct {
	Model       string   `json:"model"`
	SearchCount *float64 `json:"search_count"`
}

type rerankResponse struct {
	Model        string  `json:"model"`
	SearchCount  float64 `json:"search_count"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

type estimateRequest struct {
	Model        string   `json:"model"`
	Text         string   `json:"text"`
	OutputTokens *float64 `json:"output_tokens"`
}

type usageCostResponse struct {
	Model        string               `json:"model"`
	InputTokens  float64              `json:"input_tokens"`
	OutputTokens float64              `json:"output_tokens"`
	Cost         domain.CostBreakdown `json:"cost"`
}

type spendResponse struct {
	Entries []domain.SpendEntry `json:"entries"`
}

type healthResponse struct {
	Status string `json:"status"`
	Models int    `json:"models"`
	Origin string `json:"pricing_origin,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandlePricing returns the price entry for a model.
func (h *Handler) HandlePricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	model := r.URL.Query().Get("model")
	if model == "" {
		writeError(w, r, http.StatusBadRequest, "model is required")
		return
	}

	ctx = observability.WithModel(ctx, model)

	entry, found := h.resolver.GetModelPricing(ctx, model)
	if !found {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("no pricing data for model %s", model))
		return
	}

	writeJSON(w, r, http.StatusOK, pricingResponse{
		Model:           model,
		NormalizedModel: domain.NormalizeModelName(model),
		Input:           entry.Input,
		Output:          entry.Output,
	})
}

// HandleNormalize returns the canonical form of a model name.
func (h *Handler) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	model := r.URL.Query().Get("model")
	if model == "" {
		writeError(w, r, http.StatusBadRequest, "model is required")
		return
	}

	writeJSON(w, r, http.StatusOK, normalizeResponse{
		Model:           model,
		NormalizedModel: domain.NormalizeModelName(model),
	})
}

// HandleModels lists every priced model.
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	models := h.resolver.Models()

	resp := modelsResponse{
		Models: models,
		Count:  len(models),
	}
	if h.catalog != nil {
		resp.Source = h.catalog.Meta.Source
		resp.SyncedAt = h.catalog.Meta.SyncedAt
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// HandleCost prices and charges explicit token counts.
func (h *Handler) HandleCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req costRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.Model == "" {
		writeError(w, r, http.StatusBadRequest, "model is required")
		return
	}
	if req.InputTokens == nil {
		writeError(w, r, http.StatusBadRequest, "input_tokens is required")
		return
	}

	breakdown, err := h.billing.Charge(ctx, domain.TokenUsage{
		Model:        req.Model,
		InputTokens:  *req.InputTokens,
		OutputTokens: valueOr(req.OutputTokens, 0),
	})
	if err != nil {
		writeDomainError(w, r, "cost calculation failed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, breakdown)
}

// HandleRerankCost prices and charges a rerank call by search count.
func (h *Handler) HandleRerankCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req rerankRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.Model == "" {
		writeError(w, r, http.StatusBadRequest, "model is required")
		return
	}

	searchCount := valueOr(req.SearchCount, defaultSearchCount)

	total, err := h.billing.ChargeRerank(ctx, req.Model, searchCount)
	if err != nil {
		writeDomainError(w, r, "rerank cost calculation failed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, rerankResponse{
		Model:        req.Model,
		SearchCount:  searchCount,
		TotalCostUSD: total,
	})
}

// HandleVendorCost prices and charges a raw vendor API response.
func (h *Handler) HandleVendorCost(w http.ResponseWriter, r *http.Request) {
	vendor := r.PathValue("vendor")
	ctx := observability.WithVendor(r.Context(), vendor)

	extractor, err := h.extractors.Get(ctx, vendor)
	if err != nil {
		writeDomainError(w, r, "unknown vendor", err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
		return
	}

	tokenUsage, err := extractor.Extract(ctx, body)
	if err != nil {
		writeDomainError(w, r, "usage extraction failed", err)
		return
	}

	breakdown, err := h.billing.Charge(ctx, tokenUsage)
	if err != nil {
		writeDomainError(w, r, "cost calculation failed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, usageCostResponse{
		Model:        tokenUsage.Model,
		InputTokens:  tokenUsage.InputTokens,
		OutputTokens: tokenUsage.OutputTokens,
		Cost:         breakdown,
	})
}

// HandleEstimate quotes a prompt before it is sent. Nothing is charged.
func (h *Handler) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req estimateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.Model == "" {
		writeError(w, r, http.StatusBadRequest, "model is required")
		return
	}

	tokenUsage := domain.TokenUsage{
		Model:        req.Model,
		InputTokens:  float64(h.counter.CountText(req.Model, req.Text)),
		OutputTokens: valueOr(req.OutputTokens, 0),
	}

	breakdown, err := h.billing.Quote(ctx, tokenUsage)
	if err != nil {
		writeDomainError(w, r, "cost estimate failed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, usageCostResponse{
		Model:        tokenUsage.Model,
		InputTokens:  tokenUsage.InputTokens,
		OutputTokens: tokenUsage.OutputTokens,
		Cost:         breakdown,
	})
}

// HandleSpend returns accumulated spend per model.
func (h *Handler) HandleSpend(w http.ResponseWriter, r *http.Request) {
	entries, err := h.billing.Spend(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to read spend", err)
		return
	}

	if entries == nil {
		entries = []domain.SpendEntry{}
	}

	writeJSON(w, r, http.StatusOK, spendResponse{Entries: entries})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "healthy",
		Models: len(h.resolver.Models()),
	}
	if h.catalog != nil {
		resp.Origin = h.catalog.Origin
	}

	writeJSON(w, r, http.StatusOK, resp)
}

func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, usage.ErrVendorNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrLedgerDisabled):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := statusForError(err)

	logger := observability.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error(msg, observability.Error(err))
	} else {
		logger.Info(msg, observability.Error(err), observability.Int("status", status))
	}

	writeError(w, r, status, err.Error())
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Status is already written, just log.
		observability.FromContext(r.Context()).Error("failed to encode response", observability.Error(err))
	}
}
