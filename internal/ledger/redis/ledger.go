package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/pricebook/internal/domain"
	"github.com/davidbz/pricebook/internal/observability"
)

const (
	fieldInputTokens  = "input_tokens"
	fieldOutputTokens = "output_tokens"
	fieldTotalCost    = "total_cost_usd"
	fieldRequestCount = "request_count"
)

// Ledger accumulates charged spend in Redis hashes, one per model.
//
// Layout:
//
//	<prefix>:models        set of model names
//	<prefix>:model:<name>  hash of input_tokens, output_tokens, total_cost_usd, request_count
type Ledger struct {
	client *redis.Client
	prefix string
}

// NewLedger creates a Redis-backed ledger.
func NewLedger(client *redis.Client, prefix string) (*Ledger, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if prefix == "" {
		return nil, errors.New("key prefix cannot be empty")
	}

	return &Ledger{
		client: client,
		prefix: prefix,
	}, nil
}

// Record adds a charge to the model's running totals atomically.
func (l *Ledger) Record(ctx context.Context, entry domain.SpendEntry) error {
	if entry.Model == "" {
		return errors.New("model cannot be empty")
	}

	logger := observability.FromContext(ctx)
	key := l.modelKey(entry.Model)

	pipe := l.client.TxPipeline()
	pipe.SAdd(ctx, l.modelsKey(), entry.Model)
	pipe.HIncrByFloat(ctx, key, fieldInputTokens, entry.InputTokens)
	pipe.HIncrByFloat(ctx, key, fieldOutputTokens, entry.OutputTokens)
	pipe.HIncrByFloat(ctx, key, fieldTotalCost, entry.TotalCostUSD)
	pipe.HIncrBy(ctx, key, fieldRequestCount, entry.RequestCount)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("spend record failed",
			observability.String("key", key),
			observability.Error(err))
		return fmt.Errorf("failed to record spend: %w", err)
	}

	logger.Debug("spend recorded", observability.String("key", key))
	return nil
}

// Totals reads back every model bucket.
func (l *Ledger) Totals(ctx context.Context) ([]domain.SpendEntry, error) {
	models, err := l.client.SMembers(ctx, l.modelsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	if len(models) == 0 {
		return []domain.SpendEntry{}, nil
	}

	pipe := l.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(models))
	for i, model := range models {
		cmds[i] = pipe.HGetAll(ctx, l.modelKey(model))
	}

	if _, execErr := pipe.Exec(ctx); execErr != nil {
		return nil, fmt.Errorf("failed to read spend: %w", execErr)
	}

	entries := make([]domain.SpendEntry, 0, len(models))
	for i, model := range models {
		entry, parseErr := parseEntry(model, cmds[i].Val())
		if parseErr != nil {
			return nil, parseErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (l *Ledger) modelsKey() string {
	return l.prefix + ":models"
}

func (l *Ledger) modelKey(model string) string {
	return l.prefix + ":model:" + model
}

// parseEntry converts a spend hash into a SpendEntry. Missing fields read as zero.
func parseEntry(model string, fields map[string]string) (domain.SpendEntry, error) {
	entry := domain.SpendEntry{Model: model}

	floats := map[string]*float64{
		fieldInputTokens:  &entry.InputTokens,
		fieldOutputTokens: &entry.OutputTokens,
		fieldTotalCost:    &entry.TotalCostUSD,
	}
	for field, dst := range floats {
		raw, ok := fields[field]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.SpendEntry{}, fmt.Errorf("invalid %s for model %s: %w", field, model, err)
		}
		*dst = v
	}

	if raw, ok := fields[fieldRequestCount]; ok {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.SpendEntry{}, fmt.Errorf("invalid %s for model %s: %w", fieldRequestCount, model, err)
		}
		entry.RequestCount = v
	}

	return entry, nil
}
