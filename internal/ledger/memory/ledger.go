package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/davidbz/pricebook/internal/domain"
)

// Ledger aggregates charged spend per model in process memory. Thread-safe.
type Ledger struct {
	mu      sync.RWMutex
	buckets map[string]*domain.SpendEntry
}

// NewLedger creates an empty in-memory ledger.
func NewLedger() *Ledger {
	return &Ledger{
		mu:      sync.RWMutex{},
		buckets: make(map[string]*domain.SpendEntry),
	}
}

// Record adds a charge to the model's bucket.
func (l *Ledger) Record(_ context.Context, entry domain.SpendEntry) error {
	if entry.Model == "" {
		return errors.New("model cannot be empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[entry.Model]
	if !ok {
		bucket = &domain.SpendEntry{Model: entry.Model}
		l.buckets[entry.Model] = bucket
	}

	bucket.InputTokens += entry.InputTokens
	bucket.OutputTokens += entry.OutputTokens
	bucket.TotalCostUSD += entry.TotalCostUSD
	bucket.RequestCount += entry.RequestCount

	return nil
}

// Totals returns a copy of every bucket.
func (l *Ledger) Totals(_ context.Context) ([]domain.SpendEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]domain.SpendEntry, 0, len(l.buckets))
	for _, bucket := range l.buckets {
		entries = append(entries, *bucket)
	}

	return entries, nil
}
