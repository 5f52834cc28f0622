package usage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/davidbz/pricebook/internal/domain"
)

// ErrVendorNotFound is returned by Get for vendors without an extractor.
var ErrVendorNotFound = errors.New("vendor not found")

// Registry implements the UsageExtractorRegistry interface.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]domain.UsageExtractor
}

// NewRegistry creates a new usage extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:         sync.RWMutex{},
		extractors: make(map[string]domain.UsageExtractor),
	}
}

// Register adds an extractor to the registry.
func (r *Registry) Register(_ context.Context, extractor domain.UsageExtractor) error {
	if extractor == nil {
		return errors.New("extractor cannot be nil")
	}

	vendor := extractor.Vendor()
	if vendor == "" {
		return errors.New("vendor name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.extractors[vendor]; exists {
		return fmt.Errorf("vendor %s already registered", vendor)
	}

	r.extractors[vendor] = extractor

	return nil
}

// Get retrieves an extractor by vendor name.
func (r *Registry) Get(_ context.Context, vendor string) (domain.UsageExtractor, error) {
	if vendor == "" {
		return nil, errors.New("vendor name cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	extractor, exists := r.extractors[vendor]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrVendorNotFound, vendor)
	}

	return extractor, nil
}

// List returns all registered vendor names, sorted.
func (r *Registry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.extractors))
	for name := range r.extractors {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}
