package usage_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/pricebook/internal/domain"
	"github.com/davidbz/pricebook/internal/usage"
)

type stubExtractor struct {
	vendor string
}

func (s *stubExtractor) Extract(_ context.Context, _ []byte) (domain.TokenUsage, error) {
	return domain.TokenUsage{Model: s.vendor + "-model", InputTokens: 1}, nil
}

func (s *stubExtractor) Vendor() string {
	return s.vendor
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should register extractor successfully", func(t *testing.T) {
		reg := usage.NewRegistry()
		ctx := context.Background()

		err := reg.Register(ctx, &stubExtractor{vendor: "openai"})
		require.NoError(t, err)

		registered, err := reg.Get(ctx, "openai")
		require.NoError(t, err)
		require.Equal(t, "openai", registered.Vendor())
	})

	t.Run("should return error when extractor is nil", func(t *testing.T) {
		reg := usage.NewRegistry()

		err := reg.Register(context.Background(), nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "extractor cannot be nil")
	})

	t.Run("should return error when vendor name is empty", func(t *testing.T) {
		reg := usage.NewRegistry()

		err := reg.Register(context.Background(), &stubExtractor{vendor: ""})
		require.Error(t, err)
		require.Contains(t, err.Error(), "vendor name cannot be empty")
	})

	t.Run("should return error when vendor already registered", func(t *testing.T) {
		reg := usage.NewRegistry()
		ctx := context.Background()

		require.NoError(t, reg.Register(ctx, &stubExtractor{vendor: "anthropic"}))

		err := reg.Register(ctx, &stubExtractor{vendor: "anthropic"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "already registered")
	})
}

func TestRegistry_Get(t *testing.T) {
	t.Run("should return error when vendor name is empty", func(t *testing.T) {
		reg := usage.NewRegistry()

		_, err := reg.Get(context.Background(), "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "vendor name cannot be empty")
	})

	t.Run("should return ErrVendorNotFound for unknown vendor", func(t *testing.T) {
		reg := usage.NewRegistry()

		_, err := reg.Get(context.Background(), "cohere")
		require.Error(t, err)
		require.True(t, errors.Is(err, usage.ErrVendorNotFound))
		require.Contains(t, err.Error(), "cohere")
	})
}

func TestRegistry_List(t *testing.T) {
	t.Run("should return empty list when nothing registered", func(t *testing.T) {
		reg := usage.NewRegistry()

		vendors, err := reg.List(context.Background())
		require.NoError(t, err)
		require.NotNil(t, vendors)
		require.Empty(t, vendors)
	})

	t.Run("should return sorted vendor names", func(t *testing.T) {
		reg := usage.NewRegistry()
		ctx := context.Background()

		require.NoError(t, reg.Register(ctx, &stubExtractor{vendor: "openai"}))
		require.NoError(t, reg.Register(ctx, &stubExtractor{vendor: "anthropic"}))

		vendors, err := reg.List(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"anthropic", "openai"}, vendors)
	})
}

func TestRegistry_Concurrent(t *testing.T) {
	reg := usage.NewRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_ = reg.Register(ctx, &stubExtractor{vendor: fmt.Sprintf("vendor-%d", idx)})
		}(i)
	}
	wg.Wait()

	vendors, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, vendors, 10)
}
