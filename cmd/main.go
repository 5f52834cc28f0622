package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/pricebook/internal/config"
	"github.com/davidbz/pricebook/internal/domain"
	"github.com/davidbz/pricebook/internal/httpserver"
	"github.com/davidbz/pricebook/internal/httpserver/middleware"
	"github.com/davidbz/pricebook/internal/ledger/memory"
	"github.com/davidbz/pricebook/internal/ledger/redis"
	"github.com/davidbz/pricebook/internal/metrics"
	"github.com/davidbz/pricebook/internal/observability"
	"github.com/davidbz/pricebook/internal/pricedata"
	"github.com/davidbz/pricebook/internal/tokenizer"
	"github.com/davidbz/pricebook/internal/usage"
	"github.com/davidbz/pricebook/internal/usage/anthropic"
	"github.com/davidbz/pricebook/internal/usage/openai"
)

const redisPingTimeout = 5 * time.Second

func main() {
	container := buildContainer()

	err := container.Invoke(func(logger *zap.Logger, cfg *config.ServerConfig, server *httpserver.Server) {
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil {
				log.Fatalf("Server failed to start: %v", err)
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", observability.Error(err))
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Price table. A missing or invalid table is fatal.
	if err := container.Provide(pricedata.Load); err != nil {
		log.Fatalf("Failed to provide pricing catalog: %v", err)
	}
	if err := container.Provide(func(catalog *pricedata.Catalog) *domain.PriceTable {
		return catalog.Table
	}); err != nil {
		log.Fatalf("Failed to provide price table: %v", err)
	}

	// Metrics (nil when disabled)
	if err := container.Provide(provideMetrics); err != nil {
		log.Fatalf("Failed to provide metrics: %v", err)
	}
	if err := container.Provide(func(collector *metrics.Collector) domain.LookupObserver {
		if collector == nil {
			return nil
		}
		return collector
	}); err != nil {
		log.Fatalf("Failed to provide lookup observer: %v", err)
	}
	if err := container.Provide(func(collector *metrics.Collector) domain.CostRecorder {
		if collector == nil {
			return nil
		}
		return collector
	}); err != nil {
		log.Fatalf("Failed to provide cost recorder: %v", err)
	}

	// Pricing
	if err := container.Provide(domain.NewPricingResolver); err != nil {
		log.Fatalf("Failed to provide pricing resolver: %v", err)
	}
	if err := container.Provide(func(resolver *domain.PricingResolver) domain.ModelCatalog {
		return resolver
	}); err != nil {
		log.Fatalf("Failed to provide model catalog: %v", err)
	}
	if err := container.Provide(func(resolver *domain.PricingResolver) domain.CostCalculator {
		return domain.NewStandardCostCalculator(resolver)
	}); err != nil {
		log.Fatalf("Failed to provide cost calculator: %v", err)
	}

	// Spend ledger (nil when disabled)
	if err := container.Provide(provideLedger); err != nil {
		log.Fatalf("Failed to provide spend ledger: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewBillingService); err != nil {
		log.Fatalf("Failed to provide billing service: %v", err)
	}

	// Usage extractors
	if err := container.Provide(provideUsageRegistry); err != nil {
		log.Fatalf("Failed to provide usage registry: %v", err)
	}
	if err := container.Provide(func() domain.TokenCounter {
		return tokenizer.NewCounter()
	}); err != nil {
		log.Fatalf("Failed to provide token counter: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(httpserver.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(httpserver.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

func provideMetrics(cfg *config.MetricsConfig, catalog *pricedata.Catalog) *metrics.Collector {
	if !cfg.Enabled {
		return nil
	}

	collector := metrics.NewCollector(cfg)
	collector.SetTableSize(catalog.Table.Len())

	return collector
}

func provideLedger(cfg *config.LedgerConfig, redisCfg *config.RedisConfig) (domain.SpendLedger, error) {
	logger := observability.FromContext(context.Background())

	switch cfg.Backend {
	case "", config.LedgerBackendNone:
		logger.Info("spend ledger disabled")
		return nil, nil

	case config.LedgerBackendMemory:
		logger.Info("using in-memory spend ledger")
		return memory.NewLedger(), nil

	case config.LedgerBackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", redisCfg.Addr, err)
		}

		logger.Info("using redis spend ledger",
			observability.String("addr", redisCfg.Addr),
			observability.String("prefix", cfg.KeyPrefix),
		)

		ledger, err := redis.NewLedger(client, cfg.KeyPrefix)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to create redis ledger: %w", err)
		}
		return ledger, nil

	default:
		return nil, fmt.Errorf("unknown ledger backend: %s", cfg.Backend)
	}
}

func provideUsageRegistry() (domain.UsageExtractorRegistry, error) {
	ctx := context.Background()
	reg := usage.NewRegistry()

	for _, extractor := range []domain.UsageExtractor{
		openai.NewExtractor(),
		anthropic.NewExtractor(),
	} {
		if err := reg.Register(ctx, extractor); err != nil {
			return nil, fmt.Errorf("failed to register %s extractor: %w", extractor.Vendor(), err)
		}
	}

	return reg, nil
}
