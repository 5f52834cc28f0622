package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidbz/pricebook/internal/config"
	"github.com/davidbz/pricebook/internal/domain"
)

const (
	lookupHit  = "hit"
	lookupMiss = "miss"

	// unpricedModel labels cost samples for models without a price entry.
	unpricedModel = "unknown"
)

// Collector tracks pricing lookups and charged cost.
//
// Metrics:
//   - <ns>_lookups_total: pricing lookups by result (hit, miss)
//   - <ns>_cost_usd_total: charged cost in USD by model
//   - <ns>_cost_per_request_usd: charged cost distribution by model
//   - <ns>_price_table_models: number of priced models
type Collector struct {
	registry *prometheus.Registry

	lookupsTotal   *prometheus.CounterVec
	costTotal      *prometheus.CounterVec
	costPerRequest *prometheus.HistogramVec
	tableModels    prometheus.Gauge
}

// NewCollector creates and registers metrics on a private registry.
func NewCollector(cfg *config.MetricsConfig) *Collector {
	namespace := "pricebook"
	if cfg != nil && cfg.Namespace != "" {
		namespace = cfg.Namespace
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),

		lookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lookups_total",
				Help:      "Pricing lookups by result",
			},
			[]string{"result"},
		),

		costTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cost_usd_total",
				Help:      "Total charged cost in USD by model",
			},
			[]string{"model"},
		),

		costPerRequest: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "cost_per_request_usd",
				Help:      "Charged cost distribution per request in USD",
				// Cost buckets: $0.00001 to $10
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"model"},
		),

		tableModels: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "price_table_models",
				Help:      "Number of models in the loaded price table",
			},
		),
	}

	c.registry.MustRegister(
		c.lookupsTotal,
		c.costTotal,
		c.costPerRequest,
		c.tableModels,
	)

	return c
}

// ObserveLookup counts a lookup outcome. Model names are not used as labels
// because unknown names are unbounded.
func (c *Collector) ObserveLookup(_ string, found bool) {
	result := lookupMiss
	if found {
		result = lookupHit
	}
	c.lookupsTotal.WithLabelValues(result).Inc()
}

// RecordCost records a charged cost. Unpriced models share one label so
// series stay bounded by the price table. Zero-cost charges are only counted
// in the histogram.
func (c *Collector) RecordCost(model string, priced bool, breakdown domain.CostBreakdown) {
	if !priced {
		model = unpricedModel
	}

	c.costPerRequest.WithLabelValues(model).Observe(breakdown.TotalCostUSD)

	if breakdown.TotalCostUSD > 0 {
		c.costTotal.WithLabelValues(model).Add(breakdown.TotalCostUSD)
	}
}

// SetTableSize publishes the size of the loaded price table.
func (c *Collector) SetTableSize(models int) {
	c.tableModels.Set(float64(models))
}

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(
		c.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}
