package metrics //nolint:testpackage // Need access to unexported collectors

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/pricebook/internal/config"
	"github.com/davidbz/pricebook/internal/domain"
)

func TestCollector_ObserveLookup(t *testing.T) {
	collector := NewCollector(&config.MetricsConfig{Namespace: "test"})

	collector.ObserveLookup("gpt-5", true)
	collector.ObserveLookup("gpt-5-mini", true)
	collector.ObserveLookup("unknown", false)

	require.InDelta(t, 2.0, testutil.ToFloat64(collector.lookupsTotal.WithLabelValues(lookupHit)), 0.0001)
	require.InDelta(t, 1.0, testutil.ToFloat64(collector.lookupsTotal.WithLabelValues(lookupMiss)), 0.0001)
}

func TestCollector_RecordCost(t *testing.T) {
	collector := NewCollector(nil)

	collector.RecordCost("gpt-5", true, domain.CostBreakdown{TotalCostUSD: 0.5})
	collector.RecordCost("gpt-5", true, domain.CostBreakdown{TotalCostUSD: 0.25})
	collector.RecordCost("made-up-model", false, domain.CostBreakdown{})

	require.InDelta(t, 0.75, testutil.ToFloat64(collector.costTotal.WithLabelValues("gpt-5")), 1e-9)
	require.Equal(t, 2, testutil.CollectAndCount(collector.costPerRequest))
	require.Equal(t, 1, testutil.CollectAndCount(collector.costTotal))
}

func TestCollector_RecordCost_UnpricedModelsShareOneSeries(t *testing.T) {
	collector := NewCollector(nil)

	for i := range 200 {
		collector.RecordCost(fmt.Sprintf("junk-%d-x", i), false, domain.CostBreakdown{})
	}

	require.Equal(t, 1, testutil.CollectAndCount(collector.costPerRequest))
	require.Equal(t, 0, testutil.CollectAndCount(collector.costTotal))
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(&config.MetricsConfig{Namespace: "pricebook"})
	collector.SetTableSize(42)
	collector.ObserveLookup("gpt-5", true)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	collector.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "pricebook_price_table_models 42")
	require.Contains(t, string(body), `pricebook_lookups_total{result="hit"} 1`)
}
