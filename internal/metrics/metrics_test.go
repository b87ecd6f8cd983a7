package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-model-indexer/internal/metrics"
)

func TestReconcilerMetrics_ObserveAdvance(t *testing.T) {
	m := metrics.Reconciler()
	m.ObserveAdvance("eip155:1", "models", 90, 100, 10*time.Millisecond, nil)
	m.ObserveAdvance("eip155:1", "models", 0, 0, time.Millisecond, errors.New("rpc down"))
	m.DecodeError("eip155:1", "models")
	m.Deferred("eip155:1", "models", 2)

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			switch {
			case metric.GetGauge() != nil:
				values[family.GetName()] = metric.GetGauge().GetValue()
			case metric.GetCounter() != nil:
				values[family.GetName()] = metric.GetCounter().GetValue()
			}
		}
	}

	assert.Equal(t, float64(10), values["model_indexer_reconciler_lag_blocks"])
	assert.Equal(t, float64(90), values["model_indexer_reconciler_cursor_block"])
	assert.Equal(t, float64(1), values["model_indexer_reconciler_advance_errors_total"])
	assert.Equal(t, float64(1), values["model_indexer_reconciler_decode_errors_total"])
	assert.Equal(t, float64(2), values["model_indexer_reconciler_events_deferred_total"])
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *metrics.SplitterMetrics
	assert.NotPanics(t, func() {
		m.PaymentRegistered()
		m.PaymentsProcessed(3)
		m.PaymentCollision()
		m.Withdrawal("completed")
	})
}

func TestSplitterMetrics_PaymentCollision(t *testing.T) {
	counter := func() float64 {
		families, err := metrics.Registry().Gather()
		require.NoError(t, err)
		for _, family := range families {
			if family.GetName() == "model_indexer_splitter_payment_collisions_total" {
				return family.GetMetric()[0].GetCounter().GetValue()
			}
		}
		return 0
	}

	before := counter()
	metrics.Splitter().PaymentCollision()
	assert.Equal(t, before+1, counter())
}

func TestHandler(t *testing.T) {
	metrics.HTTP().Observe("/health", http.MethodGet, http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "model_indexer_http_requests_total")
}
