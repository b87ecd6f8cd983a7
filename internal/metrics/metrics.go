// Package metrics holds the Prometheus collectors of the indexer.
// Collectors are created lazily on first use and registered on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "model_indexer"

var (
	registryOnce sync.Once
	registry     *prometheus.Registry

	reconcilerOnce sync.Once
	reconcilerReg  *ReconcilerMetrics

	splitterOnce sync.Once
	splitterReg  *SplitterMetrics

	metadataOnce sync.Once
	metadataReg  *MetadataMetrics

	httpOnce sync.Once
	httpReg  *HTTPMetrics
)

// Registry returns the registry every collector of this package is registered on
func Registry() *prometheus.Registry {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
	return registry
}

// Handler serves the registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}

// ReconcilerMetrics tracks stream advances
type ReconcilerMetrics struct {
	events       *prometheus.CounterVec
	decodeErrors *prometheus.CounterVec
	deferred     *prometheus.CounterVec
	advanceErrs  *prometheus.CounterVec
	cursor       *prometheus.GaugeVec
	lag          *prometheus.GaugeVec
	duration     *prometheus.HistogramVec
}

// Reconciler returns the lazily-initialised reconciler metrics
func Reconciler() *ReconcilerMetrics {
	reconcilerOnce.Do(func() {
		reconcilerReg = &ReconcilerMetrics{
			events: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "reconciler",
				Name:      "events_applied_total",
				Help:      "Ledger events applied to the store, by stream and event name.",
			}, []string{"chain", "stream", "event"}),
			decodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "reconciler",
				Name:      "decode_errors_total",
				Help:      "Logs skipped because they could not be decoded.",
			}, []string{"chain", "stream"}),
			deferred: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "reconciler",
				Name:      "events_deferred_total",
				Help:      "Events parked until their parent entity is known.",
			}, []string{"chain", "stream"}),
			advanceErrs: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "reconciler",
				Name:      "advance_errors_total",
				Help:      "Failed stream advances.",
			}, []string{"chain", "stream"}),
			cursor: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "reconciler",
				Name:      "cursor_block",
				Help:      "Last fully processed block of a stream.",
			}, []string{"chain", "stream"}),
			lag: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "reconciler",
				Name:      "lag_blocks",
				Help:      "Distance between the chain head and the stream cursor.",
			}, []string{"chain", "stream"}),
			duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "reconciler",
				Name:      "advance_duration_seconds",
				Help:      "Duration of a stream advance.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"chain", "stream"}),
		}
		Registry().MustRegister(
			reconcilerReg.events,
			reconcilerReg.decodeErrors,
			reconcilerReg.deferred,
			reconcilerReg.advanceErrs,
			reconcilerReg.cursor,
			reconcilerReg.lag,
			reconcilerReg.duration,
		)
	})
	return reconcilerReg
}

// EventApplied counts an applied event
func (m *ReconcilerMetrics) EventApplied(chain, stream, event string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(chain, stream, event).Inc()
}

// DecodeError counts a skipped log
func (m *ReconcilerMetrics) DecodeError(chain, stream string) {
	if m == nil {
		return
	}
	m.decodeErrors.WithLabelValues(chain, stream).Inc()
}

// Deferred counts parked events
func (m *ReconcilerMetrics) Deferred(chain, stream string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.deferred.WithLabelValues(chain, stream).Add(float64(count))
}

// ObserveAdvance records the outcome of a stream advance
func (m *ReconcilerMetrics) ObserveAdvance(chain, stream string, cursor, head uint64, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(chain, stream).Observe(duration.Seconds())
	if err != nil {
		m.advanceErrs.WithLabelValues(chain, stream).Inc()
		return
	}
	m.cursor.WithLabelValues(chain, stream).Set(float64(cursor))
	lag := 0.0
	if head > cursor {
		lag = float64(head - cursor)
	}
	m.lag.WithLabelValues(chain, stream).Set(lag)
}

// SplitterMetrics tracks the payment queue and payouts
type SplitterMetrics struct {
	registered   prometheus.Counter
	processed    prometheus.Counter
	collisions   prometheus.Counter
	casConflicts prometheus.Counter
	withdrawals  *prometheus.CounterVec
}

// Splitter returns the lazily-initialised splitter metrics
func Splitter() *SplitterMetrics {
	splitterOnce.Do(func() {
		splitterReg = &SplitterMetrics{
			registered: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "splitter",
				Name:      "payments_registered_total",
				Help:      "Payments added to the pending queue.",
			}),
			processed: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "splitter",
				Name:      "payments_processed_total",
				Help:      "Payments distributed to recipient balances.",
			}),
			collisions: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "splitter",
				Name:      "payment_collisions_total",
				Help:      "Ledger payments dropped because their transaction already has a different queued payment.",
			}),
			casConflicts: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "splitter",
				Name:      "balance_conflicts_total",
				Help:      "Optimistic balance updates retried after a concurrent write.",
			}),
			withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "splitter",
				Name:      "withdrawals_total",
				Help:      "Withdrawals by final status.",
			}, []string{"status"}),
		}
		Registry().MustRegister(
			splitterReg.registered,
			splitterReg.processed,
			splitterReg.collisions,
			splitterReg.casConflicts,
			splitterReg.withdrawals,
		)
	})
	return splitterReg
}

func (m *SplitterMetrics) PaymentRegistered() {
	if m == nil {
		return
	}
	m.registered.Inc()
}

func (m *SplitterMetrics) PaymentCollision() {
	if m == nil {
		return
	}
	m.collisions.Inc()
}

func (m *SplitterMetrics) PaymentsProcessed(count int) {
	if m == nil {
		return
	}
	m.processed.Add(float64(count))
}

func (m *SplitterMetrics) BalanceConflict() {
	if m == nil {
		return
	}
	m.casConflicts.Inc()
}

func (m *SplitterMetrics) Withdrawal(status string) {
	if m == nil {
		return
	}
	m.withdrawals.WithLabelValues(status).Inc()
}

// MetadataMetrics tracks metadata fetches
type MetadataMetrics struct {
	fetches *prometheus.CounterVec
}

// Metadata returns the lazily-initialised metadata metrics
func Metadata() *MetadataMetrics {
	metadataOnce.Do(func() {
		metadataReg = &MetadataMetrics{
			fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "metadata",
				Name:      "fetches_total",
				Help:      "Metadata fetches by outcome (ok, stale, error).",
			}, []string{"outcome"}),
		}
		Registry().MustRegister(metadataReg.fetches)
	})
	return metadataReg
}

func (m *MetadataMetrics) Fetch(outcome string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
}

// HTTPMetrics tracks API requests
type HTTPMetrics struct {
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// HTTP returns the lazily-initialised API metrics
func HTTP() *HTTPMetrics {
	httpOnce.Do(func() {
		httpReg = &HTTPMetrics{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route, method and status.",
			}, []string{"route", "method", "status"}),
			durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"route", "method"}),
		}
		Registry().MustRegister(httpReg.requests, httpReg.durations)
	})
	return httpReg
}

// Observe records a finished request
func (m *HTTPMetrics) Observe(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.durations.WithLabelValues(route, method).Observe(duration.Seconds())
}
