// Package metrics provides Prometheus metrics for the tactical engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingest metrics
	eventsIngested  prometheus.Counter
	duplicateEvents prometheus.Counter

	// Model metrics
	shotsScored        prometheus.Counter
	modelFitDurationMs prometheus.Histogram
	modelAccuracy      prometheus.Gauge

	// Aggregation metrics
	snapshotsBuilt    prometheus.Counter
	snapshotCacheSize prometheus.Gauge

	// Recommendation metrics
	recommendations *prometheus.CounterVec

	// Simulator metrics
	simulatorTicks prometheus.Counter
	trackedPlayers prometheus.Gauge

	// HTTP metrics
	httpRequests          *prometheus.CounterVec
	httpRequestDurationMs *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gaffer",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.eventsIngested = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "events_ingested_total",
		Help: "Match events accepted into the event store.",
	})
	m.duplicateEvents = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "events_duplicate_total",
		Help: "Feed records dropped for carrying an already-ingested ID.",
	})
	m.shotsScored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "shots_scored_total",
		Help: "Shot records assigned an xG by the model.",
	})
	m.modelFitDurationMs = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "model_fit_duration_ms",
		Help:    "Wall time of the one-time model fit, in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.modelAccuracy = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "model_holdout_accuracy",
		Help: "Held-out classification accuracy of the last fit (diagnostic).",
	})
	m.snapshotsBuilt = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "stat_snapshots_built_total",
		Help: "Per-(team,minute) statistics snapshots computed.",
	})
	m.snapshotCacheSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "stat_snapshot_cache_size",
		Help: "Snapshots currently memoized.",
	})
	m.recommendations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "recommendations_total",
		Help: "Recommendations served, by mode and selected rule.",
	}, []string{"mode", "rule"})
	m.simulatorTicks = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "simulator_ticks_total",
		Help: "Position simulator steps executed.",
	})
	m.trackedPlayers = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "tracked_players",
		Help: "Players tracked by the position simulator.",
	})
	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests, by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDurationMs = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request latency in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Handler serves the custom registry over HTTP.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// Package-level record helpers against the global manager.

// RecordEventsIngested adds to the ingested-events counter.
func RecordEventsIngested(n int) { globalManager.eventsIngested.Add(float64(n)) }

// RecordDuplicateEvents adds to the duplicate-events counter.
func RecordDuplicateEvents(n int) { globalManager.duplicateEvents.Add(float64(n)) }

// RecordShotsScored adds to the scored-shots counter.
func RecordShotsScored(n int) { globalManager.shotsScored.Add(float64(n)) }

// RecordModelFit records fit wall time and held-out accuracy.
func RecordModelFit(durationMs, accuracy float64) {
	globalManager.modelFitDurationMs.Observe(durationMs)
	globalManager.modelAccuracy.Set(accuracy)
}

// RecordSnapshotBuilt counts one computed snapshot.
func RecordSnapshotBuilt() { globalManager.snapshotsBuilt.Inc() }

// UpdateSnapshotCacheSize sets the memoized-snapshot gauge.
func UpdateSnapshotCacheSize(n int) { globalManager.snapshotCacheSize.Set(float64(n)) }

// RecordRecommendation counts one served recommendation.
func RecordRecommendation(mode, rule string) {
	globalManager.recommendations.WithLabelValues(mode, rule).Inc()
}

// RecordSimulatorTicks adds to the tick counter.
func RecordSimulatorTicks(n int) { globalManager.simulatorTicks.Add(float64(n)) }

// UpdateTrackedPlayers sets the tracked-players gauge.
func UpdateTrackedPlayers(n int) { globalManager.trackedPlayers.Set(float64(n)) }

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDurationMs.WithLabelValues(endpoint, method, status).Observe(durationMs)
}
