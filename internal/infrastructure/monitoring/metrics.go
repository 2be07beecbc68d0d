package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	SnapshotBuilds   *prometheus.CounterVec
	SnapshotLatency  *prometheus.HistogramVec
	FixtureDocLoads  *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPLatency      *prometheus.HistogramVec
	WatcherTriggers  prometheus.Counter
	DanglingRefsSeen prometheus.Gauge
}

// NewMetrics creates and registers the Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		SnapshotBuilds: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bomsight_snapshot_builds_total",
				Help: "Total number of snapshot rebuilds.",
			},
			[]string{"result"},
		),
		SnapshotLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bomsight_snapshot_build_latency_seconds",
				Help:    "Latency of snapshot rebuilds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),
		FixtureDocLoads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bomsight_fixture_doc_loads_total",
				Help: "Total number of fixture document load attempts.",
			},
			[]string{"doc", "result"},
		),
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bomsight_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bomsight_http_request_latency_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		WatcherTriggers: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bomsight_fixture_watch_triggers_total",
				Help: "Total number of fixture change events that triggered a rebuild.",
			},
		),
		DanglingRefsSeen: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "bomsight_snapshot_dangling_refs",
				Help: "Dangling references skipped in the most recent snapshot.",
			},
		),
	}
}

// ObserveSnapshotBuild records the outcome of one snapshot rebuild.
func (m *Metrics) ObserveSnapshotBuild(result string, duration time.Duration) {
	m.SnapshotBuilds.WithLabelValues(result).Inc()
	m.SnapshotLatency.WithLabelValues(result).Observe(duration.Seconds())
}

// ObserveDanglingRefs publishes the dangling reference count of the most
// recent snapshot.
func (m *Metrics) ObserveDanglingRefs(count int) {
	m.DanglingRefsSeen.Set(float64(count))
}

// RecordFixtureDocLoad records one fixture document load attempt.
func (m *Metrics) RecordFixtureDocLoad(doc, result string) {
	m.FixtureDocLoads.WithLabelValues(doc, result).Inc()
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
	m.HTTPLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordWatcherTrigger records one debounced fixture change event.
func (m *Metrics) RecordWatcherTrigger() {
	m.WatcherTriggers.Inc()
}
