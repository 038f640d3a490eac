// Package telemetry aggregates engine performance metrics: a rolling
// in-process snapshot for GetPerformanceMetrics plus prometheus collectors
// served on /metrics.
package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quaero-ai/quaero/models"
)

// Telemetry tracks query counters and rolling averages. Each engine owns
// one instance with its own prometheus registry, so tests can construct
// engines freely without collector collisions.
type Telemetry struct {
	mu              sync.RWMutex
	enabled         bool
	queries         int64
	cacheHits       int64
	totalTimeMs     float64
	totalConfidence float64

	registry       *prometheus.Registry
	searchesTotal  prometheus.Counter
	cacheHitsTotal prometheus.Counter
	searchSeconds  prometheus.Histogram
	confidenceHist prometheus.Histogram
}

// New creates a telemetry instance. When disabled, recording is a no-op
// and snapshots stay zero.
func New(enabled bool) *Telemetry {
	t := &Telemetry{
		enabled:  enabled,
		registry: prometheus.NewRegistry(),
		searchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quaero_searches_total",
			Help: "Completed search calls.",
		}),
		cacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quaero_cache_hits_total",
			Help: "Search calls served from the response cache.",
		}),
		searchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quaero_search_duration_seconds",
			Help:    "End-to-end search latency.",
			Buckets: prometheus.DefBuckets,
		}),
		confidenceHist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quaero_response_confidence",
			Help:    "Confidence score distribution of returned responses.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
	}
	t.registry.MustRegister(t.searchesTotal, t.cacheHitsTotal, t.searchSeconds, t.confidenceHist)
	return t
}

// RecordSearch accounts one completed search call.
func (t *Telemetry) RecordSearch(elapsedMs, confidence float64, cacheHit bool) {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	t.queries++
	if cacheHit {
		t.cacheHits++
	}
	t.totalTimeMs += elapsedMs
	t.totalConfidence += confidence
	t.mu.Unlock()

	t.searchesTotal.Inc()
	if cacheHit {
		t.cacheHitsTotal.Inc()
	}
	t.searchSeconds.Observe(elapsedMs / 1000)
	t.confidenceHist.Observe(confidence)
}

// Snapshot returns a point-in-time copy of the aggregate metrics.
func (t *Telemetry) Snapshot() models.Metrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	m := models.Metrics{QueriesProcessed: t.queries}
	if t.queries > 0 {
		m.AvgResponseTimeMs = t.totalTimeMs / float64(t.queries)
		m.AvgConfidence = t.totalConfidence / float64(t.queries)
		m.CacheHitRate = float64(t.cacheHits) / float64(t.queries)
	}
	return m
}

// Handler serves this instance's prometheus registry.
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}
