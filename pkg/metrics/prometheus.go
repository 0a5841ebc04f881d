// Package metrics provides Prometheus metrics for the fightcard crawler and API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Page kinds used as the "kind" label on fetch metrics.
const (
	KindLanding = "landing"
	KindListing = "listing"
	KindEvent   = "event"
)

// Drop reasons used as the "reason" label on dropped block metrics.
const (
	ReasonMalformed = "malformed"
	ReasonDuplicate = "duplicate"
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Crawl
	pagesFetched       *prometheus.CounterVec
	fetchLatency       *prometheus.HistogramVec
	fightsExtracted    prometheus.Counter
	blocksDropped      *prometheus.CounterVec
	eventsCataloged    prometheus.Counter
	crawlsTotal        *prometheus.CounterVec
	crawlDuration      prometheus.Histogram
	walkPagesLastRun   prometheus.Gauge
	catalogSizeLastRun prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fightcard",
		subsystem:        "crawler",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.pagesFetched = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pages_fetched_total",
		Help:      "Pages fetched from the source site by page kind and outcome",
	}, []string{"kind", "outcome"})

	m.fetchLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_latency_milliseconds",
		Help:      "Source page fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"kind"})

	m.fightsExtracted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fights_extracted_total",
		Help:      "Fight records extracted from event pages",
	})

	m.blocksDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "blocks_dropped_total",
		Help:      "Fight blocks dropped during extraction by reason",
	}, []string{"reason"})

	m.eventsCataloged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_cataloged_total",
		Help:      "Event pages that produced at least one fight",
	})

	m.crawlsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "crawls_total",
		Help:      "Crawl requests by mode (bulk, single) and result",
	}, []string{"mode", "result"})

	m.crawlDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "crawl_duration_milliseconds",
		Help:      "End-to-end duration of a bulk crawl in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.walkPagesLastRun = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "walk_urls_last_run",
		Help:      "URLs discovered by the most recent pagination walk",
	})

	m.catalogSizeLastRun = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_events_last_run",
		Help:      "Events in the catalog produced by the most recent bulk crawl",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Heap bytes allocated by the process",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Number of live goroutines",
	})
}

// RecordPageFetched counts a fetch attempt of the given kind. outcome is
// "ok" or an error class such as "network", "client" or "server".
func (m *Manager) RecordPageFetched(kind, outcome string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.pagesFetched.WithLabelValues(kind, outcome).Inc()
	m.fetchLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordFightsExtracted adds n extracted fights.
func (m *Manager) RecordFightsExtracted(n int) {
	if !m.enabled || n <= 0 {
		return
	}
	m.fightsExtracted.Add(float64(n))
}

// RecordBlockDropped counts one dropped fight block.
func (m *Manager) RecordBlockDropped(reason string) {
	if !m.enabled {
		return
	}
	m.blocksDropped.WithLabelValues(reason).Inc()
}

// RecordEventCataloged counts one event page added to a catalog.
func (m *Manager) RecordEventCataloged() {
	if !m.enabled {
		return
	}
	m.eventsCataloged.Inc()
}

// RecordCrawl counts a finished crawl request.
func (m *Manager) RecordCrawl(mode, result string) {
	if !m.enabled {
		return
	}
	m.crawlsTotal.WithLabelValues(mode, result).Inc()
}

// RecordCrawlDuration observes the duration of a bulk crawl.
func (m *Manager) RecordCrawlDuration(durationMs float64) {
	if !m.enabled {
		return
	}
	m.crawlDuration.Observe(durationMs)
}

// UpdateWalkSize records how many URLs the last walk produced.
func (m *Manager) UpdateWalkSize(n int) {
	if !m.enabled {
		return
	}
	m.walkPagesLastRun.Set(float64(n))
}

// UpdateCatalogSize records how many events the last bulk crawl cataloged.
func (m *Manager) UpdateCatalogSize(n int) {
	if !m.enabled {
		return
	}
	m.catalogSizeLastRun.Set(float64(n))
}

// RecordHTTPRequest counts an API request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystem sets process level gauges.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// Package-level helpers delegate to the global manager.

func RecordPageFetched(kind, outcome string, latencyMs float64) {
	globalManager.RecordPageFetched(kind, outcome, latencyMs)
}

func RecordFightsExtracted(n int) { globalManager.RecordFightsExtracted(n) }

func RecordBlockDropped(reason string) { globalManager.RecordBlockDropped(reason) }

func RecordEventCataloged() { globalManager.RecordEventCataloged() }

func RecordCrawl(mode, result string) { globalManager.RecordCrawl(mode, result) }

func RecordCrawlDuration(durationMs float64) { globalManager.RecordCrawlDuration(durationMs) }

func UpdateWalkSize(n int) { globalManager.UpdateWalkSize(n) }

func UpdateCatalogSize(n int) { globalManager.UpdateCatalogSize(n) }

func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

func UpdateSystem(memBytes uint64, goroutines int) { globalManager.UpdateSystem(memBytes, goroutines) }

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
