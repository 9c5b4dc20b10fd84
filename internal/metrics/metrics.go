// Package metrics provides Prometheus instrumentation for the medley
// server. All metrics are prefixed with "medley_" and register themselves
// with the default registry via promauto; expose them by mounting
// promhttp.Handler() on the metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medley_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medley_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "medley_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Scan metrics
var (
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medley_scans_total",
			Help: "Total number of catalog scans by result",
		},
		[]string{"result"},
	)

	ScanErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medley_scan_errors_total",
			Help: "Total number of collection scan failures",
		},
		[]string{"collection"},
	)

	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "medley_scan_duration_seconds",
			Help:    "Full catalog scan duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	ScanLastTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "medley_scan_last_timestamp",
			Help: "Unix timestamp of the last completed scan",
		},
	)

	ScanLastDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "medley_scan_last_duration_seconds",
			Help: "Duration of the last completed scan in seconds",
		},
	)

	ScanRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "medley_scan_running",
			Help: "Whether a scan is currently running (1 = running, 0 = idle)",
		},
	)

	ItemsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "medley_items_skipped_total",
			Help: "Total number of items skipped during scans",
		},
	)

	ScanIssues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medley_scan_issues_total",
			Help: "Total number of scan issues by severity",
		},
		[]string{"severity"},
	)
)

// Catalog metrics
var (
	CatalogItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "medley_catalog_items",
			Help: "Number of top-level items per collection",
		},
		[]string{"collection", "kind"},
	)

	CatalogEpisodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "medley_catalog_episodes",
			Help: "Number of episodes per collection",
		},
		[]string{"collection"},
	)

	IndexDocuments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "medley_index_documents",
			Help: "Number of documents in the search index",
		},
	)

	SearchQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "medley_search_queries_total",
			Help: "Total number of search queries served",
		},
	)
)

// Image cache metrics
var (
	ImageCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "medley_image_cache_hits_total",
			Help: "Total number of image cache hits",
		},
	)

	ImageCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "medley_image_cache_misses_total",
			Help: "Total number of image cache misses",
		},
	)

	ImageResizeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "medley_image_resize_duration_seconds",
			Help:    "Image resize duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)
)

// Authentication metrics
var (
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medley_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "medley_active_sessions",
			Help: "Number of active user sessions",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "medley_app_info",
			Help: "Application information",
		},
		[]string{"version", "go_version"},
	)
)

// SetAppInfo sets the application info metric.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}
