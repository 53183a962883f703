// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Build metrics track the extraction pipeline per feed path
var (
	// FeedBuildsTotal counts feed rebuild attempts by result
	FeedBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_builds_total",
			Help: "Total number of feed build attempts",
		},
		[]string{"path", "result"},
	)

	// FeedBuildDuration measures time to rebuild one feed
	FeedBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_build_duration_seconds",
			Help:    "Time taken to fetch, extract and serialize one feed",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"path"},
	)

	// FeedEntriesTotal counts entries flowing out of each build stage
	FeedEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_entries_total",
			Help: "Total number of entries processed per build outcome",
		},
		[]string{"path", "outcome"}, // outcome: published, skipped_block, date_parse_failure, normalize_failure, duplicate
	)

	// FeedLastSuccessTimestamp is the unix time of the last successful build.
	// Sustained fetch failure shows up as this gauge falling behind.
	FeedLastSuccessTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feed_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful build per feed path",
		},
		[]string{"path"},
	)

	// FeedConsecutiveFailures tracks rebuild failures since the last success
	FeedConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feed_consecutive_failures",
			Help: "Number of consecutive rebuild failures per feed path",
		},
		[]string{"path"},
	)
)

// Cache metrics track how requests are served
var (
	// CacheRequestsTotal counts cache lookups by outcome
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_cache_requests_total",
			Help: "Total number of feed cache lookups",
		},
		[]string{"path", "outcome"}, // outcome: fresh, stale, rebuilt, first_build, unavailable
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
