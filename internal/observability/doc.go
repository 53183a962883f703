// Package observability provides production-grade observability infrastructure
// including structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// This package centralizes observability concerns to enable:
//   - Request tracing across service boundaries
//   - Structured logging with context propagation
//   - Prometheus metrics for monitoring
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracing integration
//
// Example usage:
//
//	import (
//	    "custom-rss/internal/observability/logging"
//	    "custom-rss/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordFeedBuild("/verde/blog/feed", time.Second, true)
//	}
package observability
