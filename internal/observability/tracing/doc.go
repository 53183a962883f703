// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware creates a server span per request and propagates the
// trace ID back to clients via the X-Trace-Id header. Pipeline stages can
// create child spans through GetTracer.
//
// Example usage:
//
//	import "custom-rss/internal/observability/tracing"
//
//	func build(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "feed-build")
//	    defer span.End()
//	    // ... fetch, extract, serialize ...
//	}
package tracing
