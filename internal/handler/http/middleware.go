package http

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"custom-rss/internal/handler/http/requestid"
	"custom-rss/internal/handler/http/responsewriter"
	"custom-rss/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
)

// Logging returns middleware that logs each request with structured fields,
// including the request ID and the OpenTelemetry trace ID so logs and
// traces can be correlated.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := responsewriter.Wrap(w)

			next.ServeHTTP(wrapped, r)

			span := trace.SpanFromContext(r.Context())
			duration := time.Since(start)

			logger.Info("request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", span.SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
			)
		})
	}
}

// Metrics returns middleware that records request count and latency.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := responsewriter.Wrap(w)

		next.ServeHTTP(wrapped, r)

		metrics.RecordHTTPRequest(
			r.Method,
			r.URL.Path,
			strconv.Itoa(wrapped.StatusCode()),
			time.Since(start),
		)
	})
}

// Recover returns middleware that catches panics, logs them with the stack
// trace and answers 500.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					http.Error(w, "internal error", http.StatusInternalServerError)

					logger.Error("panic recovered",
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// MetricsHandler exposes the Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// Chain applies middlewares to a handler, first middleware outermost.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
