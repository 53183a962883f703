package http

import (
	"log/slog"
	"net/http"

	"custom-rss/internal/domain/entity"
	"custom-rss/internal/handler/http/requestid"
	"custom-rss/internal/observability/tracing"
)

// NewRouter builds the full handler tree: one route per feed definition,
// /healthz and /metrics, all behind the shared middleware chain.
func NewRouter(store FeedStore, defs []entity.FeedDefinition, logger *slog.Logger, version string) http.Handler {
	mux := http.NewServeMux()

	feedHandler := NewFeedHandler(store)
	for _, def := range defs {
		mux.Handle(def.Path, feedHandler)
	}
	mux.Handle("/healthz", &HealthHandler{Store: store, Version: version})
	mux.Handle("/metrics", MetricsHandler())

	return Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		Logging(logger),
		Metrics,
		Recover(logger),
	)
}
