// Package http wires the feed, health and metrics endpoints with the
// middleware chain (request IDs, tracing, logging, metrics, panic recovery).
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"custom-rss/internal/cache"
	"custom-rss/internal/domain/entity"
	"custom-rss/internal/handler/http/requestid"
	"custom-rss/internal/infra/rss"
)

// FeedStore serves cached feed documents. Implemented by cache.Cache.
type FeedStore interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Snapshot() []cache.Status
}

// FeedHandler serves one serialized feed per registered path.
type FeedHandler struct {
	store FeedStore
}

// NewFeedHandler creates a feed handler over the given store.
func NewFeedHandler(store FeedStore) *FeedHandler {
	return &FeedHandler{store: store}
}

// ServeHTTP answers GET requests for a configured feed path.
//
// Unknown paths are 404, a path whose first build has not succeeded yet is
// 503 with Retry-After. A cached (possibly stale) document is always served
// with 200.
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := h.store.Get(r.Context(), r.URL.Path)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			http.NotFound(w, r)
		case errors.Is(err, entity.ErrNotBuilt):
			slog.Warn("feed unavailable",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("path", r.URL.Path),
				slog.Any("error", err))
			w.Header().Set("Retry-After", "60")
			http.Error(w, "feed not available yet", http.StatusServiceUnavailable)
		default:
			slog.Error("feed request failed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("path", r.URL.Path),
				slog.Any("error", err))
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", rss.ContentType)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(body)
	}
}
