package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"custom-rss/internal/cache"
)

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status    string         `json:"status"` // "healthy" or "degraded"
	Timestamp string         `json:"timestamp"`
	Version   string         `json:"version"`
	Feeds     []cache.Status `json:"feeds"`
}

// HealthHandler reports per-feed build status.
type HealthHandler struct {
	Store   FeedStore
	Version string
}

// ServeHTTP answers GET /healthz.
//
// The service is "degraded" when any feed has consecutive build failures;
// it still answers 200 because stale documents keep being served.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	feeds := h.Store.Snapshot()
	sort.Slice(feeds, func(i, j int) bool { return feeds[i].Path < feeds[j].Path })

	status := "healthy"
	for _, f := range feeds {
		if f.ConsecutiveFailures > 0 {
			status = "degraded"
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.Version,
		Feeds:     feeds,
	}); err != nil {
		slog.Error("failed to encode health response", slog.Any("error", err))
	}
}
