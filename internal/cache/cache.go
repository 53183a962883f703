// Package cache holds the last successfully built document per feed path and
// coordinates rebuilds so each path has at most one build in flight.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"custom-rss/internal/domain/entity"
	"custom-rss/internal/observability/metrics"
	"custom-rss/internal/usecase/feed"

	"golang.org/x/sync/singleflight"
)

// Builder produces a serialized feed for a definition. Implemented by
// feed.Service.
type Builder interface {
	Build(ctx context.Context, def entity.FeedDefinition) (*feed.BuildResult, error)
}

// CachedFeed is one immutable snapshot of a built feed. Snapshots are
// replaced wholesale; readers holding a reference keep a consistent view.
type CachedFeed struct {
	Bytes   []byte
	BuiltAt time.Time
	Stats   feed.BuildStats
}

// Status describes one path for diagnostics.
type Status struct {
	Path                string     `json:"path"`
	Built               bool       `json:"built"`
	BuiltAt             *time.Time `json:"built_at,omitempty"`
	Published           int        `json:"published"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	LastError           string     `json:"last_error,omitempty"`
}

type pathState struct {
	snapshot *CachedFeed // nil until the first successful build
	failures int
	lastErr  error
}

// Cache serves cached feed documents and rebuilds them when stale.
type Cache struct {
	builder Builder
	defs    map[string]entity.FeedDefinition

	mu     sync.RWMutex
	states map[string]*pathState
	group  singleflight.Group
}

// New creates a cache over the given feed definitions, keyed by path.
func New(builder Builder, defs []entity.FeedDefinition) *Cache {
	byPath := make(map[string]entity.FeedDefinition, len(defs))
	states := make(map[string]*pathState, len(defs))
	for _, d := range defs {
		byPath[d.Path] = d
		states[d.Path] = &pathState{}
	}
	return &Cache{builder: builder, defs: byPath, states: states}
}

// Get returns the serialized feed for a path.
//
// A fresh snapshot is served directly. A stale snapshot is served
// immediately while a single background rebuild replaces it; concurrent
// readers never wait on a rebuild once any snapshot exists. Only a path
// that has never been built blocks, and only the first request triggers
// the build. entity.ErrNotFound is returned for unknown paths and
// entity.ErrNotBuilt when the blocking first build fails.
func (c *Cache) Get(ctx context.Context, path string) ([]byte, error) {
	def, ok := c.defs[path]
	if !ok {
		return nil, entity.ErrNotFound
	}

	c.mu.RLock()
	snap := c.states[path].snapshot
	c.mu.RUnlock()

	if snap == nil {
		metrics.RecordCacheRequest(path, metrics.CacheFirstBuild)
		rebuilt, err := c.rebuild(ctx, def)
		if err != nil {
			metrics.RecordCacheRequest(path, metrics.CacheUnavailable)
			return nil, fmt.Errorf("%w: %w", entity.ErrNotBuilt, err)
		}
		return rebuilt.Bytes, nil
	}

	if time.Since(snap.BuiltAt) < def.RefreshInterval {
		metrics.RecordCacheRequest(path, metrics.CacheFresh)
		return snap.Bytes, nil
	}

	metrics.RecordCacheRequest(path, metrics.CacheStale)
	c.refreshAsync(def)
	return snap.Bytes, nil
}

// Refresh rebuilds a path unconditionally, sharing the flight with any
// rebuild already running for it. Used by the background scheduler.
func (c *Cache) Refresh(ctx context.Context, path string) error {
	def, ok := c.defs[path]
	if !ok {
		return entity.ErrNotFound
	}
	_, err := c.rebuild(ctx, def)
	return err
}

// Stale reports the paths whose snapshot is older than its refresh
// interval or missing entirely.
func (c *Cache) Stale() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var paths []string
	for path, state := range c.states {
		if state.snapshot == nil || time.Since(state.snapshot.BuiltAt) >= c.defs[path].RefreshInterval {
			paths = append(paths, path)
		}
	}
	return paths
}

// Snapshot returns per-path diagnostics for the health endpoint.
func (c *Cache) Snapshot() []Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	statuses := make([]Status, 0, len(c.states))
	for path, state := range c.states {
		s := Status{Path: path, ConsecutiveFailures: state.failures}
		if state.snapshot != nil {
			s.Built = true
			builtAt := state.snapshot.BuiltAt
			s.BuiltAt = &builtAt
			s.Published = state.snapshot.Stats.Published
		}
		if state.lastErr != nil {
			s.LastError = state.lastErr.Error()
		}
		statuses = append(statuses, s)
	}
	return statuses
}

func (c *Cache) refreshAsync(def entity.FeedDefinition) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := c.rebuild(ctx, def); err != nil {
			slog.Warn("background rebuild failed, keeping previous snapshot",
				slog.String("path", def.Path),
				slog.Any("error", err))
		}
	}()
}

// rebuild runs at most one build per path; concurrent calls share the result.
func (c *Cache) rebuild(ctx context.Context, def entity.FeedDefinition) (*CachedFeed, error) {
	v, err, _ := c.group.Do(def.Path, func() (any, error) {
		result, err := c.builder.Build(ctx, def)

		c.mu.Lock()
		state := c.states[def.Path]
		if err != nil {
			state.failures++
			state.lastErr = err
			c.mu.Unlock()
			return nil, err
		}
		snap := &CachedFeed{Bytes: result.Bytes, BuiltAt: time.Now(), Stats: result.Stats}
		state.snapshot = snap
		state.failures = 0
		state.lastErr = nil
		c.mu.Unlock()

		metrics.RecordCacheRequest(def.Path, metrics.CacheRebuilt)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CachedFeed), nil
}
