// Package fetcher retrieves raw HTML pages from the configured source sites.
// It wraps the HTTP round trip with retry, circuit breaking and per-host
// rate limiting so a slow or failing site cannot be hammered by rebuilds.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"custom-rss/internal/resilience/circuitbreaker"
	"custom-rss/internal/resilience/retry"

	"golang.org/x/time/rate"
)

const (
	maxBodySize      = 10 * 1024 * 1024 // 10MB
	defaultUserAgent = "CustomRSSBot/1.0"

	// Outbound politeness: at most one request per second per host,
	// with a small burst for the startup prewarm.
	perHostRate  = rate.Limit(1)
	perHostBurst = 2
)

// Pages fetches raw page bytes over HTTP.
// All methods are safe for concurrent use.
type Pages struct {
	client      *http.Client
	retryConfig retry.Config
	userAgent   string

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	breakers map[string]*circuitbreaker.CircuitBreaker
}

// New creates a Pages fetcher using the given HTTP client.
// The client should be configured with an overall timeout.
func New(client *http.Client) *Pages {
	return &Pages{
		client:      client,
		retryConfig: retry.PageFetchConfig(),
		userAgent:   defaultUserAgent,
		limiters:    make(map[string]*rate.Limiter),
		breakers:    make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// DefaultClient returns an HTTP client suitable for page fetching.
func DefaultClient() *http.Client {
	return &http.Client{Timeout: 20 * time.Second}
}

// Fetch retrieves the raw HTML for the given URL.
// Transient network failures are retried with backoff; HTTP error statuses
// are returned as *retry.HTTPError and only server-side statuses are retried.
func (p *Pages) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	host := req.URL.Hostname()
	if err := p.limiterFor(host).Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var body []byte
	breaker := p.breakerFor(host)
	retryErr := retry.WithBackoff(ctx, p.retryConfig, func() error {
		result, err := breaker.Execute(func() (interface{}, error) {
			return p.doFetch(req)
		})
		if err != nil {
			return err
		}
		body = result.([]byte)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return body, nil
}

// doFetch performs one HTTP round trip without retry or circuit breaking.
func (p *Pages) doFetch(req *http.Request) ([]byte, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	// Limit body size to prevent memory exhaustion
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

// limiterFor returns the rate limiter for a host, creating it on first use.
func (p *Pages) limiterFor(host string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.limiters[host]; ok {
		return l
	}
	l := rate.NewLimiter(perHostRate, perHostBurst)
	p.limiters[host] = l
	return l
}

// breakerFor returns the circuit breaker for a host, creating it on first use.
func (p *Pages) breakerFor(host string) *circuitbreaker.CircuitBreaker {
	p.mu.Lock()
	defer p.mu.Unlock()
	if b, ok := p.breakers[host]; ok {
		return b
	}
	b := circuitbreaker.New(circuitbreaker.PageFetchConfig(host))
	p.breakers[host] = b
	return b
}
