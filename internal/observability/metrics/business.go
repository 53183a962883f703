package metrics

import (
	"time"
)

// Entry outcome labels for FeedEntriesTotal.
const (
	OutcomePublished        = "published"
	OutcomeSkippedBlock     = "skipped_block"
	OutcomeDateParseFailure = "date_parse_failure"
	OutcomeNormalizeFailure = "normalize_failure"
	OutcomeDuplicate        = "duplicate"
)

// Cache outcome labels for CacheRequestsTotal.
const (
	CacheFresh       = "fresh"
	CacheStale       = "stale"
	CacheRebuilt     = "rebuilt"
	CacheFirstBuild  = "first_build"
	CacheUnavailable = "unavailable"
)

// RecordFeedBuild records one rebuild attempt for a feed path.
// On success the last-success gauge advances and the consecutive failure
// gauge resets, so sustained failure is visible as a flat timestamp.
func RecordFeedBuild(path string, duration time.Duration, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	FeedBuildsTotal.WithLabelValues(path, result).Inc()
	FeedBuildDuration.WithLabelValues(path).Observe(duration.Seconds())

	if success {
		FeedLastSuccessTimestamp.WithLabelValues(path).SetToCurrentTime()
		FeedConsecutiveFailures.WithLabelValues(path).Set(0)
	} else {
		FeedConsecutiveFailures.WithLabelValues(path).Inc()
	}
}

// RecordEntryOutcome adds to the per-path entry counter for one outcome.
func RecordEntryOutcome(path, outcome string, count int) {
	if count <= 0 {
		return
	}
	FeedEntriesTotal.WithLabelValues(path, outcome).Add(float64(count))
}

// RecordCacheRequest records how one cache lookup was served.
func RecordCacheRequest(path, outcome string) {
	CacheRequestsTotal.WithLabelValues(path, outcome).Inc()
}
