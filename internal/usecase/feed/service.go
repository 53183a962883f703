// Package feed orchestrates the extraction pipeline: fetch the source page,
// extract raw entries, normalize fields, dedupe and order, then serialize
// the RSS document. One Build call is one complete pipeline run.
package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"custom-rss/internal/domain/entity"
	"custom-rss/internal/infra/extractor"
	"custom-rss/internal/infra/rss"
	"custom-rss/internal/observability/metrics"
	"custom-rss/internal/observability/tracing"
	"custom-rss/internal/usecase/normalize"

	"github.com/PuerkitoBio/goquery"
)

// PageFetcher retrieves the raw HTML for a source URL.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// BuildStats carries per-build diagnostics. Entry-level drops are counted
// here instead of failing the build; external logging consumes them.
type BuildStats struct {
	Extracted         int // raw entries found on the page
	SkippedBlocks     int // blocks matching the marker but not the sub-structure
	DateFailures      int // entries dropped for unparsable dates
	NormalizeFailures int // entries dropped for other field problems
	Duplicates        int // entries removed by identity dedup
	Published         int // entries in the final document
	Duration          time.Duration
}

// BuildResult is one successfully built feed with its serialized document.
type BuildResult struct {
	Feed  *entity.Feed
	Bytes []byte
	Stats BuildStats
}

// Service builds feeds from their definitions.
type Service struct {
	pages    PageFetcher
	location *time.Location
}

// NewService creates a feed build service.
// Published timestamps are pinned to the given location; nil means UTC.
func NewService(pages PageFetcher, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{pages: pages, location: location}
}

// Build runs the full pipeline for one feed definition.
//
// Entry-level failures (unparsable date, empty title, bad link) drop the
// single entry and never escalate; a build with zero surviving entries is
// still a success. Fetch and layout failures escalate so the cache can keep
// serving the previous snapshot.
func (s *Service) Build(ctx context.Context, def entity.FeedDefinition) (*BuildResult, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "feed-build "+def.Path)
	defer span.End()

	start := time.Now()
	result, err := s.build(ctx, def)
	duration := time.Since(start)

	metrics.RecordFeedBuild(def.Path, duration, err == nil)
	if err != nil {
		return nil, err
	}

	result.Stats.Duration = duration
	s.recordStats(def.Path, result.Stats)

	slog.Info("feed build completed",
		slog.String("path", def.Path),
		slog.Int("extracted", result.Stats.Extracted),
		slog.Int("skipped_blocks", result.Stats.SkippedBlocks),
		slog.Int("date_failures", result.Stats.DateFailures),
		slog.Int("normalize_failures", result.Stats.NormalizeFailures),
		slog.Int("duplicates", result.Stats.Duplicates),
		slog.Int("published", result.Stats.Published),
		slog.Duration("duration", duration),
	)

	return result, nil
}

func (s *Service) build(ctx context.Context, def entity.FeedDefinition) (*BuildResult, error) {
	body, err := s.pages.Fetch(ctx, def.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("fetch source page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	ex, err := extractor.ForKind(def.ExtractorKind)
	if err != nil {
		return nil, err
	}
	extracted, err := ex.Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("extract entries: %w", err)
	}

	base, err := def.BaseURL()
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	normalizer := normalize.New(base, normalize.DefaultConfig(s.location))

	stats := BuildStats{
		Extracted:     len(extracted.Entries),
		SkippedBlocks: extracted.Skipped,
	}

	entries := make([]entity.Entry, 0, len(extracted.Entries))
	for _, raw := range extracted.Entries {
		entry, err := normalizer.Normalize(raw)
		if err != nil {
			var dateErr *normalize.DateParseError
			if errors.As(err, &dateErr) {
				stats.DateFailures++
			} else {
				stats.NormalizeFailures++
			}
			slog.Warn("dropping entry",
				slog.String("path", def.Path),
				slog.String("title", raw.Title),
				slog.Any("error", err))
			continue
		}
		entries = append(entries, entry)
	}

	ordered, duplicates := Order(entries)
	stats.Duplicates = duplicates
	stats.Published = len(ordered)

	serialized, err := rss.Marshal(def, ordered)
	if err != nil {
		return nil, fmt.Errorf("serialize feed: %w", err)
	}

	return &BuildResult{
		Feed:  &entity.Feed{Definition: def, Entries: ordered},
		Bytes: serialized,
		Stats: stats,
	}, nil
}

func (s *Service) recordStats(path string, stats BuildStats) {
	metrics.RecordEntryOutcome(path, metrics.OutcomePublished, stats.Published)
	metrics.RecordEntryOutcome(path, metrics.OutcomeSkippedBlock, stats.SkippedBlocks)
	metrics.RecordEntryOutcome(path, metrics.OutcomeDateParseFailure, stats.DateFailures)
	metrics.RecordEntryOutcome(path, metrics.OutcomeNormalizeFailure, stats.NormalizeFailures)
	metrics.RecordEntryOutcome(path, metrics.OutcomeDuplicate, stats.Duplicates)
}
