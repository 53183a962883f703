package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"custom-rss/internal/cache"
	"custom-rss/internal/config"
	"custom-rss/internal/domain/entity"
	hhttp "custom-rss/internal/handler/http"
	"custom-rss/internal/infra/fetcher"
	"custom-rss/internal/observability/logging"
	"custom-rss/internal/usecase/feed"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	location, err := cfg.Location()
	if err != nil {
		logger.Error("failed to load timezone", slog.Any("error", err))
		os.Exit(1)
	}

	defs := cfg.Definitions()
	pages := fetcher.New(fetcher.DefaultClient())
	builder := feed.NewService(pages, location)
	store := cache.New(builder, defs)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prewarm(ctx, logger, store, defs)

	scheduler := startScheduler(logger, store, cfg.Server.RefreshSchedule)

	server := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           hhttp.NewRouter(store, defs, logger, version()),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.ListenAddr),
			slog.Int("feeds", len(defs)))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	schedulerCtx := scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// Let an in-flight refresh finish within the shutdown budget.
	select {
	case <-schedulerCtx.Done():
	case <-shutdownCtx.Done():
	}

	logger.Info("server stopped")
}

// prewarm builds every feed once at startup so the first requests are
// served from cache. Failures are logged; the scheduler and request path
// retry them later.
func prewarm(ctx context.Context, logger *slog.Logger, store *cache.Cache, defs []entity.FeedDefinition) {
	g, ctx := errgroup.WithContext(ctx)
	for _, def := range defs {
		g.Go(func() error {
			if err := store.Refresh(ctx, def.Path); err != nil {
				logger.Warn("prewarm failed",
					slog.String("path", def.Path),
					slog.Any("error", err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

// startScheduler runs a periodic sweep that rebuilds every stale feed.
func startScheduler(logger *slog.Logger, store *cache.Cache, schedule string) *cron.Cron {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(schedule, func() {
		for _, path := range store.Stale() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if err := store.Refresh(ctx, path); err != nil {
				logger.Warn("scheduled refresh failed",
					slog.String("path", path),
					slog.Any("error", err))
			}
			cancel()
		}
	})
	if err != nil {
		logger.Error("invalid refresh schedule", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Start()
	return scheduler
}

// buildVersion is set at link time via -ldflags.
var buildVersion = "dev"

func version() string {
	return buildVersion
}
