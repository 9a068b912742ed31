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

	httpadapter "github.com/couchcryptid/festival-guide/internal/adapter/http"
	"github.com/couchcryptid/festival-guide/internal/config"
	"github.com/couchcryptid/festival-guide/internal/observability"
	"github.com/couchcryptid/festival-guide/internal/pipeline"
	"github.com/couchcryptid/festival-guide/internal/recommend"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"golang.org/x/time/rate"
)

const warmInitialBackoff = 500 * time.Millisecond

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	loader := pipeline.NewCachedLoader(
		pipeline.New(logger, metrics, cfg.JitterSeed),
		cfg.CatalogCacheSize,
		metrics,
	)
	catalog := pipeline.NewCatalog(pipeline.FileSource{Path: cfg.CatalogPath}, loader, logger, metrics)
	matcher := recommend.NewMatcher(recommend.WithTopK(cfg.GuideTopK))
	limiter := rate.NewLimiter(rate.Limit(cfg.GuideRateLimit), cfg.GuideRateBurst)

	srv := httpadapter.NewServer(cfg.HTTPAddr, catalog, matcher, limiter, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Load the catalog in the background; /readyz reports 503 until it holds records.
	go func() {
		if err := catalog.Warm(ctx, warmInitialBackoff, cfg.CatalogRetryMax); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("catalog warm-up failed", "path", cfg.CatalogPath, "error", err)
		}
	}()

	logger.Info("festival guide started",
		"catalog_path", cfg.CatalogPath,
		"top_k", cfg.GuideTopK,
		"jitter_seeded", cfg.JitterSeed != 0,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
