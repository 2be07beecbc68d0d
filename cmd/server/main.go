package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/openbom/bomsight/internal/application"
	"github.com/openbom/bomsight/internal/config"
	"github.com/openbom/bomsight/internal/domain/service"
	"github.com/openbom/bomsight/internal/infrastructure/fixtures"
	"github.com/openbom/bomsight/internal/infrastructure/monitoring"
	"github.com/openbom/bomsight/internal/interfaces/http/handlers"
	"github.com/openbom/bomsight/internal/interfaces/http/router"
	"github.com/openbom/bomsight/pkg/constants"
	"github.com/openbom/bomsight/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("BOMSIGHT_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	ctx := context.Background()

	tracing, err := monitoring.NewTracingManager(&cfg.Monitoring, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize tracing", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
		defer cancel()
		_ = tracing.Shutdown(shutdownCtx)
	}()

	metrics := monitoring.NewMetrics()

	var source fixtures.Source
	if cfg.Fixtures.Dir != "" {
		source = fixtures.DirSource{Dir: cfg.Fixtures.Dir}
	} else {
		source = fixtures.NewHTTPSource(cfg.Fixtures.BaseURL, cfg.Fixtures.RequestTimeoutDuration())
	}
	loader := fixtures.NewLoader(source, metrics, appLogger)

	aggregator := application.NewAggregatorService(service.NewRiskScorer(), service.NewActionAdvisor(), appLogger)
	snapshots := application.NewSnapshotService(loader, aggregator, cfg.Cache.SnapshotTTLDuration(), metrics, appLogger)

	// Warm the snapshot so the first request does not pay the build cost.
	// Partial fixtures are tolerated; a dead fixture source is not.
	if _, err := snapshots.Refresh(ctx); err != nil {
		appLogger.Fatal(ctx, "initial snapshot build failed", err)
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if cfg.Fixtures.Watch && cfg.Fixtures.Dir != "" {
		watcher := fixtures.NewWatcher(cfg.Fixtures.Dir, cfg.Fixtures.WatchDebounceDuration(), func(ctx context.Context) {
			metrics.RecordWatcherTrigger()
			if _, err := snapshots.Refresh(ctx); err != nil {
				appLogger.Error(ctx, "snapshot rebuild after fixture change failed", err)
			}
		}, appLogger)
		go func() {
			if err := watcher.Run(watchCtx); err != nil && err != context.Canceled {
				appLogger.Error(ctx, "fixture watcher stopped", err)
			}
		}()
	}

	r := router.NewRouter(cfg, appLogger, metrics, tracing, router.Handlers{
		Health:   handlers.NewHealthHandler(snapshots, appLogger),
		BOM:      handlers.NewBOMHandler(snapshots, appLogger),
		Risk:     handlers.NewRiskHandler(snapshots, appLogger),
		Region:   handlers.NewRegionHandler(snapshots, appLogger),
		Export:   handlers.NewExportHandler(snapshots, appLogger),
		Snapshot: handlers.NewSnapshotHandler(snapshots, appLogger),
	})

	errCh := make(chan error, 1)
	go func() { errCh <- r.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		appLogger.Info(ctx, "shutdown signal received", logger.Fields{"signal": sig.String()})
	case err := <-errCh:
		if err != nil {
			appLogger.Fatal(ctx, "HTTP server failed", err)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()
	if err := r.Stop(shutdownCtx); err != nil {
		appLogger.Error(ctx, "forced shutdown", err)
	}
	appLogger.Info(ctx, "server stopped")
}
