package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/sk-equipments/storefront/internal/app"
	"github.com/sk-equipments/storefront/internal/catalog"
	jobmetrics "github.com/sk-equipments/storefront/internal/jobs"
	"github.com/sk-equipments/storefront/internal/media"
	"github.com/sk-equipments/storefront/internal/platform/cache"
	"github.com/sk-equipments/storefront/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := jobmetrics.NewMetrics(nil)

	snapshotCache := catalog.NewSnapshotCache(redisClient, cfg.SnapshotCacheTTL)
	invalidateJob := jobs.NewCatalogInvalidateJob(snapshotCache, logger, metrics)

	imageClient := media.NewClient(media.Config{
		CloudName: cfg.ImageCloudName,
		APIKey:    cfg.ImageAPIKey,
		APISecret: cfg.ImageAPISecret,
		Folder:    cfg.ImageFolder,
		Timeout:   cfg.UploadTimeout,
	})
	pruneJob := jobs.NewMediaPruneJob(imageClient, logger, metrics)

	// Write paths enqueue invalidations best effort, so a lost enqueue could
	// leave the snapshot stale for the whole cache TTL. The nightly refresh
	// bounds that.
	nightlyRefresh, err := jobs.NewCatalogInvalidateTask(jobs.CatalogInvalidatePayload{Reason: "scheduled refresh"})
	if err != nil {
		logger.Error("build scheduled task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskCatalogInvalidate, Handler: invalidateJob.Handle},
			{Type: jobs.TaskMediaPrune, Handler: pruneJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 4 * * *", Task: nightlyRefresh},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
