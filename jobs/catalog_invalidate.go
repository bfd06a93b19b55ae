package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/sk-equipments/storefront/internal/catalog"
	jobmetrics "github.com/sk-equipments/storefront/internal/jobs"
)

// CatalogInvalidateJob bumps the snapshot cache version so the next page view
// rebuilds from PostgreSQL.
type CatalogInvalidateJob struct {
	Cache   *catalog.SnapshotCache
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewCatalogInvalidateJob wires dependencies for the invalidation handler.
func NewCatalogInvalidateJob(cache *catalog.SnapshotCache, logger *slog.Logger, metrics *jobmetrics.Metrics) *CatalogInvalidateJob {
	return &CatalogInvalidateJob{Cache: cache, Logger: logger, Metrics: metrics}
}

// Handle processes TaskCatalogInvalidate tasks.
func (j *CatalogInvalidateJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Cache == nil {
		return errors.New("catalog invalidate: handler not configured")
	}
	var payload CatalogInvalidatePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskCatalogInvalidate)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	if err := j.Cache.Bump(ctx); err != nil {
		resultErr = err
		j.logger().Error("bump snapshot cache", slog.Any("error", err))
		return resultErr
	}

	j.logger().Info("snapshot cache invalidated", slog.String("reason", payload.Reason))
	return resultErr
}

func (j *CatalogInvalidateJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *CatalogInvalidateJob) metrics() *jobmetrics.Metrics {
	return j.Metrics
}
