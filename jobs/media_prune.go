package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/sk-equipments/storefront/internal/jobs"
)

// ImageDeleter removes a hosted image by public id.
type ImageDeleter interface {
	Delete(ctx context.Context, publicID string) error
}

// MediaPruneJob deletes orphaned images from the image host. Individual
// failures are logged and skipped so one stuck image cannot wedge the queue.
type MediaPruneJob struct {
	Deleter ImageDeleter
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewMediaPruneJob wires dependencies for the prune handler.
func NewMediaPruneJob(deleter ImageDeleter, logger *slog.Logger, metrics *jobmetrics.Metrics) *MediaPruneJob {
	return &MediaPruneJob{Deleter: deleter, Logger: logger, Metrics: metrics}
}

// Handle processes TaskMediaPrune tasks.
func (j *MediaPruneJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Deleter == nil {
		return errors.New("media prune: handler not configured")
	}
	var payload MediaPrunePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskMediaPrune)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	pruned := 0
	for _, id := range payload.PublicIDs {
		if err := j.Deleter.Delete(ctx, id); err != nil {
			j.logger().Warn("prune image", slog.String("public_id", id), slog.Any("error", err))
			continue
		}
		pruned++
	}

	j.logger().Info("media prune finished",
		slog.Int("requested", len(payload.PublicIDs)),
		slog.Int("pruned", pruned))
	return resultErr
}

func (j *MediaPruneJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
