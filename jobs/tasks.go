// Package jobs defines the storefront's background tasks and the Asynq
// plumbing that runs them.
package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/sk-equipments/storefront/internal/media"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCatalogInvalidate bumps the snapshot cache version after a
	// catalog write.
	TaskCatalogInvalidate = "catalog:invalidate"
	// TaskMediaPrune removes hosted images no product references anymore.
	TaskMediaPrune = "media:prune"
)

// CatalogInvalidatePayload carries the reason a write invalidated the cache,
// for the worker log.
type CatalogInvalidatePayload struct {
	Reason string `json:"reason,omitempty"`
}

// NewCatalogInvalidateTask constructs an Asynq task.
func NewCatalogInvalidateTask(payload CatalogInvalidatePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogInvalidate, data), nil
}

// MediaPrunePayload carries the public ids to delete from the image host.
type MediaPrunePayload struct {
	PublicIDs []string `json:"public_ids"`
}

// NewMediaPruneTask constructs an Asynq task.
func NewMediaPruneTask(payload MediaPrunePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMediaPrune, data), nil
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) (*Client, error) {
	client := asynq.NewClient(redisOpts)
	return &Client{client: client}, nil
}

// EnqueueCatalogInvalidate enqueues a cache invalidation task.
func (c *Client) EnqueueCatalogInvalidate(ctx context.Context, payload CatalogInvalidatePayload) (*asynq.TaskInfo, error) {
	task, err := NewCatalogInvalidateTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// EnqueueMediaPrune enqueues an image prune task.
func (c *Client) EnqueueMediaPrune(ctx context.Context, payload MediaPrunePayload) (*asynq.TaskInfo, error) {
	task, err := NewMediaPruneTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// InvalidateCatalog lets the admin handlers enqueue an invalidation without
// knowing about Asynq.
func (c *Client) InvalidateCatalog(ctx context.Context) error {
	_, err := c.EnqueueCatalogInvalidate(ctx, CatalogInvalidatePayload{Reason: "catalog write"})
	return err
}

// PruneMedia maps the orphaned image URLs to their host public ids and
// enqueues a prune task. URLs that do not live on the image host are
// skipped; when nothing maps, nothing is enqueued.
func (c *Client) PruneMedia(ctx context.Context, imageURLs []string) error {
	ids := prunablePublicIDs(imageURLs)
	if len(ids) == 0 {
		return nil
	}
	_, err := c.EnqueueMediaPrune(ctx, MediaPrunePayload{PublicIDs: ids})
	return err
}

func prunablePublicIDs(imageURLs []string) []string {
	var ids []string
	for _, u := range imageURLs {
		if id, ok := media.PublicIDFromURL(u); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
