package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "catalog:version"

// SnapshotCache stores the loaded snapshot in Redis with an explicit
// lifetime: entries live for ttl or until an administrative write bumps the
// version, whichever comes first. Readers on an old version simply miss and
// rebuild. A nil cache (or nil client) is a no-op passthrough so tests and
// degraded deployments work without Redis.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache constructs the cache helper.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

// Version returns the current cache version, initialising it when missing.
func (c *SnapshotCache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Bump invalidates every cached snapshot by advancing the version counter.
func (c *SnapshotCache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

// Get returns the cached snapshot for the current version, or false on any
// miss or error.
func (c *SnapshotCache) Get(ctx context.Context) (*Snapshot, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, c.key(ver)).Bytes()
	if err != nil {
		return nil, false
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

// Set stores the snapshot under the current version. Failures are returned
// but callers treat caching as best-effort.
func (c *SnapshotCache) Set(ctx context.Context, snap *Snapshot) error {
	if c == nil || c.client == nil || snap == nil {
		return nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(ver), payload, c.ttl).Err()
}

func (c *SnapshotCache) key(version int64) string {
	return fmt.Sprintf("catalog:snapshot:v%d", version)
}

// CachedLoader layers the snapshot cache over a Loader.
type CachedLoader struct {
	loader *Loader
	cache  *SnapshotCache
}

// NewCachedLoader constructs a CachedLoader.
func NewCachedLoader(loader *Loader, cache *SnapshotCache) *CachedLoader {
	return &CachedLoader{loader: loader, cache: cache}
}

// Load serves the snapshot from cache when possible, loading and caching on
// miss.
func (l *CachedLoader) Load(ctx context.Context) *Snapshot {
	if snap, ok := l.cache.Get(ctx); ok {
		return snap
	}
	snap := l.loader.Load(ctx)
	_ = l.cache.Set(ctx, snap)
	return snap
}
