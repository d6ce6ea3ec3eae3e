package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fleet-ledger-service/internal/platform/obs"
	"fleet-ledger-service/internal/ports"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultSnapshotKey = "fleet:snapshot"

// RedisSnapshotCache keeps one JSON-encoded snapshot under Key. A zero
// TTL keeps it until Invalidate.
type RedisSnapshotCache struct {
	Client redis.Cmdable
	Key    string
	TTL    time.Duration
}

var _ ports.SnapshotCache = (*RedisSnapshotCache)(nil)

func NewRedisSnapshotCache(client redis.Cmdable, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{Client: client, Key: DefaultSnapshotKey, TTL: ttl}
}

func (c *RedisSnapshotCache) Get(ctx context.Context) (_ *ports.Snapshot, err error) {
	defer obs.Time(ctx, "snapshot.cache.Get")(&err)

	if c.Client == nil {
		return nil, errors.New("snapshot cache: client is nil")
	}

	b, err := c.Client.Get(ctx, c.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot cache: %w", err)
	}

	var snap ports.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("get snapshot cache: decode: %w", err)
	}
	return &snap, nil
}

func (c *RedisSnapshotCache) Put(ctx context.Context, snap *ports.Snapshot) error {
	if c.Client == nil {
		return errors.New("snapshot cache: client is nil")
	}
	if snap == nil {
		return errors.New("put snapshot cache: snapshot is nil")
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("put snapshot cache: encode: %w", err)
	}
	if err := c.Client.Set(ctx, c.Key, b, c.TTL).Err(); err != nil {
		return fmt.Errorf("put snapshot cache: %w", err)
	}
	return nil
}

func (c *RedisSnapshotCache) Invalidate(ctx context.Context) error {
	if c.Client == nil {
		return errors.New("snapshot cache: client is nil")
	}
	if err := c.Client.Del(ctx, c.Key).Err(); err != nil {
		return fmt.Errorf("invalidate snapshot cache: %w", err)
	}
	return nil
}
