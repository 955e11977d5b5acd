package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"camPark/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// StatusCache keeps the latest full status snapshot so reads survive a
// restart and other instances can serve the map without recomputing.
type StatusCache struct {
	client *goredis.Client
	key    string
}

func NewStatusCache(r *Redis) *StatusCache {
	return &StatusCache{
		client: r.Client,
		key:    "zones:status",
	}
}

func (c *StatusCache) GetSnapshot(ctx context.Context) ([]domain.ZoneStatus, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var statuses []domain.ZoneStatus
	if err := json.Unmarshal(data, &statuses); err != nil {
		return nil, err
	}

	return statuses, nil
}

func (c *StatusCache) SetSnapshot(ctx context.Context, statuses []domain.ZoneStatus, ttl time.Duration) error {
	b, err := json.Marshal(statuses)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, ttl).Err()
}
