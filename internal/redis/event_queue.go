package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"camPark/internal/domain"
	"camPark/pkg/e"

	"github.com/redis/go-redis/v9"
)

// EventQueue carries status-changed events from the aggregator to the
// notifier worker.
type EventQueue struct {
	client *redis.Client
	key    string
}

func NewEventQueue(client *redis.Client, key string) *EventQueue {
	return &EventQueue{client: client, key: key}
}

func (q *EventQueue) Enqueue(ctx context.Context, event domain.StatusEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

func (q *EventQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.StatusEvent, error) {
	var ev domain.StatusEvent

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ev, e.ErrQueueEmpty
		}
		return ev, err
	}
	if len(res) < 2 {
		return ev, redis.Nil
	}
	if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
		return ev, err
	}
	return ev, nil
}
