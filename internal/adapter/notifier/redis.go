package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"medmatch-backend/internal/domain/notification"

	"github.com/redis/go-redis/v9"
)

// RedisDispatcher publishes events as JSON on a Redis channel. Delivery is
// at-most-once from the engine's perspective; downstream consumers own
// retries and fan-out.
type RedisDispatcher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisDispatcher(rdb *redis.Client, channel string) *RedisDispatcher {
	return &RedisDispatcher{rdb: rdb, channel: channel}
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, ev notification.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Kind, err)
	}
	if err := d.rdb.Publish(ctx, d.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s event: %w", ev.Kind, err)
	}
	return nil
}
