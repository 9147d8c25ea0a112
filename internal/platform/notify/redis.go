package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	domainerrors "launchpad/contexts/listing-launchpad/launchpad-service/domain/errors"
	"launchpad/contexts/listing-launchpad/launchpad-service/ports"
	"launchpad/internal/shared/events"
)

var (
	_ ports.NotificationRelay = (*RedisRelay)(nil)
	_ ports.NotificationRelay = NopRelay{}
)

const streamEvents = "launchpad.events"

// RedisRelay publishes event copies onto a Redis stream for external
// automation. Delivery is best effort: callers log a failed relay and move
// on, a committed transition is never rolled back for it.
type RedisRelay struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisRelay(url string, logger *slog.Logger) (*RedisRelay, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisRelay{
		client: redis.NewClient(opt),
		stream: streamEvents,
		logger: logger,
	}, nil
}

func (r *RedisRelay) Relay(ctx context.Context, event events.Envelope) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("%w: encode relay payload: %v", domainerrors.ErrExternalService, err)
	}
	_, err = r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]any{
			"event_id":    event.EventID,
			"type":        event.EventType,
			"timestamp":   event.OccurredAtUTC.Format("2006-01-02T15:04:05.000Z07:00"),
			"entity_type": event.EntityType,
			"entity_id":   event.EntityID,
			"data":        string(payload),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("%w: redis xadd: %v", domainerrors.ErrExternalService, err)
	}
	return nil
}

func (r *RedisRelay) Close() error {
	return r.client.Close()
}

// NopRelay satisfies the relay port when no Redis endpoint is configured.
type NopRelay struct{}

func (NopRelay) Relay(context.Context, events.Envelope) error { return nil }
