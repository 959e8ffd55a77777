package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"meetgrid/core/config"
	"meetgrid/core/constants"
	"meetgrid/core/logger"
)

// Notifier publishes "responses changed" events for an event code. Consumers
// that only poll never touch it, so a nil Notifier must be tolerated by
// callers.
type Notifier interface {
	PublishResponsesChanged(ctx context.Context, eventCode string) error
}

// Subscriber delivers peer-change notifications for one event code.
type Subscriber interface {
	SubscribeResponsesChanged(ctx context.Context, eventCode string) (<-chan string, func(), error)
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis initialized successfully", "addr", cfg.Addr, "db", cfg.DB)
	return &RedisCache{client: client}, nil
}

func (r *RedisCache) Client() *redis.Client {
	return r.client
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func channelFor(eventCode string) string {
	return constants.ResponsesChangedChannelPrefix + eventCode
}

// PublishResponsesChanged notifies subscribers that the committed responses
// of an event changed.
func (r *RedisCache) PublishResponsesChanged(ctx context.Context, eventCode string) error {
	err := r.client.Publish(ctx, channelFor(eventCode), eventCode).Err()
	if err != nil {
		logger.Error("RedisCache:PublishResponsesChanged", "event_code", eventCode, "error", err)
		return err
	}
	return nil
}

// SubscribeResponsesChanged returns a channel of event codes that fires
// whenever a peer submits, plus a cancel func that tears the subscription
// down.
func (r *RedisCache) SubscribeResponsesChanged(ctx context.Context, eventCode string) (<-chan string, func(), error) {
	sub := r.client.Subscribe(ctx, channelFor(eventCode))

	// Confirm the subscription before handing it out.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- msg.Payload:
			default:
				// A pending notification already queued; coalesce.
			}
		}
	}()

	cancel := func() {
		_ = sub.Close()
	}
	return out, cancel, nil
}
