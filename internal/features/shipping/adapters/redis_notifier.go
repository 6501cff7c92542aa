package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/impimediavillage/tree-sub001/internal/features/shipping/ports"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes status events on a Redis pub/sub channel.
// The downstream notification service (toasts, sounds, emails) subscribes
// to this channel; rendering is out of scope here.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier creates a new RedisNotifier.
func NewRedisNotifier(redisURL, channel string) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	return &RedisNotifier{
		client:  redis.NewClient(opts),
		channel: channel,
	}, nil
}

// StatusChanged publishes the event as JSON.
func (n *RedisNotifier) StatusChanged(ctx context.Context, event ports.StatusEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish status event: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
