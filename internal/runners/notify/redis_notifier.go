package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gnout1912/VieTube-sub001/internal/runners"
	"github.com/go-redis/redis/v8"
)

type availableJobsPing struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
}

func newPing(now time.Time) ([]byte, error) {
	return json.Marshal(availableJobsPing{
		Event:     "available-jobs",
		Timestamp: now.UTC().Format(time.RFC3339),
	})
}

type redisNotifier struct {
	redisClient *redis.Client
	channel     string
}

// NewRedisNotifier publishes availability pings on a Redis channel that the
// runner socket gateway subscribes to.
func NewRedisNotifier(redisClient *redis.Client, channel string) runners.Notifier {
	return &redisNotifier{
		redisClient: redisClient,
		channel:     channel,
	}
}

func (n *redisNotifier) NotifyAvailableJobs(ctx context.Context) error {
	msg, err := newPing(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal ping: %w", err)
	}
	if err := n.redisClient.Publish(ctx, n.channel, msg).Err(); err != nil {
		return fmt.Errorf("failed to publish ping on %s: %w", n.channel, err)
	}
	return nil
}

// Close is a no-op; the Redis client is owned by the caller.
func (n *redisNotifier) Close() error {
	return nil
}
