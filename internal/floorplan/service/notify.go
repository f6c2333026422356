package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ============================================================
// Position notifications
// ============================================================

// PositionEvent is published after a position reaches the store, so other
// editors can refresh without waiting for their poll.
type PositionEvent struct {
	TableID   string    `json:"table_id"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Committed time.Time `json:"committed_at"`
}

type Notifier interface {
	PositionCommitted(ctx context.Context, evt PositionEvent) error
	Close() error
}

// NopNotifier drops every event. Used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) PositionCommitted(context.Context, PositionEvent) error { return nil }
func (NopNotifier) Close() error                                          { return nil }

// RedisNotifier publishes events as JSON on a pub/sub channel.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedisNotifier(addr, channel string) *RedisNotifier {
	return &RedisNotifier{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		channel: channel,
	}
}

func (n *RedisNotifier) PositionCommitted(ctx context.Context, evt PositionEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode position event: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish position event: %w", err)
	}
	return nil
}

// Ping checks the broker connection at startup.
func (n *RedisNotifier) Ping(ctx context.Context) error {
	return n.client.Ping(ctx).Err()
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
