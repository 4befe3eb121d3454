package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	redis "github.com/redis/go-redis/v9"

	"go-parley/internal/infrastructure/broadcast/port"
)

// RedisBroadcaster implements port.Broadcaster over Redis pub/sub. Every API
// node publishes here and bridges its local websocket hub from here, so
// subscribers on any node receive the event.
type RedisBroadcaster struct {
	client *redis.Client
}

// NewRedisBroadcaster constructs a broadcaster using the REDIS_URL environment variable.
func NewRedisBroadcaster() (*RedisBroadcaster, error) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return nil, errors.New("broadcast: REDIS_URL environment variable is not set")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("broadcast: parse url: %w", err)
	}
	c := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("broadcast: ping: %w", err)
	}
	return &RedisBroadcaster{client: c}, nil
}

var _ port.Broadcaster = (*RedisBroadcaster)(nil)

func (b *RedisBroadcaster) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.client.Publish(ctx, channel, payload).Err()
}

func (b *RedisBroadcaster) Subscribe(ctx context.Context, patterns ...string) (<-chan port.Event, error) {
	sub := b.client.PSubscribe(ctx, patterns...)
	// Force the subscription handshake so pattern errors surface here.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("broadcast: subscribe: %w", err)
	}

	out := make(chan port.Event, 64)
	go func() {
		defer close(out)
		defer sub.Close()
		in := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- port.Event{Channel: msg.Channel, Payload: []byte(msg.Payload)}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (b *RedisBroadcaster) Close() error {
	return b.client.Close()
}
