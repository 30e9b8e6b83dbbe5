package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes events on a Redis pub/sub channel so every
// process subscribed to it sees them. Failed publishes fall back to a local Broker.
type RedisPublisher struct {
	client   *redis.Client
	channel  string
	fallback *Broker
	logger   *slog.Logger
}

var _ Publisher = (*RedisPublisher)(nil)

// NewRedisClient parses url, connects and pings.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rc := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rc, nil
}

// NewRedisPublisher wraps client. fallback may be nil.
func NewRedisPublisher(client *redis.Client, channel string, fallback *Broker, logger *slog.Logger) *RedisPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisPublisher{client: client, channel: channel, fallback: fallback, logger: logger}
}

// Publish implements Publisher.
func (p *RedisPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.client.Publish(ctx, p.channel, payload).Err()
	if err == nil {
		return nil
	}
	if p.fallback == nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}
	p.logger.Warn("Redis publish failed, delivering locally",
		slog.String("channel", p.channel),
		slog.String("error", err.Error()))
	return p.fallback.Publish(ctx, evt)
}

// Subscribe streams events from the channel until ctx is done.
func (p *RedisPublisher) Subscribe(ctx context.Context) <-chan Event {
	out := make(chan Event, 16)
	sub := p.client.Subscribe(ctx, p.channel)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var evt Event
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					p.logger.Warn("Dropping malformed event", slog.String("error", err.Error()))
					continue
				}
				select {
				case out <- evt:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

var _ Source = (*RedisPublisher)(nil)

// Stream implements Source. Events from the Redis channel are merged with
// those the fallback broker delivered locally.
func (p *RedisPublisher) Stream(ctx context.Context) (<-chan Event, func()) {
	ctx, cancel := context.WithCancel(ctx)
	remote := p.Subscribe(ctx)
	if p.fallback == nil {
		return remote, cancel
	}
	local, cancelLocal := p.fallback.Stream(ctx)

	out := make(chan Event, 16)
	var wg sync.WaitGroup
	forward := func(in <-chan Event) {
		defer wg.Done()
		for evt := range in {
			select {
			case out <- evt:
			case <-ctx.Done():
				return
			}
		}
	}
	wg.Add(2)
	go forward(remote)
	go forward(local)
	go func() {
		wg.Wait()
		close(out)
	}()
	return out, func() {
		cancel()
		cancelLocal()
	}
}
