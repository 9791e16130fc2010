package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher announces events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event any) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, any) error { return nil }
func (Nop) Close() error { return nil }

// redisClient is the subset of *redis.Client the publisher needs.
type redisClient interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
	Close() error
}

// RedisPublisher publishes JSON encoded events on a redis pub/sub channel.
type RedisPublisher struct {
	rdb     redisClient
	channel string
}

// NewRedisPublisher connects to redis and verifies the connection with a ping.
func NewRedisPublisher(cfg Config) (*RedisPublisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return newRedisPublisher(rdb, cfg.Channel), nil
}

func newRedisPublisher(rdb redisClient, channel string) *RedisPublisher {
	if channel == "" {
		channel = "brainrot:sync"
	}
	return &RedisPublisher{rdb: rdb, channel: channel}
}

// Publish marshals event and publishes it.
func (p *RedisPublisher) Publish(ctx context.Context, event any) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.channel, raw).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}
	return nil
}

// Close releases the redis connection pool.
func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}

// New returns a redis publisher when an address is configured and Nop otherwise.
// A redis connection failure is logged and falls back to Nop so sync passes are never blocked on it.
func New(cfg Config, log *zap.Logger) Publisher {
	if cfg.RedisAddr == "" {
		return Nop{}
	}
	p, err := NewRedisPublisher(cfg)
	if err != nil {
		log.Warn("Notifier disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		return Nop{}
	}
	log.Info("Publishing sync events", zap.String("channel", p.channel))
	return p
}
