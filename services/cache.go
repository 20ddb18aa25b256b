package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"securecheck/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PredictionChannel is the Redis pub/sub channel for prediction events.
const PredictionChannel = "securecheck:predictions"

// RedisBus publishes and subscribes to prediction events. A bus without a
// client is valid and turns every call into a no-op.
type RedisBus struct {
	client *redis.Client
}

func NewRedisBus(cfg config.RedisConfig, log *zap.Logger) (*RedisBus, error) {
	if !cfg.Enabled() {
		return &RedisBus{}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			return &RedisBus{client: client}, nil
		}
		log.Warn("redis ping failed",
			zap.Int("attempt", i+1), zap.Int("of", attempts), zap.Error(lastErr))
		if i+1 < attempts {
			time.Sleep(2 * time.Second)
		}
	}
	client.Close()

	return &RedisBus{}, fmt.Errorf("redis ping failed after %d attempts: %w", attempts, lastErr)
}

func (b *RedisBus) Available() bool {
	return b != nil && b.client != nil
}

func (b *RedisBus) Name() string { return "redis" }

func (b *RedisBus) Publish(ctx context.Context, message interface{}) error {
	if !b.Available() {
		return nil
	}
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, PredictionChannel, data).Err()
}

// Subscribe returns nil when Redis is not configured.
func (b *RedisBus) Subscribe(ctx context.Context) *redis.PubSub {
	if !b.Available() {
		return nil
	}
	return b.client.Subscribe(ctx, PredictionChannel)
}

func (b *RedisBus) Close() error {
	if !b.Available() {
		return nil
	}
	return b.client.Close()
}
