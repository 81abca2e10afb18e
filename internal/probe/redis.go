package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis pings a Redis server.
type Redis struct {
	client *redis.Client
}

// NewRedis parses redisURL and builds a client without connecting.
func NewRedis(redisURL string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 1
	opt.MinIdleConns = 0
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	return &Redis{client: redis.NewClient(opt)}, nil
}

// Name implements Pinger.
func (r *Redis) Name() string { return "redis" }

// Ping checks Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (r *Redis) Close(ctx context.Context) error {
	return r.client.Close()
}
