package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/config"

	"github.com/redis/go-redis/v9"
)

// ErrCacheDisabled is returned when no Redis address is configured.
var ErrCacheDisabled = errors.New("redis address is empty, detail cache disabled")

const pingTimeout = 3 * time.Second

// NewRedisClient connects to Redis and pings it once. The caller owns Close.
func NewRedisClient(ctx context.Context, redisCfg config.RedisConfig) (*redis.Client, error) {
	if redisCfg.Address == "" {
		return nil, ErrCacheDisabled
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", redisCfg.Address, err)
	}
	return client, nil
}
