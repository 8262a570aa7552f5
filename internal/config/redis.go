package config

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient dials the analytics cache. The service degrades to
// uncached reads when this fails, so the startup ping is bounded by the
// same store timeout the services use.
func NewRedisClient(cfg *Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
