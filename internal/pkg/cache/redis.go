package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(cfg *Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisClient{Client: client}, nil
}

func (c *RedisClient) Close() error {
	return c.Client.Close()
}

// DeletePattern removes every key matching pattern. Used for list cache
// invalidation after writes.
func (c *RedisClient) DeletePattern(ctx context.Context, pattern string) {
	keys, err := c.Client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		c.Client.Del(ctx, keys...)
	}
}
