package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/akeren/teamup-site/pkg/circuitbreaker"
	"github.com/akeren/teamup-site/pkg/retry"
	"github.com/go-redis/redis/v8"
)

type Config struct {
	Host     string
	Port     string
	Password string
	DB       int

	// Optional; defaults are applied when nil.
	Retry   *retry.Config
	Breaker *circuitbreaker.Config
}

// RedisCache is a Cache backed by a single Redis client. Every call goes
// through a circuit breaker so an unreachable Redis fails fast instead of
// stalling each request for the dial timeout.
type RedisCache struct {
	client  *redis.Client
	breaker circuitbreaker.CircuitBreaker
}

func NewRedisCache(cfg *Config) (*RedisCache, error) {
	if cfg == nil || cfg.Host == "" {
		return nil, errors.New("redis: host is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return newRedisCache(client, cfg)
}

func newRedisCache(client *redis.Client, cfg *Config) (*RedisCache, error) {
	policy := retry.NewExponentialBackoff(cfg.Retry)
	err := policy.Execute(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return &RedisCache{
		client:  client,
		breaker: circuitbreaker.NewCircuitBreaker(cfg.Breaker),
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := c.breaker.Call(func() error {
		v, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		value = v
		return nil
	})

	return value, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.breaker.Call(func() error {
		return c.client.Set(ctx, key, value, ttl).Err()
	})
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.breaker.Call(func() error {
		return c.client.Del(ctx, key).Err()
	})
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetClient exposes the client for the Redis rate limiter.
func (c *RedisCache) GetClient() *redis.Client {
	return c.client
}
