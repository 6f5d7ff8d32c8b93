package factory

import (
	"context"
	"time"

	"github.com/akeren/teamup-site/pkg/ratelimit"
	"github.com/go-redis/redis/v8"
)

type Cache interface {
	Ping(ctx context.Context) error
}

type RedisClientProvider interface {
	GetClient() *redis.Client
}

// RateLimiterFactory builds per-route limiters that share the application's
// backing store: Redis when the cache exposes a client, memory otherwise.
type RateLimiterFactory interface {
	CreateRateLimiter(requests int, window time.Duration) ratelimit.RateLimiter
}

type DefaultRateLimiterFactory struct {
	redis  *redis.Client
	logger ratelimit.Logger
}

func NewDefaultRateLimiterFactory(cache Cache, logger ratelimit.Logger) *DefaultRateLimiterFactory {
	var redisClient *redis.Client
	if cache != nil {
		if provider, ok := cache.(RedisClientProvider); ok {
			redisClient = provider.GetClient()
		}
	}

	return &DefaultRateLimiterFactory{
		redis:  redisClient,
		logger: logger,
	}
}

func (f *DefaultRateLimiterFactory) CreateRateLimiter(requests int, window time.Duration) ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: requests,
		Window:   window,
		Redis:    f.redis,
		Logger:   f.logger,
	})
}
