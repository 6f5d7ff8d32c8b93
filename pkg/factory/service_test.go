package factory

import (
	"context"
	"testing"
	"time"

	"github.com/akeren/teamup-site/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
)

type pingOnlyCache struct{}

func (pingOnlyCache) Ping(context.Context) error { return nil }

func TestCreateRateLimiter_FallsBackToMemoryWithoutRedis(t *testing.T) {
	for _, cache := range []Cache{nil, pingOnlyCache{}} {
		f := NewDefaultRateLimiterFactory(cache, nil)

		limiter := f.CreateRateLimiter(5, time.Minute)

		_, isMemory := limiter.(*ratelimit.InMemoryRateLimiter)
		assert.True(t, isMemory)

		requests, window := limiter.GetLimitDetails()
		assert.Equal(t, 5, requests)
		assert.Equal(t, time.Minute, window)
	}
}
