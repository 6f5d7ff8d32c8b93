package ratelimit

import (
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

func TestInMemoryRateLimiter_IsLimited_IsPerKey(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, time.Second)

	limited, err := limiter.IsLimited("client-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limited {
		t.Fatalf("first request for client-a should not be limited")
	}

	limited, err = limiter.IsLimited("client-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !limited {
		t.Fatalf("second immediate request for client-a should be limited")
	}

	limited, err = limiter.IsLimited("client-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limited {
		t.Fatalf("first request for client-b should not be limited (per-key limiter)")
	}
}

func TestNewRateLimiter_UsesMemoryWithoutRedis(t *testing.T) {
	limiter := NewRateLimiter(&RateLimitConfig{Requests: 3, Window: time.Minute})

	if _, ok := limiter.(*InMemoryRateLimiter); !ok {
		t.Fatalf("expected in-memory limiter, got %T", limiter)
	}

	for i := 0; i < 3; i++ {
		if limited, _ := limiter.IsLimited("10.0.0.1"); limited {
			t.Fatalf("request %d should be within the burst", i+1)
		}
	}
	if limited, _ := limiter.IsLimited("10.0.0.1"); !limited {
		t.Fatalf("fourth request should be limited")
	}
}

type recordingLogger struct {
	msgs []string
	args [][]interface{}
}

func (l *recordingLogger) Error(msg string, args ...interface{}) {
	l.msgs = append(l.msgs, msg)
	l.args = append(l.args, args)
}

func TestRedisKey_AddsPrefixOnce(t *testing.T) {
	if got := redisKey("/api/waitlist:10.0.0.1"); got != "ratelimit:/api/waitlist:10.0.0.1" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestRedisRateLimiter_ReportsBackendErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	logger := &recordingLogger{}
	limiter := NewRateLimiter(&RateLimitConfig{Requests: 5, Window: time.Minute, Redis: client, Logger: logger})
	if _, ok := limiter.(*RedisRateLimiter); !ok {
		t.Fatalf("expected redis limiter, got %T", limiter)
	}

	limited, err := limiter.IsLimited("submit:10.0.0.1")
	if err == nil {
		t.Fatalf("expected an error from an unreachable Redis")
	}
	if limited {
		t.Fatalf("a backend error must not report the caller as limited")
	}
	if len(logger.msgs) != 1 {
		t.Fatalf("expected one logged error, got %d", len(logger.msgs))
	}
	if logger.args[0][1] != "ratelimit:submit:10.0.0.1" {
		t.Fatalf("logged key = %v", logger.args[0][1])
	}
}
