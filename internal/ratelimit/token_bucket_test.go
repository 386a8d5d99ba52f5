package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pourhouse/pourhouse/internal/config"
)

func TestDefaultBucketTTL(t *testing.T) {
	assert.Equal(t, 4*time.Second, defaultBucketTTL(5, 10))
	assert.Equal(t, time.Second, defaultBucketTTL(10, 1))
	assert.Equal(t, time.Second, defaultBucketTTL(0, 10))
	assert.Equal(t, time.Second, defaultBucketTTL(5, 0))
}

func TestCastHelpers(t *testing.T) {
	assert.Equal(t, int64(1), castToInt(int64(1)))
	assert.Equal(t, int64(2), castToInt(2))
	assert.Equal(t, int64(3), castToInt(3.7))
	assert.Equal(t, int64(0), castToInt("nope"))

	assert.Equal(t, 1.5, castToFloat(1.5))
	assert.Equal(t, 2.0, castToFloat(int64(2)))
	assert.Equal(t, 0.0, castToFloat("nope"))
}

func TestNewDispenserLimiter_DisabledReturnsNil(t *testing.T) {
	limiter, err := NewDispenserLimiter(config.Config{RateLimitEnabled: false})
	assert.NoError(t, err)
	assert.Nil(t, limiter)
	assert.False(t, limiter.Enabled())
}

func TestNewDispenserLimiter_RequiresAddr(t *testing.T) {
	_, err := NewDispenserLimiter(config.Config{
		RateLimitEnabled: true,
		DispenserRate:    5,
		DispenserBurst:   10,
	})
	assert.Error(t, err)
}

func TestNewDispenserLimiter_RequiresPositiveLimits(t *testing.T) {
	_, err := NewDispenserLimiter(config.Config{
		RateLimitEnabled: true,
		RedisAddr:        "localhost:6379",
		DispenserRate:    0,
		DispenserBurst:   10,
	})
	assert.Error(t, err)
}

func TestNilLimiter_AllowsEverything(t *testing.T) {
	var limiter *DispenserLimiter
	ctx := context.Background()

	res, err := limiter.Allow(ctx, "bar-01")
	assert.NoError(t, err)
	assert.True(t, res.Allowed)

	token, ok, err := limiter.TryLock(ctx, "lock:janitor", time.Second)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, token)
	assert.NoError(t, limiter.Release(ctx, "lock:janitor", token))
}

func TestTokenBucket_NilClient(t *testing.T) {
	assert.Nil(t, NewTokenBucket(nil))

	var bucket *TokenBucket
	res, err := bucket.Allow(context.Background(), "k", 5, 10)
	assert.Error(t, err)
	assert.False(t, res.Allowed)
}
