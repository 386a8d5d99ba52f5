package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/pourhouse/pourhouse/internal/config"
)

const (
	keyDispenser = "ratelimit:dispenser:%s"
)

// DispenserLimiter throttles traffic arriving from dispensing machines.
// A nil limiter allows everything, so callers can hold one unconditionally.
type DispenserLimiter struct {
	enabled bool

	bucket *TokenBucket
	locker *Locker

	rate  float64
	burst int
}

func NewDispenserLimiter(cfg config.Config) (*DispenserLimiter, error) {
	if !cfg.RateLimitEnabled {
		return nil, nil
	}

	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if cfg.DispenserRate <= 0 || cfg.DispenserBurst <= 0 {
		return nil, errors.New("dispenser rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})

	return &DispenserLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		locker:  NewLocker(client),
		rate:    cfg.DispenserRate,
		burst:   cfg.DispenserBurst,
	}, nil
}

func (l *DispenserLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow reports whether a request from the given machine may proceed.
// machineKey is the machine identifier, or a fallback such as the client
// address when the machine is unknown.
func (l *DispenserLimiter) Allow(ctx context.Context, machineKey string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	key := fmt.Sprintf(keyDispenser, strings.TrimSpace(machineKey))
	return l.bucket.Allow(ctx, key, l.rate, l.burst)
}

// TryLock acquires a cross-instance lock. Disabled limiters grant the
// lock unconditionally so single-instance deployments keep working
// without redis.
func (l *DispenserLimiter) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}
	return l.locker.TryLock(ctx, key, ttl)
}

func (l *DispenserLimiter) Release(ctx context.Context, key, token string) error {
	if !l.Enabled() {
		return nil
	}
	return l.locker.Release(ctx, key, token)
}
