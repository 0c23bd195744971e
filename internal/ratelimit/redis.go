// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
)

const keyPrefix = "go-rag-auth:ratelimit:"

// tokenBucketScript refills the bucket by whole intervals, takes one token
// if there is one and returns {allowed, tokens left, ms until next token}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 then
	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
		last_refill = last_refill + (intervals * interval_ms)
	end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RedisLimiter is a [Limiter] backed by a Lua token bucket in Redis.
type RedisLimiter struct {
	client         redis.Scripter
	closer         func() error
	capacity       int
	refillInterval time.Duration
	now            func() time.Time
	logger         *logger.Logger
}

// NewRedisLimiter connects to cfg.RedisAddress and verifies the connection
// with a ping.
func NewRedisLimiter(ctx context.Context, cfg config.RateLimit, log *logger.Logger) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisLimiter").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	log.Info().Str("addr", cfg.RedisAddress).Msg("connected to redis")

	limiter := newRedisLimiter(client, cfg, log)
	limiter.closer = client.Close
	return limiter, nil
}

func newRedisLimiter(client redis.Scripter, cfg config.RateLimit, log *logger.Logger) *RedisLimiter {
	return &RedisLimiter{
		client:         client,
		capacity:       cfg.Capacity,
		refillInterval: cfg.RefillInterval,
		now:            time.Now,
		logger:         log,
	}
}

// Allow implements [Limiter].
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	// an idle bucket is full again after capacity intervals
	ttl := time.Duration(l.capacity+1) * l.refillInterval
	if ttl < time.Second {
		ttl = time.Second
	}

	result, err := tokenBucketScript.Run(ctx, l.client, []string{keyPrefix + key},
		l.now().UnixMilli(),
		l.capacity,
		l.refillInterval.Milliseconds(),
		int64(ttl/time.Second),
	).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	decision, err := parseScriptResult(result)
	if err != nil {
		return Decision{}, err
	}
	decision.Limit = l.capacity

	return decision, nil
}

// Close releases the Redis connection.
func (l *RedisLimiter) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer()
}

func parseScriptResult(result any) (Decision, error) {
	values, ok := result.([]any)
	if !ok || len(values) != 3 {
		return Decision{}, fmt.Errorf("%w: %#v", ErrUnexpectedScriptResult, result)
	}

	allowed, err := asInt64(values[0])
	if err != nil {
		return Decision{}, err
	}
	remaining, err := asInt64(values[1])
	if err != nil {
		return Decision{}, err
	}
	retryMs, err := asInt64(values[2])
	if err != nil {
		return Decision{}, err
	}

	return Decision{
		Allowed:    allowed == 1,
		Remaining:  remaining,
		RetryAfter: time.Duration(retryMs) * time.Millisecond,
	}, nil
}

func asInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrUnexpectedScriptResult, err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: %T", ErrUnexpectedScriptResult, v)
}
