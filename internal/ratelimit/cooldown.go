// Package ratelimit holds the per-post like cooldown. It is a courtesy
// throttle absorbing accidental rapid repeat clicks; the durable idempotency
// record in the like repository is the correctness boundary, so losing
// cooldown state on restart is harmless.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chilaq/pkg/logger"
)

type Limiter interface {
	// Allow reports whether a like attempt by identityToken for postID may
	// proceed. Every attempt re-arms the cooldown window, allowed or not.
	Allow(ctx context.Context, identityToken string, postID int64) bool
}

type Cooldown struct {
	redisClient *redis.Client
	window      time.Duration
	logger      *logger.Logger
}

func NewCooldown(redisClient *redis.Client, window time.Duration, log *logger.Logger) *Cooldown {
	return &Cooldown{
		redisClient: redisClient,
		window:      window,
		logger:      log,
	}
}

func (c *Cooldown) Allow(ctx context.Context, identityToken string, postID int64) bool {
	key := fmt.Sprintf("like_cooldown:%d:%s", postID, identityToken)

	count, err := c.redisClient.Incr(ctx, key).Result()
	if err != nil {
		// Fail open: a broken throttle must not block likes.
		c.logger.Warn("Cooldown check failed for post %d: %v", postID, err)
		return true
	}
	if err := c.redisClient.PExpire(ctx, key, c.window).Err(); err != nil {
		// A counter with no expiry would decline this pair forever; drop it
		// and let the attempt through.
		c.logger.Warn("Cooldown re-arm failed for post %d: %v", postID, err)
		c.redisClient.Del(ctx, key)
		return true
	}

	return count == 1
}
