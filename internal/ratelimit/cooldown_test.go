package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chilaq/pkg/logger"
)

func setupCooldown(t *testing.T, window time.Duration) (*Cooldown, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCooldown(client, window, logger.New()), mr
}

func TestAllow_FirstAttempt(t *testing.T) {
	cooldown, _ := setupCooldown(t, 500*time.Millisecond)

	assert.True(t, cooldown.Allow(context.Background(), "token-a", 42))
}

func TestAllow_RepeatWithinWindow(t *testing.T) {
	cooldown, _ := setupCooldown(t, 500*time.Millisecond)
	ctx := context.Background()

	assert.True(t, cooldown.Allow(ctx, "token-a", 42))
	assert.False(t, cooldown.Allow(ctx, "token-a", 42))
	assert.False(t, cooldown.Allow(ctx, "token-a", 42))
}

func TestAllow_AfterWindowExpires(t *testing.T) {
	cooldown, mr := setupCooldown(t, 500*time.Millisecond)
	ctx := context.Background()

	assert.True(t, cooldown.Allow(ctx, "token-a", 42))

	mr.FastForward(600 * time.Millisecond)

	assert.True(t, cooldown.Allow(ctx, "token-a", 42))
}

func TestAllow_AttemptReArmsWindow(t *testing.T) {
	cooldown, mr := setupCooldown(t, 500*time.Millisecond)
	ctx := context.Background()

	assert.True(t, cooldown.Allow(ctx, "token-a", 42))

	// A declined attempt still records itself and pushes the window out
	mr.FastForward(300 * time.Millisecond)
	assert.False(t, cooldown.Allow(ctx, "token-a", 42))

	mr.FastForward(300 * time.Millisecond)
	assert.False(t, cooldown.Allow(ctx, "token-a", 42))
}

func TestAllow_IndependentPairs(t *testing.T) {
	cooldown, _ := setupCooldown(t, 500*time.Millisecond)
	ctx := context.Background()

	assert.True(t, cooldown.Allow(ctx, "token-a", 42))
	assert.True(t, cooldown.Allow(ctx, "token-b", 42))
	assert.True(t, cooldown.Allow(ctx, "token-a", 43))
}

// failExpiryHook rejects PEXPIRE while letting every other command through,
// modelling a redis that accepts writes but cannot arm expirations.
type failExpiryHook struct{}

func (failExpiryHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (failExpiryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "pexpire" {
			err := errors.New("pexpire refused")
			cmd.SetErr(err)
			return err
		}
		return next(ctx, cmd)
	}
}

func (failExpiryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestAllow_FailsOpenWhenExpiryFails(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	client.AddHook(failExpiryHook{})
	cooldown := NewCooldown(client, 500*time.Millisecond, logger.New())
	ctx := context.Background()

	// Without an armed window a declined counter would never reset, so a
	// failed re-arm must let the attempt through instead.
	assert.True(t, cooldown.Allow(ctx, "token-a", 42))
	assert.True(t, cooldown.Allow(ctx, "token-a", 42))
	assert.True(t, cooldown.Allow(ctx, "token-a", 42))
}

func TestAllow_FailsOpenWhenRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cooldown := NewCooldown(client, 500*time.Millisecond, logger.New())

	mr.Close()

	assert.True(t, cooldown.Allow(context.Background(), "token-a", 42))
}
