package metrics

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisHook counts Redis commands issued by the directory
type RedisHook struct {
	m *Metrics
}

var _ redis.Hook = (*RedisHook)(nil)

// NewRedisHook creates a hook recording into m
func NewRedisHook(m *Metrics) *RedisHook {
	return &RedisHook{m: m}
}

// DialHook passes dials through unchanged
func (h *RedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

// ProcessHook records every single command
func (h *RedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		h.m.RedisOpsTotal.WithLabelValues(cmd.Name(), redisStatus(err)).Inc()
		return err
	}
}

// ProcessPipelineHook records a pipeline as one operation
func (h *RedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		h.m.RedisOpsTotal.WithLabelValues("pipeline", redisStatus(err)).Inc()
		return err
	}
}

// redis.Nil is a miss, not a failure
func redisStatus(err error) string {
	if err != nil && !errors.Is(err, redis.Nil) {
		return "error"
	}
	return "success"
}
