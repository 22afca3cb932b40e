package repository

import (
	"EnvWatchAPI/internal/adapter"
	"context"
	"time"
)

// RateLimitRepository keeps fixed-window request counters in Redis so limits
// hold across instances.
type RateLimitRepository struct {
	redisAdapter *adapter.RedisAdapter
}

func NewRateLimitRepository(redisAdapter *adapter.RedisAdapter) *RateLimitRepository {
	return &RateLimitRepository{
		redisAdapter: redisAdapter,
	}
}

func (r *RateLimitRepository) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	count, ttl, err := r.redisAdapter.IncrementWindow(ctx, key, window)
	if err != nil {
		return false, 0, err
	}

	return count <= int64(limit), ttl, nil
}
