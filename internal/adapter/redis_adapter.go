package adapter

import (
	"EnvWatchAPI/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter backs the ticket-lookup cache and the shared rate limit
// counters. It is optional; callers hold a nil adapter when REDIS_HOST is
// unset and fall back to store reads and in-process limiting.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(cfg *config.AppConfig) (*RedisAdapter, error) {
	addr := fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", "error", err, "addr", addr)
		return nil, err
	}

	slog.Info("Connected to Redis", "addr", addr)

	return &RedisAdapter{
		client: client,
	}, nil
}

// StoreJSON caches the marshaled value under key for ttl.
func (r *RedisAdapter) StoreJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

// LoadJSON unmarshals the cached value into dest and reports whether the key
// was present. A missing key is not an error.
func (r *RedisAdapter) LoadJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisAdapter) Invalidate(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// IncrementWindow bumps a fixed-window counter and returns its value together
// with the window's remaining TTL. The first increment, or a counter left
// without an expiry, restarts the window.
func (r *RedisAdapter) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := r.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	count := incr.Val()
	ttl := ttlCmd.Val()

	if count == 1 || ttl < 0 {
		r.client.Expire(ctx, key, window)
		ttl = window
	}

	return count, ttl, nil
}
