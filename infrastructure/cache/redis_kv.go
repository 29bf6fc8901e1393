package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"channel-insights/domain/repository"
	"channel-insights/infrastructure/configuration"
	"channel-insights/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// store is the part of the redis client RedisKV uses
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisKV implements repository.IKeyValue on Redis string keys without expiry
type RedisKV struct {
	rdb    store
	prefix string
}

// NewRedisClient connects to the configured Redis server and verifies it with PING.
func NewRedisClient(ctx context.Context, cfg configuration.RedisClient) (*redis.Client, error) {
	db := 0
	if cfg.DatabaseName != "" {
		n, err := strconv.Atoi(cfg.DatabaseName)
		if err != nil {
			return nil, fmt.Errorf("redis database %q is not a number: %w", cfg.DatabaseName, err)
		}
		db = n
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", rdb.Options().Addr, err)
	}
	logger.GetLogger().WithField("addr", rdb.Options().Addr).Info("Redis connected")
	return rdb, nil
}

// NewRedisKV wraps a redis client; every key is stored under prefix.
func NewRedisKV(rdb store, prefix string) repository.IKeyValue {
	return &RedisKV{rdb: rdb, prefix: prefix}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := r.rdb.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repository.ErrKeyNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
