package credstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 3 * time.Second

// RedisConfig configures RedisKV.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	// TTL expires stored entries; zero keeps them until deleted.
	TTL time.Duration
}

// RedisKV keeps values in Redis under a key prefix, so several profiles can
// share one instance.
type RedisKV struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisKV builds a Redis-backed store.
func NewRedisKV(cfg RedisConfig) *RedisKV {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "bookshelf:"
	}
	return &RedisKV{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: prefix,
		ttl:    cfg.TTL,
	}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	return r.client.Set(ctx, r.prefix+key, value, r.ttl).Err()
}

func (r *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, r.prefix+key)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
