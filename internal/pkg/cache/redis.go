package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// Redis is a Cache backed by a Redis server. Values are JSON encoded and
// every key is namespaced under namespace.
type Redis struct {
	client    *redis.Client
	namespace string
}

// NewRedis connects to addr and verifies connectivity.
func NewRedis(ctx context.Context, addr, password string, db int, namespace string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{client: rdb, namespace: namespace}, nil
}

func (r *Redis) key(k string) string {
	return r.namespace + k
}

// generationKey lives outside the read model prefixes.
func (r *Redis) generationKey(prefix string) string {
	return r.namespace + "generation:" + prefix
}

func (r *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, r.key(prefix)+"*", scanBatch).Iterator()

	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %s: %w", prefix, err)
	}
	if len(batch) > 0 {
		if err := r.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}
	return nil
}

func (r *Redis) Generation(ctx context.Context, prefix string) (int64, error) {
	gen, err := r.client.Get(ctx, r.generationKey(prefix)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation %s: %w", prefix, err)
	}
	return gen, nil
}

// Invalidate bumps the generation first. Readers switch to fresh keys even
// if deleting the old ones fails.
func (r *Redis) Invalidate(ctx context.Context, prefix string) error {
	if err := r.client.Incr(ctx, r.generationKey(prefix)).Err(); err != nil {
		return fmt.Errorf("redis incr generation %s: %w", prefix, err)
	}
	return r.DeletePrefix(ctx, prefix)
}

func (r *Redis) Close() error {
	return r.client.Close()
}
