package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists carts.
type Store interface {
	Get(ctx context.Context, userID string) (Cart, error)
	Replace(ctx context.Context, userID string, c Cart) error
	Increment(ctx context.Context, userID, key string, delta int) (int, error)
	Remove(ctx context.Context, userID, key string) error
	Clear(ctx context.Context, userID string) error
}

const defaultCartTTL = 30 * 24 * time.Hour

// RedisStore keeps one hash per user: field = cart key, value = quantity.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, ttl: defaultCartTTL}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (Cart, error) {
	fields, err := s.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	c := make(Cart, len(fields))
	for key, raw := range fields {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty <= 0 {
			continue
		}
		c[key] = qty
	}
	return c, nil
}

func (s *RedisStore) Replace(ctx context.Context, userID string, c Cart) error {
	key := cartKey(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(c) == 0 {
			return nil
		}
		values := make(map[string]interface{}, len(c))
		for field, qty := range c {
			values[field] = qty
		}
		pipe.HSet(ctx, key, values)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis replace failed: %w", err)
	}
	return nil
}

// Increment adjusts one line and drops it once the quantity reaches zero.
func (s *RedisStore) Increment(ctx context.Context, userID, field string, delta int) (int, error) {
	key := cartKey(userID)

	qty, err := s.client.HIncrBy(ctx, key, field, int64(delta)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis hincrby failed: %w", err)
	}

	if qty <= 0 {
		if err := s.client.HDel(ctx, key, field).Err(); err != nil {
			return 0, fmt.Errorf("redis hdel failed: %w", err)
		}
		return 0, nil
	}

	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return 0, fmt.Errorf("redis expire failed: %w", err)
	}
	return int(qty), nil
}

func (s *RedisStore) Remove(ctx context.Context, userID, field string) error {
	n, err := s.client.HDel(ctx, cartKey(userID), field).Result()
	if err != nil {
		return fmt.Errorf("redis hdel failed: %w", err)
	}
	if n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cartKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}
