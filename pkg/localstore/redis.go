package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type redisKV interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	StorageKey(visitorID, key string) string
}

// RedisStore maps each visitor key onto its own Redis string.
type RedisStore struct {
	kv  redisKV
	ttl time.Duration
}

// NewRedisStore builds a store on top of the shared redis client. A zero ttl
// keeps entries forever, like browser local storage.
func NewRedisStore(kv redisKV, ttl time.Duration) (*RedisStore, error) {
	if kv == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisStore{kv: kv, ttl: ttl}, nil
}

func (s *RedisStore) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	value, found, err := s.kv.Lookup(ctx, s.kv.StorageKey(visitorID, key))
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, found, nil
}

func (s *RedisStore) Set(ctx context.Context, visitorID, key, value string) error {
	if err := s.kv.Set(ctx, s.kv.StorageKey(visitorID, key), value, s.ttl); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, visitorID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, 0, len(keys))
	for _, key := range keys {
		namespaced = append(namespaced, s.kv.StorageKey(visitorID, key))
	}
	if err := s.kv.Del(ctx, namespaced...); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
