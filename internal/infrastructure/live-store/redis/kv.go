package redislivestore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// KVStore stores JSON-encoded values under a common key prefix.
type KVStore[T any] struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisKVStore[T any](rdb *redis.Client, prefix string) *KVStore[T] {
	return &KVStore[T]{rdb: rdb, prefix: prefix}
}

func (s *KVStore[T]) key(id string) string {
	return s.prefix + id
}

func (s *KVStore[T]) Get(ctx context.Context, id string) (*T, error) {
	val, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result T
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *KVStore[T]) Set(ctx context.Context, id string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(id), data, 0).Err()
}

func (s *KVStore[T]) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}

// SetPipe queues a Set on the given pipeliner.
func (s *KVStore[T]) SetPipe(ctx context.Context, pipe redis.Pipeliner, id string, value *T) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	pipe.Set(ctx, s.key(id), b, 0)
	return nil
}

// DeletePipe queues a Del on the given pipeliner.
func (s *KVStore[T]) DeletePipe(ctx context.Context, pipe redis.Pipeliner, id string) {
	pipe.Del(ctx, s.key(id))
}
