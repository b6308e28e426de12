package redislivestore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/core/ports"
	"github.com/redis/go-redis/v9"
)

const orderQueueKey = "orderQueueStore:intents"

type orderQueueStore struct {
	rdb *redis.Client
}

func NewOrderQueueStore(rdb *redis.Client) ports.OrderQueueStore {
	return &orderQueueStore{rdb}
}

func (s *orderQueueStore) Enqueue(ctx context.Context, intents ...domain.Intent) error {
	if len(intents) <= 0 {
		return nil
	}
	values, err := encodeIntents(intents)
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, orderQueueKey, values...).Err()
}

func (s *orderQueueStore) Dequeue(ctx context.Context) (*domain.Intent, error) {
	buf, err := s.rdb.LPop(ctx, orderQueueKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var intent domain.Intent
	if err := json.Unmarshal(buf, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (s *orderQueueStore) PushFront(ctx context.Context, intents ...domain.Intent) error {
	if len(intents) <= 0 {
		return nil
	}
	values, err := encodeIntents(intents)
	if err != nil {
		return err
	}

	// LPUSH inserts its arguments one by one at the head, so they are
	// passed in reverse to keep the given order.
	reversed := make([]interface{}, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		reversed = append(reversed, values[i])
	}
	return s.rdb.LPush(ctx, orderQueueKey, reversed...).Err()
}

func (s *orderQueueStore) View(ctx context.Context, from, limit int64) ([]domain.Intent, error) {
	if from < 0 {
		from = 0
	}
	to := int64(-1)
	if limit > 0 {
		to = from + limit - 1
	}

	values, err := s.rdb.LRange(ctx, orderQueueKey, from, to).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	intents := make([]domain.Intent, 0, len(values))
	for _, v := range values {
		var intent domain.Intent
		if err := json.Unmarshal([]byte(v), &intent); err != nil {
			return nil, err
		}
		intents = append(intents, intent)
	}
	return intents, nil
}

func (s *orderQueueStore) Len(ctx context.Context) (int64, error) {
	return s.rdb.LLen(ctx, orderQueueKey).Result()
}

func encodeIntents(intents []domain.Intent) ([]interface{}, error) {
	values := make([]interface{}, 0, len(intents))
	for _, intent := range intents {
		buf, err := json.Marshal(intent)
		if err != nil {
			return nil, err
		}
		values = append(values, buf)
	}
	return values, nil
}
