package inmemorylivestore

import (
	"context"
	"sync"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/core/ports"
)

type orderQueueStore struct {
	lock    sync.RWMutex
	intents []domain.Intent
}

func NewOrderQueueStore() ports.OrderQueueStore {
	return &orderQueueStore{intents: make([]domain.Intent, 0)}
}

func (q *orderQueueStore) Enqueue(_ context.Context, intents ...domain.Intent) error {
	q.lock.Lock()
	defer q.lock.Unlock()

	q.intents = append(q.intents, intents...)
	return nil
}

func (q *orderQueueStore) Dequeue(_ context.Context) (*domain.Intent, error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	if len(q.intents) <= 0 {
		return nil, nil
	}

	head := q.intents[0]
	q.intents = q.intents[1:]
	return &head, nil
}

func (q *orderQueueStore) PushFront(_ context.Context, intents ...domain.Intent) error {
	q.lock.Lock()
	defer q.lock.Unlock()

	if len(intents) <= 0 {
		return nil
	}

	queue := make([]domain.Intent, 0, len(intents)+len(q.intents))
	queue = append(queue, intents...)
	q.intents = append(queue, q.intents...)
	return nil
}

func (q *orderQueueStore) View(_ context.Context, from, limit int64) ([]domain.Intent, error) {
	q.lock.RLock()
	defer q.lock.RUnlock()

	size := int64(len(q.intents))
	if from < 0 {
		from = 0
	}
	if from >= size {
		return []domain.Intent{}, nil
	}
	to := size
	if limit > 0 && from+limit < size {
		to = from + limit
	}

	return append([]domain.Intent{}, q.intents[from:to]...), nil
}

func (q *orderQueueStore) Len(_ context.Context) (int64, error) {
	q.lock.RLock()
	defer q.lock.RUnlock()

	return int64(len(q.intents)), nil
}
