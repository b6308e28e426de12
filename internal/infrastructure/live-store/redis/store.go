package redislivestore

import (
	"github.com/redis/go-redis/v9"

	"github.com/orbital-network/auction/internal/core/ports"
)

func NewLiveStore(rdb *redis.Client, numOfRetries int) ports.LiveStore {
	return &redisLiveStore{
		orderQueueStore:   NewOrderQueueStore(rdb),
		currentBatchStore: NewCurrentBatchStore(rdb, numOfRetries),
	}
}

func (s *redisLiveStore) OrderQueue() ports.OrderQueueStore     { return s.orderQueueStore }
func (s *redisLiveStore) CurrentBatch() ports.CurrentBatchStore { return s.currentBatchStore }

type redisLiveStore struct {
	orderQueueStore   ports.OrderQueueStore
	currentBatchStore ports.CurrentBatchStore
}
