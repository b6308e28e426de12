package inmemorylivestore

import (
	"github.com/orbital-network/auction/internal/core/ports"
)

func NewLiveStore() ports.LiveStore {
	return &inMemoryLiveStore{
		orderQueueStore:   NewOrderQueueStore(),
		currentBatchStore: NewCurrentBatchStore(),
	}
}

func (s *inMemoryLiveStore) OrderQueue() ports.OrderQueueStore     { return s.orderQueueStore }
func (s *inMemoryLiveStore) CurrentBatch() ports.CurrentBatchStore { return s.currentBatchStore }

type inMemoryLiveStore struct {
	orderQueueStore   ports.OrderQueueStore
	currentBatchStore ports.CurrentBatchStore
}
