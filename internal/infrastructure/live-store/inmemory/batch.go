package inmemorylivestore

import (
	"context"
	"sync"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/core/ports"
)

type currentBatchStore struct {
	lock  sync.RWMutex
	batch *domain.Batch
}

func NewCurrentBatchStore() ports.CurrentBatchStore {
	return &currentBatchStore{}
}

func (s *currentBatchStore) Get(_ context.Context) (*domain.Batch, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return cloneBatch(s.batch), nil
}

func (s *currentBatchStore) Upsert(
	_ context.Context, fn func(batch *domain.Batch) (*domain.Batch, error),
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	batch, err := fn(cloneBatch(s.batch))
	if err != nil {
		return err
	}
	s.batch = cloneBatch(batch)
	return nil
}

func (s *currentBatchStore) Delete(_ context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.batch = nil
	return nil
}

// cloneBatch keeps callers from mutating the stored batch outside Upsert.
func cloneBatch(batch *domain.Batch) *domain.Batch {
	if batch == nil {
		return nil
	}
	clone := *batch
	clone.Intents = append([]domain.Intent{}, batch.Intents...)
	if batch.CurrentBid != nil {
		bid := *batch.CurrentBid
		clone.CurrentBid = &bid
	}
	return &clone
}
