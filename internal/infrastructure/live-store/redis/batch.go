package redislivestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/core/ports"
	"github.com/redis/go-redis/v9"
)

const (
	currentBatchPrefix = "currentBatchStore:"
	currentBatchId     = "batch"
)

type currentBatchStore struct {
	rdb          *redis.Client
	batches      *KVStore[domain.Batch]
	numOfRetries int
}

func NewCurrentBatchStore(rdb *redis.Client, numOfRetries int) ports.CurrentBatchStore {
	return &currentBatchStore{
		rdb:          rdb,
		batches:      NewRedisKVStore[domain.Batch](rdb, currentBatchPrefix),
		numOfRetries: numOfRetries,
	}
}

func (s *currentBatchStore) Get(ctx context.Context) (*domain.Batch, error) {
	return s.batches.Get(ctx, currentBatchId)
}

func (s *currentBatchStore) Upsert(
	ctx context.Context, fn func(batch *domain.Batch) (*domain.Batch, error),
) error {
	key := currentBatchPrefix + currentBatchId
	for attempt := 0; attempt < s.numOfRetries; attempt++ {
		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			var current *domain.Batch
			buf, err := tx.Get(ctx, key).Bytes()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			if err == nil {
				current = &domain.Batch{}
				if err := json.Unmarshal(buf, current); err != nil {
					return err
				}
			}

			updated, err := fn(current)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if updated == nil {
					s.batches.DeletePipe(ctx, pipe, currentBatchId)
					return nil
				}
				return s.batches.SetPipe(ctx, pipe, currentBatchId, updated)
			})
			return err
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("failed to upsert current batch after %d attempts", s.numOfRetries)
}

func (s *currentBatchStore) Delete(ctx context.Context) error {
	return s.batches.Delete(ctx, currentBatchId)
}
