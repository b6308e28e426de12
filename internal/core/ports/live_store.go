package ports

import (
	"context"

	"github.com/orbital-network/auction/internal/core/domain"
)

type LiveStore interface {
	OrderQueue() OrderQueueStore
	CurrentBatch() CurrentBatchStore
}

// OrderQueueStore is the FIFO of intents waiting to be auctioned.
type OrderQueueStore interface {
	Enqueue(ctx context.Context, intents ...domain.Intent) error
	// Dequeue returns nil without error when the queue is empty.
	Dequeue(ctx context.Context) (*domain.Intent, error)
	// PushFront inserts the intents, in the given order, ahead of the head.
	PushFront(ctx context.Context, intents ...domain.Intent) error
	View(ctx context.Context, from, limit int64) ([]domain.Intent, error)
	Len(ctx context.Context) (int64, error)
}

// CurrentBatchStore holds the single active batch.
type CurrentBatchStore interface {
	Get(ctx context.Context) (*domain.Batch, error)
	// Upsert atomically replaces the batch with the result of fn. Nothing is
	// written if fn returns an error.
	Upsert(ctx context.Context, fn func(batch *domain.Batch) (*domain.Batch, error)) error
	Delete(ctx context.Context) error
}
