package livestore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/core/ports"
	inmemory "github.com/orbital-network/auction/internal/infrastructure/live-store/inmemory"
	redislivestore "github.com/orbital-network/auction/internal/infrastructure/live-store/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestLiveStoreImplementations(t *testing.T) {
	stores := []struct {
		name  string
		store func(t *testing.T) ports.LiveStore
	}{
		{"inmemory", func(t *testing.T) ports.LiveStore { return inmemory.NewLiveStore() }},
		{"redis", newRedisLiveStore},
	}

	for _, tt := range stores {
		t.Run(tt.name, func(t *testing.T) {
			runLiveStoreTests(t, tt.store(t))
		})
	}
}

func newRedisLiveStore(t *testing.T) ports.LiveStore {
	redisOpts, err := redis.ParseURL("redis://localhost:6379/15")
	require.NoError(t, err)
	rdb := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable: %s", err)
	}
	require.NoError(t, rdb.FlushDB(context.Background()).Err())
	t.Cleanup(func() {
		//nolint:errcheck
		rdb.FlushDB(context.Background())
		//nolint:errcheck
		rdb.Close()
	})

	return redislivestore.NewLiveStore(rdb, 5)
}

func runLiveStoreTests(t *testing.T, store ports.LiveStore) {
	ctx := context.Background()

	t.Run("OrderQueueStore", func(t *testing.T) {
		queue := store.OrderQueue()
		i1, i2, i3 := intent("1", 1500), intent("2", 300), intent("3", 200)

		empty, err := queue.Dequeue(ctx)
		require.NoError(t, err)
		require.Nil(t, empty)

		require.NoError(t, queue.Enqueue(ctx, i1, i2))
		require.NoError(t, queue.Enqueue(ctx, i3))

		size, err := queue.Len(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(3), size)

		all, err := queue.View(ctx, 0, 0)
		require.NoError(t, err)
		require.Equal(t, []domain.Intent{i1, i2, i3}, all)

		page, err := queue.View(ctx, 1, 1)
		require.NoError(t, err)
		require.Equal(t, []domain.Intent{i2}, page)

		page, err = queue.View(ctx, 5, 10)
		require.NoError(t, err)
		require.Empty(t, page)

		head, err := queue.Dequeue(ctx)
		require.NoError(t, err)
		require.Equal(t, i1, *head)

		first, rest, err := head.Split(1000)
		require.NoError(t, err)
		require.Equal(t, uint64(1000), first.Amount)
		require.NoError(t, queue.PushFront(ctx, rest))

		extra := intent("4", 50)
		require.NoError(t, queue.PushFront(ctx, extra, intent("5", 60)))

		all, err = queue.View(ctx, 0, -1)
		require.NoError(t, err)
		require.Len(t, all, 5)
		require.Equal(t, "4", all[0].Id)
		require.Equal(t, "5", all[1].Id)
		require.Equal(t, rest, all[2])
		require.Equal(t, i2, all[3])
		require.Equal(t, i3, all[4])

		for range all {
			_, err := queue.Dequeue(ctx)
			require.NoError(t, err)
		}
		size, err = queue.Len(ctx)
		require.NoError(t, err)
		require.Zero(t, size)
	})

	t.Run("CurrentBatchStore", func(t *testing.T) {
		batches := store.CurrentBatch()

		batch, err := batches.Get(ctx)
		require.NoError(t, err)
		require.Nil(t, batch)

		now := time.Unix(1_700_000_000, 0)
		newBatch := domain.NewBatch()
		_, err = newBatch.Start([]domain.Intent{intent("1", 1000)}, now, 3*time.Minute)
		require.NoError(t, err)

		err = batches.Upsert(ctx, func(b *domain.Batch) (*domain.Batch, error) {
			require.Nil(t, b)
			return newBatch, nil
		})
		require.NoError(t, err)

		bid := domain.Bid{Solver: "solver", Amount: 10, Block: domain.BlockInfo{Height: 1, Time: now.Unix()}}
		err = batches.Upsert(ctx, func(b *domain.Batch) (*domain.Batch, error) {
			require.NotNil(t, b)
			if _, err := b.SubmitBid(bid, now.Add(time.Second), time.Minute); err != nil {
				return nil, err
			}
			return b, nil
		})
		require.NoError(t, err)

		failure := fmt.Errorf("rejected")
		err = batches.Upsert(ctx, func(b *domain.Batch) (*domain.Batch, error) {
			b.CurrentBid = nil
			return nil, failure
		})
		require.ErrorIs(t, err, failure)

		batch, err = batches.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, batch)
		require.Equal(t, newBatch.Id, batch.Id)
		require.Equal(t, newBatch.Intents, batch.Intents)
		require.NotNil(t, batch.CurrentBid)
		require.Equal(t, bid, *batch.CurrentBid)

		// Mutating a fetched batch must not leak into the store.
		batch.CurrentBid.Amount = 1
		batch, err = batches.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(10), batch.CurrentBid.Amount)

		require.NoError(t, batches.Delete(ctx))
		batch, err = batches.Get(ctx)
		require.NoError(t, err)
		require.Nil(t, batch)
	})
}

func intent(id string, amount uint64) domain.Intent {
	return domain.Intent{
		Id:          id,
		User:        "user" + id,
		Amount:      amount,
		OfferDomain: "neutron",
		AskDomain:   "osmosis",
		CreatedAt:   1_700_000_000,
	}
}
