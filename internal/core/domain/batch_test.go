package domain_test

import (
	"testing"
	"time"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/stretchr/testify/require"
)

var (
	t0            = time.Unix(1_700_000_000, 0)
	auctionPeriod = 180 * time.Second
	fillingWindow = 60 * time.Second
	intents       = []domain.Intent{
		{Id: "0", User: "alice", Amount: 600, OfferDomain: "neutron", AskDomain: "osmosis"},
		{Id: "1", User: "bob", Amount: 400, OfferDomain: "neutron", AskDomain: "osmosis"},
	}
)

func TestBatch(t *testing.T) {
	testStartBatch(t)
	testSubmitBid(t)
	testCloseBatch(t)
	testBatchFromEvents(t)
}

func testStartBatch(t *testing.T) {
	t.Run("start", func(t *testing.T) {
		t.Run("valid", func(t *testing.T) {
			batch := domain.NewBatch()
			require.NotEmpty(t, batch.Id)
			require.Empty(t, batch.Events())

			events, err := batch.Start(intents, t0, auctionPeriod)
			require.NoError(t, err)
			require.Len(t, events, 1)

			event, ok := events[0].(domain.BatchStarted)
			require.True(t, ok)
			require.Equal(t, batch.Id, event.Id)
			require.Equal(t, t0.Unix(), batch.StartTime)
			require.Equal(t, t0.Add(auctionPeriod).Unix(), batch.EndTime)
			require.Equal(t, intents, batch.Intents)
			require.Nil(t, batch.CurrentBid)

			total, err := batch.TotalAmount()
			require.NoError(t, err)
			require.Equal(t, uint64(1000), total)
		})

		t.Run("invalid", func(t *testing.T) {
			fixtures := []struct {
				batch       *domain.Batch
				intents     []domain.Intent
				expectedErr string
			}{
				{
					batch:       domain.NewBatch(),
					intents:     nil,
					expectedErr: "missing intents to auction",
				},
				{
					batch:       &domain.Batch{Id: "id", StartTime: t0.Unix()},
					intents:     intents,
					expectedErr: "batch id already started",
				},
				{
					batch: domain.NewBatch(),
					intents: []domain.Intent{
						{Id: "0", Amount: ^uint64(0)},
						{Id: "1", Amount: 1},
					},
					expectedErr: domain.ErrOverflow.Error(),
				},
			}

			for _, f := range fixtures {
				events, err := f.batch.Start(f.intents, t0, auctionPeriod)
				require.EqualError(t, err, f.expectedErr)
				require.Empty(t, events)
			}
		})
	})
}

func testSubmitBid(t *testing.T) {
	t.Run("submit_bid", func(t *testing.T) {
		t.Run("valid", func(t *testing.T) {
			batch := startedBatch(t)

			events, err := batch.SubmitBid(bid("solver1", 100, 10), t0.Add(10*time.Second), fillingWindow)
			require.NoError(t, err)
			require.Len(t, events, 1)
			require.Equal(t, uint64(100), batch.CurrentBid.Amount)

			events, err = batch.SubmitBid(bid("solver2", 101, 20), t0.Add(20*time.Second), fillingWindow)
			require.NoError(t, err)
			require.Len(t, events, 1)
			require.Equal(t, "solver2", batch.CurrentBid.Solver)
			require.Equal(t, uint64(101), batch.CurrentBid.Amount)
			require.Len(t, batch.Events(), 3)
		})

		t.Run("invalid", func(t *testing.T) {
			batch := startedBatch(t)
			_, err := batch.SubmitBid(bid("solver1", 100, 10), t0.Add(10*time.Second), fillingWindow)
			require.NoError(t, err)

			fixtures := []struct {
				name        string
				amount      uint64
				now         time.Time
				expectedErr error
			}{
				{"lower", 90, t0.Add(20 * time.Second), domain.ErrBidTooLow},
				{"equal", 100, t0.Add(20 * time.Second), domain.ErrBidTooLow},
				{"zero", 0, t0.Add(20 * time.Second), domain.ErrBidTooLow},
				{"filling", 1000, t0.Add(auctionPeriod), domain.ErrAuctionPhase},
				{"cleanup", 1000, t0.Add(auctionPeriod + fillingWindow), domain.ErrAuctionPhase},
			}

			for _, f := range fixtures {
				t.Run(f.name, func(t *testing.T) {
					events, err := batch.SubmitBid(bid("solver2", f.amount, 30), f.now, fillingWindow)
					require.ErrorIs(t, err, f.expectedErr)
					require.Empty(t, events)
					require.Equal(t, "solver1", batch.CurrentBid.Solver)
					require.Equal(t, uint64(100), batch.CurrentBid.Amount)
				})
			}
		})

		t.Run("monotonic", func(t *testing.T) {
			batch := startedBatch(t)
			now := t0.Add(time.Second)

			_, err := batch.SubmitBid(bid("solver1", 100, 1), now, fillingWindow)
			require.NoError(t, err)
			_, err = batch.SubmitBid(bid("solver1", 90, 1), now, fillingWindow)
			require.ErrorIs(t, err, domain.ErrBidTooLow)
			_, err = batch.SubmitBid(bid("solver1", 101, 1), now, fillingWindow)
			require.NoError(t, err)
			_, err = batch.SubmitBid(bid("solver1", 101, 1), now, fillingWindow)
			require.ErrorIs(t, err, domain.ErrBidTooLow)
		})
	})
}

func testCloseBatch(t *testing.T) {
	t.Run("close", func(t *testing.T) {
		t.Run("with winner", func(t *testing.T) {
			batch := startedBatch(t)
			_, err := batch.SubmitBid(bid("solver1", 10, 10), t0.Add(10*time.Second), fillingWindow)
			require.NoError(t, err)

			_, err = batch.Close(t0.Add(241*time.Second), "")
			require.EqualError(t, err, "missing settlement for batch "+batch.Id)

			events, err := batch.Close(t0.Add(241*time.Second), "settlement")
			require.NoError(t, err)
			require.Len(t, events, 1)
			require.True(t, batch.Closed)
			require.Equal(t, "settlement", batch.SettlementId)

			_, err = batch.SubmitBid(bid("solver1", 20, 10), t0.Add(20*time.Second), fillingWindow)
			require.ErrorIs(t, err, domain.ErrAuctionPhase)

			_, err = batch.Close(t0.Add(242*time.Second), "settlement")
			require.Error(t, err)
		})

		t.Run("without winner", func(t *testing.T) {
			batch := startedBatch(t)
			events, err := batch.Close(t0.Add(241*time.Second), "")
			require.NoError(t, err)
			require.Len(t, events, 1)
			require.True(t, batch.Closed)
			require.Empty(t, batch.SettlementId)
		})
	})
}

func testBatchFromEvents(t *testing.T) {
	t.Run("from_events", func(t *testing.T) {
		batch := startedBatch(t)
		_, err := batch.SubmitBid(bid("solver1", 10, 10), t0.Add(10*time.Second), fillingWindow)
		require.NoError(t, err)
		_, err = batch.Close(t0.Add(241*time.Second), "settlement")
		require.NoError(t, err)

		replayed := domain.NewBatchFromEvents(batch.Events())
		require.Equal(t, batch.Id, replayed.Id)
		require.Equal(t, batch.Intents, replayed.Intents)
		require.Equal(t, batch.StartTime, replayed.StartTime)
		require.Equal(t, batch.EndTime, replayed.EndTime)
		require.Equal(t, batch.CurrentBid, replayed.CurrentBid)
		require.True(t, replayed.Closed)
		require.Equal(t, uint(3), replayed.Version)
	})
}

func startedBatch(t *testing.T) *domain.Batch {
	batch := domain.NewBatch()
	_, err := batch.Start(intents, t0, auctionPeriod)
	require.NoError(t, err)
	return batch
}

func bid(solver string, amount uint64, offset int64) domain.Bid {
	return domain.Bid{
		Solver: solver,
		Amount: amount,
		Block:  domain.BlockInfo{Height: t0.Unix() + offset, Time: t0.Unix() + offset},
	}
}
