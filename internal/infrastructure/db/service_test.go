package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/core/ports"
	"github.com/orbital-network/auction/internal/infrastructure/db"
	"github.com/stretchr/testify/require"
)

var (
	now   = time.Unix(1_700_000_000, 0)
	route = domain.Route{
		OfferDomain: "neutron",
		OfferDenom:  "untrn",
		AskDomain:   "osmosis",
		AskDenom:    "uosmo",
	}
	intents = []domain.Intent{
		{Id: uuid.NewString(), User: "alice", Amount: 600, OfferDomain: "neutron", AskDomain: "osmosis", CreatedAt: now.Unix()},
		{Id: uuid.NewString(), User: "bob", Amount: 400, OfferDomain: "neutron", AskDomain: "osmosis", CreatedAt: now.Unix()},
	}
)

func TestService(t *testing.T) {
	dbDir := t.TempDir()
	tests := []struct {
		name   string
		config db.ServiceConfig
	}{
		{
			name: "repo_manager_with_badger_stores",
			config: db.ServiceConfig{
				EventStoreType:   "watermill",
				DataStoreType:    "badger",
				EventStoreConfig: []interface{}{nil},
				DataStoreConfig:  []interface{}{"", nil},
			},
		},
		{
			name: "repo_manager_with_sqlite_stores",
			config: db.ServiceConfig{
				EventStoreType:   "watermill",
				DataStoreType:    "sqlite",
				EventStoreConfig: []interface{}{nil},
				DataStoreConfig:  []interface{}{dbDir},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := db.NewService(tt.config)
			require.NoError(t, err)
			defer svc.Close()

			testEventRepository(t, svc)
			testAuctionConfigRepository(t, svc)
			testBondRepository(t, svc)
			testBatchRepository(t, svc)
			testSettlementRepository(t, svc)
			testAccountRepository(t, svc)
		})
	}
}

func TestInvalidService(t *testing.T) {
	_, err := db.NewService(db.ServiceConfig{
		EventStoreType: "kafka",
		DataStoreType:  "badger",
	})
	require.Error(t, err)

	_, err = db.NewService(db.ServiceConfig{
		EventStoreType: "watermill",
		DataStoreType:  "postgres",
	})
	require.Error(t, err)
}

func testEventRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_event_repository", func(t *testing.T) {
		ctx := context.Background()
		received := make(chan []domain.Event, 10)
		svc.Events().RegisterEventsHandler(domain.BatchTopic, func(events []domain.Event) {
			received <- events
		})
		defer svc.Events().ClearRegisteredHandlers(domain.BatchTopic)

		batch := domain.NewBatch()
		events, err := batch.Start(intents, now, time.Minute)
		require.NoError(t, err)
		require.NoError(t, svc.Events().Save(ctx, domain.BatchTopic, batch.Id, events))

		history := waitForEvents(t, received)
		require.Len(t, history, 1)

		bid := domain.Bid{Solver: "solver", Amount: 10, Block: domain.BlockInfo{Height: 1, Time: now.Unix()}}
		events, err = batch.SubmitBid(bid, now.Add(time.Second), 0)
		require.NoError(t, err)
		require.NoError(t, svc.Events().Save(ctx, domain.BatchTopic, batch.Id, events))

		history = waitForEvents(t, received)
		require.Len(t, history, 2)
		replayed := domain.NewBatchFromEvents(history)
		require.Equal(t, batch.Id, replayed.Id)
		require.Equal(t, bid, *replayed.CurrentBid)

		events, err = batch.Close(now.Add(time.Minute), "settlement")
		require.NoError(t, err)
		require.NoError(t, svc.Events().Save(ctx, domain.BatchTopic, batch.Id, events))
		history = waitForEvents(t, received)
		require.Len(t, history, 3)

		// A closed batch leaves nothing cached behind.
		next := domain.BatchStarted{Id: batch.Id, Intents: intents}
		require.NoError(t, svc.Events().Save(ctx, domain.BatchTopic, batch.Id, []domain.Event{next}))
		history = waitForEvents(t, received)
		require.Len(t, history, 1)
	})
}

func testAuctionConfigRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_auction_config_repository", func(t *testing.T) {
		ctx := context.Background()
		repo := svc.AuctionConfig()

		config, err := repo.Get(ctx)
		require.NoError(t, err)
		require.Nil(t, config)

		domains := domain.DomainAccounts{
			domain.PolytoneAccount{
				Domain:       "neutron",
				NoteAddress:  "neutron1note",
				VoiceAddress: "neutron1voice",
				Timeout:      time.Minute,
			},
			domain.IcaAccount{
				Domain:       "osmosis",
				ConnectionId: "connection-0",
				ChannelId:    "channel-1",
				Timeout:      2 * time.Minute,
			},
		}
		expected, err := domain.NewAuctionConfig(
			1000, 3*time.Minute, time.Minute, route, domain.Coin{Denom: "untrn", Amount: 100}, domains,
		)
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, *expected))

		config, err = repo.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, config)
		require.Equal(t, *expected, *config)

		expected.Domains = nil
		expected.BatchSize = 10
		require.NoError(t, repo.Upsert(ctx, *expected))

		config, err = repo.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, *expected, *config)
	})
}

func testBondRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_bond_repository", func(t *testing.T) {
		ctx := context.Background()
		repo := svc.Bonds()

		bond, err := repo.Get(ctx, "solver1")
		require.NoError(t, err)
		require.Nil(t, bond)

		bonds, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Empty(t, bonds)

		first := domain.NewBond("solver1", "untrn")
		require.NoError(t, first.Add(domain.Coin{Denom: "untrn", Amount: 100}))
		second := domain.NewBond("solver2", "untrn")
		require.NoError(t, second.Add(domain.Coin{Denom: "untrn", Amount: ^uint64(0)}))

		require.NoError(t, repo.Upsert(ctx, *first))
		require.NoError(t, repo.Upsert(ctx, *second))

		bond, err = repo.Get(ctx, "solver2")
		require.NoError(t, err)
		require.Equal(t, *second, *bond)

		require.NoError(t, first.Add(domain.Coin{Denom: "untrn", Amount: 50}))
		require.NoError(t, repo.Upsert(ctx, *first))

		bonds, err = repo.GetAll(ctx)
		require.NoError(t, err)
		require.ElementsMatch(t, []domain.Bond{*first, *second}, bonds)

		require.NoError(t, repo.Delete(ctx, "solver1"))
		require.NoError(t, repo.Delete(ctx, "solver1"))

		bond, err = repo.Get(ctx, "solver1")
		require.NoError(t, err)
		require.Nil(t, bond)
	})
}

func testBatchRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_batch_repository", func(t *testing.T) {
		ctx := context.Background()
		repo := svc.Batches()

		batch, err := repo.GetBatchWithId(ctx, uuid.NewString())
		require.ErrorIs(t, err, domain.ErrBatchNotFound)
		require.Nil(t, batch)

		first := domain.NewBatch()
		events, err := first.Start(intents, now, time.Minute)
		require.NoError(t, err)
		first = domain.NewBatchFromEvents(events)
		require.NoError(t, repo.AddOrUpdateBatch(ctx, *first))

		got, err := repo.GetBatchWithId(ctx, first.Id)
		require.NoError(t, err)
		require.Nil(t, got.CurrentBid)
		require.Equal(t, first.Intents, got.Intents)
		require.Equal(t, first.StartTime, got.StartTime)
		require.Equal(t, first.EndTime, got.EndTime)
		require.Equal(t, first.Version, got.Version)

		bid := domain.Bid{Solver: "solver", Amount: 42, Block: domain.BlockInfo{Height: 7, Time: now.Unix() + 7}}
		bidEvents, err := first.SubmitBid(bid, now.Add(7*time.Second), 0)
		require.NoError(t, err)
		closeEvents, err := first.Close(now.Add(2*time.Minute), "settlement")
		require.NoError(t, err)
		events = append(events, bidEvents...)
		events = append(events, closeEvents...)
		first = domain.NewBatchFromEvents(events)
		require.NoError(t, repo.AddOrUpdateBatch(ctx, *first))

		got, err = repo.GetBatchWithId(ctx, first.Id)
		require.NoError(t, err)
		require.NotNil(t, got.CurrentBid)
		require.Equal(t, bid, *got.CurrentBid)
		require.True(t, got.Closed)
		require.Equal(t, "settlement", got.SettlementId)
		require.Equal(t, uint(3), got.Version)

		second := domain.NewBatch()
		events, err = second.Start(intents, now.Add(time.Hour), time.Minute)
		require.NoError(t, err)
		second = domain.NewBatchFromEvents(events)
		require.NoError(t, repo.AddOrUpdateBatch(ctx, *second))

		ids, err := repo.GetBatchIds(ctx, 0, 0)
		require.NoError(t, err)
		require.Equal(t, []string{first.Id, second.Id}, ids)

		ids, err = repo.GetBatchIds(ctx, now.Unix(), 0)
		require.NoError(t, err)
		require.Equal(t, []string{second.Id}, ids)

		ids, err = repo.GetBatchIds(ctx, 0, now.Add(time.Minute).Unix())
		require.NoError(t, err)
		require.Equal(t, []string{first.Id}, ids)
	})
}

func testSettlementRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_settlement_repository", func(t *testing.T) {
		ctx := context.Background()
		repo := svc.Settlements()

		settlement, err := repo.GetSettlement(ctx, uuid.NewString())
		require.ErrorIs(t, err, domain.ErrSettlementNotFound)
		require.Nil(t, settlement)

		newSettlement := func(solver string, offset time.Duration) *domain.Settlement {
			batch := domain.NewBatch()
			_, err := batch.Start(intents, now, time.Minute)
			require.NoError(t, err)
			_, err = batch.SubmitBid(domain.Bid{Solver: solver, Amount: 10}, now, 0)
			require.NoError(t, err)
			s, err := domain.NewSettlement(batch, route, now.Add(offset))
			require.NoError(t, err)
			return s
		}

		s1 := newSettlement("solver1", 0)
		s2 := newSettlement("solver1", time.Second)
		s3 := newSettlement("solver2", 2*time.Second)
		for _, s := range []*domain.Settlement{s1, s2, s3} {
			require.NoError(t, repo.AddOrUpdateSettlement(ctx, *s))
		}

		got, err := repo.GetSettlement(ctx, s1.Id)
		require.NoError(t, err)
		require.Equal(t, *s1, *got)

		pending, err := repo.GetSettlementsWithStatus(ctx, domain.SettlementStatusPending)
		require.NoError(t, err)
		require.Len(t, pending, 3)

		_, err = s2.Confirm(now.Add(time.Minute))
		require.NoError(t, err)
		require.NoError(t, repo.AddOrUpdateSettlement(ctx, *s2))

		solverPending, err := repo.GetSolverSettlements(ctx, "solver1", domain.SettlementStatusPending)
		require.NoError(t, err)
		require.Len(t, solverPending, 1)
		require.Equal(t, s1.Id, solverPending[0].Id)

		confirmed, err := repo.GetSettlementsWithStatus(ctx, domain.SettlementStatusConfirmed)
		require.NoError(t, err)
		require.Len(t, confirmed, 1)
		require.Equal(t, *s2, confirmed[0])

		require.NoError(t, repo.DeleteSettlement(ctx, s3.Id))
		_, err = repo.GetSettlement(ctx, s3.Id)
		require.ErrorIs(t, err, domain.ErrSettlementNotFound)
	})
}

func testAccountRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_account_repository", func(t *testing.T) {
		ctx := context.Background()
		repo := svc.Accounts()

		registrations, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Empty(t, registrations)

		osmosis := domain.AccountRegistration{Domain: "osmosis", Address: "osmo1old", ConfirmedAt: now.Unix()}
		neutron := domain.AccountRegistration{Domain: "neutron", Address: "neutron1acc", ConfirmedAt: now.Unix()}
		require.NoError(t, repo.Add(ctx, osmosis))
		require.NoError(t, repo.Add(ctx, neutron))

		osmosis.Address = "osmo1new"
		require.NoError(t, repo.Add(ctx, osmosis))

		registrations, err = repo.GetAll(ctx)
		require.NoError(t, err)
		require.Equal(t, []domain.AccountRegistration{neutron, osmosis}, registrations)
	})
}

func waitForEvents(t *testing.T, ch <-chan []domain.Event) []domain.Event {
	select {
	case events := <-ch:
		return events
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for events")
		return nil
	}
}
