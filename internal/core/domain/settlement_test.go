package domain_test

import (
	"testing"
	"time"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestSettlement(t *testing.T) {
	t.Run("new", func(t *testing.T) {
		_, err := domain.NewSettlement(startedBatch(t), route, t0)
		require.Error(t, err)

		batch := startedBatch(t)
		_, err = batch.SubmitBid(bid("solver1", 10, 10), t0.Add(10*time.Second), fillingWindow)
		require.NoError(t, err)

		settlement, err := domain.NewSettlement(batch, route, t0.Add(241*time.Second))
		require.NoError(t, err)
		require.NotEmpty(t, settlement.Id)
		require.Equal(t, batch.Id, settlement.BatchId)
		require.Equal(t, "solver1", settlement.Solver())
		require.Equal(t, batch.Intents, settlement.Intents)
		require.True(t, settlement.IsPending())

		msg := settlement.Message()
		require.Equal(t, settlement.Id, msg.GetId())
		require.Equal(t, domain.MessageKindSettle, msg.GetKind())
		require.Equal(t, uint64(10), msg.WinningBid)
		require.Equal(t, route, msg.Route)
	})

	t.Run("confirm", func(t *testing.T) {
		settlement := pendingSettlement(t)

		event, err := settlement.Confirm(t0.Add(time.Hour))
		require.NoError(t, err)
		require.IsType(t, domain.SettlementConfirmed{}, event)
		require.Equal(t, domain.SettlementStatusConfirmed, settlement.Status)
		require.Equal(t, t0.Add(time.Hour).Unix(), settlement.UpdatedAt)

		_, err = settlement.Confirm(t0.Add(time.Hour))
		require.ErrorIs(t, err, domain.ErrSettlementNotPending)
		_, err = settlement.Slash("late", t0.Add(time.Hour))
		require.ErrorIs(t, err, domain.ErrSettlementNotPending)
	})

	t.Run("slash", func(t *testing.T) {
		settlement := pendingSettlement(t)

		event, err := settlement.Slash("timeout", t0.Add(time.Hour))
		require.NoError(t, err)
		slashed, ok := event.(domain.SettlementSlashed)
		require.True(t, ok)
		require.Equal(t, "timeout", slashed.Reason)
		require.Equal(t, domain.SettlementStatusSlashed, settlement.Status)
		require.Equal(t, "SLASHED", settlement.Status.String())

		_, err = settlement.Confirm(t0.Add(time.Hour))
		require.ErrorIs(t, err, domain.ErrSettlementNotPending)
	})
}

func pendingSettlement(t *testing.T) *domain.Settlement {
	batch := startedBatch(t)
	_, err := batch.SubmitBid(bid("solver1", 10, 10), t0.Add(10*time.Second), fillingWindow)
	require.NoError(t, err)
	settlement, err := domain.NewSettlement(batch, route, t0.Add(241*time.Second))
	require.NoError(t, err)
	return settlement
}
