package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orbital-network/auction/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

func (s *service) PostBond(
	ctx context.Context, solver string, coin domain.Coin,
) (*domain.Bond, error) {
	if len(solver) <= 0 {
		return nil, fmt.Errorf("%w: missing solver", domain.ErrUnauthorized)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	bond, err := s.repoManager.Bonds().Get(ctx, solver)
	if err != nil {
		return nil, err
	}
	if bond == nil {
		bond = domain.NewBond(solver, s.auction.SolverBond.Denom)
	}

	if err := bond.Add(coin); err != nil {
		return nil, err
	}

	if err := s.repoManager.Bonds().Upsert(ctx, *bond); err != nil {
		return nil, fmt.Errorf("failed to store bond: %w", err)
	}

	s.saveEvents(ctx, domain.BondTopic, solver, []domain.Event{
		domain.BondPosted{Solver: solver, Coin: coin, Balance: bond.Coin},
	})
	log.Debugf("solver %s posted %s, balance %s", solver, coin, bond.Coin)

	return bond, nil
}

// WithdrawBond removes the whole bond and asks the controller to refund it.
// The bond stays locked while it backs the current bid or a pending
// settlement.
func (s *service) WithdrawBond(ctx context.Context, solver string) (*domain.Coin, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	bond, err := s.repoManager.Bonds().Get(ctx, solver)
	if err != nil {
		return nil, err
	}
	if bond == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrBondNotFound, solver)
	}

	batch, err := s.liveStore.CurrentBatch().Get(ctx)
	if err != nil {
		return nil, err
	}
	if batch != nil && !batch.Closed && batch.CurrentBid != nil && batch.CurrentBid.Solver == solver {
		return nil, fmt.Errorf("%w: %s holds the current bid of batch %s", domain.ErrBondLocked, solver, batch.Id)
	}

	pending, err := s.repoManager.Settlements().GetSolverSettlements(
		ctx, solver, domain.SettlementStatusPending,
	)
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf(
			"%w: %s has %d pending settlements", domain.ErrBondLocked, solver, len(pending),
		)
	}

	if err := s.repoManager.Bonds().Delete(ctx, solver); err != nil {
		return nil, fmt.Errorf("failed to delete bond: %w", err)
	}

	refund := bond.Coin
	if refund.Amount > 0 {
		msg := domain.BondRefundMessage{
			Id:     uuid.New().String(),
			Solver: solver,
			Coin:   refund,
		}
		if err := s.notifier.Notify(ctx, msg); err != nil {
			if restoreErr := s.repoManager.Bonds().Upsert(ctx, *bond); restoreErr != nil {
				log.WithError(restoreErr).Errorf("failed to restore bond of %s", solver)
			}
			return nil, fmt.Errorf("failed to notify bond refund: %w", err)
		}
	}

	s.saveEvents(ctx, domain.BondTopic, solver, []domain.Event{
		domain.BondWithdrawn{Solver: solver, Coin: refund},
	})
	log.Infof("solver %s withdrew bond of %s", solver, refund)

	return &refund, nil
}

func (s *service) assertEligible(ctx context.Context, solver string) error {
	bond, err := s.repoManager.Bonds().Get(ctx, solver)
	if err != nil {
		return err
	}
	if bond == nil || !bond.Covers(s.auction.SolverBond) {
		posted := domain.Coin{Denom: s.auction.SolverBond.Denom}
		if bond != nil {
			posted = bond.Coin
		}
		return fmt.Errorf(
			"%w: %s posted %s, required %s", domain.ErrBondTooLow, solver, posted, s.auction.SolverBond,
		)
	}
	return nil
}
