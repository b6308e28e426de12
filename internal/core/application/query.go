package application

import (
	"context"
	"fmt"

	"github.com/orbital-network/auction/internal/core/domain"
)

func (s *service) GetInfo(ctx context.Context) (*ServiceInfo, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	batch, err := s.liveStore.CurrentBatch().Get(ctx)
	if err != nil {
		return nil, err
	}
	queueLen, err := s.liveStore.OrderQueue().Len(ctx)
	if err != nil {
		return nil, err
	}

	now, block := s.now()
	info := &ServiceInfo{
		Route:                 s.auction.Route,
		SolverBond:            s.auction.SolverBond,
		BatchSize:             s.auction.BatchSize,
		AuctionDuration:       s.auction.AuctionDuration,
		FillingWindowDuration: s.auction.FillingWindowDuration,
		Phase:                 domain.PhaseAt(batch, now, s.auction.FillingWindowDuration),
		QueueLength:           queueLen,
		Block:                 block,
	}
	if batch != nil {
		info.ActiveBatchId = batch.Id
	}
	return info, nil
}

func (s *service) GetAuctionConfig(_ context.Context) (*domain.AuctionConfig, error) {
	cfg := s.auction
	return &cfg, nil
}

// GetActiveBatch returns nil when no batch is active.
func (s *service) GetActiveBatch(ctx context.Context) (*BatchInfo, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	batch, err := s.liveStore.CurrentBatch().Get(ctx)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}

	total, err := batch.TotalAmount()
	if err != nil {
		return nil, err
	}
	now, _ := s.now()
	return &BatchInfo{
		Batch: batch,
		Phase: domain.PhaseAt(batch, now, s.auction.FillingWindowDuration),
		Total: total,
	}, nil
}

func (s *service) GetOrderbook(ctx context.Context, from, limit int64) (*Orderbook, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	intents, err := s.liveStore.OrderQueue().View(ctx, from, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.liveStore.OrderQueue().Len(ctx)
	if err != nil {
		return nil, err
	}
	return &Orderbook{Intents: intents, Total: total}, nil
}

func (s *service) GetPostedBond(ctx context.Context, solver string) (*domain.Bond, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	bond, err := s.repoManager.Bonds().Get(ctx, solver)
	if err != nil {
		return nil, err
	}
	if bond == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrBondNotFound, solver)
	}
	return bond, nil
}

func (s *service) GetBatch(ctx context.Context, id string) (*domain.Batch, error) {
	return s.repoManager.Batches().GetBatchWithId(ctx, id)
}

func (s *service) GetSettlement(ctx context.Context, id string) (*domain.Settlement, error) {
	return s.repoManager.Settlements().GetSettlement(ctx, id)
}

func (s *service) GetAccountRegistrations(ctx context.Context) ([]domain.AccountRegistration, error) {
	return s.repoManager.Accounts().GetAll(ctx)
}
