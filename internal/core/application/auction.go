package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orbital-network/auction/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

// Bid replaces the current bid of the active batch. The solver must be
// bonded, the batch must be in its bidding phase and the amount must beat
// the current bid.
func (s *service) Bid(ctx context.Context, solver string, amount uint64) (*domain.Bid, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.assertEligible(ctx, solver); err != nil {
		return nil, err
	}

	now, block := s.now()
	bid := domain.Bid{
		Solver: solver,
		Amount: amount,
		Block:  block,
	}

	var batchId string
	var events []domain.Event
	if err := s.liveStore.CurrentBatch().Upsert(ctx, func(batch *domain.Batch) (*domain.Batch, error) {
		if batch == nil {
			return nil, fmt.Errorf("%w: no active batch", domain.ErrAuctionPhase)
		}
		evs, err := batch.SubmitBid(bid, now, s.auction.FillingWindowDuration)
		if err != nil {
			return nil, err
		}
		batchId = batch.Id
		events = evs
		return batch, nil
	}); err != nil {
		return nil, err
	}

	s.saveEvents(ctx, domain.BatchTopic, batchId, events)
	log.Debugf("accepted bid of %d from %s for batch %s", amount, solver, batchId)

	return &bid, nil
}

// Tick closes the active batch once its cleanup phase is reached and opens
// the next one from the head of the orderbook.
func (s *service) Tick(ctx context.Context, nowOverride *time.Time) (*TickResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	now, _ := s.now()
	if nowOverride != nil {
		if s.cfg.AllowTimeOverride {
			now = time.Unix(nowOverride.Unix(), 0)
		} else {
			log.Debug("ignoring tick time override, not allowed")
		}
	}

	result := &TickResult{}

	batch, err := s.liveStore.CurrentBatch().Get(ctx)
	if err != nil {
		return nil, err
	}

	if batch != nil {
		phase := batch.Phase(now, s.auction.FillingWindowDuration)
		if phase != domain.Cleanup {
			return nil, fmt.Errorf(
				"%w: batch %s is in %s phase", domain.ErrAuctionNotExpired, batch.Id, phase,
			)
		}

		settlement, err := s.closeBatch(ctx, batch, now)
		if err != nil {
			return nil, err
		}
		result.Closed = batch
		result.Settlement = settlement
	}

	opened, err := s.openBatch(ctx, now)
	if err != nil {
		if result.Closed != nil {
			log.WithError(err).Warnf(
				"closed batch %s but failed to open the next one", result.Closed.Id,
			)
		}
		return nil, err
	}
	result.Opened = opened

	return result, nil
}

// closeBatch finalizes the batch. With a winner a pending settlement is
// stored and announced to the controller, otherwise the intents go back to
// the front of the queue in their original order.
func (s *service) closeBatch(
	ctx context.Context, batch *domain.Batch, now time.Time,
) (*domain.Settlement, error) {
	original := *batch
	restoreBatch := func() {
		if err := s.liveStore.CurrentBatch().Upsert(ctx, func(*domain.Batch) (*domain.Batch, error) {
			return &original, nil
		}); err != nil {
			log.WithError(err).Errorf("failed to restore batch %s", original.Id)
		}
	}

	var settlement *domain.Settlement
	var settlementId string
	if batch.HasWinner() {
		var err error
		settlement, err = domain.NewSettlement(batch, s.auction.Route, now)
		if err != nil {
			return nil, err
		}
		settlementId = settlement.Id
	}

	events, err := batch.Close(now, settlementId)
	if err != nil {
		return nil, err
	}

	if settlement != nil {
		if err := s.repoManager.Settlements().AddOrUpdateSettlement(ctx, *settlement); err != nil {
			return nil, fmt.Errorf("failed to store settlement: %w", err)
		}
	}

	if err := s.liveStore.CurrentBatch().Delete(ctx); err != nil {
		if settlement != nil {
			s.deleteSettlement(ctx, settlement.Id)
		}
		return nil, fmt.Errorf("failed to clear active batch: %w", err)
	}

	if settlement != nil {
		if err := s.notifier.Notify(ctx, settlement.Message()); err != nil {
			restoreBatch()
			s.deleteSettlement(ctx, settlement.Id)
			return nil, fmt.Errorf("failed to notify settlement of batch %s: %w", batch.Id, err)
		}
	} else {
		if err := s.liveStore.OrderQueue().PushFront(ctx, batch.Intents...); err != nil {
			restoreBatch()
			return nil, fmt.Errorf("failed to requeue intents of batch %s: %w", batch.Id, err)
		}
	}

	if err := s.archiveBatch(ctx, batch); err != nil {
		log.WithError(err).Warnf("failed to archive batch %s", batch.Id)
	}
	s.saveEvents(ctx, domain.BatchTopic, batch.Id, events)

	if settlement != nil {
		log.Infof(
			"closed batch %s, %s won with %d, settlement %s",
			batch.Id, settlement.Solver(), settlement.Bid.Amount, settlement.Id,
		)
	} else {
		log.Infof("closed batch %s without bids, requeued %d intents", batch.Id, len(batch.Intents))
	}

	return settlement, nil
}

// openBatch starts a batch with up to BatchSize worth of intents. An empty
// queue leaves the auction without an active batch.
func (s *service) openBatch(ctx context.Context, now time.Time) (*domain.Batch, error) {
	intents, remainder, err := s.takeUpTo(ctx, s.auction.BatchSize)
	if err != nil {
		if isQueueEmpty(err) {
			log.Debug("orderbook is empty, no batch opened")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to take intents from queue: %w", err)
	}

	if remainder != nil {
		if err := s.liveStore.OrderQueue().PushFront(ctx, *remainder); err != nil {
			s.requeue(ctx, intents, remainder)
			return nil, fmt.Errorf("failed to requeue remainder of intent %s: %w", remainder.Id, err)
		}
	}

	batch := domain.NewBatch()
	events, err := batch.Start(intents, now, s.auction.AuctionDuration)
	if err != nil {
		s.requeue(ctx, intents, s.takeBackRemainder(ctx, remainder))
		return nil, err
	}

	if err := s.liveStore.CurrentBatch().Upsert(ctx, func(current *domain.Batch) (*domain.Batch, error) {
		if current != nil {
			return nil, fmt.Errorf("batch %s is still active", current.Id)
		}
		return batch, nil
	}); err != nil {
		s.requeue(ctx, intents, s.takeBackRemainder(ctx, remainder))
		return nil, fmt.Errorf("failed to store active batch: %w", err)
	}

	s.saveEvents(ctx, domain.BatchTopic, batch.Id, events)

	total, _ := batch.TotalAmount()
	log.Infof(
		"opened batch %s with %d intents for %d, bidding ends at %d",
		batch.Id, len(intents), total, batch.EndTime,
	)

	return batch, nil
}

// takeBackRemainder pops the remainder just pushed to the front so that it
// can be merged again with the intent it was split from.
func (s *service) takeBackRemainder(ctx context.Context, remainder *domain.Intent) *domain.Intent {
	if remainder == nil {
		return nil
	}
	head, err := s.liveStore.OrderQueue().Dequeue(ctx)
	if err != nil || head == nil || head.Id != remainder.Id || head.Amount != remainder.Amount {
		if head != nil {
			//nolint:errcheck
			s.liveStore.OrderQueue().PushFront(ctx, *head)
		}
		return nil
	}
	return head
}

func (s *service) deleteSettlement(ctx context.Context, id string) {
	if err := s.repoManager.Settlements().DeleteSettlement(ctx, id); err != nil {
		log.WithError(err).Errorf("failed to delete settlement %s", id)
	}
}

func isNotExpired(err error) bool {
	return errors.Is(err, domain.ErrAuctionNotExpired)
}
