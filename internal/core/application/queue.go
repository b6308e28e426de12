package application

import (
	"context"
	"errors"

	"github.com/orbital-network/auction/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

// takeUpTo dequeues intents until their amounts fill capacity. The first
// intent that does not fit is split, its head joins the batch and the
// remainder is returned for the caller to put back at the front.
func (s *service) takeUpTo(
	ctx context.Context, capacity uint64,
) ([]domain.Intent, *domain.Intent, error) {
	queue := s.liveStore.OrderQueue()
	intents := make([]domain.Intent, 0)
	var total uint64

	for total < capacity {
		intent, err := queue.Dequeue(ctx)
		if err != nil {
			s.requeue(ctx, intents, nil)
			return nil, nil, err
		}
		if intent == nil {
			break
		}

		sum, err := domain.AddAmounts(total, intent.Amount)
		if err != nil {
			s.requeue(ctx, append(intents, *intent), nil)
			return nil, nil, err
		}
		if sum <= capacity {
			intents = append(intents, *intent)
			total = sum
			continue
		}

		head, remainder, err := intent.Split(capacity - total)
		if err != nil {
			s.requeue(ctx, append(intents, *intent), nil)
			return nil, nil, err
		}
		return append(intents, head), &remainder, nil
	}

	if len(intents) <= 0 {
		return nil, nil, domain.ErrQueueIsEmpty
	}
	return intents, nil, nil
}

// requeue puts intents back at the front of the queue, merging the
// remainder into the last intent it was split from.
func (s *service) requeue(ctx context.Context, intents []domain.Intent, remainder *domain.Intent) {
	if remainder != nil {
		if len(intents) <= 0 {
			intents = []domain.Intent{*remainder}
		} else {
			last := intents[len(intents)-1]
			amount, err := domain.AddAmounts(last.Amount, remainder.Amount)
			if err != nil {
				log.WithError(err).Errorf("failed to merge split intent %s", last.Id)
				return
			}
			last.Amount = amount
			intents = append(append([]domain.Intent{}, intents[:len(intents)-1]...), last)
		}
	}
	if len(intents) <= 0 {
		return
	}

	if err := s.liveStore.OrderQueue().PushFront(ctx, intents...); err != nil {
		log.WithError(err).Errorf("failed to requeue %d intents", len(intents))
	}
}

func isQueueEmpty(err error) bool {
	return errors.Is(err, domain.ErrQueueIsEmpty)
}
