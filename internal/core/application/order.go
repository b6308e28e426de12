package application

import (
	"context"
	"fmt"

	"github.com/orbital-network/auction/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

func (s *service) AddOrder(
	ctx context.Context, caller string, order Order,
) (*domain.Intent, error) {
	if err := s.isController(caller); err != nil {
		return nil, err
	}

	if len(order.OfferDomain) <= 0 {
		order.OfferDomain = s.auction.Route.OfferDomain
	}
	if len(order.AskDomain) <= 0 {
		order.AskDomain = s.auction.Route.AskDomain
	}

	intent, err := domain.NewIntent(order.User, order.Amount, order.OfferDomain, order.AskDomain)
	if err != nil {
		return nil, err
	}
	if !s.auction.Route.Matches(*intent) {
		return nil, fmt.Errorf(
			"%w: order %s -> %s does not match route %s",
			domain.ErrInvalidIntent, intent.OfferDomain, intent.AskDomain, s.auction.Route,
		)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.liveStore.OrderQueue().Enqueue(ctx, *intent); err != nil {
		return nil, fmt.Errorf("failed to enqueue intent: %w", err)
	}

	s.saveEvents(ctx, domain.OrderbookTopic, intent.Id, []domain.Event{
		domain.IntentEnqueued{Intent: *intent},
	})
	log.Debugf("enqueued intent %s of %d from %s", intent.Id, intent.Amount, intent.User)

	return intent, nil
}
