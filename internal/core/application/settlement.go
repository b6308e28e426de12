package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orbital-network/auction/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

// ConfirmSettlement marks a pending settlement as fulfilled, which unlocks
// the bond of the winning solver.
func (s *service) ConfirmSettlement(
	ctx context.Context, caller, settlementId string,
) (*domain.Settlement, error) {
	if err := s.isController(caller); err != nil {
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	settlement, err := s.repoManager.Settlements().GetSettlement(ctx, settlementId)
	if err != nil {
		return nil, err
	}

	now, _ := s.now()
	event, err := settlement.Confirm(now)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.Settlements().AddOrUpdateSettlement(ctx, *settlement); err != nil {
		return nil, fmt.Errorf("failed to update settlement: %w", err)
	}

	s.saveEvents(ctx, domain.SettlementTopic, settlement.Id, []domain.Event{event})
	log.Infof("settlement %s of batch %s confirmed", settlement.Id, settlement.BatchId)

	return settlement, nil
}

// SlashSettlement gives up on a pending settlement and seizes up to the
// required solver bond from the winner.
func (s *service) SlashSettlement(
	ctx context.Context, caller, settlementId, reason string,
) (*domain.Settlement, *domain.Coin, error) {
	if err := s.isController(caller); err != nil {
		return nil, nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	settlement, err := s.repoManager.Settlements().GetSettlement(ctx, settlementId)
	if err != nil {
		return nil, nil, err
	}
	originalSettlement := *settlement

	now, _ := s.now()
	slashEvent, err := settlement.Slash(reason, now)
	if err != nil {
		return nil, nil, err
	}

	solver := settlement.Solver()
	bond, err := s.repoManager.Bonds().Get(ctx, solver)
	if err != nil {
		return nil, nil, err
	}

	seized := domain.Coin{Denom: s.auction.SolverBond.Denom}
	var originalBond domain.Bond
	if bond != nil {
		originalBond = *bond
		seized = bond.Seize(s.auction.SolverBond.Amount)

		if bond.IsEmpty() {
			err = s.repoManager.Bonds().Delete(ctx, solver)
		} else {
			err = s.repoManager.Bonds().Upsert(ctx, *bond)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to update bond of %s: %w", solver, err)
		}
	}

	restoreBond := func() {
		if bond == nil {
			return
		}
		if err := s.repoManager.Bonds().Upsert(ctx, originalBond); err != nil {
			log.WithError(err).Errorf("failed to restore bond of %s", solver)
		}
	}

	if err := s.repoManager.Settlements().AddOrUpdateSettlement(ctx, *settlement); err != nil {
		restoreBond()
		return nil, nil, fmt.Errorf("failed to update settlement: %w", err)
	}

	if seized.Amount > 0 {
		msg := domain.BondSlashMessage{
			Id:           uuid.New().String(),
			SettlementId: settlement.Id,
			Solver:       solver,
			Coin:         seized,
			Reason:       reason,
		}
		if err := s.notifier.Notify(ctx, msg); err != nil {
			restoreBond()
			if err := s.repoManager.Settlements().AddOrUpdateSettlement(
				ctx, originalSettlement,
			); err != nil {
				log.WithError(err).Errorf("failed to restore settlement %s", settlement.Id)
			}
			return nil, nil, fmt.Errorf("failed to notify bond slash: %w", err)
		}
	}

	s.saveEvents(ctx, domain.SettlementTopic, settlement.Id, []domain.Event{slashEvent})
	s.saveEvents(ctx, domain.BondTopic, solver, []domain.Event{
		domain.BondSlashed{Solver: solver, SettlementId: settlement.Id, Coin: seized},
	})
	log.Warnf("settlement %s slashed, seized %s from %s: %s", settlement.Id, seized, solver, reason)

	return settlement, &seized, nil
}

// ConfirmAccountRegistration records the remote address the controller
// opened for a domain account.
func (s *service) ConfirmAccountRegistration(
	ctx context.Context, caller, domainName, address string,
) (*domain.AccountRegistration, error) {
	if err := s.isController(caller); err != nil {
		return nil, err
	}
	if len(s.auction.Domains) > 0 && s.auction.Domains.Find(domainName) == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDomain, domainName)
	}
	if len(address) <= 0 {
		return nil, fmt.Errorf("missing address for domain %s", domainName)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	now, _ := s.now()
	registration := domain.AccountRegistration{
		Domain:      domainName,
		Address:     address,
		ConfirmedAt: now.Unix(),
	}
	if err := s.repoManager.Accounts().Add(ctx, registration); err != nil {
		return nil, fmt.Errorf("failed to store account registration: %w", err)
	}

	s.saveEvents(ctx, domain.SettlementTopic, domainName, []domain.Event{
		domain.AccountRegistered{Registration: registration},
	})
	log.Infof("registered account %s on domain %s", address, domainName)

	return &registration, nil
}
