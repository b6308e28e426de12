package badgerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const settlementStoreDir = "settlements"

type settlementRepository struct {
	store *badgerhold.Store
}

func NewSettlementRepository(config ...interface{}) (domain.SettlementRepository, error) {
	store, err := openStore(settlementStoreDir, config...)
	if err != nil {
		return nil, fmt.Errorf("failed to open settlement store: %s", err)
	}
	return &settlementRepository{store}, nil
}

func (r *settlementRepository) AddOrUpdateSettlement(
	ctx context.Context, settlement domain.Settlement,
) error {
	return upsertWithRetry(r.store, settlement.Id, settlement)
}

func (r *settlementRepository) GetSettlement(
	ctx context.Context, id string,
) (*domain.Settlement, error) {
	var settlement domain.Settlement
	err := r.store.Get(id, &settlement)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSettlementNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &settlement, nil
}

func (r *settlementRepository) GetSettlementsWithStatus(
	ctx context.Context, status domain.SettlementStatus,
) ([]domain.Settlement, error) {
	query := badgerhold.Where("Status").Eq(status).SortBy("CreatedAt")
	return r.findSettlements(query)
}

func (r *settlementRepository) GetSolverSettlements(
	ctx context.Context, solver string, status domain.SettlementStatus,
) ([]domain.Settlement, error) {
	query := badgerhold.Where("Bid.Solver").Eq(solver).
		And("Status").Eq(status).SortBy("CreatedAt")
	return r.findSettlements(query)
}

func (r *settlementRepository) DeleteSettlement(ctx context.Context, id string) error {
	err := r.store.Delete(id, domain.Settlement{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil
	}
	return err
}

func (r *settlementRepository) Close() {
	r.store.Close()
}

func (r *settlementRepository) findSettlements(
	query *badgerhold.Query,
) ([]domain.Settlement, error) {
	var settlements []domain.Settlement
	if err := r.store.Find(&settlements, query); err != nil {
		return nil, err
	}
	return settlements, nil
}
