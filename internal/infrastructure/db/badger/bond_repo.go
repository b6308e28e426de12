package badgerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const bondStoreDir = "bonds"

type bondRepository struct {
	store *badgerhold.Store
}

func NewBondRepository(config ...interface{}) (domain.BondRepository, error) {
	store, err := openStore(bondStoreDir, config...)
	if err != nil {
		return nil, fmt.Errorf("failed to open bond store: %s", err)
	}
	return &bondRepository{store}, nil
}

func (r *bondRepository) Get(ctx context.Context, solver string) (*domain.Bond, error) {
	var bond domain.Bond
	err := r.store.Get(solver, &bond)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bond of %s: %w", solver, err)
	}
	return &bond, nil
}

func (r *bondRepository) GetAll(ctx context.Context) ([]domain.Bond, error) {
	var bonds []domain.Bond
	if err := r.store.Find(&bonds, nil); err != nil {
		return nil, err
	}
	return bonds, nil
}

func (r *bondRepository) Upsert(ctx context.Context, bond domain.Bond) error {
	return upsertWithRetry(r.store, bond.Solver, bond)
}

func (r *bondRepository) Delete(ctx context.Context, solver string) error {
	err := r.store.Delete(solver, domain.Bond{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil
	}
	return err
}

func (r *bondRepository) Close() {
	r.store.Close()
}
