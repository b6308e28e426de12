package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/infrastructure/db/sqlite/sqlc/queries"
)

type bondRepository struct {
	db      *sql.DB
	querier *queries.Queries
}

func NewBondRepository(config ...interface{}) (domain.BondRepository, error) {
	db, err := dbFromConfig("bond", config...)
	if err != nil {
		return nil, err
	}
	return &bondRepository{
		db:      db,
		querier: queries.New(db),
	}, nil
}

func (r *bondRepository) Get(ctx context.Context, solver string) (*domain.Bond, error) {
	row, err := r.querier.SelectBond(ctx, solver)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bond of %s: %w", solver, err)
	}
	bond := toBond(row)
	return &bond, nil
}

func (r *bondRepository) GetAll(ctx context.Context) ([]domain.Bond, error) {
	rows, err := r.querier.SelectAllBonds(ctx)
	if err != nil {
		return nil, err
	}
	bonds := make([]domain.Bond, 0, len(rows))
	for _, row := range rows {
		bonds = append(bonds, toBond(row))
	}
	return bonds, nil
}

func (r *bondRepository) Upsert(ctx context.Context, bond domain.Bond) error {
	return r.querier.UpsertBond(ctx, queries.UpsertBondParams{
		Solver:    bond.Solver,
		Denom:     bond.Coin.Denom,
		Amount:    int64(bond.Coin.Amount),
		UpdatedAt: bond.UpdatedAt,
	})
}

func (r *bondRepository) Delete(ctx context.Context, solver string) error {
	return r.querier.DeleteBond(ctx, solver)
}

func (r *bondRepository) Close() {
	_ = r.db.Close()
}

func toBond(row queries.Bond) domain.Bond {
	return domain.Bond{
		Solver: row.Solver,
		Coin: domain.Coin{
			Denom:  row.Denom,
			Amount: uint64(row.Amount),
		},
		UpdatedAt: row.UpdatedAt,
	}
}
