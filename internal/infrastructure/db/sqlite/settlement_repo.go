package sqlitedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/infrastructure/db/sqlite/sqlc/queries"
)

type settlementRepository struct {
	db      *sql.DB
	querier *queries.Queries
}

func NewSettlementRepository(config ...interface{}) (domain.SettlementRepository, error) {
	db, err := dbFromConfig("settlement", config...)
	if err != nil {
		return nil, err
	}
	return &settlementRepository{
		db:      db,
		querier: queries.New(db),
	}, nil
}

func (r *settlementRepository) AddOrUpdateSettlement(
	ctx context.Context, settlement domain.Settlement,
) error {
	intents, err := json.Marshal(settlement.Intents)
	if err != nil {
		return fmt.Errorf("failed to encode settlement intents: %w", err)
	}

	return r.querier.UpsertSettlement(ctx, queries.UpsertSettlementParams{
		ID:          settlement.Id,
		BatchID:     settlement.BatchId,
		Intents:     string(intents),
		Solver:      settlement.Bid.Solver,
		BidAmount:   int64(settlement.Bid.Amount),
		BidHeight:   settlement.Bid.Block.Height,
		BidTime:     settlement.Bid.Block.Time,
		OfferDomain: settlement.Route.OfferDomain,
		OfferDenom:  settlement.Route.OfferDenom,
		AskDomain:   settlement.Route.AskDomain,
		AskDenom:    settlement.Route.AskDenom,
		Status:      int64(settlement.Status),
		Reason:      settlement.Reason,
		CreatedAt:   settlement.CreatedAt,
		UpdatedAt:   settlement.UpdatedAt,
	})
}

func (r *settlementRepository) GetSettlement(
	ctx context.Context, id string,
) (*domain.Settlement, error) {
	row, err := r.querier.SelectSettlement(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSettlementNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	settlement, err := toSettlement(row)
	if err != nil {
		return nil, err
	}
	return &settlement, nil
}

func (r *settlementRepository) GetSettlementsWithStatus(
	ctx context.Context, status domain.SettlementStatus,
) ([]domain.Settlement, error) {
	rows, err := r.querier.SelectSettlementsWithStatus(ctx, int64(status))
	if err != nil {
		return nil, err
	}
	return toSettlements(rows)
}

func (r *settlementRepository) GetSolverSettlements(
	ctx context.Context, solver string, status domain.SettlementStatus,
) ([]domain.Settlement, error) {
	rows, err := r.querier.SelectSolverSettlementsWithStatus(
		ctx, queries.SelectSolverSettlementsWithStatusParams{
			Solver: solver,
			Status: int64(status),
		},
	)
	if err != nil {
		return nil, err
	}
	return toSettlements(rows)
}

func (r *settlementRepository) DeleteSettlement(ctx context.Context, id string) error {
	return r.querier.DeleteSettlement(ctx, id)
}

func (r *settlementRepository) Close() {
	_ = r.db.Close()
}

func toSettlements(rows []queries.Settlement) ([]domain.Settlement, error) {
	settlements := make([]domain.Settlement, 0, len(rows))
	for _, row := range rows {
		settlement, err := toSettlement(row)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, settlement)
	}
	return settlements, nil
}

func toSettlement(row queries.Settlement) (domain.Settlement, error) {
	var intents []domain.Intent
	if err := json.Unmarshal([]byte(row.Intents), &intents); err != nil {
		return domain.Settlement{}, fmt.Errorf("failed to decode settlement intents: %w", err)
	}

	return domain.Settlement{
		Id:      row.ID,
		BatchId: row.BatchID,
		Intents: intents,
		Bid: domain.Bid{
			Solver: row.Solver,
			Amount: uint64(row.BidAmount),
			Block: domain.BlockInfo{
				Height: row.BidHeight,
				Time:   row.BidTime,
			},
		},
		Route: domain.Route{
			OfferDomain: row.OfferDomain,
			OfferDenom:  row.OfferDenom,
			AskDomain:   row.AskDomain,
			AskDenom:    row.AskDenom,
		},
		Status:    domain.SettlementStatus(row.Status),
		Reason:    row.Reason,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
