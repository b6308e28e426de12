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

type batchRepository struct {
	db      *sql.DB
	querier *queries.Queries
}

func NewBatchRepository(config ...interface{}) (domain.BatchRepository, error) {
	db, err := dbFromConfig("batch", config...)
	if err != nil {
		return nil, err
	}
	return &batchRepository{
		db:      db,
		querier: queries.New(db),
	}, nil
}

func (r *batchRepository) AddOrUpdateBatch(ctx context.Context, batch domain.Batch) error {
	intents, err := json.Marshal(batch.Intents)
	if err != nil {
		return fmt.Errorf("failed to encode batch intents: %w", err)
	}

	params := queries.UpsertBatchParams{
		ID:           batch.Id,
		Intents:      string(intents),
		StartTime:    batch.StartTime,
		EndTime:      batch.EndTime,
		Closed:       batch.Closed,
		ClosedAt:     batch.ClosedAt,
		SettlementID: batch.SettlementId,
		Version:      int64(batch.Version),
	}
	if bid := batch.CurrentBid; bid != nil {
		params.HasBid = true
		params.BidSolver = bid.Solver
		params.BidAmount = int64(bid.Amount)
		params.BidHeight = bid.Block.Height
		params.BidTime = bid.Block.Time
	}

	txBody := func(querierWithTx *queries.Queries) error {
		if err := querierWithTx.UpsertBatch(ctx, params); err != nil {
			return fmt.Errorf("failed to upsert batch: %w", err)
		}
		return nil
	}
	return execTx(ctx, r.db, txBody)
}

func (r *batchRepository) GetBatchWithId(ctx context.Context, id string) (*domain.Batch, error) {
	row, err := r.querier.SelectBatch(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var intents []domain.Intent
	if err := json.Unmarshal([]byte(row.Intents), &intents); err != nil {
		return nil, fmt.Errorf("failed to decode batch intents: %w", err)
	}

	batch := &domain.Batch{
		Id:           row.ID,
		Intents:      intents,
		StartTime:    row.StartTime,
		EndTime:      row.EndTime,
		Closed:       row.Closed,
		ClosedAt:     row.ClosedAt,
		SettlementId: row.SettlementID,
		Version:      uint(row.Version),
	}
	if row.HasBid {
		batch.CurrentBid = &domain.Bid{
			Solver: row.BidSolver,
			Amount: uint64(row.BidAmount),
			Block: domain.BlockInfo{
				Height: row.BidHeight,
				Time:   row.BidTime,
			},
		}
	}
	return batch, nil
}

func (r *batchRepository) GetBatchIds(
	ctx context.Context, startedAfter, startedBefore int64,
) ([]string, error) {
	if startedAfter == 0 && startedBefore == 0 {
		return r.querier.SelectBatchIds(ctx)
	}

	if startedBefore <= 0 {
		startedBefore = int64(^uint64(0) >> 1)
	}
	return r.querier.SelectBatchIdsInRange(ctx, queries.SelectBatchIdsInRangeParams{
		StartTime:   startedAfter,
		StartTime_2: startedBefore,
	})
}

func (r *batchRepository) Close() {
	_ = r.db.Close()
}
