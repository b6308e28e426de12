package badgerdb

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const batchStoreDir = "batches"

type batchRepository struct {
	store *badgerhold.Store
}

func NewBatchRepository(config ...interface{}) (domain.BatchRepository, error) {
	store, err := openStore(batchStoreDir, config...)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch store: %s", err)
	}
	return &batchRepository{store}, nil
}

func (r *batchRepository) AddOrUpdateBatch(ctx context.Context, batch domain.Batch) error {
	return r.addOrUpdateBatch(ctx, batch)
}

func (r *batchRepository) GetBatchWithId(ctx context.Context, id string) (*domain.Batch, error) {
	query := badgerhold.Where("Id").Eq(id)
	batches, err := r.findBatch(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(batches) <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, id)
	}
	return &batches[0], nil
}

func (r *batchRepository) GetBatchIds(
	ctx context.Context, startedAfter, startedBefore int64,
) ([]string, error) {
	query := badgerhold.Where("StartTime").Ge(int64(0))

	if startedAfter > 0 {
		query = query.And("StartTime").Gt(startedAfter)
	}
	if startedBefore > 0 {
		query = query.And("StartTime").Lt(startedBefore)
	}

	batches, err := r.findBatch(ctx, query.SortBy("StartTime"))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(batches))
	for _, batch := range batches {
		ids = append(ids, batch.Id)
	}
	return ids, nil
}

func (r *batchRepository) Close() {
	r.store.Close()
}

func (r *batchRepository) findBatch(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Batch, error) {
	var batches []domain.Batch
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxFind(tx, &batches, query)
	} else {
		err = r.store.Find(&batches, query)
	}

	return batches, err
}

func (r *batchRepository) addOrUpdateBatch(
	ctx context.Context, batch domain.Batch,
) (err error) {
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxUpsert(tx, batch.Id, batch)
	} else {
		err = upsertWithRetry(r.store, batch.Id, batch)
	}
	return
}
