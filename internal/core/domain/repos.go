package domain

import "context"

type AuctionConfigRepository interface {
	Get(ctx context.Context) (*AuctionConfig, error)
	Upsert(ctx context.Context, config AuctionConfig) error
	Close()
}

type BondRepository interface {
	Get(ctx context.Context, solver string) (*Bond, error)
	GetAll(ctx context.Context) ([]Bond, error)
	Upsert(ctx context.Context, bond Bond) error
	Delete(ctx context.Context, solver string) error
	Close()
}

type BatchRepository interface {
	AddOrUpdateBatch(ctx context.Context, batch Batch) error
	GetBatchWithId(ctx context.Context, id string) (*Batch, error)
	GetBatchIds(ctx context.Context, startedAfter, startedBefore int64) ([]string, error)
	Close()
}

type SettlementRepository interface {
	AddOrUpdateSettlement(ctx context.Context, settlement Settlement) error
	GetSettlement(ctx context.Context, id string) (*Settlement, error)
	GetSettlementsWithStatus(ctx context.Context, status SettlementStatus) ([]Settlement, error)
	GetSolverSettlements(ctx context.Context, solver string, status SettlementStatus) ([]Settlement, error)
	DeleteSettlement(ctx context.Context, id string) error
	Close()
}

type AccountRepository interface {
	Add(ctx context.Context, registration AccountRegistration) error
	GetAll(ctx context.Context) ([]AccountRegistration, error)
	Close()
}
