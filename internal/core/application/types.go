package application

import (
	"context"
	"time"

	"github.com/orbital-network/auction/internal/core/domain"
)

type Service interface {
	Start() error
	Stop()

	// Controller operations
	AddOrder(ctx context.Context, caller string, order Order) (*domain.Intent, error)
	ConfirmSettlement(ctx context.Context, caller, settlementId string) (*domain.Settlement, error)
	SlashSettlement(
		ctx context.Context, caller, settlementId, reason string,
	) (*domain.Settlement, *domain.Coin, error)
	ConfirmAccountRegistration(
		ctx context.Context, caller, domainName, address string,
	) (*domain.AccountRegistration, error)

	// Solver operations
	PostBond(ctx context.Context, solver string, coin domain.Coin) (*domain.Bond, error)
	WithdrawBond(ctx context.Context, solver string) (*domain.Coin, error)
	Bid(ctx context.Context, solver string, amount uint64) (*domain.Bid, error)

	Tick(ctx context.Context, nowOverride *time.Time) (*TickResult, error)

	// Queries
	GetInfo(ctx context.Context) (*ServiceInfo, error)
	GetAuctionConfig(ctx context.Context) (*domain.AuctionConfig, error)
	GetActiveBatch(ctx context.Context) (*BatchInfo, error)
	GetOrderbook(ctx context.Context, from, limit int64) (*Orderbook, error)
	GetPostedBond(ctx context.Context, solver string) (*domain.Bond, error)
	GetBatch(ctx context.Context, id string) (*domain.Batch, error)
	GetSettlement(ctx context.Context, id string) (*domain.Settlement, error)
	GetAccountRegistrations(ctx context.Context) ([]domain.AccountRegistration, error)
}

type Config struct {
	// Controller is the only identity allowed to add orders and deliver the
	// asynchronous confirmations.
	Controller string
	// AllowTimeOverride lets Tick callers move the clock, meant for tests
	// and local setups.
	AllowTimeOverride bool
	// KeeperInterval enables the periodic Tick when greater than zero.
	KeeperInterval time.Duration
}

// Order is a user request submitted by the controller. Empty domains
// default to the auction route.
type Order struct {
	User        string
	Amount      uint64
	OfferDomain string
	AskDomain   string
}

type TickResult struct {
	Closed     *domain.Batch
	Settlement *domain.Settlement
	Opened     *domain.Batch
}

type BatchInfo struct {
	Batch *domain.Batch
	Phase domain.Phase
	// Total is the sum of the batch intents.
	Total uint64
}

type Orderbook struct {
	Intents []domain.Intent
	Total   int64
}

type ServiceInfo struct {
	Route                 domain.Route
	SolverBond            domain.Coin
	BatchSize             uint64
	AuctionDuration       time.Duration
	FillingWindowDuration time.Duration
	Phase                 domain.Phase
	ActiveBatchId         string
	QueueLength           int64
	Block                 domain.BlockInfo
}
