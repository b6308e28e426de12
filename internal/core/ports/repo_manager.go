package ports

import "github.com/orbital-network/auction/internal/core/domain"

type RepoManager interface {
	Events() domain.EventRepository
	AuctionConfig() domain.AuctionConfigRepository
	Bonds() domain.BondRepository
	Batches() domain.BatchRepository
	Settlements() domain.SettlementRepository
	Accounts() domain.AccountRepository
	Close()
}
