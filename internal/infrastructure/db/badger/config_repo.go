package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const (
	configStoreDir = "config"
	configKey      = "auction_config"
)

// gob cannot encode the domain accounts interface slice, they're kept as json.
type auctionConfigDTO struct {
	BatchSize             uint64
	AuctionDuration       int64
	FillingWindowDuration int64
	Route                 domain.Route
	SolverBond            domain.Coin
	Domains               []byte
	UpdatedAt             int64
}

type configRepository struct {
	store *badgerhold.Store
}

func NewAuctionConfigRepository(config ...interface{}) (domain.AuctionConfigRepository, error) {
	store, err := openStore(configStoreDir, config...)
	if err != nil {
		return nil, fmt.Errorf("failed to open auction config store: %s", err)
	}
	return &configRepository{store}, nil
}

func (r *configRepository) Get(ctx context.Context) (*domain.AuctionConfig, error) {
	var dto auctionConfigDTO
	err := r.store.Get(configKey, &dto)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auction config: %w", err)
	}

	var domains domain.DomainAccounts
	if len(dto.Domains) > 0 {
		if err := json.Unmarshal(dto.Domains, &domains); err != nil {
			return nil, fmt.Errorf("failed to decode domain accounts: %w", err)
		}
	}

	return &domain.AuctionConfig{
		BatchSize:             dto.BatchSize,
		AuctionDuration:       time.Duration(dto.AuctionDuration) * time.Second,
		FillingWindowDuration: time.Duration(dto.FillingWindowDuration) * time.Second,
		Route:                 dto.Route,
		SolverBond:            dto.SolverBond,
		Domains:               domains,
		UpdatedAt:             dto.UpdatedAt,
	}, nil
}

func (r *configRepository) Upsert(ctx context.Context, config domain.AuctionConfig) error {
	var domains []byte
	if len(config.Domains) > 0 {
		buf, err := json.Marshal(config.Domains)
		if err != nil {
			return fmt.Errorf("failed to encode domain accounts: %w", err)
		}
		domains = buf
	}

	dto := auctionConfigDTO{
		BatchSize:             config.BatchSize,
		AuctionDuration:       int64(config.AuctionDuration / time.Second),
		FillingWindowDuration: int64(config.FillingWindowDuration / time.Second),
		Route:                 config.Route,
		SolverBond:            config.SolverBond,
		Domains:               domains,
		UpdatedAt:             config.UpdatedAt,
	}
	return upsertWithRetry(r.store, configKey, &dto)
}

func (r *configRepository) Close() {
	r.store.Close()
}
