package sqlitedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/infrastructure/db/sqlite/sqlc/queries"
)

type configRepository struct {
	db      *sql.DB
	querier *queries.Queries
}

func NewAuctionConfigRepository(config ...interface{}) (domain.AuctionConfigRepository, error) {
	db, err := dbFromConfig("auction config", config...)
	if err != nil {
		return nil, err
	}
	return &configRepository{
		db:      db,
		querier: queries.New(db),
	}, nil
}

func (r *configRepository) Get(ctx context.Context) (*domain.AuctionConfig, error) {
	row, err := r.querier.SelectAuctionConfig(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auction config: %w", err)
	}

	var domains domain.DomainAccounts
	if err := json.Unmarshal([]byte(row.Domains), &domains); err != nil {
		return nil, fmt.Errorf("failed to decode domain accounts: %w", err)
	}
	if len(domains) <= 0 {
		domains = nil
	}

	return &domain.AuctionConfig{
		BatchSize:             uint64(row.BatchSize),
		AuctionDuration:       time.Duration(row.AuctionDuration) * time.Second,
		FillingWindowDuration: time.Duration(row.FillingWindowDuration) * time.Second,
		Route: domain.Route{
			OfferDomain: row.OfferDomain,
			OfferDenom:  row.OfferDenom,
			AskDomain:   row.AskDomain,
			AskDenom:    row.AskDenom,
		},
		SolverBond: domain.Coin{
			Denom:  row.BondDenom,
			Amount: uint64(row.BondAmount),
		},
		Domains:   domains,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *configRepository) Upsert(ctx context.Context, config domain.AuctionConfig) error {
	domains := config.Domains
	if domains == nil {
		domains = domain.DomainAccounts{}
	}
	buf, err := json.Marshal(domains)
	if err != nil {
		return fmt.Errorf("failed to encode domain accounts: %w", err)
	}

	if err := r.querier.UpsertAuctionConfig(ctx, queries.UpsertAuctionConfigParams{
		BatchSize:             int64(config.BatchSize),
		AuctionDuration:       int64(config.AuctionDuration / time.Second),
		FillingWindowDuration: int64(config.FillingWindowDuration / time.Second),
		OfferDomain:           config.Route.OfferDomain,
		OfferDenom:            config.Route.OfferDenom,
		AskDomain:             config.Route.AskDomain,
		AskDenom:              config.Route.AskDenom,
		BondDenom:             config.SolverBond.Denom,
		BondAmount:            int64(config.SolverBond.Amount),
		Domains:               string(buf),
		UpdatedAt:             config.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("failed to upsert auction config: %w", err)
	}
	return nil
}

func (r *configRepository) Close() {
	_ = r.db.Close()
}
