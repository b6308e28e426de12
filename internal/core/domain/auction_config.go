package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// AuctionConfig holds the parameters of one auction instance. It is stored
// on first start and never mutated afterwards.
type AuctionConfig struct {
	BatchSize             uint64
	AuctionDuration       time.Duration
	FillingWindowDuration time.Duration
	Route                 Route
	SolverBond            Coin
	Domains               DomainAccounts
	UpdatedAt             int64
}

func NewAuctionConfig(
	batchSize uint64, auctionDuration, fillingWindowDuration time.Duration,
	route Route, solverBond Coin, domains DomainAccounts,
) (*AuctionConfig, error) {
	cfg := &AuctionConfig{
		BatchSize:             batchSize,
		AuctionDuration:       auctionDuration,
		FillingWindowDuration: fillingWindowDuration,
		Route:                 route,
		SolverBond:            solverBond,
		Domains:               domains,
		UpdatedAt:             time.Now().Unix(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c AuctionConfig) Validate() error {
	if c.BatchSize == 0 {
		return fmt.Errorf("%w: batch size must be greater than zero", ErrInvalidConfig)
	}
	if c.AuctionDuration < time.Second {
		return fmt.Errorf("%w: auction duration must be at least 1s", ErrInvalidConfig)
	}
	if c.FillingWindowDuration < 0 {
		return fmt.Errorf("%w: filling window duration must not be negative", ErrInvalidConfig)
	}
	if err := c.Route.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if len(c.SolverBond.Denom) <= 0 {
		return fmt.Errorf("%w: missing solver bond denom", ErrInvalidConfig)
	}
	if len(c.Domains) <= 0 {
		return nil
	}

	for _, account := range c.Domains {
		if err := ValidateDomainAccount(account); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
		}
	}
	for _, domain := range []string{c.Route.OfferDomain, c.Route.AskDomain} {
		if c.Domains.Find(domain) == nil {
			return fmt.Errorf("%w: no account configured for domain %s", ErrInvalidConfig, domain)
		}
	}
	return nil
}

// Differs reports whether the two configs disagree on any auction parameter.
func (c AuctionConfig) Differs(other AuctionConfig) bool {
	if c.BatchSize != other.BatchSize ||
		c.AuctionDuration != other.AuctionDuration ||
		c.FillingWindowDuration != other.FillingWindowDuration ||
		c.Route != other.Route ||
		c.SolverBond != other.SolverBond ||
		len(c.Domains) != len(other.Domains) {
		return true
	}

	a, errA := json.Marshal(c.Domains)
	b, errB := json.Marshal(other.Domains)
	return errA != nil || errB != nil || string(a) != string(b)
}
