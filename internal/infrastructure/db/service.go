package db

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/core/ports"
	badgerdb "github.com/orbital-network/auction/internal/infrastructure/db/badger"
	sqlitedb "github.com/orbital-network/auction/internal/infrastructure/db/sqlite"
	watermilldb "github.com/orbital-network/auction/internal/infrastructure/db/watermill"
)

var (
	eventStoreTypes = map[string]func(...interface{}) (domain.EventRepository, error){
		"watermill": watermilldb.NewEventRepository,
	}
	configStoreTypes = map[string]func(...interface{}) (domain.AuctionConfigRepository, error){
		"badger": badgerdb.NewAuctionConfigRepository,
		"sqlite": sqlitedb.NewAuctionConfigRepository,
	}
	bondStoreTypes = map[string]func(...interface{}) (domain.BondRepository, error){
		"badger": badgerdb.NewBondRepository,
		"sqlite": sqlitedb.NewBondRepository,
	}
	batchStoreTypes = map[string]func(...interface{}) (domain.BatchRepository, error){
		"badger": badgerdb.NewBatchRepository,
		"sqlite": sqlitedb.NewBatchRepository,
	}
	settlementStoreTypes = map[string]func(...interface{}) (domain.SettlementRepository, error){
		"badger": badgerdb.NewSettlementRepository,
		"sqlite": sqlitedb.NewSettlementRepository,
	}
	accountStoreTypes = map[string]func(...interface{}) (domain.AccountRepository, error){
		"badger": badgerdb.NewAccountRepository,
		"sqlite": sqlitedb.NewAccountRepository,
	}
)

const (
	sqliteDbFile = "sqlite.db"
)

type ServiceConfig struct {
	EventStoreType string
	DataStoreType  string

	EventStoreConfig []interface{}
	DataStoreConfig  []interface{}
}

type service struct {
	eventStore      domain.EventRepository
	configStore     domain.AuctionConfigRepository
	bondStore       domain.BondRepository
	batchStore      domain.BatchRepository
	settlementStore domain.SettlementRepository
	accountStore    domain.AccountRepository
}

func NewService(config ServiceConfig) (ports.RepoManager, error) {
	eventStoreFactory, ok := eventStoreTypes[config.EventStoreType]
	if !ok {
		return nil, fmt.Errorf("invalid event store type: %s", config.EventStoreType)
	}
	configStoreFactory, ok := configStoreTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("invalid data store type: %s", config.DataStoreType)
	}
	bondStoreFactory := bondStoreTypes[config.DataStoreType]
	batchStoreFactory := batchStoreTypes[config.DataStoreType]
	settlementStoreFactory := settlementStoreTypes[config.DataStoreType]
	accountStoreFactory := accountStoreTypes[config.DataStoreType]

	dataStoreConfig := config.DataStoreConfig
	if config.DataStoreType == "sqlite" {
		db, err := openSqlite(config.DataStoreConfig)
		if err != nil {
			return nil, err
		}
		dataStoreConfig = []interface{}{db}
	}

	eventStore, err := eventStoreFactory(config.EventStoreConfig...)
	if err != nil {
		return nil, fmt.Errorf("failed to create event store: %w", err)
	}

	configStore, err := configStoreFactory(dataStoreConfig...)
	if err != nil {
		return nil, fmt.Errorf("failed to create auction config store: %w", err)
	}

	bondStore, err := bondStoreFactory(dataStoreConfig...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bond store: %w", err)
	}

	batchStore, err := batchStoreFactory(dataStoreConfig...)
	if err != nil {
		return nil, fmt.Errorf("failed to create batch store: %w", err)
	}

	settlementStore, err := settlementStoreFactory(dataStoreConfig...)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement store: %w", err)
	}

	accountStore, err := accountStoreFactory(dataStoreConfig...)
	if err != nil {
		return nil, fmt.Errorf("failed to create account store: %w", err)
	}

	return &service{
		eventStore:      eventStore,
		configStore:     configStore,
		bondStore:       bondStore,
		batchStore:      batchStore,
		settlementStore: settlementStore,
		accountStore:    accountStore,
	}, nil
}

func (s *service) Events() domain.EventRepository {
	return s.eventStore
}

func (s *service) AuctionConfig() domain.AuctionConfigRepository {
	return s.configStore
}

func (s *service) Bonds() domain.BondRepository {
	return s.bondStore
}

func (s *service) Batches() domain.BatchRepository {
	return s.batchStore
}

func (s *service) Settlements() domain.SettlementRepository {
	return s.settlementStore
}

func (s *service) Accounts() domain.AccountRepository {
	return s.accountStore
}

func (s *service) Close() {
	s.eventStore.Close()
	s.configStore.Close()
	s.bondStore.Close()
	s.batchStore.Close()
	s.settlementStore.Close()
	s.accountStore.Close()
}

// openSqlite migrates the database in the configured directory and returns
// the connection shared by all sqlite repositories.
func openSqlite(config []interface{}) (interface{}, error) {
	if len(config) != 1 {
		return nil, errors.New("invalid config")
	}

	dbDir, ok := config[0].(string)
	if !ok {
		return nil, errors.New("invalid config")
	}

	dbPath := filepath.Join(dbDir, sqliteDbFile)
	if err := sqlitedb.MigrateUp(dbPath); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite: %w", err)
	}

	db, err := sqlitedb.OpenDb(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	return db, nil
}
