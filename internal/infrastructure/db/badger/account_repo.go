package badgerdb

import (
	"context"
	"fmt"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const accountStoreDir = "accounts"

type accountRepository struct {
	store *badgerhold.Store
}

func NewAccountRepository(config ...interface{}) (domain.AccountRepository, error) {
	store, err := openStore(accountStoreDir, config...)
	if err != nil {
		return nil, fmt.Errorf("failed to open account store: %s", err)
	}
	return &accountRepository{store}, nil
}

// Add registers the account address of a domain, replacing any previous one.
func (r *accountRepository) Add(ctx context.Context, registration domain.AccountRegistration) error {
	return upsertWithRetry(r.store, registration.Domain, registration)
}

func (r *accountRepository) GetAll(ctx context.Context) ([]domain.AccountRegistration, error) {
	var registrations []domain.AccountRegistration
	if err := r.store.Find(&registrations, badgerhold.Where("Domain").Ne("").SortBy("Domain")); err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *accountRepository) Close() {
	r.store.Close()
}
