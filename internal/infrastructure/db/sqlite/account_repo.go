package sqlitedb

import (
	"context"
	"database/sql"

	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/infrastructure/db/sqlite/sqlc/queries"
)

type accountRepository struct {
	db      *sql.DB
	querier *queries.Queries
}

func NewAccountRepository(config ...interface{}) (domain.AccountRepository, error) {
	db, err := dbFromConfig("account", config...)
	if err != nil {
		return nil, err
	}
	return &accountRepository{
		db:      db,
		querier: queries.New(db),
	}, nil
}

func (r *accountRepository) Add(ctx context.Context, registration domain.AccountRegistration) error {
	return r.querier.UpsertAccount(ctx, queries.UpsertAccountParams{
		Domain:      registration.Domain,
		Address:     registration.Address,
		ConfirmedAt: registration.ConfirmedAt,
	})
}

func (r *accountRepository) GetAll(ctx context.Context) ([]domain.AccountRegistration, error) {
	rows, err := r.querier.SelectAllAccounts(ctx)
	if err != nil {
		return nil, err
	}
	registrations := make([]domain.AccountRegistration, 0, len(rows))
	for _, row := range rows {
		registrations = append(registrations, domain.AccountRegistration{
			Domain:      row.Domain,
			Address:     row.Address,
			ConfirmedAt: row.ConfirmedAt,
		})
	}
	return registrations, nil
}

func (r *accountRepository) Close() {
	_ = r.db.Close()
}
