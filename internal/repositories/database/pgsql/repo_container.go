package pgsql

import (
	portsrepo "github.com/dallyhq/dally_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		InventoryRepo:    newPgxInventoryRepository(dbPool),
		BusinessRepo:     newPgxBusinessRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		CacheVersionRepo: newPgxCacheVersionRepository(dbPool),
	}
}
