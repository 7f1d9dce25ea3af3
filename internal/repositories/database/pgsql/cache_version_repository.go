package pgsql

import (
	"context"
	"errors"
	"fmt"

	portsrepo "github.com/dallyhq/dally_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCacheVersionRepository struct {
	BaseRepository
}

// newPgxCacheVersionRepository creates a new repository for per-owner cache
// version counters.
func newPgxCacheVersionRepository(pool *pgxpool.Pool) portsrepo.CacheVersionRepository {
	return &PgxCacheVersionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCacheVersionRepository implements portsrepo.CacheVersionRepository
var _ portsrepo.CacheVersionRepository = (*PgxCacheVersionRepository)(nil)

// GetVersion reads the owner's counter. An owner with no row yet is at the
// implicit initial version 1; the row is only created on the first bump.
func (r *PgxCacheVersionRepository) GetVersion(ctx context.Context, ownerID string) (int64, error) {
	query := `SELECT version FROM cache_versions WHERE owner_id = $1;`
	var version int64
	err := r.Pool.QueryRow(ctx, query, ownerID).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 1, nil
		}
		return 0, fmt.Errorf("failed to read cache version for owner %s: %w", ownerID, err)
	}
	return version, nil
}

// BumpVersion atomically increments the counter, creating the row at version
// 2 for an owner still on the implicit initial version. The single upsert
// statement keeps concurrent bumps race-free.
func (r *PgxCacheVersionRepository) BumpVersion(ctx context.Context, ownerID string) error {
	query := `
		INSERT INTO cache_versions (owner_id, version)
		VALUES ($1, 2)
		ON CONFLICT (owner_id) DO UPDATE SET version = cache_versions.version + 1;
	`
	if _, err := r.Pool.Exec(ctx, query, ownerID); err != nil {
		return fmt.Errorf("failed to bump cache version for owner %s: %w", ownerID, err)
	}
	return nil
}
