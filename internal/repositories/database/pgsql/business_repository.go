package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dallyhq/dally_backend/internal/apperrors"
	"github.com/dallyhq/dally_backend/internal/core/domain"
	portsrepo "github.com/dallyhq/dally_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBusinessRepository struct {
	BaseRepository
}

// newPgxBusinessRepository creates a new repository for business data.
func newPgxBusinessRepository(pool *pgxpool.Pool) portsrepo.BusinessRepository {
	return &PgxBusinessRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBusinessRepository implements portsrepo.BusinessRepository
var _ portsrepo.BusinessRepository = (*PgxBusinessRepository)(nil)

var FULL_BUSINESS_SELECT_QUERY = `
SELECT
	b.business_id, b.owner_id, b.name, b.description,
	b.created_at, b.last_updated_at
FROM businesses b
`

func scanBusiness(row pgx.Row) (*domain.Business, error) {
	var business domain.Business
	err := row.Scan(
		&business.BusinessID,
		&business.OwnerID,
		&business.Name,
		&business.Description,
		&business.CreatedAt,
		&business.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *PgxBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	query := `
		INSERT INTO businesses (business_id, owner_id, name, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		business.BusinessID,
		business.OwnerID,
		business.Name,
		business.Description,
		business.CreatedAt,
		business.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save business %s: %w", business.BusinessID, err)
	}
	return nil
}

func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := FULL_BUSINESS_SELECT_QUERY + `WHERE b.business_id = $1`
	business, err := scanBusiness(r.Pool.QueryRow(ctx, query, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find business %s: %w", businessID, err)
	}
	return business, nil
}

func (r *PgxBusinessRepository) FindFirstBusinessForOwner(ctx context.Context, ownerID string) (*domain.Business, error) {
	query := FULL_BUSINESS_SELECT_QUERY + `WHERE b.owner_id = $1 ORDER BY b.created_at ASC LIMIT 1`
	business, err := scanBusiness(r.Pool.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find business for owner %s: %w", ownerID, err)
	}
	return business, nil
}

func (r *PgxBusinessRepository) ListBusinessesForOwner(ctx context.Context, ownerID string) ([]domain.Business, error) {
	query := FULL_BUSINESS_SELECT_QUERY + `WHERE b.owner_id = $1 ORDER BY b.created_at ASC`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer rows.Close()

	var businesses []domain.Business
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}
		businesses = append(businesses, *business)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating business rows: %w", err)
	}
	return businesses, nil
}
