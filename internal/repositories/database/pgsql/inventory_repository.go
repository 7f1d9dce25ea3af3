package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dallyhq/dally_backend/internal/apperrors"
	"github.com/dallyhq/dally_backend/internal/core/domain"
	portsrepo "github.com/dallyhq/dally_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory snapshots.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepository {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepository
var _ portsrepo.InventoryRepository = (*PgxInventoryRepository)(nil)

var FULL_INVENTORY_SELECT_QUERY = `
SELECT
	i.inventory_period_id, i.business_id, i.period_end, i.closing_value,
	i.notes, i.created_at, i.last_updated_at
FROM inventory_periods i
`

func scanInventoryPeriod(row pgx.Row) (*domain.InventoryPeriod, error) {
	var period domain.InventoryPeriod
	err := row.Scan(
		&period.InventoryPeriodID,
		&period.BusinessID,
		&period.PeriodEnd,
		&period.ClosingValue,
		&period.Notes,
		&period.CreatedAt,
		&period.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &period, nil
}

// UpsertInventoryPeriod inserts a snapshot or overwrites the one already
// recorded for the same business and period end.
func (r *PgxInventoryRepository) UpsertInventoryPeriod(ctx context.Context, period domain.InventoryPeriod) (*domain.InventoryPeriod, error) {
	query := `
		INSERT INTO inventory_periods (
			inventory_period_id, business_id, period_end, closing_value,
			notes, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (business_id, period_end) DO UPDATE
		SET closing_value = EXCLUDED.closing_value,
			notes = EXCLUDED.notes,
			last_updated_at = EXCLUDED.last_updated_at
		RETURNING inventory_period_id, business_id, period_end, closing_value,
			notes, created_at, last_updated_at;
	`
	saved, err := scanInventoryPeriod(r.Pool.QueryRow(ctx, query,
		period.InventoryPeriodID,
		period.BusinessID,
		period.PeriodEnd,
		period.ClosingValue,
		period.Notes,
		period.CreatedAt,
		period.LastUpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert inventory period for business %s: %w", period.BusinessID, err)
	}
	return saved, nil
}

func (r *PgxInventoryRepository) ListInventoryPeriods(ctx context.Context, businessID string) ([]domain.InventoryPeriod, error) {
	query := FULL_INVENTORY_SELECT_QUERY + `WHERE i.business_id = $1 ORDER BY i.period_end DESC`
	rows, err := r.Pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory periods: %w", err)
	}
	defer rows.Close()

	var periods []domain.InventoryPeriod
	for rows.Next() {
		period, err := scanInventoryPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory period row: %w", err)
		}
		periods = append(periods, *period)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory period rows: %w", err)
	}
	return periods, nil
}

func (r *PgxInventoryRepository) DeleteInventoryPeriod(ctx context.Context, businessID, inventoryPeriodID string) error {
	query := `DELETE FROM inventory_periods WHERE business_id = $1 AND inventory_period_id = $2;`
	result, err := r.Pool.Exec(ctx, query, businessID, inventoryPeriodID)
	if err != nil {
		return fmt.Errorf("failed to delete inventory period %s: %w", inventoryPeriodID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxInventoryRepository) FindClosingValueAt(ctx context.Context, businessID string, date time.Time) (*domain.InventoryPeriod, error) {
	query := FULL_INVENTORY_SELECT_QUERY + `WHERE i.business_id = $1 AND i.period_end = $2`
	period, err := scanInventoryPeriod(r.Pool.QueryRow(ctx, query, businessID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find inventory period at %s: %w", date.Format("2006-01-02"), err)
	}
	return period, nil
}

func (r *PgxInventoryRepository) FindLatestBefore(ctx context.Context, businessID string, date time.Time) (*domain.InventoryPeriod, error) {
	query := FULL_INVENTORY_SELECT_QUERY + `
		WHERE i.business_id = $1 AND i.period_end < $2
		ORDER BY i.period_end DESC
		LIMIT 1`
	period, err := scanInventoryPeriod(r.Pool.QueryRow(ctx, query, businessID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find inventory period before %s: %w", date.Format("2006-01-02"), err)
	}
	return period, nil
}
