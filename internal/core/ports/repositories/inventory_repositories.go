package repositories

import (
	"context"
	"time"

	"github.com/dallyhq/dally_backend/internal/core/domain"
)

// InventoryRepository defines persistence operations for InventoryPeriods.
// The engine reads snapshots; the management API writes them.
type InventoryRepository interface {
	UpsertInventoryPeriod(ctx context.Context, period domain.InventoryPeriod) (*domain.InventoryPeriod, error)
	ListInventoryPeriods(ctx context.Context, businessID string) ([]domain.InventoryPeriod, error)
	DeleteInventoryPeriod(ctx context.Context, businessID, inventoryPeriodID string) error

	// FindClosingValueAt returns the period recorded for exactly this
	// business/date pair, or nil when none exists.
	FindClosingValueAt(ctx context.Context, businessID string, date time.Time) (*domain.InventoryPeriod, error)

	// FindLatestBefore returns the most recent period with period_end
	// strictly before the given date, or nil when none exists.
	FindLatestBefore(ctx context.Context, businessID string, date time.Time) (*domain.InventoryPeriod, error)
}
