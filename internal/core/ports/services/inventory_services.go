package services

import (
	"context"
	"time"

	"github.com/dallyhq/dally_backend/internal/core/domain"
	"github.com/dallyhq/dally_backend/internal/dto"
)

// InventorySvcFacade manages inventory period snapshots and resolves stock
// values at period boundaries for COGS accounting.
type InventorySvcFacade interface {
	UpsertInventoryPeriod(ctx context.Context, ownerID, businessID string, req dto.UpsertInventoryPeriodRequest) (*domain.InventoryPeriod, error)
	ListInventoryPeriods(ctx context.Context, ownerID, businessID string) ([]domain.InventoryPeriod, error)
	DeleteInventoryPeriod(ctx context.Context, ownerID, businessID, inventoryPeriodID string) error

	// ClosingValueAt is an exact-date lookup: the closing stock recorded
	// for precisely this date, or zero when no snapshot exists there.
	ClosingValueAt(ctx context.Context, businessID string, date time.Time) (domain.Money, error)

	// OpeningValueBefore is the closing value of the most recent snapshot
	// strictly before the given date, or zero when none exists. Snapshots
	// are sparse, so the opening side falls back rather than requiring an
	// exact match.
	OpeningValueBefore(ctx context.Context, businessID string, date time.Time) (domain.Money, error)
}
