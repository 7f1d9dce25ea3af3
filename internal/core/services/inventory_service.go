package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dallyhq/dally_backend/internal/apperrors"
	"github.com/dallyhq/dally_backend/internal/core/domain"
	portsrepo "github.com/dallyhq/dally_backend/internal/core/ports/repositories"
	portssvc "github.com/dallyhq/dally_backend/internal/core/ports/services"
	"github.com/dallyhq/dally_backend/internal/dto"
	"github.com/google/uuid"
)

// inventoryService implements the InventorySvcFacade interface.
type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepository
	businessRepo  portsrepo.BusinessRepository
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepository, businessRepo portsrepo.BusinessRepository) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		businessRepo:  businessRepo,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// authorizeBusiness verifies the business exists and belongs to the owner.
func (s *inventoryService) authorizeBusiness(ctx context.Context, ownerID, businessID string) error {
	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return fmt.Errorf("failed to find business %s: %w", businessID, err)
	}
	if business == nil {
		return apperrors.ErrNotFound
	}
	if business.OwnerID != ownerID {
		return apperrors.ErrForbidden
	}
	return nil
}

// UpsertInventoryPeriod records or corrects the closing stock value for a
// (business, period_end) pair.
func (s *inventoryService) UpsertInventoryPeriod(ctx context.Context, ownerID, businessID string, req dto.UpsertInventoryPeriodRequest) (*domain.InventoryPeriod, error) {
	if err := s.authorizeBusiness(ctx, ownerID, businessID); err != nil {
		return nil, err
	}

	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return nil, apperrors.NewValidationError("period_end", "invalid date format, use YYYY-MM-DD")
	}
	closingValue, err := domain.ParseMoney(req.ClosingValue)
	if err != nil {
		return nil, apperrors.NewValidationError("closing_value", "invalid decimal amount")
	}
	if closingValue.IsNegative() {
		return nil, apperrors.NewValidationError("closing_value", "must not be negative")
	}

	now := time.Now()
	period := domain.InventoryPeriod{
		InventoryPeriodID: uuid.NewString(),
		BusinessID:        businessID,
		PeriodEnd:         periodEnd,
		ClosingValue:      closingValue,
		Notes:             req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.inventoryRepo.UpsertInventoryPeriod(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert inventory period",
			slog.String("business_id", businessID),
			slog.String("period_end", req.PeriodEnd))
		return nil, fmt.Errorf("failed to upsert inventory period: %w", err)
	}

	s.LogInfo(ctx, "Inventory period recorded",
		slog.String("business_id", businessID),
		slog.String("period_end", req.PeriodEnd))
	return saved, nil
}

// ListInventoryPeriods returns the business's snapshots, newest first.
func (s *inventoryService) ListInventoryPeriods(ctx context.Context, ownerID, businessID string) ([]domain.InventoryPeriod, error) {
	if err := s.authorizeBusiness(ctx, ownerID, businessID); err != nil {
		return nil, err
	}
	periods, err := s.inventoryRepo.ListInventoryPeriods(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory periods: %w", err)
	}
	if periods == nil {
		periods = []domain.InventoryPeriod{}
	}
	return periods, nil
}

// DeleteInventoryPeriod removes a snapshot.
func (s *inventoryService) DeleteInventoryPeriod(ctx context.Context, ownerID, businessID, inventoryPeriodID string) error {
	if err := s.authorizeBusiness(ctx, ownerID, businessID); err != nil {
		return err
	}
	if err := s.inventoryRepo.DeleteInventoryPeriod(ctx, businessID, inventoryPeriodID); err != nil {
		return fmt.Errorf("failed to delete inventory period: %w", err)
	}
	return nil
}

// ClosingValueAt returns the closing stock recorded for exactly this date.
// No record means no stock, not "unknown": the user is expected to record a
// closing snapshot precisely at each period boundary they query.
func (s *inventoryService) ClosingValueAt(ctx context.Context, businessID string, date time.Time) (domain.Money, error) {
	period, err := s.inventoryRepo.FindClosingValueAt(ctx, businessID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve closing value at %s: %w", date.Format("2006-01-02"), err)
	}
	if period == nil {
		return 0, nil
	}
	return period.ClosingValue, nil
}

// OpeningValueBefore returns the closing value of the most recent snapshot
// with period_end strictly before the given date, or zero when none exists.
func (s *inventoryService) OpeningValueBefore(ctx context.Context, businessID string, date time.Time) (domain.Money, error) {
	period, err := s.inventoryRepo.FindLatestBefore(ctx, businessID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve opening value before %s: %w", date.Format("2006-01-02"), err)
	}
	if period == nil {
		return 0, nil
	}
	return period.ClosingValue, nil
}
