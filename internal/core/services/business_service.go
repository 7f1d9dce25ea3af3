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

// businessService implements the BusinessSvcFacade interface.
type businessService struct {
	BaseService
	businessRepo portsrepo.BusinessRepository
}

// NewBusinessService creates a new business service.
func NewBusinessService(businessRepo portsrepo.BusinessRepository) portssvc.BusinessSvcFacade {
	return &businessService{businessRepo: businessRepo}
}

var _ portssvc.BusinessSvcFacade = (*businessService)(nil)

// CreateBusiness registers a trading entity for the owner.
func (s *businessService) CreateBusiness(ctx context.Context, ownerID string, req dto.CreateBusinessRequest) (*domain.Business, error) {
	now := time.Now()
	business := domain.Business{
		BusinessID:  uuid.NewString(),
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.businessRepo.SaveBusiness(ctx, business); err != nil {
		s.LogError(ctx, err, "Failed to create business", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to create business: %w", err)
	}

	s.LogInfo(ctx, "Business created",
		slog.String("owner_id", ownerID),
		slog.String("business_id", business.BusinessID))
	return &business, nil
}

// GetBusiness returns the business if it belongs to the owner.
func (s *businessService) GetBusiness(ctx context.Context, ownerID, businessID string) (*domain.Business, error) {
	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to find business %s: %w", businessID, err)
	}
	if business == nil {
		return nil, apperrors.ErrNotFound
	}
	if business.OwnerID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return business, nil
}

// ListBusinesses returns the owner's businesses, oldest first.
func (s *businessService) ListBusinesses(ctx context.Context, ownerID string) ([]domain.Business, error) {
	businesses, err := s.businessRepo.ListBusinessesForOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	if businesses == nil {
		businesses = []domain.Business{}
	}
	return businesses, nil
}

// ResolveAccountingMode turns an optional business filter into an explicit
// accounting mode. With a filter, ownership is enforced and business mode is
// returned. Without one, the owner's first business (if any) selects
// business mode; otherwise individual mode applies.
func (s *businessService) ResolveAccountingMode(ctx context.Context, ownerID string, businessID *string) (domain.AccountingMode, error) {
	if businessID != nil {
		business, err := s.GetBusiness(ctx, ownerID, *businessID)
		if err != nil {
			return domain.AccountingMode{}, err
		}
		return domain.BusinessMode(business.BusinessID), nil
	}

	business, err := s.businessRepo.FindFirstBusinessForOwner(ctx, ownerID)
	if err != nil {
		return domain.AccountingMode{}, fmt.Errorf("failed to resolve business for owner: %w", err)
	}
	if business == nil {
		return domain.IndividualMode(), nil
	}
	return domain.BusinessMode(business.BusinessID), nil
}
