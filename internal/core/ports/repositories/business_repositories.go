package repositories

import (
	"context"

	"github.com/dallyhq/dally_backend/internal/core/domain"
)

// BusinessRepository defines persistence operations for Businesses.
type BusinessRepository interface {
	SaveBusiness(ctx context.Context, business domain.Business) error
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)
	// FindFirstBusinessForOwner returns the owner's oldest business, or nil
	// when the owner has none (individual mode).
	FindFirstBusinessForOwner(ctx context.Context, ownerID string) (*domain.Business, error)
	ListBusinessesForOwner(ctx context.Context, ownerID string) ([]domain.Business, error)
}
