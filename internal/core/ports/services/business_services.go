package services

import (
	"context"

	"github.com/dallyhq/dally_backend/internal/core/domain"
	"github.com/dallyhq/dally_backend/internal/dto"
)

// BusinessSvcFacade manages businesses and resolves the accounting mode for
// summary and tax requests.
type BusinessSvcFacade interface {
	CreateBusiness(ctx context.Context, ownerID string, req dto.CreateBusinessRequest) (*domain.Business, error)
	GetBusiness(ctx context.Context, ownerID, businessID string) (*domain.Business, error)
	ListBusinesses(ctx context.Context, ownerID string) ([]domain.Business, error)

	// ResolveAccountingMode turns an optional business filter into an
	// explicit mode: the named business (ownership enforced), the owner's
	// first business when no filter is given, or individual mode when the
	// owner has none.
	ResolveAccountingMode(ctx context.Context, ownerID string, businessID *string) (domain.AccountingMode, error)
}
