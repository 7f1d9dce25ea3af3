package services

import (
	"context"
	"time"

	"github.com/dallyhq/dally_backend/internal/core/domain"
)

// TaxSvcFacade composes the profit-and-loss calculator with the progressive
// tax calculator into a full tax estimate for a period.
type TaxSvcFacade interface {
	TaxSummary(ctx context.Context, ownerID string, start, end time.Time, mode domain.AccountingMode, vatEnabled bool) (*domain.TaxSummary, error)
}
