package services

import (
	"context"
	"time"

	"github.com/dallyhq/dally_backend/internal/core/domain"
)

// SummarySvcFacade defines the derived-summary calculators. Every call is a
// pure function of the current ledger contents; nothing is persisted and
// concurrent calls need no coordination.
type SummarySvcFacade interface {
	// DailySummary aggregates income and expense for a single date.
	DailySummary(ctx context.Context, ownerID string, date time.Time, businessID *string) (*domain.DailySummary, error)

	// RangeSummary aggregates over an inclusive [start, end] range.
	// start > end is a validation error naming the field combination.
	RangeSummary(ctx context.Context, ownerID string, start, end time.Time, businessID *string) (*domain.RangeSummary, error)

	// ProfitAndLoss produces a P&L statement for the range. The accounting
	// mode is an explicit input, resolved once by the caller.
	ProfitAndLoss(ctx context.Context, ownerID string, start, end time.Time, mode domain.AccountingMode) (*domain.ProfitAndLoss, error)

	// DashboardActivity aggregates today / last 7 days / last 30 days
	// relative to the given reference date.
	DashboardActivity(ctx context.Context, ownerID string, today time.Time) (*domain.DashboardActivity, error)
}
