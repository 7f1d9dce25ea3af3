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
)

// summaryService implements the SummarySvcFacade interface. Every calculator
// recomputes from the current ledger on each call; no result is stored.
type summaryService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepository
	inventory       portssvc.InventorySvcFacade
	untypedPolicy   domain.UntypedExpensePolicy
}

// SummaryServiceOption is a functional option for configuring the summary service.
type SummaryServiceOption func(*summaryService)

// WithUntypedExpensePolicy overrides the treatment of legacy expenses that
// carry no subtype.
func WithUntypedExpensePolicy(policy domain.UntypedExpensePolicy) SummaryServiceOption {
	return func(s *summaryService) {
		s.untypedPolicy = policy
	}
}

// NewSummaryService creates a new summary service with the provided options.
func NewSummaryService(transactionRepo portsrepo.TransactionRepository, inventory portssvc.InventorySvcFacade, options ...SummaryServiceOption) portssvc.SummarySvcFacade {
	svc := &summaryService{
		transactionRepo: transactionRepo,
		inventory:       inventory,
		untypedPolicy:   domain.UntypedAsOperating,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SummarySvcFacade = (*summaryService)(nil)

// DailySummary calculates income, expense and net cash for a single date.
func (s *summaryService) DailySummary(ctx context.Context, ownerID string, date time.Time, businessID *string) (*domain.DailySummary, error) {
	totals, err := s.transactionRepo.SumByType(ctx, portsrepo.TransactionFilter{
		OwnerID:    ownerID,
		BusinessID: businessID,
		Date:       &date,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate daily summary",
			slog.String("owner_id", ownerID),
			slog.String("date", date.Format("2006-01-02")))
		return nil, fmt.Errorf("failed to aggregate daily summary: %w", err)
	}

	return &domain.DailySummary{
		Date:         date,
		Currency:     domain.CurrencyNGN,
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		NetCash:      totals.Income - totals.Expense,
	}, nil
}

// RangeSummary calculates income, expense and net profit over an inclusive
// [start, end] range.
func (s *summaryService) RangeSummary(ctx context.Context, ownerID string, start, end time.Time, businessID *string) (*domain.RangeSummary, error) {
	if start.After(end) {
		return nil, apperrors.NewValidationError("start_date/end_date", "start_date must be before or equal to end_date")
	}

	totals, err := s.transactionRepo.SumByType(ctx, portsrepo.TransactionFilter{
		OwnerID:    ownerID,
		BusinessID: businessID,
		FromDate:   &start,
		ToDate:     &end,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate range summary",
			slog.String("owner_id", ownerID),
			slog.String("start_date", start.Format("2006-01-02")),
			slog.String("end_date", end.Format("2006-01-02")))
		return nil, fmt.Errorf("failed to aggregate range summary: %w", err)
	}

	return &domain.RangeSummary{
		StartDate:    start,
		EndDate:      end,
		Currency:     domain.CurrencyNGN,
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		NetProfit:    totals.Income - totals.Expense,
	}, nil
}

// ProfitAndLoss produces a P&L statement for the range. In individual mode
// COGS is zero and every expense is operating. In business mode expenses
// split by subtype, inventory purchases feed COGS, and opening/closing stock
// come from the inventory snapshots at the range boundaries.
func (s *summaryService) ProfitAndLoss(ctx context.Context, ownerID string, start, end time.Time, mode domain.AccountingMode) (*domain.ProfitAndLoss, error) {
	if start.After(end) {
		return nil, apperrors.NewValidationError("start_date/end_date", "start_date must be before or equal to end_date")
	}

	filter := portsrepo.TransactionFilter{
		OwnerID:    ownerID,
		BusinessID: mode.BusinessID,
		FromDate:   &start,
		ToDate:     &end,
	}

	totals, err := s.transactionRepo.SumByType(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate sales for profit and loss",
			slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to aggregate profit and loss data: %w", err)
	}

	pl := &domain.ProfitAndLoss{
		StartDate:  start,
		EndDate:    end,
		Currency:   domain.CurrencyNGN,
		TotalSales: totals.Income,
	}

	if !mode.IsBusiness() {
		// Individual mode: no inventory accounting, every expense is
		// operating regardless of subtype.
		pl.OperatingExpenses = totals.Expense
		pl.GrossProfit = pl.TotalSales
		pl.NetProfit = pl.TotalSales - totals.Expense
		return pl, nil
	}

	split, err := s.transactionRepo.SumExpensesBySubtype(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate expense split for profit and loss",
			slog.String("owner_id", ownerID),
			slog.String("business_id", *mode.BusinessID))
		return nil, fmt.Errorf("failed to aggregate expense split: %w", err)
	}

	operating := split.Operating
	if s.untypedPolicy == domain.UntypedAsOperating {
		// Records created before expense sub-typing existed carry no
		// subtype; they count as operating.
		operating += split.Untyped
	}

	opening, err := s.inventory.OpeningValueBefore(ctx, *mode.BusinessID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve opening stock: %w", err)
	}
	closing, err := s.inventory.ClosingValueAt(ctx, *mode.BusinessID, end)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve closing stock: %w", err)
	}

	rawCOGS := opening + split.Inventory - closing

	pl.OpeningStock = opening
	pl.InventoryPurchases = split.Inventory
	pl.ClosingStock = closing
	pl.COGSRaw = rawCOGS
	// A negative COGS is economically meaningless (usually a mis-recorded
	// snapshot); it is clamped to zero but the raw value stays visible.
	pl.COGS = rawCOGS.ClampNonNegative()
	pl.OperatingExpenses = operating
	pl.GrossProfit = pl.TotalSales - pl.COGS
	pl.NetProfit = pl.GrossProfit - operating

	s.LogDebug(ctx, "Profit and loss computed",
		slog.String("owner_id", ownerID),
		slog.String("business_id", *mode.BusinessID),
		slog.Int64("cogs_raw", int64(rawCOGS)),
		slog.Int64("net_profit", int64(pl.NetProfit)))
	return pl, nil
}

// DashboardActivity aggregates today, the trailing 7 days and the trailing
// 30 days relative to the reference date.
func (s *summaryService) DashboardActivity(ctx context.Context, ownerID string, today time.Time) (*domain.DashboardActivity, error) {
	dayTotals, err := s.transactionRepo.SumByType(ctx, portsrepo.TransactionFilter{
		OwnerID: ownerID,
		Date:    &today,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate today's activity: %w", err)
	}

	weekStart := today.AddDate(0, 0, -7)
	weekTotals, err := s.transactionRepo.SumByType(ctx, portsrepo.TransactionFilter{
		OwnerID:  ownerID,
		FromDate: &weekStart,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate weekly activity: %w", err)
	}

	monthStart := today.AddDate(0, 0, -30)
	monthTotals, err := s.transactionRepo.SumByType(ctx, portsrepo.TransactionFilter{
		OwnerID:  ownerID,
		FromDate: &monthStart,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly activity: %w", err)
	}

	return &domain.DashboardActivity{
		Today: dayTotals,
		Week:  weekTotals,
		Month: monthTotals,
	}, nil
}
