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

// ledgerService implements the LedgerSvcFacade interface. Every mutation
// bumps the owner's cache version so derived summaries are recomputed.
type ledgerService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepository
	businessRepo    portsrepo.BusinessRepository
	cacheVersion    portssvc.CacheVersionSvcFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(transactionRepo portsrepo.TransactionRepository, businessRepo portsrepo.BusinessRepository, cacheVersion portssvc.CacheVersionSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		transactionRepo: transactionRepo,
		businessRepo:    businessRepo,
		cacheVersion:    cacheVersion,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// buildItems validates and converts request line items.
func buildItems(transactionID string, reqItems []dto.CreateLineItemRequest, now time.Time) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(reqItems))
	for i, reqItem := range reqItems {
		amount, err := domain.ParseMoney(reqItem.Amount)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("items[%d].amount", i), "invalid decimal amount")
		}
		if amount <= 0 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("items[%d].amount", i), "must be positive")
		}
		items = append(items, domain.LineItem{
			ItemID:        uuid.NewString(),
			TransactionID: transactionID,
			Description:   reqItem.Description,
			Amount:        amount,
			Category:      reqItem.Category,
			CreatedAt:     now,
		})
	}
	return items, nil
}

// resolveTotal computes the transaction total: the item sum whenever items
// exist, otherwise the explicit total from the request.
func resolveTotal(items []domain.LineItem, explicit *string) (domain.Money, error) {
	if len(items) > 0 {
		return domain.SumItems(items), nil
	}
	if explicit == nil {
		return 0, apperrors.NewValidationError("total_amount", "required when no items are given")
	}
	total, err := domain.ParseMoney(*explicit)
	if err != nil {
		return 0, apperrors.NewValidationError("total_amount", "invalid decimal amount")
	}
	if total.IsNegative() {
		return 0, apperrors.NewValidationError("total_amount", "must not be negative")
	}
	return total, nil
}

// expenseType normalises the subtype: cleared on income, kept as-is (possibly
// nil, for legacy untyped records) on expense.
func expenseType(txnType domain.TransactionType, raw *string) *domain.ExpenseSubtype {
	if txnType != domain.Expense || raw == nil {
		return nil
	}
	subtype := domain.ExpenseSubtype(*raw)
	return &subtype
}

// CreateTransaction persists a new ledger entry with its line items.
func (s *ledgerService) CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, []domain.LineItem, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, nil, apperrors.NewValidationError("date", "invalid date format, use YYYY-MM-DD")
	}

	if req.BusinessID != nil {
		business, err := s.businessRepo.FindBusinessByID(ctx, *req.BusinessID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to find business %s: %w", *req.BusinessID, err)
		}
		if business == nil {
			return nil, nil, apperrors.NewValidationError("business_id", "business does not exist")
		}
		if business.OwnerID != ownerID {
			return nil, nil, apperrors.ErrForbidden
		}
	}

	now := time.Now()
	transactionID := uuid.NewString()

	items, err := buildItems(transactionID, req.Items, now)
	if err != nil {
		return nil, nil, err
	}
	total, err := resolveTotal(items, req.TotalAmount)
	if err != nil {
		return nil, nil, err
	}

	txn := domain.Transaction{
		TransactionID: transactionID,
		OwnerID:       ownerID,
		BusinessID:    req.BusinessID,
		Type:          domain.TransactionType(req.Type),
		ExpenseType:   expenseType(domain.TransactionType(req.Type), req.ExpenseType),
		Date:          date,
		Description:   req.Description,
		TotalAmount:   total,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, items); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("owner_id", ownerID))
		return nil, nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.invalidateCache(ctx, ownerID)
	s.LogInfo(ctx, "Transaction created",
		slog.String("owner_id", ownerID),
		slog.String("transaction_id", transactionID),
		slog.String("type", req.Type))
	return &txn, items, nil
}

// GetTransaction returns a transaction with its items.
func (s *ledgerService) GetTransaction(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, []domain.LineItem, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.transactionRepo.FindItemsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load items for transaction %s: %w", transactionID, err)
	}
	return txn, items, nil
}

// ListTransactions returns a filtered, paginated slice of the owner's ledger
// along with the total match count.
func (s *ledgerService) ListTransactions(ctx context.Context, ownerID string, req dto.ListTransactionsRequest) ([]domain.Transaction, int64, error) {
	filter := portsrepo.TransactionFilter{
		OwnerID:    ownerID,
		BusinessID: req.BusinessID,
		Limit:      req.PageSize,
		Offset:     (req.Page - 1) * req.PageSize,
	}
	if req.Type != nil {
		t := domain.TransactionType(*req.Type)
		filter.Type = &t
	}
	if req.StartDate != nil {
		from, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, 0, apperrors.NewValidationError("start_date", "invalid date format, use YYYY-MM-DD")
		}
		filter.FromDate = &from
	}
	if req.EndDate != nil {
		to, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, 0, apperrors.NewValidationError("end_date", "invalid date format, use YYYY-MM-DD")
		}
		filter.ToDate = &to
	}

	transactions, err := s.transactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	total, err := s.transactionRepo.CountTransactions(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	return transactions, total, nil
}

// UpdateTransaction replaces the transaction's item set and recomputes its
// total from the new items.
func (s *ledgerService) UpdateTransaction(ctx context.Context, ownerID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, []domain.LineItem, error) {
	existing, err := s.transactionRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		return nil, nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, nil, apperrors.NewValidationError("date", "invalid date format, use YYYY-MM-DD")
	}

	now := time.Now()
	items, err := buildItems(transactionID, req.Items, now)
	if err != nil {
		return nil, nil, err
	}
	total, err := resolveTotal(items, req.TotalAmount)
	if err != nil {
		return nil, nil, err
	}

	updated := *existing
	updated.Type = domain.TransactionType(req.Type)
	updated.ExpenseType = expenseType(updated.Type, req.ExpenseType)
	updated.Date = date
	updated.Description = req.Description
	updated.TotalAmount = total
	updated.LastUpdatedAt = now

	if err := s.transactionRepo.UpdateTransaction(ctx, updated, items); err != nil {
		s.LogError(ctx, err, "Failed to update transaction",
			slog.String("owner_id", ownerID),
			slog.String("transaction_id", transactionID))
		return nil, nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.invalidateCache(ctx, ownerID)
	s.LogInfo(ctx, "Transaction updated",
		slog.String("owner_id", ownerID),
		slog.String("transaction_id", transactionID))
	return &updated, items, nil
}

// DeleteTransaction flips the soft-delete flag.
func (s *ledgerService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	if err := s.transactionRepo.MarkDeleted(ctx, ownerID, transactionID, time.Now()); err != nil {
		return err
	}
	s.invalidateCache(ctx, ownerID)
	s.LogInfo(ctx, "Transaction soft-deleted",
		slog.String("owner_id", ownerID),
		slog.String("transaction_id", transactionID))
	return nil
}

// invalidateCache bumps the owner's version counter. A failed bump is logged
// and swallowed: summaries recompute on cache miss anyway, so the worst case
// is one stale read, not a wrong ledger.
func (s *ledgerService) invalidateCache(ctx context.Context, ownerID string) {
	if s.cacheVersion == nil {
		return
	}
	if err := s.cacheVersion.Invalidate(ctx, ownerID); err != nil {
		s.LogError(ctx, err, "Failed to bump cache version", slog.String("owner_id", ownerID))
	}
}
