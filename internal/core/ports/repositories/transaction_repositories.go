package repositories

import (
	"context"
	"time"

	"github.com/dallyhq/dally_backend/internal/core/domain"
)

// TransactionFilter narrows ledger queries. OwnerID is mandatory: every
// query is scoped to exactly one owner's ledger. Soft-deleted transactions
// are always excluded.
type TransactionFilter struct {
	OwnerID    string
	BusinessID *string
	Type       *domain.TransactionType
	Date       *time.Time // Exact calendar date match
	FromDate   *time.Time // Inclusive
	ToDate     *time.Time // Inclusive
	Limit      int
	Offset     int
}

// TransactionRepository defines the persistence operations for Transactions
// and their LineItems. Saving a transaction with items implies saving both
// atomically; replacing items deletes and recreates the full set.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction, items []domain.LineItem) error
	FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error)
	FindItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.LineItem, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	CountTransactions(ctx context.Context, filter TransactionFilter) (int64, error)
	UpdateTransaction(ctx context.Context, txn domain.Transaction, items []domain.LineItem) error
	MarkDeleted(ctx context.Context, ownerID, transactionID string, deletedAt time.Time) error

	// SumByType aggregates total_amount split by transaction type over the
	// filtered set. An empty set yields zero totals, never an error.
	SumByType(ctx context.Context, filter TransactionFilter) (domain.TypeTotals, error)

	// SumExpensesBySubtype aggregates expense totals split by expense
	// subtype (operating / inventory / untyped) over the filtered set.
	SumExpensesBySubtype(ctx context.Context, filter TransactionFilter) (domain.ExpenseSplit, error)
}
