package services

import (
	"context"

	"github.com/dallyhq/dally_backend/internal/core/domain"
	"github.com/dallyhq/dally_backend/internal/dto"
)

// LedgerSvcFacade defines the write and read surface of the transaction
// ledger. All operations are scoped to the calling owner.
type LedgerSvcFacade interface {
	// CreateTransaction persists a transaction with its line items. When
	// items are present the total is their sum; otherwise the explicit
	// total from the request is used.
	CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, []domain.LineItem, error)

	GetTransaction(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, []domain.LineItem, error)

	ListTransactions(ctx context.Context, ownerID string, req dto.ListTransactionsRequest) ([]domain.Transaction, int64, error)

	// UpdateTransaction replaces the transaction's item set wholesale and
	// recomputes the total from the new items.
	UpdateTransaction(ctx context.Context, ownerID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, []domain.LineItem, error)

	// DeleteTransaction flips the soft-delete flag; the row is never
	// physically removed.
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) error
}
