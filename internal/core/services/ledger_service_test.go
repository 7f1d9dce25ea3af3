package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dallyhq/dally_backend/internal/apperrors"
	"github.com/dallyhq/dally_backend/internal/core/domain"
	portsrepo "github.com/dallyhq/dally_backend/internal/core/ports/repositories"
	portssvc "github.com/dallyhq/dally_backend/internal/core/ports/services"
	"github.com/dallyhq/dally_backend/internal/core/services"
	"github.com/dallyhq/dally_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func strPtr(s string) *string {
	return &s
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockBusinessRepo *MockBusinessRepository
	mockCacheVersion *MockCacheVersionService
	service          portssvc.LedgerSvcFacade
	ownerID          string
	businessID       string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockBusinessRepo = new(MockBusinessRepository)
	suite.mockCacheVersion = new(MockCacheVersionService)
	suite.service = services.NewLedgerService(suite.mockTxnRepo, suite.mockBusinessRepo, suite.mockCacheVersion)
	suite.ownerID = "owner-1"
	suite.businessID = "biz-1"
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_TotalFromItems() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:        "income",
		Date:        "2026-03-15",
		Description: "Market day sales",
		Items: []dto.CreateLineItemRequest{
			{Description: "Bag of rice", Amount: "45000"},
			{Description: "Palm oil", Amount: "12500.50"},
		},
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.OwnerID == suite.ownerID &&
				txn.Type == domain.Income &&
				txn.ExpenseType == nil &&
				txn.TotalAmount == domain.Money(5_750_050)
		}),
		mock.MatchedBy(func(items []domain.LineItem) bool {
			return len(items) == 2 && items[0].Amount == domain.Money(4_500_000)
		}),
	).Return(nil).Once()
	suite.mockCacheVersion.On("Invalidate", ctx, suite.ownerID).Return(nil).Once()

	txn, items, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	// The item sum wins over any explicit total.
	suite.Equal(domain.Money(5_750_050), txn.TotalAmount)
	suite.Len(items, 2)
	suite.Equal(txn.TransactionID, items[0].TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockCacheVersion.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_ExplicitTotal() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:        "expense",
		ExpenseType: strPtr("inventory"),
		Date:        "2026-03-15",
		TotalAmount: strPtr("80000"),
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Type == domain.Expense &&
				txn.ExpenseType != nil && *txn.ExpenseType == domain.InventoryPurchase &&
				txn.TotalAmount == naira(80_000)
		}),
		mock.MatchedBy(func(items []domain.LineItem) bool { return len(items) == 0 }),
	).Return(nil).Once()
	suite.mockCacheVersion.On("Invalidate", ctx, suite.ownerID).Return(nil).Once()

	txn, items, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Equal(naira(80_000), txn.TotalAmount)
	suite.Empty(items)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockCacheVersion.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_SubtypeClearedOnIncome() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:        "income",
		ExpenseType: strPtr("operating"),
		Date:        "2026-03-15",
		TotalAmount: strPtr("500"),
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.ExpenseType == nil
		}),
		mock.Anything,
	).Return(nil).Once()
	suite.mockCacheVersion.On("Invalidate", ctx, suite.ownerID).Return(nil).Once()

	txn, _, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Nil(txn.ExpenseType)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_MissingTotalAndItems() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type: "income",
		Date: "2026-03-15",
	}

	txn, items, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.Nil(items)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_NonPositiveItemAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type: "income",
		Date: "2026-03-15",
		Items: []dto.CreateLineItemRequest{
			{Description: "Freebie", Amount: "0"},
		},
	}

	_, _, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_InvalidDate() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:        "income",
		Date:        "15-03-2026",
		TotalAmount: strPtr("100"),
	}

	_, _, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_UnknownBusiness() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		BusinessID:  &suite.businessID,
		Type:        "income",
		Date:        "2026-03-15",
		TotalAmount: strPtr("100"),
	}

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).
		Return(nil, nil).Once()

	_, _, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_ForeignBusiness() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		BusinessID:  &suite.businessID,
		Type:        "income",
		Date:        "2026-03-15",
		TotalAmount: strPtr("100"),
	}

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).
		Return(&domain.Business{BusinessID: suite.businessID, OwnerID: "someone-else"}, nil).Once()

	_, _, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *LedgerServiceTestSuite) TestGetTransaction_Success() {
	ctx := context.Background()
	transactionID := "txn-1"
	stored := &domain.Transaction{
		TransactionID: transactionID,
		OwnerID:       suite.ownerID,
		Type:          domain.Income,
		TotalAmount:   naira(1_000),
	}
	storedItems := []domain.LineItem{{ItemID: "item-1", TransactionID: transactionID, Amount: naira(1_000)}}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.ownerID, transactionID).
		Return(stored, nil).Once()
	suite.mockTxnRepo.On("FindItemsByTransactionID", ctx, transactionID).
		Return(storedItems, nil).Once()

	txn, items, err := suite.service.GetTransaction(ctx, suite.ownerID, transactionID)

	suite.Require().NoError(err)
	suite.Equal(stored, txn)
	suite.Equal(storedItems, items)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetTransaction_NotFound() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.ownerID, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	txn, items, err := suite.service.GetTransaction(ctx, suite.ownerID, "missing")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.Nil(items)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListTransactions_BuildsFilter() {
	ctx := context.Background()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	expenseType := domain.Expense
	expectedFilter := portsrepo.TransactionFilter{
		OwnerID:    suite.ownerID,
		BusinessID: &suite.businessID,
		Type:       &expenseType,
		FromDate:   &from,
		ToDate:     &to,
		Limit:      20,
		Offset:     20,
	}
	stored := []domain.Transaction{{TransactionID: "txn-1", OwnerID: suite.ownerID}}

	suite.mockTxnRepo.On("ListTransactions", ctx, expectedFilter).Return(stored, nil).Once()
	suite.mockTxnRepo.On("CountTransactions", ctx, expectedFilter).Return(int64(41), nil).Once()

	transactions, total, err := suite.service.ListTransactions(ctx, suite.ownerID, dto.ListTransactionsRequest{
		BusinessID: &suite.businessID,
		Type:       strPtr("expense"),
		StartDate:  strPtr("2026-03-01"),
		EndDate:    strPtr("2026-03-31"),
		Page:       2,
		PageSize:   20,
	})

	suite.Require().NoError(err)
	suite.Equal(stored, transactions)
	suite.Equal(int64(41), total)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListTransactions_EmptyResultIsSlice() {
	ctx := context.Background()
	expectedFilter := portsrepo.TransactionFilter{
		OwnerID: suite.ownerID,
		Limit:   20,
	}

	suite.mockTxnRepo.On("ListTransactions", ctx, expectedFilter).
		Return(([]domain.Transaction)(nil), nil).Once()
	suite.mockTxnRepo.On("CountTransactions", ctx, expectedFilter).Return(int64(0), nil).Once()

	transactions, total, err := suite.service.ListTransactions(ctx, suite.ownerID, dto.ListTransactionsRequest{
		Page:     1,
		PageSize: 20,
	})

	suite.Require().NoError(err)
	suite.NotNil(transactions)
	suite.Empty(transactions)
	suite.Equal(int64(0), total)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateTransaction_RecomputesTotal() {
	ctx := context.Background()
	transactionID := "txn-1"
	existing := &domain.Transaction{
		TransactionID: transactionID,
		OwnerID:       suite.ownerID,
		Type:          domain.Income,
		TotalAmount:   naira(1_000),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.ownerID, transactionID).
		Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.TransactionID == transactionID &&
				txn.Type == domain.Expense &&
				txn.TotalAmount == naira(350)
		}),
		mock.MatchedBy(func(items []domain.LineItem) bool { return len(items) == 2 }),
	).Return(nil).Once()
	suite.mockCacheVersion.On("Invalidate", ctx, suite.ownerID).Return(nil).Once()

	txn, items, err := suite.service.UpdateTransaction(ctx, suite.ownerID, transactionID, dto.UpdateTransactionRequest{
		Type: "expense",
		Date: "2026-03-16",
		Items: []dto.CreateLineItemRequest{
			{Description: "Transport", Amount: "200"},
			{Description: "Airtime", Amount: "150"},
		},
	})

	suite.Require().NoError(err)
	suite.Equal(naira(350), txn.TotalAmount)
	suite.Len(items, 2)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockCacheVersion.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateTransaction_NotFound() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.ownerID, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.UpdateTransaction(ctx, suite.ownerID, "missing", dto.UpdateTransactionRequest{
		Type:        "income",
		Date:        "2026-03-16",
		TotalAmount: strPtr("100"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction")
}

func (suite *LedgerServiceTestSuite) TestDeleteTransaction_Success() {
	ctx := context.Background()
	transactionID := "txn-1"

	suite.mockTxnRepo.On("MarkDeleted", ctx, suite.ownerID, transactionID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockCacheVersion.On("Invalidate", ctx, suite.ownerID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.ownerID, transactionID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockCacheVersion.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteTransaction_CacheBumpFailureSwallowed() {
	ctx := context.Background()
	transactionID := "txn-1"

	suite.mockTxnRepo.On("MarkDeleted", ctx, suite.ownerID, transactionID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockCacheVersion.On("Invalidate", ctx, suite.ownerID).
		Return(errors.New("version table unavailable")).Once()

	err := suite.service.DeleteTransaction(ctx, suite.ownerID, transactionID)

	// The ledger write succeeded; a failed version bump must not surface.
	suite.Require().NoError(err)
	suite.mockCacheVersion.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()

	suite.mockTxnRepo.On("MarkDeleted", ctx, suite.ownerID, "missing", mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, suite.ownerID, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockCacheVersion.AssertNotCalled(suite.T(), "Invalidate")
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
