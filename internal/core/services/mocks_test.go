package services_test

import (
	"context"
	"time"

	"github.com/dallyhq/dally_backend/internal/core/domain"
	portsrepo "github.com/dallyhq/dally_backend/internal/core/ports/repositories"
	"github.com/dallyhq/dally_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, items []domain.LineItem) error {
	args := m.Called(ctx, txn, items)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CountTransactions(ctx context.Context, filter portsrepo.TransactionFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, items []domain.LineItem) error {
	args := m.Called(ctx, txn, items)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkDeleted(ctx context.Context, ownerID, transactionID string, deletedAt time.Time) error {
	args := m.Called(ctx, ownerID, transactionID, deletedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) SumByType(ctx context.Context, filter portsrepo.TransactionFilter) (domain.TypeTotals, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.TypeTotals), args.Error(1)
}

func (m *MockTransactionRepository) SumExpensesBySubtype(ctx context.Context, filter portsrepo.TransactionFilter) (domain.ExpenseSplit, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.ExpenseSplit), args.Error(1)
}

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) UpsertInventoryPeriod(ctx context.Context, period domain.InventoryPeriod) (*domain.InventoryPeriod, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryPeriod), args.Error(1)
}

func (m *MockInventoryRepository) ListInventoryPeriods(ctx context.Context, businessID string) ([]domain.InventoryPeriod, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryPeriod), args.Error(1)
}

func (m *MockInventoryRepository) DeleteInventoryPeriod(ctx context.Context, businessID, inventoryPeriodID string) error {
	args := m.Called(ctx, businessID, inventoryPeriodID)
	return args.Error(0)
}

func (m *MockInventoryRepository) FindClosingValueAt(ctx context.Context, businessID string, date time.Time) (*domain.InventoryPeriod, error) {
	args := m.Called(ctx, businessID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryPeriod), args.Error(1)
}

func (m *MockInventoryRepository) FindLatestBefore(ctx context.Context, businessID string, date time.Time) (*domain.InventoryPeriod, error) {
	args := m.Called(ctx, businessID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryPeriod), args.Error(1)
}

// --- Mock BusinessRepository ---
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindFirstBusinessForOwner(ctx context.Context, ownerID string) (*domain.Business, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessRepository) ListBusinessesForOwner(ctx context.Context, ownerID string) ([]domain.Business, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Business), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock CacheVersionRepository ---
type MockCacheVersionRepository struct {
	mock.Mock
}

func (m *MockCacheVersionRepository) GetVersion(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheVersionRepository) BumpVersion(ctx context.Context, ownerID string) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

// --- Mock InventorySvcFacade ---
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) UpsertInventoryPeriod(ctx context.Context, ownerID, businessID string, req dto.UpsertInventoryPeriodRequest) (*domain.InventoryPeriod, error) {
	args := m.Called(ctx, ownerID, businessID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryPeriod), args.Error(1)
}

func (m *MockInventoryService) ListInventoryPeriods(ctx context.Context, ownerID, businessID string) ([]domain.InventoryPeriod, error) {
	args := m.Called(ctx, ownerID, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryPeriod), args.Error(1)
}

func (m *MockInventoryService) DeleteInventoryPeriod(ctx context.Context, ownerID, businessID, inventoryPeriodID string) error {
	args := m.Called(ctx, ownerID, businessID, inventoryPeriodID)
	return args.Error(0)
}

func (m *MockInventoryService) ClosingValueAt(ctx context.Context, businessID string, date time.Time) (domain.Money, error) {
	args := m.Called(ctx, businessID, date)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockInventoryService) OpeningValueBefore(ctx context.Context, businessID string, date time.Time) (domain.Money, error) {
	args := m.Called(ctx, businessID, date)
	return args.Get(0).(domain.Money), args.Error(1)
}

// --- Mock SummarySvcFacade ---
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) DailySummary(ctx context.Context, ownerID string, date time.Time, businessID *string) (*domain.DailySummary, error) {
	args := m.Called(ctx, ownerID, date, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySummary), args.Error(1)
}

func (m *MockSummaryService) RangeSummary(ctx context.Context, ownerID string, start, end time.Time, businessID *string) (*domain.RangeSummary, error) {
	args := m.Called(ctx, ownerID, start, end, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RangeSummary), args.Error(1)
}

func (m *MockSummaryService) ProfitAndLoss(ctx context.Context, ownerID string, start, end time.Time, mode domain.AccountingMode) (*domain.ProfitAndLoss, error) {
	args := m.Called(ctx, ownerID, start, end, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitAndLoss), args.Error(1)
}

func (m *MockSummaryService) DashboardActivity(ctx context.Context, ownerID string, today time.Time) (*domain.DashboardActivity, error) {
	args := m.Called(ctx, ownerID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardActivity), args.Error(1)
}

// --- Mock CacheVersionSvcFacade ---
type MockCacheVersionService struct {
	mock.Mock
}

func (m *MockCacheVersionService) Version(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheVersionService) Invalidate(ctx context.Context, ownerID string) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}
