package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dallyhq/dally_backend/internal/apperrors"
	"github.com/dallyhq/dally_backend/internal/core/domain"
	portssvc "github.com/dallyhq/dally_backend/internal/core/ports/services"
	"github.com/dallyhq/dally_backend/internal/core/services"
	"github.com/dallyhq/dally_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type InventoryServiceTestSuite struct {
	suite.Suite
	mockInventoryRepo *MockInventoryRepository
	mockBusinessRepo  *MockBusinessRepository
	service           portssvc.InventorySvcFacade
	ownerID           string
	businessID        string
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockBusinessRepo = new(MockBusinessRepository)
	suite.service = services.NewInventoryService(suite.mockInventoryRepo, suite.mockBusinessRepo)
	suite.ownerID = "owner-1"
	suite.businessID = "biz-1"
}

func (suite *InventoryServiceTestSuite) expectOwnedBusiness() {
	suite.mockBusinessRepo.On("FindBusinessByID", mock.Anything, suite.businessID).
		Return(&domain.Business{BusinessID: suite.businessID, OwnerID: suite.ownerID}, nil).Once()
}

func (suite *InventoryServiceTestSuite) TestUpsertInventoryPeriod_Success() {
	ctx := context.Background()
	suite.expectOwnedBusiness()
	req := dto.UpsertInventoryPeriodRequest{
		PeriodEnd:    "2026-03-31",
		ClosingValue: "150000",
		Notes:        "End of quarter count",
	}
	periodEnd := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockInventoryRepo.On("UpsertInventoryPeriod", ctx,
		mock.MatchedBy(func(p domain.InventoryPeriod) bool {
			return p.BusinessID == suite.businessID &&
				p.PeriodEnd.Equal(periodEnd) &&
				p.ClosingValue == naira(150_000) &&
				p.Notes == "End of quarter count"
		}),
	).Return(&domain.InventoryPeriod{
		InventoryPeriodID: "inv-1",
		BusinessID:        suite.businessID,
		PeriodEnd:         periodEnd,
		ClosingValue:      naira(150_000),
	}, nil).Once()

	saved, err := suite.service.UpsertInventoryPeriod(ctx, suite.ownerID, suite.businessID, req)

	suite.Require().NoError(err)
	suite.Equal("inv-1", saved.InventoryPeriodID)
	suite.Equal(naira(150_000), saved.ClosingValue)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestUpsertInventoryPeriod_InvalidDate() {
	ctx := context.Background()
	suite.expectOwnedBusiness()

	_, err := suite.service.UpsertInventoryPeriod(ctx, suite.ownerID, suite.businessID, dto.UpsertInventoryPeriodRequest{
		PeriodEnd:    "31/03/2026",
		ClosingValue: "150000",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "UpsertInventoryPeriod")
}

func (suite *InventoryServiceTestSuite) TestUpsertInventoryPeriod_NegativeValue() {
	ctx := context.Background()
	suite.expectOwnedBusiness()

	_, err := suite.service.UpsertInventoryPeriod(ctx, suite.ownerID, suite.businessID, dto.UpsertInventoryPeriodRequest{
		PeriodEnd:    "2026-03-31",
		ClosingValue: "-500",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "UpsertInventoryPeriod")
}

func (suite *InventoryServiceTestSuite) TestUpsertInventoryPeriod_UnknownBusiness() {
	ctx := context.Background()

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).
		Return(nil, nil).Once()

	_, err := suite.service.UpsertInventoryPeriod(ctx, suite.ownerID, suite.businessID, dto.UpsertInventoryPeriodRequest{
		PeriodEnd:    "2026-03-31",
		ClosingValue: "150000",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "UpsertInventoryPeriod")
}

func (suite *InventoryServiceTestSuite) TestUpsertInventoryPeriod_ForeignBusiness() {
	ctx := context.Background()

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).
		Return(&domain.Business{BusinessID: suite.businessID, OwnerID: "someone-else"}, nil).Once()

	_, err := suite.service.UpsertInventoryPeriod(ctx, suite.ownerID, suite.businessID, dto.UpsertInventoryPeriodRequest{
		PeriodEnd:    "2026-03-31",
		ClosingValue: "150000",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "UpsertInventoryPeriod")
}

func (suite *InventoryServiceTestSuite) TestListInventoryPeriods_EmptyIsSlice() {
	ctx := context.Background()
	suite.expectOwnedBusiness()

	suite.mockInventoryRepo.On("ListInventoryPeriods", ctx, suite.businessID).
		Return(([]domain.InventoryPeriod)(nil), nil).Once()

	periods, err := suite.service.ListInventoryPeriods(ctx, suite.ownerID, suite.businessID)

	suite.Require().NoError(err)
	suite.NotNil(periods)
	suite.Empty(periods)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestDeleteInventoryPeriod_NotFound() {
	ctx := context.Background()
	suite.expectOwnedBusiness()

	suite.mockInventoryRepo.On("DeleteInventoryPeriod", ctx, suite.businessID, "missing").
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteInventoryPeriod(ctx, suite.ownerID, suite.businessID, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestClosingValueAt() {
	ctx := context.Background()
	date := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockInventoryRepo.On("FindClosingValueAt", ctx, suite.businessID, date).
		Return(&domain.InventoryPeriod{ClosingValue: naira(90_000)}, nil).Once()

	value, err := suite.service.ClosingValueAt(ctx, suite.businessID, date)

	suite.Require().NoError(err)
	suite.Equal(naira(90_000), value)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestClosingValueAt_NoSnapshotMeansZero() {
	ctx := context.Background()
	date := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockInventoryRepo.On("FindClosingValueAt", ctx, suite.businessID, date).
		Return(nil, nil).Once()

	value, err := suite.service.ClosingValueAt(ctx, suite.businessID, date)

	suite.Require().NoError(err)
	suite.Equal(domain.Money(0), value)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestOpeningValueBefore() {
	ctx := context.Background()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockInventoryRepo.On("FindLatestBefore", ctx, suite.businessID, date).
		Return(&domain.InventoryPeriod{
			PeriodEnd:    time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			ClosingValue: naira(40_000),
		}, nil).Once()

	value, err := suite.service.OpeningValueBefore(ctx, suite.businessID, date)

	suite.Require().NoError(err)
	suite.Equal(naira(40_000), value)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestOpeningValueBefore_NoHistoryMeansZero() {
	ctx := context.Background()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockInventoryRepo.On("FindLatestBefore", ctx, suite.businessID, date).
		Return(nil, nil).Once()

	value, err := suite.service.OpeningValueBefore(ctx, suite.businessID, date)

	suite.Require().NoError(err)
	suite.Equal(domain.Money(0), value)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
