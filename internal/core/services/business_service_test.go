package services_test

import (
	"context"
	"testing"

	"github.com/dallyhq/dally_backend/internal/apperrors"
	"github.com/dallyhq/dally_backend/internal/core/domain"
	portssvc "github.com/dallyhq/dally_backend/internal/core/ports/services"
	"github.com/dallyhq/dally_backend/internal/core/services"
	"github.com/dallyhq/dally_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type BusinessServiceTestSuite struct {
	suite.Suite
	mockBusinessRepo *MockBusinessRepository
	service          portssvc.BusinessSvcFacade
	ownerID          string
	businessID       string
}

func (suite *BusinessServiceTestSuite) SetupTest() {
	suite.mockBusinessRepo = new(MockBusinessRepository)
	suite.service = services.NewBusinessService(suite.mockBusinessRepo)
	suite.ownerID = "owner-1"
	suite.businessID = "biz-1"
}

func (suite *BusinessServiceTestSuite) TestCreateBusiness_Success() {
	ctx := context.Background()

	suite.mockBusinessRepo.On("SaveBusiness", ctx,
		mock.MatchedBy(func(b domain.Business) bool {
			return b.OwnerID == suite.ownerID && b.Name == "Mama Nkechi Provisions" && b.BusinessID != ""
		}),
	).Return(nil).Once()

	business, err := suite.service.CreateBusiness(ctx, suite.ownerID, dto.CreateBusinessRequest{
		Name:        "Mama Nkechi Provisions",
		Description: "Provisions shop at Balogun market",
	})

	suite.Require().NoError(err)
	suite.Equal(suite.ownerID, business.OwnerID)
	suite.NotEmpty(business.BusinessID)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

func (suite *BusinessServiceTestSuite) TestGetBusiness_NotFound() {
	ctx := context.Background()

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).
		Return(nil, nil).Once()

	business, err := suite.service.GetBusiness(ctx, suite.ownerID, suite.businessID)

	suite.Require().Error(err)
	suite.Nil(business)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

func (suite *BusinessServiceTestSuite) TestGetBusiness_Forbidden() {
	ctx := context.Background()

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).
		Return(&domain.Business{BusinessID: suite.businessID, OwnerID: "someone-else"}, nil).Once()

	business, err := suite.service.GetBusiness(ctx, suite.ownerID, suite.businessID)

	suite.Require().Error(err)
	suite.Nil(business)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

func (suite *BusinessServiceTestSuite) TestListBusinesses_EmptyIsSlice() {
	ctx := context.Background()

	suite.mockBusinessRepo.On("ListBusinessesForOwner", ctx, suite.ownerID).
		Return(([]domain.Business)(nil), nil).Once()

	businesses, err := suite.service.ListBusinesses(ctx, suite.ownerID)

	suite.Require().NoError(err)
	suite.NotNil(businesses)
	suite.Empty(businesses)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

func (suite *BusinessServiceTestSuite) TestResolveAccountingMode_ExplicitBusiness() {
	ctx := context.Background()

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).
		Return(&domain.Business{BusinessID: suite.businessID, OwnerID: suite.ownerID}, nil).Once()

	mode, err := suite.service.ResolveAccountingMode(ctx, suite.ownerID, &suite.businessID)

	suite.Require().NoError(err)
	suite.True(mode.IsBusiness())
	suite.Equal(suite.businessID, *mode.BusinessID)
	suite.mockBusinessRepo.AssertNotCalled(suite.T(), "FindFirstBusinessForOwner")
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

func (suite *BusinessServiceTestSuite) TestResolveAccountingMode_ExplicitForeignBusiness() {
	ctx := context.Background()

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).
		Return(&domain.Business{BusinessID: suite.businessID, OwnerID: "someone-else"}, nil).Once()

	_, err := suite.service.ResolveAccountingMode(ctx, suite.ownerID, &suite.businessID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

func (suite *BusinessServiceTestSuite) TestResolveAccountingMode_DefaultsToFirstBusiness() {
	ctx := context.Background()

	suite.mockBusinessRepo.On("FindFirstBusinessForOwner", ctx, suite.ownerID).
		Return(&domain.Business{BusinessID: suite.businessID, OwnerID: suite.ownerID}, nil).Once()

	mode, err := suite.service.ResolveAccountingMode(ctx, suite.ownerID, nil)

	suite.Require().NoError(err)
	suite.True(mode.IsBusiness())
	suite.Equal(suite.businessID, *mode.BusinessID)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

func (suite *BusinessServiceTestSuite) TestResolveAccountingMode_NoBusinessMeansIndividual() {
	ctx := context.Background()

	suite.mockBusinessRepo.On("FindFirstBusinessForOwner", ctx, suite.ownerID).
		Return(nil, nil).Once()

	mode, err := suite.service.ResolveAccountingMode(ctx, suite.ownerID, nil)

	suite.Require().NoError(err)
	suite.False(mode.IsBusiness())
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

func TestBusinessServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BusinessServiceTestSuite))
}
