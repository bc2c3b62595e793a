package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/apperrors"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portssvc "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountService
	ctx      context.Context
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.ctx = context.Background()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{
		Code:        "1001",
		Name:        "Cash",
		AccountType: domain.Asset,
	}
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	account, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal("1001", account.Code)
	suite.True(account.IsActive, "new accounts start active")
	suite.Equal("user-1", account.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownTypeRejected() {
	req := dto.CreateAccountRequest{
		Code:        "9001",
		Name:        "Suspense",
		AccountType: domain.AccountType("CONTRA"),
	}

	account, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialFields() {
	existing := &domain.Account{
		AccountID:   "acc-1",
		Code:        "1001",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.mockRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(existing, nil)
	suite.mockRepo.On("UpdateAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	newName := "Cash at Till"
	account, err := suite.service.UpdateAccount(suite.ctx, "acc-1", dto.UpdateAccountRequest{Name: &newName}, "user-2")

	suite.Require().NoError(err)
	suite.Equal("Cash at Till", account.Name)
	suite.True(account.IsActive, "untouched fields keep their value")
	suite.Equal("user-2", account.LastUpdatedBy)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Deactivate() {
	existing := &domain.Account{AccountID: "acc-1", AccountType: domain.Asset, IsActive: true}
	suite.mockRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(existing, nil)
	suite.mockRepo.On("UpdateAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	inactive := false
	account, err := suite.service.UpdateAccount(suite.ctx, "acc-1", dto.UpdateAccountRequest{IsActive: &inactive}, "user-2")

	suite.Require().NoError(err)
	suite.False(account.IsActive)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	suite.mockRepo.On("FindAccountByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound)

	account, err := suite.service.GetAccountByID(suite.ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(account)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
