package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendwise/spendwise-backend/internal/apperrors"
	"github.com/spendwise/spendwise-backend/internal/core/domain"
	portssvc "github.com/spendwise/spendwise-backend/internal/core/ports/services"
	"github.com/spendwise/spendwise-backend/internal/core/services"
	"github.com/spendwise/spendwise-backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsBalanceToZero() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:        "Checking",
		AccountType: domain.Checking,
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Balance.IsZero() && acc.IsActive && acc.UserID == suite.userID
	})).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(created.AccountID)
	suite.True(created.Balance.IsZero())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_OpeningBalance() {
	ctx := context.Background()
	opening := decimal.NewFromInt(1000)
	req := dto.CreateAccountRequest{
		Name:        "Checking",
		AccountType: domain.Checking,
		Balance:     &opening,
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Balance.Equal(opening)
	})).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(created.Balance.Equal(opening))
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_OtherUserObscured() {
	ctx := context.Background()
	foreign := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    uuid.NewString(),
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, foreign.AccountID).Return(foreign, nil).Once()

	_, err := suite.service.GetAccountByID(ctx, foreign.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_FiltersForeignAccounts() {
	ctx := context.Background()
	mine := domain.Account{AccountID: uuid.NewString(), UserID: suite.userID}
	foreign := domain.Account{AccountID: uuid.NewString(), UserID: uuid.NewString()}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(map[string]domain.Account{
		mine.AccountID:    mine,
		foreign.AccountID: foreign,
	}, nil).Once()

	accounts, err := suite.service.GetAccountsByIDs(ctx, []string{mine.AccountID, foreign.AccountID}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(accounts, 1)
	suite.Contains(accounts, mine.AccountID)
	suite.NotContains(accounts, foreign.AccountID)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialFields() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Name:        "Old name",
		AccountType: domain.Checking,
		Balance:     decimal.NewFromInt(500),
		IsActive:    true,
	}
	newName := "New name"
	req := dto.UpdateAccountRequest{Name: &newName}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == newName && acc.Balance.Equal(decimal.NewFromInt(500))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, existing.AccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFieldsNoWrite() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    suite.userID,
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(existing, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, existing.AccountID, dto.UpdateAccountRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    suite.userID,
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, existing.AccountID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, existing.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestTotalBalance_SubtractsCreditCards() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), UserID: suite.userID, AccountType: domain.Checking, Balance: decimal.NewFromInt(1000)},
		{AccountID: uuid.NewString(), UserID: suite.userID, AccountType: domain.Savings, Balance: decimal.NewFromInt(5000)},
		{AccountID: uuid.NewString(), UserID: suite.userID, AccountType: domain.CreditCard, Balance: decimal.NewFromInt(300)},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.userID).Return(accounts, nil).Once()

	total, err := suite.service.TotalBalance(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.NewFromInt(5700)), "want 5700, got %s", total)
}

func (suite *AccountServiceTestSuite) TestTotalBalance_EmptyIsZero() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.userID).Return([]domain.Account{}, nil).Once()

	total, err := suite.service.TotalBalance(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.True(total.IsZero())
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
