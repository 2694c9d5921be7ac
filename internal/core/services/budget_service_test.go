package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendwise/spendwise-backend/internal/apperrors"
	"github.com/spendwise/spendwise-backend/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise-backend/internal/core/ports/repositories"
	portssvc "github.com/spendwise/spendwise-backend/internal/core/ports/services"
	"github.com/spendwise/spendwise-backend/internal/core/services"
	"github.com/spendwise/spendwise-backend/internal/dto"
)

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, userID string, active bool) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeactivateBudget(ctx context.Context, budgetID string, now time.Time) error {
	args := m.Called(ctx, budgetID, now)
	return args.Error(0)
}

func (m *MockBudgetRepository) SumExpensesByCategory(ctx context.Context, userID string, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, categoryID, from, to)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo   *MockBudgetRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.BudgetSvcFacade
	userID           string
	groceries        domain.Category
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.mockCategoryRepo)

	suite.userID = uuid.NewString()
	suite.groceries = domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Groceries",
		CategoryType: domain.ExpenseCategory,
		IsActive:     true,
	}
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_Success() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		CategoryID: suite.groceries.CategoryID,
		Name:       "Monthly groceries",
		Amount:     decimal.NewFromInt(400),
		Period:     domain.Monthly,
		StartDate:  time.Now(),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.groceries.CategoryID).Return(&suite.groceries, nil).Once()
	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()

	created, err := suite.service.CreateBudget(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(created.BudgetID)
	suite.True(created.IsActive)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_IncomeCategoryRejected() {
	ctx := context.Background()
	salary := domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       suite.userID,
		CategoryType: domain.IncomeCategory,
		IsActive:     true,
	}
	req := dto.CreateBudgetRequest{
		CategoryID: salary.CategoryID,
		Name:       "Bad budget",
		Amount:     decimal.NewFromInt(100),
		Period:     domain.Monthly,
		StartDate:  time.Now(),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, salary.CategoryID).Return(&salary, nil).Once()

	_, err := suite.service.CreateBudget(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_CustomRequiresEndDate() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		CategoryID: suite.groceries.CategoryID,
		Name:       "Trip budget",
		Amount:     decimal.NewFromInt(1000),
		Period:     domain.Custom,
		StartDate:  time.Now(),
	}

	_, err := suite.service.CreateBudget(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEndDateRequired)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		CategoryID: suite.groceries.CategoryID,
		Name:       "Zero budget",
		Amount:     decimal.Zero,
		Period:     domain.Monthly,
		StartDate:  time.Now(),
	}

	_, err := suite.service.CreateBudget(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetSpending_DerivedFromTransactions() {
	ctx := context.Background()
	budget := &domain.Budget{
		BudgetID:   uuid.NewString(),
		UserID:     suite.userID,
		CategoryID: suite.groceries.CategoryID,
		Amount:     decimal.NewFromInt(400),
		Period:     domain.Monthly,
		IsActive:   true,
	}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("SumExpensesByCategory", ctx, suite.userID, budget.CategoryID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(150), nil).Once()

	spent, remaining, err := suite.service.GetBudgetSpending(ctx, budget.BudgetID, suite.userID)

	suite.Require().NoError(err)
	suite.True(spent.Equal(decimal.NewFromInt(150)))
	suite.True(remaining.Equal(decimal.NewFromInt(250)))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestGetBudgetSpending_OverspendGoesNegative() {
	ctx := context.Background()
	budget := &domain.Budget{
		BudgetID:   uuid.NewString(),
		UserID:     suite.userID,
		CategoryID: suite.groceries.CategoryID,
		Amount:     decimal.NewFromInt(100),
		Period:     domain.Monthly,
		IsActive:   true,
	}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("SumExpensesByCategory", ctx, suite.userID, budget.CategoryID, mock.Anything, mock.Anything).
		Return(decimal.NewFromInt(130), nil).Once()

	_, remaining, err := suite.service.GetBudgetSpending(ctx, budget.BudgetID, suite.userID)

	suite.Require().NoError(err)
	suite.True(remaining.Equal(decimal.NewFromInt(-30)))
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_NotOwned() {
	ctx := context.Background()
	foreign := &domain.Budget{
		BudgetID: uuid.NewString(),
		UserID:   uuid.NewString(),
	}
	newName := "Renamed"

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, foreign.BudgetID).Return(foreign, nil).Once()

	_, err := suite.service.UpdateBudget(ctx, foreign.BudgetID, dto.UpdateBudgetRequest{Name: &newName}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
