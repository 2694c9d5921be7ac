package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendwise/spendwise-backend/internal/apperrors"
	"github.com/spendwise/spendwise-backend/internal/core/domain"
	portssvc "github.com/spendwise/spendwise-backend/internal/core/ports/services"
	"github.com/spendwise/spendwise-backend/internal/core/services"
	"github.com/spendwise/spendwise-backend/internal/dto"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.CategorySvcFacade
	userID           string
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockCategoryRepo)
	suite.userID = uuid.NewString()
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Success() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{
		Name:         "Groceries",
		CategoryType: domain.ExpenseCategory,
		Color:        "#4ade80",
		Icon:         "shopping-cart",
	}

	suite.mockCategoryRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.UserID == suite.userID && c.Name == "Groceries" && c.IsActive
	})).Return(nil).Once()

	created, err := suite.service.CreateCategory(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(created.CategoryID)
	suite.Equal(domain.ExpenseCategory, created.CategoryType)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestGetCategoryByID_OtherUserObscured() {
	ctx := context.Background()
	foreign := &domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     uuid.NewString(),
		Name:       "Groceries",
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, foreign.CategoryID).Return(foreign, nil).Once()

	_, err := suite.service.GetCategoryByID(ctx, foreign.CategoryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CategoryServiceTestSuite) TestListCategories_TypeFilter() {
	ctx := context.Background()
	expenseType := string(domain.ExpenseCategory)
	expected := []domain.Category{
		{CategoryID: uuid.NewString(), UserID: suite.userID, Name: "Groceries", CategoryType: domain.ExpenseCategory},
	}

	suite.mockCategoryRepo.On("ListCategories", ctx, suite.userID, mock.MatchedBy(func(t *domain.CategoryType) bool {
		return t != nil && *t == domain.ExpenseCategory
	})).Return(expected, nil).Once()

	got, err := suite.service.ListCategories(ctx, suite.userID, dto.ListCategoriesParams{CategoryType: &expenseType})

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_PartialFields() {
	ctx := context.Background()
	existing := &domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Groceries",
		CategoryType: domain.ExpenseCategory,
		Color:        "#4ade80",
		IsActive:     true,
	}
	newColor := "#f87171"

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, existing.CategoryID).Return(existing, nil).Once()
	suite.mockCategoryRepo.On("UpdateCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Color == newColor && c.Name == "Groceries"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCategory(ctx, existing.CategoryID, dto.UpdateCategoryRequest{Color: &newColor}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newColor, updated.Color)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_NoFieldsNoWrite() {
	ctx := context.Background()
	existing := &domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     suite.userID,
		Name:       "Groceries",
		IsActive:   true,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, existing.CategoryID).Return(existing, nil).Once()

	_, err := suite.service.UpdateCategory(ctx, existing.CategoryID, dto.UpdateCategoryRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "UpdateCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeactivateCategory_Success() {
	ctx := context.Background()
	existing := &domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     suite.userID,
		Name:       "Groceries",
		IsActive:   true,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, existing.CategoryID).Return(existing, nil).Once()
	suite.mockCategoryRepo.On("DeactivateCategory", ctx, existing.CategoryID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateCategory(ctx, existing.CategoryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestDeactivateCategory_NotFound() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateCategory(ctx, categoryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "DeactivateCategory", mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoryService(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
