package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendwise/spendwise-backend/internal/apperrors"
	"github.com/spendwise/spendwise-backend/internal/core/domain"
	portssvc "github.com/spendwise/spendwise-backend/internal/core/ports/services"
	"github.com/spendwise/spendwise-backend/internal/dto"
	"github.com/spendwise/spendwise-backend/internal/handlers"
	"github.com/spendwise/spendwise-backend/internal/middleware"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	args := m.Called(ctx, transactionID, userID)
	return args.Error(0)
}

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	jwtSecret   string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockService)
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "spendwise-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) doJSON(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func strPtr(s string) *string {
	return &s
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()
	categoryID := uuid.NewString()

	req := dto.CreateTransactionRequest{
		TransactionType: domain.Expense,
		Amount:          decimal.NewFromInt(42),
		CategoryID:      strPtr(categoryID),
		AccountID:       strPtr(accountID),
		Description:     "Weekly shop",
		TransactionDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
	created := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		TransactionType: domain.Expense,
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		AccountID:       req.AccountID,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
		Status:          domain.StatusCompleted,
	}

	suite.mockService.On("CreateTransaction", mock.Anything,
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.TransactionType == domain.Expense && r.Amount.Equal(decimal.NewFromInt(42))
		}),
		userID,
	).Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", req, userID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.TransactionID, resp.TransactionID)
	suite.True(resp.Amount.Equal(decimal.NewFromInt(42)))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_InvalidBody() {
	userID := uuid.NewString()

	// Unknown transaction type fails binding before the service is reached.
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", map[string]any{
		"transactionType": "withdrawal",
		"amount":          "10",
		"transactionDate": "2026-03-10T00:00:00Z",
	}, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_AccountNotFound() {
	userID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		TransactionType: domain.Expense,
		Amount:          decimal.NewFromInt(10),
		CategoryID:      strPtr(uuid.NewString()),
		AccountID:       strPtr(uuid.NewString()),
		TransactionDate: time.Now().UTC(),
	}

	suite.mockService.On("CreateTransaction", mock.Anything, mock.Anything, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", req, userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	userID := uuid.NewString()
	next := "b2Zmc2V0"
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{TransactionID: uuid.NewString(), TransactionType: domain.Income, Amount: decimal.NewFromInt(2500)},
		},
		NextToken: &next,
	}

	suite.mockService.On("ListTransactions", mock.Anything, userID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == 10 && p.TransactionType != nil && *p.TransactionType == "income"
		}),
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions?limit=10&type=income", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_InvalidTypeFilter() {
	userID := uuid.NewString()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions?type=refund", nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockService.On("GetTransactionByID", mock.Anything, transactionID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions/"+transactionID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_Success() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()
	accountID := uuid.NewString()
	categoryID := uuid.NewString()

	req := dto.UpdateTransactionRequest{
		TransactionType: domain.Expense,
		Amount:          decimal.NewFromInt(60),
		CategoryID:      strPtr(categoryID),
		AccountID:       strPtr(accountID),
		TransactionDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
	updated := &domain.Transaction{
		TransactionID:   transactionID,
		UserID:          userID,
		TransactionType: domain.Expense,
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		AccountID:       req.AccountID,
		TransactionDate: req.TransactionDate,
	}

	suite.mockService.On("UpdateTransaction", mock.Anything, transactionID, mock.Anything, userID).
		Return(updated, nil).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/transactions/"+transactionID, req, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Amount.Equal(decimal.NewFromInt(60)))
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_Success() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockService.On("DeleteTransaction", mock.Anything, transactionID, userID).Return(nil).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/transactions/"+transactionID, nil, userID)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
