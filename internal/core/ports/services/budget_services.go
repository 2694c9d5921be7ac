package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
	"github.com/spendwise/spendwise-backend/internal/dto"
)

// BudgetSvcFacade defines operations for managing budgets and deriving
// their consumption.
type BudgetSvcFacade interface {
	// CreateBudget persists a new budget for the user.
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error)

	// GetBudgetByID retrieves a budget, enforcing ownership.
	GetBudgetByID(ctx context.Context, budgetID string, userID string) (*domain.Budget, error)

	// ListBudgets retrieves the user's active budgets.
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)

	// ListArchivedBudgets retrieves the user's archived budgets.
	ListArchivedBudgets(ctx context.Context, userID string) ([]domain.Budget, error)

	// UpdateBudget updates a budget's details.
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error)

	// DeactivateBudget archives a budget.
	DeactivateBudget(ctx context.Context, budgetID string, userID string) error

	// GetBudgetSpending derives the amount spent against a budget over its
	// current window.
	GetBudgetSpending(ctx context.Context, budgetID string, userID string) (spent decimal.Decimal, remaining decimal.Decimal, err error)
}
