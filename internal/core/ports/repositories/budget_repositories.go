package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
)

// BudgetReader defines read operations for budget data.
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgets retrieves a user's budgets, newest first. Active budgets
	// when active is true, archived ones (ordered by end date descending)
	// otherwise.
	ListBudgets(ctx context.Context, userID string, active bool) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data.
type BudgetWriter interface {
	// SaveBudget persists a new budget.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates an existing budget's details.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeactivateBudget archives a budget.
	DeactivateBudget(ctx context.Context, budgetID string, now time.Time) error
}

// BudgetSpendSupport derives budget consumption from transaction history.
type BudgetSpendSupport interface {
	// SumExpensesByCategory totals the expense transactions of a category in
	// a date range. Derived on read; never stored.
	SumExpensesByCategory(ctx context.Context, userID string, categoryID string, from, to time.Time) (decimal.Decimal, error)
}

// BudgetRepositoryFacade combines all budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
	BudgetSpendSupport
}
