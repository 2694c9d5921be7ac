package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
)

// CreateBudgetRequest defines the data needed to create a budget.
// EndDate is required only for custom periods.
type CreateBudgetRequest struct {
	CategoryID string              `json:"categoryID" binding:"required"`
	Name       string              `json:"name" binding:"required"`
	Amount     decimal.Decimal     `json:"amount" binding:"required"`
	Period     domain.BudgetPeriod `json:"period" binding:"required,oneof=monthly weekly yearly custom"`
	StartDate  time.Time           `json:"startDate" binding:"required"`
	EndDate    *time.Time          `json:"endDate"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
type UpdateBudgetRequest struct {
	Name      *string              `json:"name"`
	Amount    *decimal.Decimal     `json:"amount"`
	Period    *domain.BudgetPeriod `json:"period" binding:"omitempty,oneof=monthly weekly yearly custom"`
	StartDate *time.Time           `json:"startDate"`
	EndDate   *time.Time           `json:"endDate"`
	IsActive  *bool                `json:"isActive"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID   string              `json:"budgetID"`
	CategoryID string              `json:"categoryID"`
	Name       string              `json:"name"`
	Amount     decimal.Decimal     `json:"amount"`
	Period     domain.BudgetPeriod `json:"period"`
	StartDate  time.Time           `json:"startDate"`
	EndDate    *time.Time          `json:"endDate,omitempty"`
	IsActive   bool                `json:"isActive"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// ToBudgetResponse converts a domain.Budget to its response DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:   b.BudgetID,
		CategoryID: b.CategoryID,
		Name:       b.Name,
		Amount:     b.Amount,
		Period:     b.Period,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		IsActive:   b.IsActive,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// ListBudgetsResponse wraps the list of budgets.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// BudgetSpendingResponse reports the derived spend of a single budget over
// its current window.
type BudgetSpendingResponse struct {
	BudgetID  string          `json:"budgetID"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}
