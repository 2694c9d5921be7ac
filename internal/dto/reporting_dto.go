package dto

import (
	"github.com/spendwise/spendwise-backend/internal/core/domain"
)

// DateRangeParams bounds a reporting query; dates are YYYY-MM-DD.
type DateRangeParams struct {
	DateFrom string `form:"dateFrom" binding:"required,datetime=2006-01-02"`
	DateTo   string `form:"dateTo" binding:"required,datetime=2006-01-02"`
}

// MonthlySpendingParams selects the year of a monthly spending report.
type MonthlySpendingParams struct {
	Year int `form:"year" binding:"required,min=1970,max=9999"`
}

// SummaryParams selects the look-back period of a financial summary.
type SummaryParams struct {
	Period string `form:"period,default=month" binding:"omitempty,oneof=week month quarter year"`
}

// FinancialSummaryResponse bundles the dashboard's report widgets: current
// period totals, monthly trends, per-category spending, budget consumption
// and generated insights.
type FinancialSummaryResponse struct {
	Overview         domain.TransactionStats `json:"overview"`
	Trends           []domain.MonthlyFigures `json:"trends"`
	CategoryAnalysis []domain.CategorySpend  `json:"categoryAnalysis"`
	BudgetTracking   []domain.BudgetProgress `json:"budgetTracking"`
	Insights         []domain.Insight        `json:"insights"`
}
