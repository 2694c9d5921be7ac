package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionStats aggregates income and expense totals over a date range.
// Transfers move money between a user's own accounts and are excluded.
type TransactionStats struct {
	Income            decimal.Decimal `json:"income"`
	Expenses          decimal.Decimal `json:"expenses"`
	Savings           decimal.Decimal `json:"savings"` // Income - Expenses
	TotalTransactions int             `json:"totalTransactions"`
}

// MonthlyFigures is one month's bucket in a year-long spending report.
type MonthlyFigures struct {
	Period       string          `json:"period"` // Short month name, "Jan".."Dec"
	Income       decimal.Decimal `json:"income"`
	Spending     decimal.Decimal `json:"spending"`
	Savings      decimal.Decimal `json:"savings"`
	Transactions int             `json:"transactions"`
}

// CategorySpend is one expense category's share of spending in a range.
type CategorySpend struct {
	CategoryID   string          `json:"categoryID"`
	Name         string          `json:"name"`
	Color        string          `json:"color"`
	Amount       decimal.Decimal `json:"amount"`
	Transactions int             `json:"transactions"`
	Budget       decimal.Decimal `json:"budget"`     // Active budget amount, zero if none
	Percentage   decimal.Decimal `json:"percentage"` // Share of total spending, 0-100
}

// BudgetProgress reports one budget's consumption over a tracking window.
type BudgetProgress struct {
	Budget         Budget          `json:"budget"`
	Category       *Category       `json:"category,omitempty"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	Percentage     decimal.Decimal `json:"percentage"`
	DailyAverage   decimal.Decimal `json:"dailyAverage"`
	ProjectedSpend decimal.Decimal `json:"projectedSpend"`
}

// InsightType classifies a generated trend insight.
type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightWarning  InsightType = "warning"
	InsightNeutral  InsightType = "neutral"
)

// Insight is a human-readable observation derived by comparing the current
// reporting period against the previous one.
type Insight struct {
	Type        InsightType `json:"type"`
	Icon        string      `json:"icon"`
	Title       string      `json:"title"`
	Value       string      `json:"value"`
	Description string      `json:"description"`
}
