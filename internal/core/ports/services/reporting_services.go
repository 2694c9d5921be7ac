package services

import (
	"context"
	"time"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
	"github.com/spendwise/spendwise-backend/internal/dto"
)

// ReportingSvcFacade derives dashboard and report figures from transaction
// history. Everything here is read-only aggregation, not part of the balance
// protocol.
type ReportingSvcFacade interface {
	// GetTransactionStats totals income and expenses in a date range.
	GetTransactionStats(ctx context.Context, userID string, from, to time.Time) (*domain.TransactionStats, error)

	// GetMonthlySpending buckets a year's income and spending by month.
	GetMonthlySpending(ctx context.Context, userID string, year int) ([]domain.MonthlyFigures, error)

	// GetCategoryAnalysis breaks down expense spending per category with
	// budget amounts attached.
	GetCategoryAnalysis(ctx context.Context, userID string, from, to time.Time) ([]domain.CategorySpend, error)

	// GetBudgetTracking reports consumption of every active budget over the
	// given window.
	GetBudgetTracking(ctx context.Context, userID string, from, to time.Time) ([]domain.BudgetProgress, error)

	// GetFinancialSummary assembles the dashboard summary for a look-back
	// period ("week", "month", "quarter", "year").
	GetFinancialSummary(ctx context.Context, userID string, period string) (*dto.FinancialSummaryResponse, error)
}
