package repositories

import (
	"context"
	"time"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
)

// ReportingRepository aggregates transaction history for dashboards and
// reports. All methods are read-only SQL aggregations.
type ReportingRepository interface {
	// GetTransactionStats totals income and expenses in a date range.
	GetTransactionStats(ctx context.Context, userID string, from, to time.Time) (*domain.TransactionStats, error)

	// GetMonthlySpending buckets a calendar year's income and spending by
	// month. Always returns twelve buckets, January first.
	GetMonthlySpending(ctx context.Context, userID string, year int) ([]domain.MonthlyFigures, error)

	// GetCategorySpending totals expense transactions per category in a
	// range, including each category's display fields.
	GetCategorySpending(ctx context.Context, userID string, from, to time.Time) ([]domain.CategorySpend, error)
}
