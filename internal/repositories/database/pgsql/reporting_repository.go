package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise-backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTransactionStats totals income and expenses in a date range. Transfers
// are excluded from both sides.
func (r *PgxReportingRepository) GetTransactionStats(ctx context.Context, userID string, from, to time.Time) (*domain.TransactionStats, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'income'), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'expense'), 0) AS expenses,
			COUNT(*) AS total
		FROM transactions
		WHERE user_id = $1
		  AND transaction_type IN ('income', 'expense')
		  AND transaction_date >= $2
		  AND transaction_date <= $3;
	`
	stats := &domain.TransactionStats{}
	err := r.Pool.QueryRow(ctx, query, userID, from, to).Scan(
		&stats.Income,
		&stats.Expenses,
		&stats.TotalTransactions,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction stats for user %s: %w", userID, err)
	}
	return stats, nil
}

// GetMonthlySpending buckets a calendar year's income and spending by month.
// Always returns twelve buckets, January first, zero-filled where the user
// had no activity.
func (r *PgxReportingRepository) GetMonthlySpending(ctx context.Context, userID string, year int) ([]domain.MonthlyFigures, error) {
	query := `
		SELECT
			EXTRACT(MONTH FROM transaction_date)::int AS month,
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'income'), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'expense'), 0) AS spending,
			COUNT(*) AS transactions
		FROM transactions
		WHERE user_id = $1
		  AND transaction_type IN ('income', 'expense')
		  AND EXTRACT(YEAR FROM transaction_date) = $2
		GROUP BY month
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly spending for user %s: %w", userID, err)
	}
	defer rows.Close()

	figures := make([]domain.MonthlyFigures, 12)
	for i := range figures {
		figures[i] = domain.MonthlyFigures{
			Period:   time.Month(i + 1).String()[:3],
			Income:   decimal.Zero,
			Spending: decimal.Zero,
		}
	}

	for rows.Next() {
		var month, count int
		var income, spending decimal.Decimal
		if err := rows.Scan(&month, &income, &spending, &count); err != nil {
			return nil, fmt.Errorf("failed to scan monthly spending row: %w", err)
		}
		if month < 1 || month > 12 {
			continue
		}
		figures[month-1].Income = income
		figures[month-1].Spending = spending
		figures[month-1].Transactions = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly spending rows: %w", err)
	}

	return figures, nil
}

// GetCategorySpending totals expense transactions per category in a range,
// including each category's display fields.
func (r *PgxReportingRepository) GetCategorySpending(ctx context.Context, userID string, from, to time.Time) ([]domain.CategorySpend, error) {
	query := `
		SELECT c.category_id, c.name, c.color,
		       COALESCE(SUM(t.amount), 0) AS amount,
		       COUNT(t.transaction_id) AS transactions
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		WHERE t.user_id = $1
		  AND t.transaction_type = 'expense'
		  AND t.transaction_date >= $2
		  AND t.transaction_date <= $3
		GROUP BY c.category_id, c.name, c.color
		ORDER BY amount DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category spending for user %s: %w", userID, err)
	}
	defer rows.Close()

	spending := []domain.CategorySpend{}
	for rows.Next() {
		var cs domain.CategorySpend
		if err := rows.Scan(&cs.CategoryID, &cs.Name, &cs.Color, &cs.Amount, &cs.Transactions); err != nil {
			return nil, fmt.Errorf("failed to scan category spending row: %w", err)
		}
		spending = append(spending, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category spending rows: %w", err)
	}

	return spending, nil
}
