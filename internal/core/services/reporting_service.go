package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise-backend/internal/core/ports/repositories"
	portssvc "github.com/spendwise/spendwise-backend/internal/core/ports/services"
	"github.com/spendwise/spendwise-backend/internal/dto"
	"github.com/spendwise/spendwise-backend/internal/middleware"
)

var hundred = decimal.NewFromInt(100)

// reportingService derives dashboard figures from transaction history. It
// never writes; all aggregation happens in SQL or over already-aggregated
// rows.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	budgetRepo    portsrepo.BudgetRepositoryFacade
	categoryRepo  portsrepo.CategoryRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, budgetRepo portsrepo.BudgetRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		budgetRepo:    budgetRepo,
		categoryRepo:  categoryRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetTransactionStats totals income and expenses in a date range. Transfers
// are excluded; they move money between the user's own accounts.
func (s *reportingService) GetTransactionStats(ctx context.Context, userID string, from, to time.Time) (*domain.TransactionStats, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stats, err := s.reportingRepo.GetTransactionStats(ctx, userID, from, to)
	if err != nil {
		logger.Error("Failed to get transaction stats", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get transaction stats: %w", err)
	}
	stats.Savings = stats.Income.Sub(stats.Expenses)
	return stats, nil
}

// GetMonthlySpending buckets a year's income and spending by month.
func (s *reportingService) GetMonthlySpending(ctx context.Context, userID string, year int) ([]domain.MonthlyFigures, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	figures, err := s.reportingRepo.GetMonthlySpending(ctx, userID, year)
	if err != nil {
		logger.Error("Failed to get monthly spending", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get monthly spending: %w", err)
	}
	for i := range figures {
		figures[i].Savings = figures[i].Income.Sub(figures[i].Spending)
	}
	return figures, nil
}

// GetCategoryAnalysis breaks down expense spending per category, attaching
// each category's active budget amount and its share of total spending.
func (s *reportingService) GetCategoryAnalysis(ctx context.Context, userID string, from, to time.Time) ([]domain.CategorySpend, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	spending, err := s.reportingRepo.GetCategorySpending(ctx, userID, from, to)
	if err != nil {
		logger.Error("Failed to get category spending", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get category spending: %w", err)
	}

	budgets, err := s.budgetRepo.ListBudgets(ctx, userID, true)
	if err != nil {
		logger.Error("Failed to list budgets for category analysis", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	budgetByCategory := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		budgetByCategory[b.CategoryID] = budgetByCategory[b.CategoryID].Add(b.Amount)
	}

	total := decimal.Zero
	for _, cs := range spending {
		total = total.Add(cs.Amount)
	}
	for i := range spending {
		spending[i].Budget = budgetByCategory[spending[i].CategoryID]
		if total.IsPositive() {
			spending[i].Percentage = spending[i].Amount.Div(total).Mul(hundred).Round(2)
		}
	}
	return spending, nil
}

// GetBudgetTracking reports consumption of every active budget over the
// given window.
func (s *reportingService) GetBudgetTracking(ctx context.Context, userID string, from, to time.Time) ([]domain.BudgetProgress, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budgets, err := s.budgetRepo.ListBudgets(ctx, userID, true)
	if err != nil {
		logger.Error("Failed to list budgets for tracking", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	now := time.Now().UTC()
	progress := make([]domain.BudgetProgress, 0, len(budgets))
	for _, budget := range budgets {
		spent, err := s.budgetRepo.SumExpensesByCategory(ctx, userID, budget.CategoryID, from, to)
		if err != nil {
			logger.Error("Failed to sum expenses for budget", slog.String("error", err.Error()), slog.String("budget_id", budget.BudgetID))
			return nil, fmt.Errorf("failed to sum expenses for budget %s: %w", budget.BudgetID, err)
		}

		p := domain.BudgetProgress{
			Budget:    budget,
			Spent:     spent,
			Remaining: budget.Amount.Sub(spent),
		}
		if budget.Amount.IsPositive() {
			p.Percentage = spent.Div(budget.Amount).Mul(hundred).Round(2)
		}

		// Projection: average daily spend so far, extended over the whole
		// window.
		elapsedDays := decimal.NewFromInt(int64(now.Sub(from).Hours()/24) + 1)
		totalDays := decimal.NewFromInt(int64(to.Sub(from).Hours()/24) + 1)
		if elapsedDays.IsPositive() {
			p.DailyAverage = spent.Div(elapsedDays).Round(2)
			p.ProjectedSpend = p.DailyAverage.Mul(totalDays).Round(2)
		}

		if cat, err := s.categoryRepo.FindCategoryByID(ctx, budget.CategoryID); err == nil {
			p.Category = cat
		}

		progress = append(progress, p)
	}
	return progress, nil
}

// summaryRange resolves a look-back period name to its date range ending now.
func summaryRange(period string, now time.Time) (time.Time, time.Time) {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), now
	case "quarter":
		return now.AddDate(0, -3, 0), now
	case "year":
		return now.AddDate(-1, 0, 0), now
	default: // month
		return now.AddDate(0, -1, 0), now
	}
}

// GetFinancialSummary assembles the dashboard summary: period totals,
// monthly trends, category breakdown, budget consumption and insights
// comparing the period against the one before it.
func (s *reportingService) GetFinancialSummary(ctx context.Context, userID string, period string) (*dto.FinancialSummaryResponse, error) {
	now := time.Now().UTC()
	from, to := summaryRange(period, now)

	overview, err := s.GetTransactionStats(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	trends, err := s.GetMonthlySpending(ctx, userID, now.Year())
	if err != nil {
		return nil, err
	}

	categoryAnalysis, err := s.GetCategoryAnalysis(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	budgetTracking, err := s.GetBudgetTracking(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	// Previous period of equal length, ending where this one starts.
	prevFrom := from.Add(-to.Sub(from))
	previous, err := s.GetTransactionStats(ctx, userID, prevFrom, from)
	if err != nil {
		return nil, err
	}

	return &dto.FinancialSummaryResponse{
		Overview:         *overview,
		Trends:           trends,
		CategoryAnalysis: categoryAnalysis,
		BudgetTracking:   budgetTracking,
		Insights:         buildInsights(overview, previous, categoryAnalysis),
	}, nil
}

// buildInsights derives human-readable observations from the current and
// previous period stats.
func buildInsights(current, previous *domain.TransactionStats, categories []domain.CategorySpend) []domain.Insight {
	insights := make([]domain.Insight, 0, 3)

	// Spending trend versus the previous period.
	if previous.Expenses.IsPositive() {
		change := current.Expenses.Sub(previous.Expenses).Div(previous.Expenses).Mul(hundred).Round(1)
		switch {
		case change.IsNegative():
			insights = append(insights, domain.Insight{
				Type:        domain.InsightPositive,
				Icon:        "trending-down",
				Title:       "Spending decreased",
				Value:       change.Abs().String() + "%",
				Description: "You spent less than in the previous period.",
			})
		case change.GreaterThan(decimal.NewFromInt(10)):
			insights = append(insights, domain.Insight{
				Type:        domain.InsightWarning,
				Icon:        "trending-up",
				Title:       "Spending increased",
				Value:       change.String() + "%",
				Description: "Your spending is up compared to the previous period.",
			})
		}
	}

	// Savings rate.
	if current.Income.IsPositive() {
		rate := current.Savings.Div(current.Income).Mul(hundred).Round(1)
		insight := domain.Insight{
			Icon:  "piggy-bank",
			Title: "Savings rate",
			Value: rate.String() + "%",
		}
		switch {
		case rate.GreaterThanOrEqual(decimal.NewFromInt(20)):
			insight.Type = domain.InsightPositive
			insight.Description = "You are saving a healthy share of your income."
		case rate.IsNegative():
			insight.Type = domain.InsightWarning
			insight.Description = "You spent more than you earned this period."
		default:
			insight.Type = domain.InsightNeutral
			insight.Description = "Your savings rate this period."
		}
		insights = append(insights, insight)
	}

	// Largest spending category.
	if len(categories) > 0 {
		top := categories[0]
		for _, c := range categories[1:] {
			if c.Amount.GreaterThan(top.Amount) {
				top = c
			}
		}
		insights = append(insights, domain.Insight{
			Type:        domain.InsightNeutral,
			Icon:        "chart-pie",
			Title:       "Top spending category",
			Value:       top.Name,
			Description: fmt.Sprintf("%s accounts for %s%% of your spending.", top.Name, top.Percentage.String()),
		})
	}

	return insights
}
