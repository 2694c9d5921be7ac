package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/apperrors"
	"github.com/spendwise/spendwise-backend/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise-backend/internal/core/ports/repositories"
	portssvc "github.com/spendwise/spendwise-backend/internal/core/ports/services"
	"github.com/spendwise/spendwise-backend/internal/dto"
	"github.com/spendwise/spendwise-backend/internal/middleware"
)

var ErrEndDateRequired = errors.New("end date is required for custom period budgets")

// budgetService provides budget CRUD and derived spend calculations. Spend
// is never stored; it is computed from transaction history on every read.
type budgetService struct {
	budgetRepo   portsrepo.BudgetRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// validateBudgetCategory ensures the budget targets an owned, active expense
// category. Income categories cannot be budgeted.
func (s *budgetService) validateBudgetCategory(ctx context.Context, categoryID string, userID string) error {
	cat, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to fetch category %s: %w", categoryID, err)
	}
	if cat.UserID != userID {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
	}
	if cat.CategoryType != domain.ExpenseCategory {
		return fmt.Errorf("%w: budgets apply to expense categories only", apperrors.ErrValidation)
	}
	return nil
}

func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.Period == domain.Custom && req.EndDate == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEndDateRequired)
	}
	if err := s.validateBudgetCategory(ctx, req.CategoryID, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:   uuid.NewString(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Amount:     req.Amount,
		Period:     req.Period,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.String("period", string(budget.Period)))
	return &budget, nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		}
		return nil, err
	}
	if budget.UserID != userID {
		// Obscure existence.
		return nil, apperrors.ErrNotFound
	}
	return budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budgets, err := s.budgetRepo.ListBudgets(ctx, userID, true)
	if err != nil {
		logger.Error("Failed to list budgets", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to retrieve budgets: %w", err)
	}
	return budgets, nil
}

func (s *budgetService) ListArchivedBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budgets, err := s.budgetRepo.ListBudgets(ctx, userID, false)
	if err != nil {
		logger.Error("Failed to list archived budgets", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to retrieve budgets: %w", err)
	}
	return budgets, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.GetBudgetByID(ctx, budgetID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		budget.Name = *req.Name
		updated = true
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		budget.Amount = *req.Amount
		updated = true
	}
	if req.Period != nil {
		budget.Period = *req.Period
		updated = true
	}
	if req.StartDate != nil {
		budget.StartDate = *req.StartDate
		updated = true
	}
	if req.EndDate != nil {
		budget.EndDate = req.EndDate
		updated = true
	}
	if req.IsActive != nil {
		budget.IsActive = *req.IsActive
		updated = true
	}

	if budget.Period == domain.Custom && budget.EndDate == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEndDateRequired)
	}

	if !updated {
		logger.Debug("No fields provided for budget update", slog.String("budget_id", budgetID))
		return budget, nil
	}

	budget.UpdatedAt = time.Now().UTC()
	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		logger.Error("Failed to update budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	logger.Info("Budget updated", slog.String("budget_id", budgetID))
	return budget, nil
}

// DeactivateBudget archives a budget. Archived budgets stay listable under
// the archived view and can be reactivated through UpdateBudget.
func (s *budgetService) DeactivateBudget(ctx context.Context, budgetID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetBudgetByID(ctx, budgetID, userID); err != nil {
		return err
	}

	if err := s.budgetRepo.DeactivateBudget(ctx, budgetID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return fmt.Errorf("failed to deactivate budget: %w", err)
	}

	logger.Info("Budget deactivated", slog.String("budget_id", budgetID))
	return nil
}

// GetBudgetSpending derives the spend against a budget over its current
// window by summing expense transactions in the category.
func (s *budgetService) GetBudgetSpending(ctx context.Context, budgetID string, userID string) (decimal.Decimal, decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.GetBudgetByID(ctx, budgetID, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	from, to := budget.Window(time.Now().UTC())
	spent, err := s.budgetRepo.SumExpensesByCategory(ctx, userID, budget.CategoryID, from, to)
	if err != nil {
		logger.Error("Failed to sum budget spending", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to calculate budget spending: %w", err)
	}

	return spent, budget.Amount.Sub(spent), nil
}
