package services

import (
	"context"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
	"github.com/spendwise/spendwise-backend/internal/dto"
)

// CategorySvcFacade defines operations for managing categories.
type CategorySvcFacade interface {
	// CreateCategory persists a new category for the user.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)

	// GetCategoryByID retrieves a category, enforcing ownership.
	GetCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error)

	// ListCategories retrieves the user's categories ordered by name.
	ListCategories(ctx context.Context, userID string, params dto.ListCategoriesParams) ([]domain.Category, error)

	// UpdateCategory updates a category's details.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error)

	// DeactivateCategory soft-deletes a category.
	DeactivateCategory(ctx context.Context, categoryID string, userID string) error
}
