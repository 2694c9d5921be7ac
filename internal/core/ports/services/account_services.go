package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
	"github.com/spendwise/spendwise-backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account, enforcing ownership.
	GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple owned accounts by their IDs.
	GetAccountsByIDs(ctx context.Context, accountIDs []string, userID string) (map[string]domain.Account, error)

	// ListAccounts retrieves the user's active accounts, newest first.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount persists a new account for the user.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an account's details, including direct balance
	// edits.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountCalculatorSvc defines aggregate calculations over accounts.
type AccountCalculatorSvc interface {
	// TotalBalance sums a user's active account balances, subtracting
	// credit card balances as liabilities.
	TotalBalance(ctx context.Context, userID string) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
