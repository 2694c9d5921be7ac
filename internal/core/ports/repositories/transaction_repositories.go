package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
)

// TransactionFilter narrows transaction listings. Zero values mean "no
// constraint".
type TransactionFilter struct {
	TransactionType *domain.TransactionType
	CategoryID      *string
	AccountID       *string // Matches either the source or destination role
	DateFrom        *time.Time
	DateTo          *time.Time
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of a user's transactions,
	// newest first, with an opaque next-page token.
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter persists transaction rows together with the balance
// deltas they imply. Each method executes the row write and every balance
// update as a single database transaction with the affected account rows
// locked, so a transaction row can never exist without its balance effect.
type TransactionWriter interface {
	// SaveTransaction inserts the row and applies deltas atomically.
	SaveTransaction(ctx context.Context, txn domain.Transaction, deltas map[string]decimal.Decimal) error

	// UpdateTransaction replaces the row and applies the net deltas
	// (reversal of the old effect merged with the new effect) atomically.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, deltas map[string]decimal.Decimal) error

	// DeleteTransaction removes the row and applies the reversal deltas
	// atomically.
	DeleteTransaction(ctx context.Context, transactionID string, deltas map[string]decimal.Decimal) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
